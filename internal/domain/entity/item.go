package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinimumStock umbral de stock mínimo cuando no se indica (solo informativo).
var DefaultMinimumStock = decimal.NewFromInt(3)

// Item representa un producto del inventario del taller.
// StockOnHand solo cambia por ventas (resta/reposición) o por reemplazo completo del producto.
type Item struct {
	ID           int64
	Name         string
	Category     string
	UnitPrice    decimal.Decimal
	StockOnHand  decimal.Decimal
	MinimumStock decimal.Decimal // advertencia, no es un piso obligatorio
	ImageURL     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemOption vista liviana para combos (id, nombre, imagen, precio).
type ItemOption struct {
	ID        int64
	Name      string
	ImageURL  *string
	UnitPrice decimal.Decimal
}

// ItemFilter filtros opcionales del listado de productos.
type ItemFilter struct {
	NameContains string
	Category     string
}
