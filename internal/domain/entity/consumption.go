package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Consumption registra material usado en el taller. No modifica el stock del producto.
type Consumption struct {
	ID        int64
	Date      string
	ItemID    int64
	ItemName  string
	Quantity  decimal.Decimal
	Value     decimal.Decimal
	Boards    *decimal.Decimal // tableros
	Posts     *decimal.Decimal // parales
	SaleValue *decimal.Decimal // venta asociada
	CreatedAt time.Time
}
