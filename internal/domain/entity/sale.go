package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada. Al crearla se resta Quantity del stock del producto;
// al eliminarla se repone. ItemName es una copia tomada al momento de la venta.
type Sale struct {
	ID          int64
	Date        string // YYYY-MM-DD, sin hora
	ItemID      int64
	ItemName    string
	Quantity    decimal.Decimal
	TotalAmount decimal.Decimal // lo informa el cliente; puede reflejar descuentos
	Notes       *string
	CreatedAt   time.Time

	// Solo en listados: datos actuales del producto (nil si ya no existe).
	CurrentItemName *string
	ItemImageURL    *string
}

// SaleFilter filtros opcionales del listado de ventas.
type SaleFilter struct {
	From   string // fecha >= From
	To     string // fecha <= To
	ItemID int64
}
