package dto

import "github.com/shopspring/decimal"

// CreateSaleRequest body para POST /api/ventas.
type CreateSaleRequest struct {
	Date        string     `json:"fecha" form:"fecha"`
	ItemID      FlexNumber `json:"id_producto" form:"id_producto"`
	Quantity    FlexNumber `json:"cantidad_vendida" form:"cantidad_vendida"`
	TotalAmount FlexNumber `json:"total_venta" form:"total_venta"`
	Notes       *string    `json:"observaciones" form:"observaciones"`
}

// RecordSaleResponse resultado de registrar una venta.
type RecordSaleResponse struct {
	Created        bool            `json:"creado"`
	SaleID         int64           `json:"id_venta"`
	StockRemaining decimal.Decimal `json:"stock_restante"`
}

// ReverseSaleResponse resultado de eliminar (revertir) una venta.
type ReverseSaleResponse struct {
	SaleID int64 `json:"id"`
}

// SaleListQuery filtros de GET /api/ventas.
type SaleListQuery struct {
	From   string `query:"desde"`
	To     string `query:"hasta"`
	ItemID string `query:"id_producto"`
}

// SaleResponse venta en listados y detalle.
type SaleResponse struct {
	ID              int64           `json:"id"`
	Date            string          `json:"fecha"`
	ItemID          int64           `json:"id_producto"`
	ItemName        string          `json:"producto"`
	Quantity        decimal.Decimal `json:"cantidad_vendida"`
	TotalAmount     decimal.Decimal `json:"total_venta"`
	Notes           *string         `json:"observaciones"`
	CurrentItemName *string         `json:"nombre_producto"`
	ItemImageURL    *string         `json:"imagen_url"`
}
