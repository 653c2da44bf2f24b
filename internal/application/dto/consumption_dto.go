package dto

import "github.com/shopspring/decimal"

// CreateConsumptionRequest body para POST /api/consumo.
type CreateConsumptionRequest struct {
	Date      string     `json:"fecha"`
	ItemID    FlexNumber `json:"id_producto"`
	ItemName  string     `json:"producto"`
	Quantity  FlexNumber `json:"cantidad"`
	Value     FlexNumber `json:"valor"`
	Boards    FlexNumber `json:"tableros"`
	Posts     FlexNumber `json:"parales"`
	SaleValue FlexNumber `json:"venta"`
}

// ConsumptionResponse registro de consumo de taller.
type ConsumptionResponse struct {
	ID        int64            `json:"id"`
	Date      string           `json:"fecha"`
	ItemID    int64            `json:"id_producto"`
	ItemName  string           `json:"producto"`
	Quantity  decimal.Decimal  `json:"cantidad"`
	Value     decimal.Decimal  `json:"valor"`
	Boards    *decimal.Decimal `json:"tableros"`
	Posts     *decimal.Decimal `json:"parales"`
	SaleValue *decimal.Decimal `json:"venta"`
}

// CreatedConsumptionResponse confirmación de alta.
type CreatedConsumptionResponse struct {
	Created bool  `json:"creado"`
	ID      int64 `json:"id"`
}
