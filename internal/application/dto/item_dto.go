package dto

import "github.com/shopspring/decimal"

// SaveItemRequest body para crear (POST) o reemplazar (PUT) un producto.
// En PUT se reemplazan todos los campos; id_producto se ignora.
type SaveItemRequest struct {
	ID           FlexNumber `json:"id_producto"`
	Name         string     `json:"nombre_producto"`
	Category     string     `json:"categoria"`
	UnitPrice    FlexNumber `json:"precio_unitario"`
	StockOnHand  FlexNumber `json:"stock_inicial"`
	MinimumStock FlexNumber `json:"stock_minimo"`
	ImageURL     *string    `json:"imagen_url"`
}

// ItemListQuery filtros de GET /api/inventario.
type ItemListQuery struct {
	Q        string `query:"q"`
	Category string `query:"categoria"`
}

// ItemResponse salida de un producto.
type ItemResponse struct {
	ID           int64           `json:"id_producto"`
	Name         string          `json:"nombre_producto"`
	Category     string          `json:"categoria"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	StockOnHand  decimal.Decimal `json:"stock_inicial"`
	MinimumStock decimal.Decimal `json:"stock_minimo"`
	ImageURL     *string         `json:"imagen_url"`
}

// ItemOptionResponse opción liviana para combos.
type ItemOptionResponse struct {
	ID        int64           `json:"id_producto"`
	Name      string          `json:"nombre_producto"`
	ImageURL  *string         `json:"imagen_url"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// StockRowResponse fila de GET /api/stock. El mismo valor se expone con
// tres nombres (stock, stock_inicial, stock_actual) para clientes antiguos.
type StockRowResponse struct {
	ID           int64           `json:"id_producto"`
	Name         string          `json:"nombre_producto"`
	Category     string          `json:"categoria"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	Stock        decimal.Decimal `json:"stock"`
	StockInitial decimal.Decimal `json:"stock_inicial"`
	StockCurrent decimal.Decimal `json:"stock_actual"`
	MinimumStock decimal.Decimal `json:"stock_minimo"`
	BelowMinimum bool            `json:"bajo_minimo"`
	ImageURL     *string         `json:"imagen_url"`
}

// DeletedItemResponse confirmación de borrado.
type DeletedItemResponse struct {
	ID int64 `json:"id_producto"`
}
