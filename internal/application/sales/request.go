package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/inventory"
)

// RecordSaleFromRequest adapta el request HTTP (números como texto local) a RecordSale.
func (uc *StockLedgerUseCase) RecordSaleFromRequest(ctx context.Context, in dto.CreateSaleRequest) (*dto.RecordSaleResponse, error) {
	input, err := ParseSaleRequest(in)
	if err != nil {
		return nil, err
	}
	return uc.RecordSale(ctx, input)
}

// ParseSaleRequest interpreta los campos del request. Cualquier campo faltante o
// ilegible devuelve domain.ErrInvalidInput.
func ParseSaleRequest(in dto.CreateSaleRequest) (SaleInput, error) {
	if strings.TrimSpace(in.Date) == "" {
		return SaleInput{}, fmt.Errorf("%w: fecha requerida", domain.ErrInvalidInput)
	}
	itemID, err := inventory.ParseID(in.ItemID.String())
	if err != nil {
		return SaleInput{}, fmt.Errorf("%w: id_producto", domain.ErrInvalidInput)
	}
	qty, err := inventory.ParseQuantity(in.Quantity.String())
	if err != nil {
		return SaleInput{}, fmt.Errorf("%w: cantidad_vendida", domain.ErrInvalidInput)
	}
	total, err := inventory.ParseNumber(in.TotalAmount.String())
	if err != nil {
		return SaleInput{}, fmt.Errorf("%w: total_venta", domain.ErrInvalidInput)
	}
	var notes *string
	if in.Notes != nil && strings.TrimSpace(*in.Notes) != "" {
		n := strings.TrimSpace(*in.Notes)
		notes = &n
	}
	return SaleInput{
		Date:        strings.TrimSpace(in.Date),
		ItemID:      itemID,
		Quantity:    qty,
		TotalAmount: total,
		Notes:       notes,
	}, nil
}
