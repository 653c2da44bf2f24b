package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante imprimible de una venta.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, shopName string, sale *entity.Sale) ([]byte, error)
}

// ReceiptUseCase arma el PDF del comprobante de una venta existente.
type ReceiptUseCase struct {
	query     *QueryUseCase
	generator ReceiptGenerator
	shopName  string
}

// NewReceiptUseCase construye el caso de uso; shopName se imprime en el encabezado.
func NewReceiptUseCase(query *QueryUseCase, generator ReceiptGenerator, shopName string) *ReceiptUseCase {
	return &ReceiptUseCase{query: query, generator: generator, shopName: shopName}
}

// Download devuelve (pdf, nombre de archivo). domain.ErrNotFound si la venta no existe.
func (uc *ReceiptUseCase) Download(ctx context.Context, saleID int64) ([]byte, string, error) {
	sale, err := uc.query.Get(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.generator.GenerateSaleReceipt(ctx, uc.shopName, sale)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return doc, fmt.Sprintf("venta_%d.pdf", sale.ID), nil
}
