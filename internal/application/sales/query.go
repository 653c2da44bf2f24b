package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/inventory"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// QueryUseCase lecturas del libro de ventas (sin transacción).
type QueryUseCase struct {
	repo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(repo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// List ventas filtradas por rango de fechas y producto, más recientes primero.
func (uc *QueryUseCase) List(ctx context.Context, q dto.SaleListQuery) ([]dto.SaleResponse, error) {
	filter := entity.SaleFilter{
		From: strings.TrimSpace(q.From),
		To:   strings.TrimSpace(q.To),
	}
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, fmt.Errorf("%w: fecha debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if strings.TrimSpace(q.ItemID) != "" {
		id, err := inventory.ParseID(q.ItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: id_producto", domain.ErrInvalidInput)
		}
		filter.ItemID = id
	}

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSaleResponse(s))
	}
	return out, nil
}

// Get una venta por id. domain.ErrNotFound si no existe.
func (uc *QueryUseCase) Get(ctx context.Context, id int64) (*entity.Sale, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener venta: %w", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// ToSaleResponse mapea la entidad al DTO de salida.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:              s.ID,
		Date:            s.Date,
		ItemID:          s.ItemID,
		ItemName:        s.ItemName,
		Quantity:        s.Quantity,
		TotalAmount:     s.TotalAmount,
		Notes:           s.Notes,
		CurrentItemName: s.CurrentItemName,
		ItemImageURL:    s.ItemImageURL,
	}
}
