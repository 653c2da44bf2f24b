package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/inventory"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// ConsumptionUseCase consumo de taller. Es solo un registro: no toca el stock.
type ConsumptionUseCase struct {
	repo repository.ConsumptionRepository
}

func NewConsumptionUseCase(repo repository.ConsumptionRepository) *ConsumptionUseCase {
	return &ConsumptionUseCase{repo: repo}
}

func (uc *ConsumptionUseCase) Create(ctx context.Context, in dto.CreateConsumptionRequest) (*dto.CreatedConsumptionResponse, error) {
	date := strings.TrimSpace(in.Date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: fecha debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	itemID, err := inventory.ParseID(in.ItemID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: id_producto", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	qty, err := inventory.ParseNumber(in.Quantity.String())
	if err != nil {
		return nil, fmt.Errorf("%w: cantidad", domain.ErrInvalidInput)
	}
	value, err := optionalNumber(in.Value, decimal.Zero, "valor")
	if err != nil {
		return nil, err
	}

	c := &entity.Consumption{Date: date, ItemID: itemID, ItemName: name, Quantity: qty, Value: value}
	for _, f := range []struct {
		raw   dto.FlexNumber
		dst   **decimal.Decimal
		field string
	}{
		{in.Boards, &c.Boards, "tableros"},
		{in.Posts, &c.Posts, "parales"},
		{in.SaleValue, &c.SaleValue, "venta"},
	} {
		if strings.TrimSpace(f.raw.String()) == "" {
			continue
		}
		n, err := inventory.ParseNumber(f.raw.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, f.field)
		}
		*f.dst = &n
	}

	id, err := uc.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	return &dto.CreatedConsumptionResponse{Created: true, ID: id}, nil
}

func (uc *ConsumptionUseCase) List(ctx context.Context) ([]dto.ConsumptionResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsumptionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ConsumptionResponse{
			ID:        c.ID,
			Date:      c.Date,
			ItemID:    c.ItemID,
			ItemName:  c.ItemName,
			Quantity:  c.Quantity,
			Value:     c.Value,
			Boards:    c.Boards,
			Posts:     c.Posts,
			SaleValue: c.SaleValue,
		})
	}
	return out, nil
}

// Delete domain.ErrNotFound si no existe.
func (uc *ConsumptionUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
