package repository

import (
	"context"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
)

// ConsumptionRepository persistencia del consumo de taller (no participa del stock).
type ConsumptionRepository interface {
	Create(ctx context.Context, c *entity.Consumption) (int64, error)
	List(ctx context.Context) ([]*entity.Consumption, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
