package repository

import (
	"context"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia del libro de ventas.
type SaleRepository interface {
	Insert(ctx context.Context, sale *entity.Sale) (int64, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). nil si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error)
	Delete(ctx context.Context, id int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	List(ctx context.Context, filter entity.SaleFilter) ([]*entity.Sale, error)
	CountByItem(ctx context.Context, itemID int64) (int64, error)
}
