package repository

import (
	"context"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemRepository define el puerto de persistencia del catálogo (DIP).
// Obtenido desde el TxRunner, todas las operaciones corren dentro de esa transacción.
type ItemRepository interface {
	// ConditionalDecrement resta amount solo si stock >= amount, en una sola sentencia. Devuelve filas afectadas.
	ConditionalDecrement(ctx context.Context, id int64, amount decimal.Decimal) (int64, error)
	// Increment suma amount sin condición. Devuelve filas afectadas (0 si el producto ya no existe).
	Increment(ctx context.Context, id int64, amount decimal.Decimal) (int64, error)
	GetStockAndName(ctx context.Context, id int64) (name string, stock decimal.Decimal, found bool, err error)

	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Item, error)
	List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error)
	ListOptions(ctx context.Context) ([]*entity.ItemOption, error)
	// ListStock todos los productos ordenados por nombre (vista de stock).
	ListStock(ctx context.Context) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) (bool, error)
	UpdateImageURL(ctx context.Context, id int64, url string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
