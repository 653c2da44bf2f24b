package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// ItemTxRunner transacción con repos de catálogo y ventas (borrado seguro de productos).
type ItemTxRunner interface {
	RunAtomic(ctx context.Context, fn func(items repository.ItemRepository, sales repository.SaleRepository) error) error
}

// StockCache cache del listado de stock. Un fallo del cache nunca debe romper la lectura.
// Cada invalidación avanza la generación; SetStock solo escribe si la generación leída
// antes de consultar la BD sigue vigente.
type StockCache interface {
	GetStock(ctx context.Context) ([]dto.StockRowResponse, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetStock(ctx context.Context, gen int64, rows []dto.StockRowResponse) (bool, error)
	InvalidateStock(ctx context.Context) error
}

// ImageStore almacenamiento de imágenes de productos por nombre de archivo.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Remove(ctx context.Context, name string) error
}

// StockNotifier avisa que cambió el stock (o los datos visibles en el listado) de un producto.
type StockNotifier interface {
	StockChanged(ctx context.Context, itemID int64)
}

type nopNotifier struct{}

func (nopNotifier) StockChanged(context.Context, int64) {}
