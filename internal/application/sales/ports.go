package sales

import (
	"context"
	"time"

	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback ante cualquier error (o panic).
type TxRunner interface {
	RunAtomic(ctx context.Context, fn func(items repository.ItemRepository, sales repository.SaleRepository) error) error
}

// StockObserver recibe un aviso después de cada commit que modificó el stock de un producto.
type StockObserver interface {
	StockChanged(ctx context.Context, itemID int64)
}

// MetricsRecorder contadores del motor de stock.
type MetricsRecorder interface {
	SaleRecorded()
	SaleConflict()
	SaleReversed()
	ReversalItemMissing()
	ObserveUnitOfWork(op string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) StockChanged(context.Context, int64) {}

type nopMetrics struct{}

func (nopMetrics) SaleRecorded()                                  {}
func (nopMetrics) SaleConflict()                                  {}
func (nopMetrics) SaleReversed()                                  {}
func (nopMetrics) ReversalItemMissing()                           {}
func (nopMetrics) ObserveUnitOfWork(string, time.Duration, error) {}
