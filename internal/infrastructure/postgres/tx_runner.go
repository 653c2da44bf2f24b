package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-inventario/internal/application/sales"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

var (
	_ sales.TxRunner       = (*TxRunner)(nil)
	_ usecase.ItemTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunAtomic inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La conexión vuelve al pool en todos los caminos, incluido un panic dentro de fn.
func (r *TxRunner) RunAtomic(ctx context.Context, fn func(items repository.ItemRepository, sales repository.SaleRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewItemRepository(tx), NewSaleRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
