package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo consumo de taller; no referencia ni modifica inventario.
type ConsumptionRepo struct {
	q Querier
}

func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

func (r *ConsumptionRepo) Create(ctx context.Context, c *entity.Consumption) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO consumo_taller (fecha, id_producto, producto, cantidad, valor, tableros, parales, venta)
		VALUES ($1::date, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		c.Date, c.ItemID, c.ItemName, c.Quantity, c.Value, c.Boards, c.Posts, c.SaleValue,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert consumption: %w", err)
	}
	return id, nil
}

func (r *ConsumptionRepo) List(ctx context.Context) ([]*entity.Consumption, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, to_char(fecha, 'YYYY-MM-DD'), id_producto, producto, cantidad, valor,
		       tableros, parales, venta, created_at
		FROM consumo_taller
		ORDER BY fecha DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list consumption: %w", err)
	}
	defer rows.Close()

	var list []*entity.Consumption
	for rows.Next() {
		var c entity.Consumption
		if err := rows.Scan(
			&c.ID, &c.Date, &c.ItemID, &c.ItemName, &c.Quantity, &c.Value,
			&c.Boards, &c.Posts, &c.SaleValue, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *ConsumptionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM consumo_taller WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete consumption: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
