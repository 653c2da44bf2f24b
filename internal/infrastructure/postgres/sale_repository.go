package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// fecha es DATE; se lee con to_char para no depender de la zona horaria.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador del libro de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Insert(ctx context.Context, sale *entity.Sale) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO ventas (fecha, id_producto, producto, cantidad_vendida, total_venta, observaciones)
		VALUES ($1::date, $2, $3, $4, $5, $6)
		RETURNING id`,
		sale.Date, sale.ItemID, sale.ItemName, sale.Quantity, sale.TotalAmount, sale.Notes,
	).Scan(&id)
	if err != nil {
		return 0, mapError("insert sale", err)
	}
	return id, nil
}

// GetForUpdate bloquea la fila de la venta. nil si no existe.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.getOne(ctx, `
		SELECT id, to_char(fecha, 'YYYY-MM-DD'), id_producto, producto, cantidad_vendida, total_venta,
		       observaciones, created_at
		FROM ventas WHERE id = $1
		FOR UPDATE`, id)
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.getOne(ctx, `
		SELECT id, to_char(fecha, 'YYYY-MM-DD'), id_producto, producto, cantidad_vendida, total_venta,
		       observaciones, created_at
		FROM ventas WHERE id = $1`, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query string, id int64) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Date, &s.ItemID, &s.ItemName, &s.Quantity, &s.TotalAmount, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

func (r *SaleRepo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM ventas WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete sale: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List ventas con el nombre e imagen actuales del producto (LEFT JOIN), recientes primero.
func (r *SaleRepo) List(ctx context.Context, filter entity.SaleFilter) ([]*entity.Sale, error) {
	var (
		conds []string
		args  []any
	)
	if filter.From != "" {
		args = append(args, filter.From)
		conds = append(conds, fmt.Sprintf("v.fecha >= $%d::date", len(args)))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		conds = append(conds, fmt.Sprintf("v.fecha <= $%d::date", len(args)))
	}
	if filter.ItemID > 0 {
		args = append(args, filter.ItemID)
		conds = append(conds, fmt.Sprintf("v.id_producto = $%d", len(args)))
	}

	query := `
		SELECT v.id, to_char(v.fecha, 'YYYY-MM-DD'), v.id_producto, v.producto, v.cantidad_vendida,
		       v.total_venta, v.observaciones, v.created_at, i.nombre_producto, i.imagen_url
		FROM ventas v
		LEFT JOIN inventario i ON i.id_producto = v.id_producto`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY v.fecha DESC, v.id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.Date, &s.ItemID, &s.ItemName, &s.Quantity, &s.TotalAmount, &s.Notes, &s.CreatedAt,
			&s.CurrentItemName, &s.ItemImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) CountByItem(ctx context.Context, itemID int64) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM ventas WHERE id_producto = $1`, itemID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}
