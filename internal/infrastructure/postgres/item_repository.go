package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id_producto, nombre_producto, categoria, precio_unitario, stock_inicial, stock_minimo, imagen_url, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// ConditionalDecrement resta amount solo si alcanza. La fila queda bloqueada hasta el fin de la tx.
func (r *ItemRepo) ConditionalDecrement(ctx context.Context, id int64, amount decimal.Decimal) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventario
		SET stock_inicial = stock_inicial - $2, updated_at = now()
		WHERE id_producto = $1 AND stock_inicial >= $2`, id, amount)
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Increment repone amount sin condición.
func (r *ItemRepo) Increment(ctx context.Context, id int64, amount decimal.Decimal) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventario
		SET stock_inicial = stock_inicial + $2, updated_at = now()
		WHERE id_producto = $1`, id, amount)
	if err != nil {
		return 0, fmt.Errorf("increment stock: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetStockAndName nombre y stock actual del producto; found=false si no existe.
func (r *ItemRepo) GetStockAndName(ctx context.Context, id int64) (string, decimal.Decimal, bool, error) {
	var (
		name  string
		stock decimal.Decimal
	)
	err := r.q.QueryRow(ctx, `SELECT nombre_producto, stock_inicial FROM inventario WHERE id_producto = $1`, id).
		Scan(&name, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", decimal.Zero, false, nil
		}
		return "", decimal.Zero, false, fmt.Errorf("get stock: %w", err)
	}
	return name, stock, true, nil
}

// Create inserta el producto. Si ID es 0 se asigna max(id)+1 en la misma sentencia.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO inventario (id_producto, nombre_producto, categoria, precio_unitario, stock_inicial, stock_minimo, imagen_url)
		VALUES (
			CASE WHEN $1::bigint > 0 THEN $1::bigint
			     ELSE (SELECT COALESCE(MAX(id_producto), 0) + 1 FROM inventario) END,
			$2, $3, $4, $5, $6, $7)
		RETURNING id_producto, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		item.ID, item.Name, item.Category, item.UnitPrice, item.StockOnHand, item.MinimumStock, item.ImageURL,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un producto con ese id", domain.ErrDuplicate)
		}
		return mapError("create item", err)
	}
	return nil
}

// GetByID obtiene el producto. nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventario WHERE id_producto = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE). nil si no existe.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventario WHERE id_producto = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) getOne(ctx context.Context, query string, id int64) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List productos filtrados por nombre (ILIKE) y categoría exacta, ordenados por id.
func (r *ItemRepo) List(ctx context.Context, filter entity.ItemFilter) ([]*entity.Item, error) {
	var (
		conds []string
		args  []any
	)
	if q := strings.TrimSpace(filter.NameContains); q != "" {
		args = append(args, "%"+q+"%")
		conds = append(conds, fmt.Sprintf("nombre_producto ILIKE $%d", len(args)))
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		args = append(args, c)
		conds = append(conds, fmt.Sprintf("categoria = $%d", len(args)))
	}
	query := `SELECT ` + itemColumns + ` FROM inventario`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id_producto"
	return r.queryItems(ctx, query, args...)
}

// ListStock todos los productos ordenados por nombre.
func (r *ItemRepo) ListStock(ctx context.Context) ([]*entity.Item, error) {
	return r.queryItems(ctx, `SELECT `+itemColumns+` FROM inventario ORDER BY nombre_producto, id_producto`)
}

func (r *ItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// ListOptions vista liviana para combos, ordenada por nombre.
func (r *ItemRepo) ListOptions(ctx context.Context) ([]*entity.ItemOption, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id_producto, nombre_producto, imagen_url, precio_unitario
		FROM inventario ORDER BY nombre_producto`)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()

	var list []*entity.ItemOption
	for rows.Next() {
		var o entity.ItemOption
		if err := rows.Scan(&o.ID, &o.Name, &o.ImageURL, &o.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update reemplaza todos los campos editables (incluido el stock). false si no existe.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventario
		SET nombre_producto = $2, categoria = $3, precio_unitario = $4,
		    stock_inicial = $5, stock_minimo = $6, imagen_url = $7, updated_at = now()
		WHERE id_producto = $1`,
		item.ID, item.Name, item.Category, item.UnitPrice, item.StockOnHand, item.MinimumStock, item.ImageURL,
	)
	if err != nil {
		return false, mapError("update item", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateImageURL fija imagen_url. false si el producto no existe.
func (r *ItemRepo) UpdateImageURL(ctx context.Context, id int64, url string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE inventario SET imagen_url = $2, updated_at = now() WHERE id_producto = $1`, id, url)
	if err != nil {
		return false, fmt.Errorf("update image: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete borra el producto. Con ventas asociadas devuelve domain.ErrItemHasSales.
func (r *ItemRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventario WHERE id_producto = $1`, id)
	if err != nil {
		return false, mapError("delete item", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &it.UnitPrice, &it.StockOnHand, &it.MinimumStock,
		&it.ImageURL, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
