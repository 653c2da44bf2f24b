package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

var errStub = errors.New("stub: no usado")

// ── catálogo en memoria ──────────────────────────────────────────────────────

type memItems struct {
	mu        sync.Mutex
	items     map[int64]*entity.Item
	salesByID map[int64]int64 // item -> cantidad de ventas
	listCalls int

	// afterListStock corre después de leer el stock y antes de devolverlo (commit concurrente).
	afterListStock func()
}

func newMemItems(items ...*entity.Item) *memItems {
	m := &memItems{items: map[int64]*entity.Item{}, salesByID: map[int64]int64{}}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memItems) RunAtomic(ctx context.Context, fn func(items repository.ItemRepository, sales repository.SaleRepository) error) error {
	return fn(m, memSaleCounter{m})
}

func (m *memItems) ConditionalDecrement(context.Context, int64, decimal.Decimal) (int64, error) {
	return 0, errStub
}
func (m *memItems) Increment(context.Context, int64, decimal.Decimal) (int64, error) {
	return 0, errStub
}
func (m *memItems) GetStockAndName(context.Context, int64) (string, decimal.Decimal, bool, error) {
	return "", decimal.Zero, false, errStub
}

func (m *memItems) Create(_ context.Context, item *entity.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == 0 {
		var last int64
		for id := range m.items {
			if id > last {
				last = id
			}
		}
		item.ID = last + 1
	}
	if _, ok := m.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memItems) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memItems) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return m.GetByID(ctx, id)
}

func (m *memItems) List(_ context.Context, f entity.ItemFilter) ([]*entity.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Item
	for _, it := range m.items {
		if f.NameContains != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.NameContains)) {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memItems) ListOptions(ctx context.Context) ([]*entity.ItemOption, error) {
	list, _ := m.ListStock(ctx)
	out := make([]*entity.ItemOption, 0, len(list))
	for _, it := range list {
		out = append(out, &entity.ItemOption{ID: it.ID, Name: it.Name, ImageURL: it.ImageURL, UnitPrice: it.UnitPrice})
	}
	return out, nil
}

func (m *memItems) ListStock(ctx context.Context) ([]*entity.Item, error) {
	list, _ := m.List(ctx, entity.ItemFilter{})
	m.mu.Lock()
	m.listCalls++
	snapshot := make([]*entity.Item, 0, len(list))
	for _, it := range list {
		cp := *it
		snapshot = append(snapshot, &cp)
	}
	hook := m.afterListStock
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].Name < snapshot[j].Name })
	return snapshot, nil
}

func (m *memItems) setStock(id int64, stock string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id].StockOnHand = decimal.RequireFromString(stock)
}

func (m *memItems) Update(_ context.Context, item *entity.Item) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return false, nil
	}
	cp := *item
	m.items[item.ID] = &cp
	return true, nil
}

func (m *memItems) UpdateImageURL(_ context.Context, id int64, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return false, nil
	}
	it.ImageURL = &url
	return true, nil
}

func (m *memItems) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

// memSaleCounter solo responde CountByItem.
type memSaleCounter struct{ m *memItems }

func (c memSaleCounter) CountByItem(_ context.Context, itemID int64) (int64, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return c.m.salesByID[itemID], nil
}
func (memSaleCounter) Insert(context.Context, *entity.Sale) (int64, error) { return 0, errStub }
func (memSaleCounter) GetForUpdate(context.Context, int64) (*entity.Sale, error) {
	return nil, errStub
}
func (memSaleCounter) Delete(context.Context, int64) (int64, error) { return 0, errStub }
func (memSaleCounter) GetByID(context.Context, int64) (*entity.Sale, error) {
	return nil, errStub
}
func (memSaleCounter) List(context.Context, entity.SaleFilter) ([]*entity.Sale, error) {
	return nil, errStub
}

// ── notificador y cache ──────────────────────────────────────────────────────

type notifierSpy struct{ ids []int64 }

func (n *notifierSpy) StockChanged(_ context.Context, id int64) { n.ids = append(n.ids, id) }

type memCache struct {
	rows        []dto.StockRowResponse
	has         bool
	gen         int64
	failGet     error
	invalidated int
	staleSets   int
}

func (c *memCache) GetStock(context.Context) ([]dto.StockRowResponse, bool, error) {
	if c.failGet != nil {
		return nil, false, c.failGet
	}
	return c.rows, c.has, nil
}

func (c *memCache) Generation(context.Context) (int64, error) {
	return c.gen, nil
}

func (c *memCache) SetStock(_ context.Context, gen int64, rows []dto.StockRowResponse) (bool, error) {
	if gen != c.gen {
		c.staleSets++
		return false, nil
	}
	c.rows, c.has = rows, true
	return true, nil
}

func (c *memCache) InvalidateStock(context.Context) error {
	c.rows, c.has = nil, false
	c.gen++
	c.invalidated++
	return nil
}

// ── consumo ─────────────────────────────────────────────────────────────────

type memConsumption struct {
	rows   map[int64]*entity.Consumption
	nextID int64
}

func (m *memConsumption) Create(_ context.Context, c *entity.Consumption) (int64, error) {
	if m.rows == nil {
		m.rows = map[int64]*entity.Consumption{}
	}
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	m.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memConsumption) List(context.Context) ([]*entity.Consumption, error) {
	out := make([]*entity.Consumption, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memConsumption) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}
