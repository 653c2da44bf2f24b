package sales_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// memStore base en memoria con transacciones serializadas y rollback por snapshot.
// Solo implementa lo que usa el motor; el resto de métodos devuelve errNotImplemented.
type memStore struct {
	mu     sync.Mutex
	items  map[int64]*entity.Item
	sales  map[int64]*entity.Sale
	nextID int64

	// failInsert fuerza un error en SaleRepository.Insert (prueba de atomicidad).
	failInsert error
	commits    int
	rollbacks  int
}

var errNotImplemented = errors.New("no implementado en memStore")

func newMemStore() *memStore {
	return &memStore{items: map[int64]*entity.Item{}, sales: map[int64]*entity.Sale{}}
}

func (s *memStore) addItem(id int64, name string, stock string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = &entity.Item{ID: id, Name: name, StockOnHand: decimal.RequireFromString(stock)}
}

func (s *memStore) removeItem(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

func (s *memStore) stock(id int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].StockOnHand
}

func (s *memStore) saleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

func (s *memStore) liveSalesSum(itemID int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, sale := range s.sales {
		if sale.ItemID == itemID {
			sum = sum.Add(sale.Quantity)
		}
	}
	return sum
}

func (s *memStore) RunAtomic(ctx context.Context, fn func(items repository.ItemRepository, sales repository.SaleRepository) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make(map[int64]entity.Item, len(s.items))
	for id, it := range s.items {
		items[id] = *it
	}
	sales := make(map[int64]entity.Sale, len(s.sales))
	for id, sale := range s.sales {
		sales[id] = *sale
	}
	nextID := s.nextID

	defer func() {
		if p := recover(); p != nil {
			err = errors.New("panic en transacción")
		}
		if err != nil {
			s.items = map[int64]*entity.Item{}
			for id, it := range items {
				s.items[id] = &it
			}
			s.sales = map[int64]*entity.Sale{}
			for id, sale := range sales {
				s.sales[id] = &sale
			}
			s.nextID = nextID
			s.rollbacks++
			return
		}
		s.commits++
	}()

	return fn(memItems{s}, memSales{s})
}

// ── ItemRepository ────────────────────────────────────────────────────────────

type memItems struct{ s *memStore }

func (r memItems) ConditionalDecrement(_ context.Context, id int64, amount decimal.Decimal) (int64, error) {
	it, ok := r.s.items[id]
	if !ok || it.StockOnHand.LessThan(amount) {
		return 0, nil
	}
	it.StockOnHand = it.StockOnHand.Sub(amount)
	return 1, nil
}

func (r memItems) Increment(_ context.Context, id int64, amount decimal.Decimal) (int64, error) {
	it, ok := r.s.items[id]
	if !ok {
		return 0, nil
	}
	it.StockOnHand = it.StockOnHand.Add(amount)
	return 1, nil
}

func (r memItems) GetStockAndName(_ context.Context, id int64) (string, decimal.Decimal, bool, error) {
	it, ok := r.s.items[id]
	if !ok {
		return "", decimal.Zero, false, nil
	}
	return it.Name, it.StockOnHand, true, nil
}

func (memItems) Create(context.Context, *entity.Item) error { return errNotImplemented }
func (memItems) GetByID(context.Context, int64) (*entity.Item, error) {
	return nil, errNotImplemented
}
func (memItems) GetForUpdate(context.Context, int64) (*entity.Item, error) {
	return nil, errNotImplemented
}
func (memItems) List(context.Context, entity.ItemFilter) ([]*entity.Item, error) {
	return nil, errNotImplemented
}
func (memItems) ListOptions(context.Context) ([]*entity.ItemOption, error) {
	return nil, errNotImplemented
}
func (memItems) ListStock(context.Context) ([]*entity.Item, error) { return nil, errNotImplemented }
func (memItems) Update(context.Context, *entity.Item) (bool, error) {
	return false, errNotImplemented
}
func (memItems) UpdateImageURL(context.Context, int64, string) (bool, error) {
	return false, errNotImplemented
}
func (memItems) Delete(context.Context, int64) (bool, error) { return false, errNotImplemented }

// ── SaleRepository ────────────────────────────────────────────────────────────

type memSales struct{ s *memStore }

func (r memSales) Insert(_ context.Context, sale *entity.Sale) (int64, error) {
	if r.s.failInsert != nil {
		return 0, r.s.failInsert
	}
	r.s.nextID++
	cp := *sale
	cp.ID = r.s.nextID
	r.s.sales[cp.ID] = &cp
	return cp.ID, nil
}

func (r memSales) GetForUpdate(_ context.Context, id int64) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r memSales) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := r.s.sales[id]; !ok {
		return 0, nil
	}
	delete(r.s.sales, id)
	return 1, nil
}

func (r memSales) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.GetForUpdate(ctx, id)
}

func (r memSales) List(_ context.Context, filter entity.SaleFilter) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if filter.ItemID != 0 && sale.ItemID != filter.ItemID {
			continue
		}
		if filter.From != "" && sale.Date < filter.From {
			continue
		}
		if filter.To != "" && sale.Date > filter.To {
			continue
		}
		cp := *sale
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (memSales) CountByItem(context.Context, int64) (int64, error) { return 0, errNotImplemented }
