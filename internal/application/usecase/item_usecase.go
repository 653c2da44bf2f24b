package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/inventory"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// ItemUseCase CRUD del catálogo. El stock solo se fija aquí por reemplazo completo;
// las ventas lo mueven a través del motor de stock.
type ItemUseCase struct {
	repo     repository.ItemRepository
	txRunner ItemTxRunner
	notifier StockNotifier
}

// NewItemUseCase construye el caso de uso. notifier puede ser nil.
func NewItemUseCase(repo repository.ItemRepository, txRunner ItemTxRunner, notifier StockNotifier) *ItemUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ItemUseCase{repo: repo, txRunner: txRunner, notifier: notifier}
}

// Create crea un producto. Sin id_producto se asigna el siguiente disponible.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.SaveItemRequest) (*dto.ItemResponse, error) {
	item, err := itemFromRequest(in)
	if err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(in.ID.String()); raw != "" && raw != "0" {
		id, err := inventory.ParseID(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: id_producto", domain.ErrInvalidInput)
		}
		item.ID = id
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.notifier.StockChanged(ctx, item.ID)
	return ToItemResponse(item), nil
}

// Replace reemplaza todos los campos del producto, incluido el stock.
func (uc *ItemUseCase) Replace(ctx context.Context, id int64, in dto.SaveItemRequest) (*dto.ItemResponse, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	item, err := itemFromRequest(in)
	if err != nil {
		return nil, err
	}
	item.ID = id
	ok, err := uc.repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	uc.notifier.StockChanged(ctx, id)
	return uc.Get(ctx, id)
}

// Delete borra el producto si no tiene ventas. Bloquea la fila para que ninguna venta
// concurrente se registre entre el conteo y el borrado.
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) (*dto.DeletedItemResponse, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	err := uc.txRunner.RunAtomic(ctx, func(items repository.ItemRepository, sales repository.SaleRepository) error {
		item, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		n, err := sales.CountByItem(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w (%d ventas)", domain.ErrItemHasSales, n)
		}
		ok, err := items.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.StockChanged(ctx, id)
	return &dto.DeletedItemResponse{ID: id}, nil
}

// Get obtiene un producto. domain.ErrNotFound si no existe.
func (uc *ItemUseCase) Get(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToItemResponse(item), nil
}

// List productos filtrados por nombre (contiene) y categoría.
func (uc *ItemUseCase) List(ctx context.Context, q dto.ItemListQuery) ([]dto.ItemResponse, error) {
	list, err := uc.repo.List(ctx, entity.ItemFilter{NameContains: q.Q, Category: q.Category})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *ToItemResponse(it))
	}
	return out, nil
}

// Options vista liviana ordenada por nombre.
func (uc *ItemUseCase) Options(ctx context.Context) ([]dto.ItemOptionResponse, error) {
	list, err := uc.repo.ListOptions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemOptionResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.ItemOptionResponse{ID: o.ID, Name: o.Name, ImageURL: o.ImageURL, UnitPrice: o.UnitPrice})
	}
	return out, nil
}

func itemFromRequest(in dto.SaveItemRequest) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, fmt.Errorf("%w: nombre_producto y categoria son obligatorios", domain.ErrInvalidInput)
	}
	price, err := optionalNumber(in.UnitPrice, decimal.Zero, "precio_unitario")
	if err != nil {
		return nil, err
	}
	stock, err := optionalNumber(in.StockOnHand, decimal.Zero, "stock_inicial")
	if err != nil {
		return nil, err
	}
	minimum, err := optionalNumber(in.MinimumStock, entity.DefaultMinimumStock, "stock_minimo")
	if err != nil {
		return nil, err
	}
	var image *string
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) != "" {
		u := strings.TrimSpace(*in.ImageURL)
		image = &u
	}
	return &entity.Item{
		Name:         name,
		Category:     category,
		UnitPrice:    price,
		StockOnHand:  stock,
		MinimumStock: minimum,
		ImageURL:     image,
	}, nil
}

// optionalNumber interpreta un campo numérico no negativo; vacío devuelve def.
func optionalNumber(raw dto.FlexNumber, def decimal.Decimal, field string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw.String()) == "" {
		return def, nil
	}
	n, err := inventory.ParseNumber(raw.String())
	if err != nil || n.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInvalidInput, field)
	}
	return n, nil
}

// ToItemResponse mapea la entidad al DTO de salida.
func ToItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Category:     it.Category,
		UnitPrice:    it.UnitPrice,
		StockOnHand:  it.StockOnHand,
		MinimumStock: it.MinimumStock,
		ImageURL:     it.ImageURL,
	}
}
