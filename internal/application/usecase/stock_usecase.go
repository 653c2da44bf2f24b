package usecase

import (
	"context"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
	"github.com/jhoicas/taller-inventario/pkg/logger"
)

// StockUseCase listado de stock con cache-aside. También invalida el cache cuando
// el motor de ventas o el catálogo avisan un cambio.
type StockUseCase struct {
	repo  repository.ItemRepository
	cache StockCache
	log   *logger.Logger
}

// NewStockUseCase construye el caso de uso. cache puede ser nil (sin cache).
func NewStockUseCase(repo repository.ItemRepository, cache StockCache, log *logger.Logger) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{repo: repo, cache: cache, log: log.Named("stock")}
}

// List productos ordenados por nombre con el stock bajo sus tres alias.
func (uc *StockUseCase) List(ctx context.Context) ([]dto.StockRowResponse, error) {
	cacheable := false
	var gen int64
	if uc.cache != nil {
		rows, hit, err := uc.cache.GetStock(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("cache de stock no disponible")
		} else if hit {
			return rows, nil
		}
		// La generación se lee antes que la BD: si un commit invalida en el medio, no se guarda.
		if gen, err = uc.cache.Generation(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("cache de stock no disponible")
		} else {
			cacheable = true
		}
	}

	items, err := uc.repo.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.StockRowResponse, 0, len(items))
	for _, it := range items {
		rows = append(rows, dto.StockRowResponse{
			ID:           it.ID,
			Name:         it.Name,
			Category:     it.Category,
			UnitPrice:    it.UnitPrice,
			Stock:        it.StockOnHand,
			StockInitial: it.StockOnHand,
			StockCurrent: it.StockOnHand,
			MinimumStock: it.MinimumStock,
			BelowMinimum: it.StockOnHand.LessThan(it.MinimumStock),
			ImageURL:     it.ImageURL,
		})
	}

	if cacheable {
		stored, err := uc.cache.SetStock(ctx, gen, rows)
		if err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el stock en cache")
		} else if !stored {
			uc.log.Debug().Int64("generation", gen).Msg("stock cambió durante la lectura, no se cachea")
		}
	}
	return rows, nil
}

// StockChanged invalida el listado cacheado.
func (uc *StockUseCase) StockChanged(ctx context.Context, itemID int64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateStock(ctx); err != nil {
		uc.log.Warn().Err(err).Int64("item_id", itemID).Msg("no se pudo invalidar el cache de stock")
	}
}
