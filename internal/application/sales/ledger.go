// Package sales contiene el motor de stock: registrar una venta resta stock y
// eliminarla lo repone, siempre en una única transacción.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
	"github.com/jhoicas/taller-inventario/pkg/logger"
)

const dateLayout = "2006-01-02"

// Límites de las columnas NUMERIC(14,3) y NUMERIC(14,2).
var (
	maxQuantity = decimal.New(1, 11)
	maxAmount   = decimal.New(1, 12)
)

// fitsNumeric indica si d cabe en la columna sin redondeo ni desborde.
func fitsNumeric(d decimal.Decimal, scale int32, limit decimal.Decimal) bool {
	return d.Equal(d.Truncate(scale)) && d.Abs().LessThan(limit)
}

// SaleInput venta ya interpretada (números reales, no texto).
type SaleInput struct {
	Date        string
	ItemID      int64
	Quantity    decimal.Decimal
	TotalAmount decimal.Decimal
	Notes       *string
}

func (in SaleInput) validate() error {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return fmt.Errorf("%w: fecha requerida", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: fecha debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if in.ItemID <= 0 {
		return fmt.Errorf("%w: id_producto inválido", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return fmt.Errorf("%w: cantidad_vendida debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if !fitsNumeric(in.Quantity, 3, maxQuantity) {
		return fmt.Errorf("%w: cantidad_vendida admite hasta 3 decimales y 11 dígitos enteros", domain.ErrInvalidInput)
	}
	if !fitsNumeric(in.TotalAmount, 2, maxAmount) {
		return fmt.Errorf("%w: total_venta admite hasta 2 decimales y 12 dígitos enteros", domain.ErrInvalidInput)
	}
	return nil
}

// StockLedgerUseCase mantiene stock_inicial del producto igual al último valor fijado
// menos la suma de las ventas vigentes. Es el único lugar donde las ventas tocan el stock.
type StockLedgerUseCase struct {
	txRunner TxRunner
	observer StockObserver
	metrics  MetricsRecorder
	log      *logger.Logger
	tracer   trace.Tracer
}

// NewStockLedgerUseCase construye el motor. observer, metrics y log pueden ser nil.
func NewStockLedgerUseCase(txRunner TxRunner, observer StockObserver, metrics MetricsRecorder, log *logger.Logger) *StockLedgerUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockLedgerUseCase{
		txRunner: txRunner,
		observer: observer,
		metrics:  metrics,
		log:      log.Named("stock-ledger"),
		tracer:   otel.Tracer("github.com/jhoicas/taller-inventario/sales"),
	}
}

// RecordSale resta la cantidad del stock (solo si alcanza) e inserta la venta, en una transacción.
//
// Errores:
//   - domain.ErrInvalidInput si la entrada no es válida (no se toca la BD).
//   - *domain.StockConflictError (errors.Is ErrInsufficientStock) si no hay stock o el producto no existe.
//   - cualquier otro error es interno; la transacción ya fue revertida.
func (uc *StockLedgerUseCase) RecordSale(ctx context.Context, in SaleInput) (*dto.RecordSaleResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	ctx, span := uc.tracer.Start(ctx, "sales.RecordSale", trace.WithAttributes(
		attribute.Int64("item.id", in.ItemID),
		attribute.String("sale.quantity", in.Quantity.String()),
	))
	defer span.End()

	var (
		saleID    int64
		remaining decimal.Decimal
	)
	start := time.Now()
	err := uc.txRunner.RunAtomic(ctx, func(items repository.ItemRepository, sales repository.SaleRepository) error {
		// Resta condicional: la condición y la escritura las evalúa la BD en una sola sentencia,
		// con la fila del producto bloqueada hasta el commit.
		affected, err := items.ConditionalDecrement(ctx, in.ItemID, in.Quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &domain.StockConflictError{ItemID: in.ItemID}
		}

		name, stock, found, err := items.GetStockAndName(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if !found {
			return &domain.StockConflictError{ItemID: in.ItemID}
		}

		id, err := sales.Insert(ctx, &entity.Sale{
			Date:        strings.TrimSpace(in.Date),
			ItemID:      in.ItemID,
			ItemName:    name,
			Quantity:    in.Quantity,
			TotalAmount: in.TotalAmount,
			Notes:       in.Notes,
		})
		if err != nil {
			return err
		}
		saleID, remaining = id, stock
		return nil
	})
	uc.metrics.ObserveUnitOfWork("record_sale", time.Since(start), err)

	if err != nil {
		var conflict *domain.StockConflictError
		if errors.As(err, &conflict) {
			uc.metrics.SaleConflict()
			span.AddEvent("stock insuficiente")
			uc.log.Warn().Int64("item_id", in.ItemID).Str("quantity", in.Quantity.String()).Msg("venta rechazada por stock")
			return nil, conflict
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.log.Error().Err(err).Int64("item_id", in.ItemID).Msg("registrar venta")
		return nil, fmt.Errorf("registrar venta: %w", err)
	}

	uc.metrics.SaleRecorded()
	uc.observer.StockChanged(ctx, in.ItemID)
	span.SetAttributes(attribute.Int64("sale.id", saleID))
	uc.log.Info().
		Int64("sale_id", saleID).
		Int64("item_id", in.ItemID).
		Str("quantity", in.Quantity.String()).
		Str("stock_remaining", remaining.String()).
		Msg("venta registrada")

	return &dto.RecordSaleResponse{Created: true, SaleID: saleID, StockRemaining: remaining}, nil
}

// ReverseSale elimina la venta y repone su cantidad en el producto, en una transacción.
// Si el producto ya no existe la reposición no afecta filas y la venta se elimina igual.
//
// Errores: domain.ErrNotFound si la venta no existe (o otra transacción la eliminó antes).
func (uc *StockLedgerUseCase) ReverseSale(ctx context.Context, saleID int64) (*dto.ReverseSaleResponse, error) {
	if saleID <= 0 {
		return nil, domain.ErrNotFound
	}
	ctx, span := uc.tracer.Start(ctx, "sales.ReverseSale", trace.WithAttributes(attribute.Int64("sale.id", saleID)))
	defer span.End()

	var (
		itemID      int64
		itemMissing bool
	)
	start := time.Now()
	err := uc.txRunner.RunAtomic(ctx, func(items repository.ItemRepository, sales repository.SaleRepository) error {
		sale, err := sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		affected, err := items.Increment(ctx, sale.ItemID, sale.Quantity)
		if err != nil {
			return err
		}

		deleted, err := sales.Delete(ctx, saleID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return domain.ErrNotFound
		}
		itemID, itemMissing = sale.ItemID, affected == 0
		return nil
	})
	uc.metrics.ObserveUnitOfWork("reverse_sale", time.Since(start), err)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			span.AddEvent("venta no encontrada")
			return nil, domain.ErrNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.log.Error().Err(err).Int64("sale_id", saleID).Msg("eliminar venta")
		return nil, fmt.Errorf("eliminar venta: %w", err)
	}

	uc.metrics.SaleReversed()
	if itemMissing {
		uc.metrics.ReversalItemMissing()
		uc.log.Warn().Int64("sale_id", saleID).Int64("item_id", itemID).Msg("venta eliminada; el producto ya no existe y no se repuso stock")
	} else {
		uc.observer.StockChanged(ctx, itemID)
	}
	uc.log.Info().Int64("sale_id", saleID).Int64("item_id", itemID).Msg("venta eliminada")

	return &dto.ReverseSaleResponse{SaleID: saleID}, nil
}
