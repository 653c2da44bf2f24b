package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrItemHasSales      = errors.New("el producto tiene ventas registradas")
)

// StockConflictError indica que la resta condicional no afectó filas:
// el producto no existe o no tiene stock suficiente. Se compara con ErrInsufficientStock.
type StockConflictError struct {
	ItemID int64
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock insuficiente o producto inexistente (id=%d)", e.ItemID)
}

func (e *StockConflictError) Unwrap() error { return ErrInsufficientStock }
