package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
)

// StockLister listado de existencias.
type StockLister interface {
	List(ctx context.Context) ([]dto.StockRowResponse, error)
}

// StockHandler maneja /api/stock (protegido).
type StockHandler struct {
	uc StockLister
}

func NewStockHandler(uc StockLister) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listado de stock
// @Description  stock, stock_inicial y stock_actual llevan el mismo valor.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockRowResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}
