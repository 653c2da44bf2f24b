package http

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
)

// ConsumptionService bitácora de consumo del taller.
type ConsumptionService interface {
	Create(ctx context.Context, in dto.CreateConsumptionRequest) (*dto.CreatedConsumptionResponse, error)
	List(ctx context.Context) ([]dto.ConsumptionResponse, error)
	Delete(ctx context.Context, id int64) error
}

// ConsumptionHandler maneja /api/consumo (protegido). No toca el stock.
type ConsumptionHandler struct {
	uc ConsumptionService
}

func NewConsumptionHandler(uc ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

// List godoc
// @Summary      Listar consumo del taller
// @Tags         consumo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConsumptionResponse
// @Router       /api/consumo [get]
func (h *ConsumptionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Registrar consumo del taller
// @Tags         consumo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConsumptionRequest  true  "Consumo"
// @Success      201   {object}  dto.CreatedConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/consumo [post]
func (h *ConsumptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar consumo
// @Tags         consumo
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del registro"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consumo/{id} [delete]
func (h *ConsumptionHandler) Delete(c *fiber.Ctx) error {
	id, _ := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}
