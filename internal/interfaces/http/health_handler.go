package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
)

// Pinger verifica la conexión con la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler expone /salud y /health.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         salud
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /salud [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.db.Ping(c.UserContext()); err != nil {
		requestLog(c).Warn().Err(err).Msg("ping a la base de datos falló")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DB_UNAVAILABLE", Message: "base de datos no disponible"})
	}
	return ok(c, fiber.Map{"bd": "ok"})
}
