package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
)

// Authenticator valida credenciales y emite el token.
type Authenticator interface {
	Login(in dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthHandler maneja el login del administrador.
type AuthHandler struct {
	uc Authenticator
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc Authenticator) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario y contrasena"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}
