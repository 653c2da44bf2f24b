package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
)

// ItemService catálogo de productos.
type ItemService interface {
	Create(ctx context.Context, in dto.SaveItemRequest) (*dto.ItemResponse, error)
	Replace(ctx context.Context, id int64, in dto.SaveItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id int64) (*dto.DeletedItemResponse, error)
	Get(ctx context.Context, id int64) (*dto.ItemResponse, error)
	List(ctx context.Context, q dto.ItemListQuery) ([]dto.ItemResponse, error)
	Options(ctx context.Context) ([]dto.ItemOptionResponse, error)
}

// ImageService reemplazo de la imagen de un producto.
type ImageService interface {
	Upload(ctx context.Context, itemID int64, file usecase.ImageUpload, requestBaseURL string) (*dto.ItemResponse, error)
}

// ItemHandler maneja /api/inventario (protegido).
type ItemHandler struct {
	uc     ItemService
	images ImageService
}

// NewItemHandler construye el handler.
func NewItemHandler(uc ItemService, images ImageService) *ItemHandler {
	return &ItemHandler{uc: uc, images: images}
}

// List godoc
// @Summary      Listar productos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda por nombre"
// @Param        categoria  query  string  false  "Categoría exacta"
// @Success      200  {array}   dto.ItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventario [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q dto.ItemListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	q.Q = strings.TrimSpace(q.Q)
	q.Category = strings.TrimSpace(q.Category)
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}

// Options godoc
// @Summary      Opciones de productos para combos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemOptionResponse
// @Router       /api/inventario/opciones [get]
func (h *ItemHandler) Options(c *fiber.Ctx) error {
	out, err := h.uc.Options(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, valid := pathID(c)
	if !valid {
		return invalidID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Crear producto
// @Description  id_producto es opcional; si falta se asigna el siguiente.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveItemRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Update godoc
// @Summary      Reemplazar producto
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del producto"
// @Param        body  body  dto.SaveItemRequest  true  "Datos completos"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, valid := pathID(c)
	if !valid {
		return invalidID(c)
	}
	var in dto.SaveItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Replace(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Se rechaza con 409 mientras existan ventas del producto.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.DeletedItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, valid := pathID(c)
	if !valid {
		return invalidID(c)
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}

// UploadImage godoc
// @Summary      Subir imagen del producto
// @Description  jpeg, png, webp o gif. Reemplaza la imagen anterior.
// @Tags         inventario
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id      path      int   true  "ID del producto"
// @Param        imagen  formData  file  true  "Imagen"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/{id}/imagen [post]
func (h *ItemHandler) UploadImage(c *fiber.Ctx) error {
	id, valid := pathID(c)
	if !valid {
		return invalidID(c)
	}
	fh, err := c.FormFile("imagen")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: `Falta archivo "imagen"`})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.images.Upload(c.UserContext(), id, usecase.ImageUpload{
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, c.BaseURL())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}
