package http

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
)

// SaleRecorder operaciones del motor de stock.
type SaleRecorder interface {
	RecordSaleFromRequest(ctx context.Context, in dto.CreateSaleRequest) (*dto.RecordSaleResponse, error)
	ReverseSale(ctx context.Context, saleID int64) (*dto.ReverseSaleResponse, error)
}

// SaleLister consulta del historial de ventas.
type SaleLister interface {
	List(ctx context.Context, q dto.SaleListQuery) ([]dto.SaleResponse, error)
}

// ReceiptDownloader genera el comprobante PDF de una venta.
type ReceiptDownloader interface {
	Download(ctx context.Context, saleID int64) ([]byte, string, error)
}

// SaleHandler maneja /api/ventas (protegido).
type SaleHandler struct {
	ledger   SaleRecorder
	query    SaleLister
	receipts ReceiptDownloader
}

// NewSaleHandler construye el handler.
func NewSaleHandler(ledger SaleRecorder, query SaleLister, receipts ReceiptDownloader) *SaleHandler {
	return &SaleHandler{ledger: ledger, query: query, receipts: receipts}
}

// List godoc
// @Summary      Listar ventas
// @Description  Ordenadas por fecha e id descendentes.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        desde        query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta        query  string  false  "Fecha final YYYY-MM-DD"
// @Param        id_producto  query  int     false  "Producto"
// @Success      200  {array}   dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.SaleListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.query.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock del producto y registra la venta en una sola transacción.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.RecordSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente o producto inexistente"
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.RecordSaleFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Devuelve la cantidad vendida al stock del producto.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.ReverseSaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	// Un id no numérico no puede existir: 404 igual que uno inexistente.
	id, _ := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	out, err := h.ledger.ReverseSale(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out)
}

// Receipt godoc
// @Summary      Comprobante PDF de una venta
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/comprobante [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, valid := pathID(c)
	if !valid {
		return invalidID(c)
	}
	pdf, filename, err := h.receipts.Download(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
