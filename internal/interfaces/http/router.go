package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-inventario/internal/application/auth"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DB          Pinger
	AuthUC      Authenticator
	ItemUC      ItemService
	ImageUC     ImageService
	StockUC     StockLister
	Ledger      SaleRecorder
	SaleQuery   SaleLister
	Receipts    ReceiptDownloader
	Consumption ConsumptionService
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.DB)
	app.Get("/salud", health.Check)
	app.Get("/health", health.Check)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/auth/login", authHandler.Login)

	// Todo /api requiere Bearer Token de administrador
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleAdmin))

	items := api.Group("/inventario")
	itemHandler := NewItemHandler(deps.ItemUC, deps.ImageUC)
	items.Get("/", itemHandler.List)
	items.Get("/opciones", itemHandler.Options)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", itemHandler.Create)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/imagen", itemHandler.UploadImage)

	sales := api.Group("/ventas")
	saleHandler := NewSaleHandler(deps.Ledger, deps.SaleQuery, deps.Receipts)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Delete("/:id", saleHandler.Delete)
	sales.Get("/:id/comprobante", saleHandler.Receipt)

	consumption := api.Group("/consumo")
	consumptionHandler := NewConsumptionHandler(deps.Consumption)
	consumption.Get("/", consumptionHandler.List)
	consumption.Post("/", consumptionHandler.Create)
	consumption.Delete("/:id", consumptionHandler.Delete)

	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/stock", stockHandler.List)
}
