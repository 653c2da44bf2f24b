package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	"github.com/jhoicas/taller-inventario/internal/application/auth"
	"github.com/jhoicas/taller-inventario/internal/application/sales"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/taller-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/storage"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/taller-inventario/internal/interfaces/http"
	"github.com/jhoicas/taller-inventario/pkg/config"
	"github.com/jhoicas/taller-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracerProvider(cfg.App.Name, cfg.Tracing.JaegerEndpoint, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	// La conexión se abre en el primer uso; /salud reporta si la base no responde.
	db := postgres.NewDB(cfg.DB)
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, db, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	itemRepo := postgres.NewItemRepository(db)
	saleRepo := postgres.NewSaleRepository(db)
	consumptionRepo := postgres.NewConsumptionRepository(db)
	txRunner := postgres.NewTxRunner(db)

	metrics := telemetry.NewMetrics("taller")

	// Cache de stock opcional: sin REDIS_ADDR o sin Redis alcanzable se lee siempre de PostgreSQL.
	var stockCache usecase.StockCache
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		redisClient, err = cache.NewClient(pingCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, cache de stock desactivado")
			redisClient = nil
		} else {
			stockCache = cache.New(redisClient, cfg.App.Name+":", cfg.Redis.TTL)
		}
	}

	stockUC := usecase.NewStockUseCase(itemRepo, stockCache, log)
	ledger := sales.NewStockLedgerUseCase(txRunner, stockUC, metrics, log)
	saleQuery := sales.NewQueryUseCase(saleRepo)
	receiptUC := sales.NewReceiptUseCase(saleQuery, infrapdf.NewReceiptGenerator(), cfg.App.ShopName)
	itemUC := usecase.NewItemUseCase(itemRepo, txRunner, stockUC)
	consumptionUC := usecase.NewConsumptionUseCase(consumptionRepo)

	imageStore, err := storage.NewImageStore(afero.NewOsFs(), cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("directorio de imágenes")
	}
	imageUC := usecase.NewImageUseCase(itemRepo, imageStore, stockUC, log, cfg.Upload.PublicBaseURL, int64(cfg.Upload.MaxBytes))

	authUC, err := auth.NewAuthUseCase(
		auth.Credentials{User: cfg.Admin.User, Password: cfg.Admin.Password},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// Margen sobre el límite de imagen para el resto del multipart.
		BodyLimit: cfg.Upload.MaxBytes + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller Inventario API",
	}))

	app.Static("/uploads", imageStore.Dir())
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		DB:          db,
		AuthUC:      authUC,
		ItemUC:      itemUC,
		ImageUC:     imageUC,
		StockUC:     stockUC,
		Ledger:      ledger,
		SaleQuery:   saleQuery,
		Receipts:    receiptUC,
		Consumption: consumptionUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre de trazas")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("cierre de redis")
		}
	}
	db.Close()

	log.Info().Msg("aplicación detenida")
}
