package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/caja-pos/internal/application/auth"
	"github.com/tu-usuario/caja-pos/internal/application/sales"
	"github.com/tu-usuario/caja-pos/internal/application/stock"
	"github.com/tu-usuario/caja-pos/internal/application/usecase"
	infrapdf "github.com/tu-usuario/caja-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/caja-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/caja-pos/internal/interfaces/http"
	"github.com/tu-usuario/caja-pos/pkg/config"
	"github.com/tu-usuario/caja-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := stock.NewRegisterMovementUseCase(txRunner, productRepo, movementRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, stockUC)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	saleUC := sales.NewCreateSaleUseCase(txRunner, stockUC, saleRepo, productRepo)

	// PDF: ticket de venta formato impresora térmica
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := sales.NewReceiptUseCase(saleRepo, receiptGenerator, cfg.App.Name)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Caja POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		StockUC:    stockUC,
		SaleUC:     saleUC,
		ReceiptUC:  receiptUC,
		JWTSecret:  cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
