package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/inventory"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/usecase"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/memory"
	httpRouter "github.com/rimselmen123/stock-gestion-de-produit/internal/interfaces/http"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/config"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/logger"
)

// mockserver sirve el dataset en memoria detrás de la misma API que el
// backend real, para desarrollar el cliente sin backend disponible.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	// El mockserver siempre opera contra los stores en memoria.
	cfg.API.UseMockData = true

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando mockserver")

	seed := memory.DefaultDataset()
	branchStore := memory.NewStore(seed.Branches)
	departmentStore := memory.NewStore(seed.Departments)
	categoryStore := memory.NewStore(seed.Categories)
	unitStore := memory.NewStore(seed.Units)
	supplierStore := memory.NewStore(seed.Suppliers)
	itemStore := memory.NewStore(seed.Items)
	movementStore := memory.NewStore(seed.Movements)
	stockStore := memory.NewStore(seed.Stock)

	sim := memory.NewSimulator(cfg.Mock)
	catalog := &usecase.MockCatalog{
		Categories: categoryStore,
		Units:      unitStore,
		Items:      itemStore,
		Suppliers:  supplierStore,
	}

	branchSvc := usecase.NewBranchService(cfg.API, nil, branchStore, sim)
	departmentSvc := usecase.NewDepartmentService(cfg.API, nil, departmentStore, sim)
	categorySvc := usecase.NewCategoryService(cfg.API, nil, categoryStore, sim)
	unitSvc := usecase.NewUnitService(cfg.API, nil, unitStore, sim)
	supplierSvc := usecase.NewSupplierService(cfg.API, nil, supplierStore, sim)
	itemSvc := usecase.NewInventoryItemService(cfg.API, nil, itemStore, sim, catalog)
	movementSvc := usecase.NewInventoryMovementService(cfg.API, nil, movementStore, sim, catalog)

	ledger := inventory.NewLedger(stockStore, catalog)
	stockSvc := usecase.NewInventoryStockService(cfg.API, nil, stockStore, sim, ledger)
	recorder := inventory.NewRecorder(movementSvc, stockSvc, log)

	// Usuario de desarrollo. Credenciales fijas; el hash se calcula al arrancar.
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de credenciales de desarrollo")
	}
	authHandler := httpRouter.NewAuthHandler(cfg.JWT, map[string][]byte{
		"admin": adminHash,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Branches:    branchSvc,
		Departments: departmentSvc,
		Categories:  categorySvc,
		Units:       unitSvc,
		Suppliers:   supplierSvc,
		Items:       itemSvc,
		Movements:   movementSvc,
		Stock:       stockSvc,
		Recorder:    recorder,
		Auth:        authHandler,
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

	log.Info().Msg("mockserver detenido")
}
