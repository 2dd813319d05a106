package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/inventory"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/usecase"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Branches    *usecase.BranchService
	Departments *usecase.DepartmentService
	Categories  *usecase.CategoryService
	Units       *usecase.UnitService
	Suppliers   *usecase.SupplierService
	Items       *usecase.InventoryItemService
	Movements   *usecase.InventoryMovementService
	Stock       *usecase.InventoryStockService
	Recorder    *inventory.Recorder
	Auth        *AuthHandler
	JWTSecret   string
}

// Router registra las rutas del mockserver. Las lecturas son públicas; las
// escrituras requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret)

	// Auth (público)
	api.Post("/auth/login", deps.Auth.Login)

	// Recursos CRUD planos
	registerResource(api, "/branches", auth, NewResourceHandler[entity.Branch, dto.CreateBranchRequest](deps.Branches))
	registerResource(api, "/departments", auth, NewResourceHandler[entity.Department, dto.CreateDepartmentRequest](deps.Departments))
	registerResource(api, "/categories", auth, NewResourceHandler[entity.Category, dto.CreateCategoryRequest](deps.Categories))
	registerResource(api, "/units", auth, NewResourceHandler[entity.Unit, dto.CreateUnitRequest](deps.Units))
	registerResource(api, "/suppliers", auth, NewResourceHandler[entity.Supplier, dto.CreateSupplierRequest](deps.Suppliers))
	registerResource(api, "/inventory-items", auth, NewResourceHandler[entity.InventoryItem, dto.CreateInventoryItemRequest](deps.Items))

	// Movimientos de inventario
	movements := api.Group("/inventory-movements")
	movementHandler := NewMovementHandler(deps.Movements, deps.Recorder)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", auth, movementHandler.Create)
	movements.Put("/:id", auth, movementHandler.Update)
	movements.Delete("/:id", auth, movementHandler.Delete)

	// Stock de inventario
	stock := api.Group("/inventory-stock")
	stockHandler := NewStockHandler(deps.Stock)
	stock.Get("/", stockHandler.List)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Post("/entries", auth, stockHandler.AddEntry)
}

func registerResource[T any, C any](api fiber.Router, path string, auth fiber.Handler, h *ResourceHandler[T, C]) {
	group := api.Group(path)
	group.Get("/", h.List)
	group.Get("/:id", h.GetByID)
	group.Post("/", auth, h.Create)
	group.Put("/:id", auth, h.Update)
	group.Delete("/:id", auth, h.Delete)
}
