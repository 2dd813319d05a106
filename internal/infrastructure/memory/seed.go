package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain/entity"
)

// Dataset snapshot semilla completo para el modo mock.
type Dataset struct {
	Branches    []entity.Branch
	Departments []entity.Department
	Categories  []entity.Category
	Units       []entity.Unit
	Suppliers   []entity.Supplier
	Items       []entity.InventoryItem
	Movements   []entity.InventoryMovement
	Stock       []entity.InventoryStock
}

func strptr(s string) *string { return &s }

func decptr(d decimal.Decimal) *decimal.Decimal { return &d }

// DefaultDataset devuelve el dataset de desarrollo. Las fechas de los
// movimientos son relativas a ahora para que los filtros today/week/month
// tengan datos que mostrar.
func DefaultDataset() *Dataset {
	now := time.Now()
	base := now.AddDate(0, -3, 0)

	branches := []entity.Branch{
		{ID: "branch-1", Name: "Sucursal Centro", Description: "Local principal", CreatedAt: base, UpdatedAt: base},
		{ID: "branch-2", Name: "Sucursal Norte", Description: "Segundo local", CreatedAt: base, UpdatedAt: base},
	}

	departments := []entity.Department{
		{ID: "dept-1", BranchID: "branch-1", Name: "Cocina", CreatedAt: base, UpdatedAt: base},
		{ID: "dept-2", BranchID: "branch-1", Name: "Barra", CreatedAt: base, UpdatedAt: base},
		{ID: "dept-3", BranchID: "branch-2", Name: "Almacén", CreatedAt: base, UpdatedAt: base},
	}

	categories := []entity.Category{
		{ID: "cat-1", Name: "Lácteos", CreatedAt: base, UpdatedAt: base},
		{ID: "cat-2", Name: "Carnes", CreatedAt: base, UpdatedAt: base},
		{ID: "cat-3", Name: "Bebidas", CreatedAt: base, UpdatedAt: base},
	}

	units := []entity.Unit{
		{ID: "unit-1", Name: "Kilogramo", Abbreviation: "kg", CreatedAt: base, UpdatedAt: base},
		{ID: "unit-2", Name: "Litro", Abbreviation: "L", CreatedAt: base, UpdatedAt: base},
		{ID: "unit-3", Name: "Unidad", Abbreviation: "u", CreatedAt: base, UpdatedAt: base},
	}

	suppliers := []entity.Supplier{
		{ID: "sup-1", Name: "Distribuidora El Valle", Email: "ventas@elvalle.example", Phone: "+57 300 111 2233", CreatedAt: base, UpdatedAt: base},
		{ID: "sup-2", Name: "Cárnicos La Esperanza", Email: "pedidos@laesperanza.example", CreatedAt: base, UpdatedAt: base},
	}

	items := []entity.InventoryItem{
		{
			ID: "item-1", Name: "Leche entera", CategoryID: "cat-1", UnitID: "unit-2",
			DepartmentID: "dept-1", BranchID: "branch-1",
			ThresholdQuantity: 10, ReorderQuantity: 30,
			CreatedAt: base, UpdatedAt: base,
			Category: &categories[0], Unit: &units[1],
		},
		{
			ID: "item-2", Name: "Pechuga de pollo", CategoryID: "cat-2", UnitID: "unit-1",
			DepartmentID: "dept-1", BranchID: "branch-1",
			ThresholdQuantity: 5, ReorderQuantity: 20,
			CreatedAt: base, UpdatedAt: base,
			Category: &categories[1], Unit: &units[0],
		},
		{
			ID: "item-3", Name: "Agua con gas", CategoryID: "cat-3", UnitID: "unit-3",
			DepartmentID: "dept-2", BranchID: "branch-1",
			ThresholdQuantity: 24, ReorderQuantity: 48,
			CreatedAt: base, UpdatedAt: base,
			Category: &categories[2], Unit: &units[2],
		},
	}

	movements := []entity.InventoryMovement{
		{
			ID: "mov-1", InventoryItemID: "item-1", BranchID: "branch-1",
			TransactionType: entity.MovementTypeIN, Quantity: decimal.NewFromInt(40),
			UnitPurchasePrice: decptr(decimal.NewFromFloat(1.25)),
			SupplierID:        strptr("sup-1"), Notes: strptr("Pedido semanal"),
			CreatedAt: now.AddDate(0, 0, -10), UpdatedAt: now.AddDate(0, 0, -10),
			InventoryItem: &items[0], Supplier: &suppliers[0],
		},
		{
			ID: "mov-2", InventoryItemID: "item-1", BranchID: "branch-1",
			TransactionType: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(8),
			Notes:     strptr("Consumo de cocina"),
			CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now.AddDate(0, 0, -2),
			InventoryItem: &items[0],
		},
		{
			ID: "mov-3", InventoryItemID: "item-2", BranchID: "branch-1",
			TransactionType: entity.MovementTypeWASTE, Quantity: decimal.NewFromInt(2),
			WasteReason: strptr("Cadena de frío rota"),
			CreatedAt:   now.Add(-2 * time.Hour), UpdatedAt: now.Add(-2 * time.Hour),
			InventoryItem: &items[1],
		},
	}

	stock := []entity.InventoryStock{
		{
			ID: "stock-1", InventoryItemID: "item-1", BranchID: "branch-1",
			Quantity:          decimal.NewFromInt(32),
			UnitPurchasePrice: decimal.NewFromFloat(1.25),
			CreatedAt:         now.AddDate(0, 0, -10), UpdatedAt: now.AddDate(0, 0, -2),
			InventoryItem: &items[0],
		},
		{
			ID: "stock-2", InventoryItemID: "item-2", BranchID: "branch-1",
			Quantity:          decimal.NewFromInt(12),
			UnitPurchasePrice: decimal.NewFromFloat(4.80),
			CreatedAt:         base, UpdatedAt: now.Add(-2 * time.Hour),
			InventoryItem: &items[1],
		},
	}

	return &Dataset{
		Branches:    branches,
		Departments: departments,
		Categories:  categories,
		Units:       units,
		Suppliers:   suppliers,
		Items:       items,
		Movements:   movements,
		Stock:       stock,
	}
}
