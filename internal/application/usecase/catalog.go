package usecase

import (
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain/entity"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/memory"
)

// Catalog resuelve referencias entre recursos en modo mock (joins de lectura
// al momento de escribir). Los servicios dependen de esta interfaz estrecha,
// nunca de los stores de otros recursos.
type Catalog interface {
	ResolveCategory(id string) (*entity.Category, bool)
	ResolveUnit(id string) (*entity.Unit, bool)
	ResolveItem(id string) (*entity.InventoryItem, bool)
	ResolveSupplier(id string) (*entity.Supplier, bool)
}

// MockCatalog implementación de Catalog sobre los stores en memoria.
type MockCatalog struct {
	Categories *memory.Store[entity.Category]
	Units      *memory.Store[entity.Unit]
	Items      *memory.Store[entity.InventoryItem]
	Suppliers  *memory.Store[entity.Supplier]
}

// ResolveCategory busca una categoría por id.
func (c *MockCatalog) ResolveCategory(id string) (*entity.Category, bool) {
	if c.Categories == nil {
		return nil, false
	}
	cat, ok := c.Categories.Find(func(x entity.Category) bool { return x.ID == id })
	if !ok {
		return nil, false
	}
	return &cat, true
}

// ResolveUnit busca una unidad por id.
func (c *MockCatalog) ResolveUnit(id string) (*entity.Unit, bool) {
	if c.Units == nil {
		return nil, false
	}
	u, ok := c.Units.Find(func(x entity.Unit) bool { return x.ID == id })
	if !ok {
		return nil, false
	}
	return &u, true
}

// ResolveItem busca un artículo por id.
func (c *MockCatalog) ResolveItem(id string) (*entity.InventoryItem, bool) {
	if c.Items == nil {
		return nil, false
	}
	it, ok := c.Items.Find(func(x entity.InventoryItem) bool { return x.ID == id })
	if !ok {
		return nil, false
	}
	return &it, true
}

// ResolveSupplier busca un proveedor por id.
func (c *MockCatalog) ResolveSupplier(id string) (*entity.Supplier, bool) {
	if c.Suppliers == nil {
		return nil, false
	}
	sp, ok := c.Suppliers.Find(func(x entity.Supplier) bool { return x.ID == id })
	if !ok {
		return nil, false
	}
	return &sp, true
}
