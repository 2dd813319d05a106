package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain/entity"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/memory"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/rest"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/config"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/listutil"
)

// InventoryItemService CRUD de artículos de inventario. En modo mock el alta
// y la actualización resuelven categoría y unidad vía el catálogo (join de
// lectura), igual que lo haría el backend.
type InventoryItemService struct {
	cfg     config.APIConfig
	api     *rest.Client
	store   *memory.Store[entity.InventoryItem]
	sim     *memory.Simulator
	catalog Catalog
}

const itemEndpoint = "/inventory-items"

// NewInventoryItemService construye el servicio.
func NewInventoryItemService(cfg config.APIConfig, api *rest.Client, store *memory.Store[entity.InventoryItem], sim *memory.Simulator, catalog Catalog) *InventoryItemService {
	return &InventoryItemService{cfg: cfg, api: api, store: store, sim: sim, catalog: catalog}
}

// GetAll lista artículos; admite filtro por departamento.
func (s *InventoryItemService) GetAll(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.InventoryItem], error) {
	if s.cfg.UseMockData {
		return s.getAllMock(ctx, f)
	}
	env, err := s.api.Get(ctx, withQuery(itemEndpoint, baseQuery(f)))
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory items", err, 500, "FETCH_INVENTORY_ITEMS_ERROR")
	}
	page, err := rest.DecodeData[dto.PaginatedResponse[entity.InventoryItem]](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory items", err, 500, "FETCH_INVENTORY_ITEMS_ERROR")
	}
	return &page, nil
}

// GetByID obtiene un artículo por id.
func (s *InventoryItemService) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if s.cfg.UseMockData {
		return s.getByIDMock(ctx, id)
	}
	env, err := s.api.Get(ctx, itemEndpoint+"/"+id)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory item", err, 404, "INVENTORY_ITEM_NOT_FOUND")
	}
	it, err := rest.DecodeData[entity.InventoryItem](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory item", err, 404, "INVENTORY_ITEM_NOT_FOUND")
	}
	return &it, nil
}

// Create crea un artículo.
func (s *InventoryItemService) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	if s.cfg.UseMockData {
		return s.createMock(ctx, in)
	}
	env, err := s.api.Post(ctx, itemEndpoint, in)
	if err != nil {
		return nil, domain.WrapService("Failed to create inventory item", err, 400, "CREATE_INVENTORY_ITEM_ERROR")
	}
	it, err := rest.DecodeData[entity.InventoryItem](env)
	if err != nil {
		return nil, domain.WrapService("Failed to create inventory item", err, 400, "CREATE_INVENTORY_ITEM_ERROR")
	}
	return &it, nil
}

// Update actualiza un artículo existente.
func (s *InventoryItemService) Update(ctx context.Context, id string, in dto.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	if s.cfg.UseMockData {
		return s.updateMock(ctx, id, in)
	}
	env, err := s.api.Put(ctx, itemEndpoint+"/"+id, in)
	if err != nil {
		return nil, domain.WrapService("Failed to update inventory item", err, 400, "UPDATE_INVENTORY_ITEM_ERROR")
	}
	it, err := rest.DecodeData[entity.InventoryItem](env)
	if err != nil {
		return nil, domain.WrapService("Failed to update inventory item", err, 400, "UPDATE_INVENTORY_ITEM_ERROR")
	}
	return &it, nil
}

// Delete elimina un artículo por id.
func (s *InventoryItemService) Delete(ctx context.Context, id string) error {
	if s.cfg.UseMockData {
		return s.deleteMock(ctx, id)
	}
	if _, err := s.api.Delete(ctx, itemEndpoint+"/"+id); err != nil {
		return domain.WrapService("Failed to delete inventory item", err, 400, "DELETE_INVENTORY_ITEM_ERROR")
	}
	return nil
}

// ResetMockData restaura el snapshot semilla del store.
func (s *InventoryItemService) ResetMockData() {
	s.store.Reset()
}

// ── Camino mock ───────────────────────────────────────────────────────────────

func (s *InventoryItemService) getAllMock(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.InventoryItem], error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	f.Normalize()
	items := s.store.Items()
	if f.DepartmentID != "" {
		filtered := items[:0:0]
		for _, it := range items {
			if it.DepartmentID == f.DepartmentID {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	if f.Search != "" {
		items = listutil.FilterBySearch(items, f.Search, func(it entity.InventoryItem) []string {
			return []string{it.Name}
		})
	}
	if f.SortField != "" && f.SortDirection != "" {
		items = listutil.SortItems(items, f.SortDirection, itemLess(f.SortField))
	}
	pageItems, total := listutil.Paginate(items, f.Page, f.PerPage)
	return &dto.PaginatedResponse[entity.InventoryItem]{
		Data:       pageItems,
		Pagination: dto.NewPagination(f.Page, f.PerPage, total),
	}, nil
}

func (s *InventoryItemService) getByIDMock(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	it, ok := s.store.Find(func(it entity.InventoryItem) bool { return it.ID == id })
	if !ok {
		return nil, domain.NotFound("Inventory item not found", "INVENTORY_ITEM_NOT_FOUND")
	}
	return &it, nil
}

func (s *InventoryItemService) createMock(ctx context.Context, in dto.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	it := entity.InventoryItem{
		ID:                uuid.New().String(),
		Name:              in.Name,
		CategoryID:        in.CategoryID,
		UnitID:            in.UnitID,
		DepartmentID:      in.DepartmentID,
		BranchID:          in.BranchID,
		ThresholdQuantity: in.ThresholdQuantity,
		ReorderQuantity:   in.ReorderQuantity,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	// Join de lectura: enriquecer con las relaciones, como hace el backend.
	if cat, ok := s.catalog.ResolveCategory(in.CategoryID); ok {
		it.Category = cat
	}
	if u, ok := s.catalog.ResolveUnit(in.UnitID); ok {
		it.Unit = u
	}
	s.store.Prepend(it)
	return &it, nil
}

func (s *InventoryItemService) updateMock(ctx context.Context, id string, in dto.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	idx := s.store.FindIndex(func(it entity.InventoryItem) bool { return it.ID == id })
	if idx < 0 {
		return nil, domain.NotFound("Inventory item not found", "INVENTORY_ITEM_NOT_FOUND")
	}
	it := s.store.Get(idx)
	it.Name = in.Name
	it.CategoryID = in.CategoryID
	it.UnitID = in.UnitID
	it.DepartmentID = in.DepartmentID
	it.ThresholdQuantity = in.ThresholdQuantity
	it.ReorderQuantity = in.ReorderQuantity
	it.UpdatedAt = time.Now()
	if cat, ok := s.catalog.ResolveCategory(in.CategoryID); ok {
		it.Category = cat
	}
	if u, ok := s.catalog.ResolveUnit(in.UnitID); ok {
		it.Unit = u
	}
	s.store.Set(idx, it)
	return &it, nil
}

func (s *InventoryItemService) deleteMock(ctx context.Context, id string) error {
	if err := s.sim.Simulate(ctx); err != nil {
		return err
	}
	if !s.store.Remove(func(it entity.InventoryItem) bool { return it.ID == id }) {
		return domain.NotFound("Inventory item not found", "INVENTORY_ITEM_NOT_FOUND")
	}
	return nil
}

func itemLess(field string) func(a, b entity.InventoryItem) bool {
	switch field {
	case "created_at":
		return func(a, b entity.InventoryItem) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "threshold_quantity":
		return func(a, b entity.InventoryItem) bool { return a.ThresholdQuantity < b.ThresholdQuantity }
	default:
		return func(a, b entity.InventoryItem) bool { return listutil.Fold(a.Name) < listutil.Fold(b.Name) }
	}
}
