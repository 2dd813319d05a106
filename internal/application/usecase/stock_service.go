package usecase

import (
	"context"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/inventory"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain/entity"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/memory"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/rest"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/config"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/listutil"
)

// InventoryStockService consulta de stock y alta de entradas vía el ledger.
// La cantidad nunca se fija directamente: AddEntry somete un movimiento y el
// ledger deriva el nuevo snapshot.
type InventoryStockService struct {
	cfg    config.APIConfig
	api    *rest.Client
	store  *memory.Store[entity.InventoryStock]
	sim    *memory.Simulator
	ledger *inventory.Ledger
}

const stockEndpoint = "/inventory-stock"

// NewInventoryStockService construye el servicio.
func NewInventoryStockService(cfg config.APIConfig, api *rest.Client, store *memory.Store[entity.InventoryStock], sim *memory.Simulator, ledger *inventory.Ledger) *InventoryStockService {
	return &InventoryStockService{cfg: cfg, api: api, store: store, sim: sim, ledger: ledger}
}

// GetAll lista snapshots de stock; admite filtro por sucursal y por
// departamento (vía el artículo referenciado).
func (s *InventoryStockService) GetAll(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.InventoryStock], error) {
	if s.cfg.UseMockData {
		return s.getAllMock(ctx, f)
	}
	env, err := s.api.Get(ctx, withQuery(stockEndpoint, baseQuery(f)))
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory stock", err, 500, "FETCH_INVENTORY_STOCK_ERROR")
	}
	page, err := rest.DecodeData[dto.PaginatedResponse[entity.InventoryStock]](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory stock", err, 500, "FETCH_INVENTORY_STOCK_ERROR")
	}
	return &page, nil
}

// GetByID obtiene un snapshot de stock por id.
func (s *InventoryStockService) GetByID(ctx context.Context, id string) (*entity.InventoryStock, error) {
	if s.cfg.UseMockData {
		return s.getByIDMock(ctx, id)
	}
	env, err := s.api.Get(ctx, stockEndpoint+"/"+id)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory stock", err, 404, "INVENTORY_STOCK_NOT_FOUND")
	}
	st, err := rest.DecodeData[entity.InventoryStock](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory stock", err, 404, "INVENTORY_STOCK_NOT_FOUND")
	}
	return &st, nil
}

// AddEntry somete un movimiento al ledger y devuelve el snapshot resultante.
func (s *InventoryStockService) AddEntry(ctx context.Context, in dto.CreateStockEntryRequest) (*entity.InventoryStock, error) {
	if s.cfg.UseMockData {
		return s.addEntryMock(ctx, in)
	}
	env, err := s.api.Post(ctx, stockEndpoint+"/entries", in)
	if err != nil {
		return nil, domain.WrapService("Failed to add stock entry", err, 400, "ADD_STOCK_ENTRY_ERROR")
	}
	st, err := rest.DecodeData[entity.InventoryStock](env)
	if err != nil {
		return nil, domain.WrapService("Failed to add stock entry", err, 400, "ADD_STOCK_ENTRY_ERROR")
	}
	return &st, nil
}

// ResetMockData restaura el snapshot semilla del store.
func (s *InventoryStockService) ResetMockData() {
	s.store.Reset()
}

// ── Camino mock ───────────────────────────────────────────────────────────────

func (s *InventoryStockService) getAllMock(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.InventoryStock], error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	f.Normalize()
	items := s.store.Items()
	if f.BranchID != "" {
		filtered := items[:0:0]
		for _, st := range items {
			if st.BranchID == f.BranchID {
				filtered = append(filtered, st)
			}
		}
		items = filtered
	}
	if f.DepartmentID != "" {
		filtered := items[:0:0]
		for _, st := range items {
			if st.InventoryItem != nil && st.InventoryItem.DepartmentID == f.DepartmentID {
				filtered = append(filtered, st)
			}
		}
		items = filtered
	}
	if f.Search != "" {
		// La búsqueda entra por el nombre del artículo referenciado.
		items = listutil.FilterBySearch(items, f.Search, func(st entity.InventoryStock) []string {
			if st.InventoryItem == nil {
				return nil
			}
			return []string{st.InventoryItem.Name}
		})
	}
	if f.SortField != "" && f.SortDirection != "" {
		items = listutil.SortItems(items, f.SortDirection, stockLess(f.SortField))
	}
	pageItems, total := listutil.Paginate(items, f.Page, f.PerPage)
	return &dto.PaginatedResponse[entity.InventoryStock]{
		Data:       pageItems,
		Pagination: dto.NewPagination(f.Page, f.PerPage, total),
	}, nil
}

func (s *InventoryStockService) getByIDMock(ctx context.Context, id string) (*entity.InventoryStock, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	st, ok := s.store.Find(func(st entity.InventoryStock) bool { return st.ID == id })
	if !ok {
		return nil, domain.NotFound("Inventory stock not found", "INVENTORY_STOCK_NOT_FOUND")
	}
	return &st, nil
}

func (s *InventoryStockService) addEntryMock(ctx context.Context, in dto.CreateStockEntryRequest) (*entity.InventoryStock, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	return s.ledger.SubmitMovement(ctx, in)
}

func stockLess(field string) func(a, b entity.InventoryStock) bool {
	switch field {
	case "quantity":
		return func(a, b entity.InventoryStock) bool { return a.Quantity.LessThan(b.Quantity) }
	case "created_at":
		return func(a, b entity.InventoryStock) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b entity.InventoryStock) bool {
			an, bn := "", ""
			if a.InventoryItem != nil {
				an = a.InventoryItem.Name
			}
			if b.InventoryItem != nil {
				bn = b.InventoryItem.Name
			}
			return listutil.Fold(an) < listutil.Fold(bn)
		}
	}
}
