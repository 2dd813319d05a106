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

// SupplierService CRUD de proveedores.
type SupplierService struct {
	cfg   config.APIConfig
	api   *rest.Client
	store *memory.Store[entity.Supplier]
	sim   *memory.Simulator
}

const supplierEndpoint = "/suppliers"

// NewSupplierService construye el servicio.
func NewSupplierService(cfg config.APIConfig, api *rest.Client, store *memory.Store[entity.Supplier], sim *memory.Simulator) *SupplierService {
	return &SupplierService{cfg: cfg, api: api, store: store, sim: sim}
}

// GetAll lista proveedores.
func (s *SupplierService) GetAll(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Supplier], error) {
	if s.cfg.UseMockData {
		return s.getAllMock(ctx, f)
	}
	env, err := s.api.Get(ctx, withQuery(supplierEndpoint, baseQuery(f)))
	if err != nil {
		return nil, domain.WrapService("Failed to fetch suppliers", err, 500, "FETCH_SUPPLIERS_ERROR")
	}
	page, err := rest.DecodeData[dto.PaginatedResponse[entity.Supplier]](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch suppliers", err, 500, "FETCH_SUPPLIERS_ERROR")
	}
	return &page, nil
}

// GetByID obtiene un proveedor por id.
func (s *SupplierService) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if s.cfg.UseMockData {
		return s.getByIDMock(ctx, id)
	}
	env, err := s.api.Get(ctx, supplierEndpoint+"/"+id)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch supplier", err, 404, "SUPPLIER_NOT_FOUND")
	}
	sp, err := rest.DecodeData[entity.Supplier](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch supplier", err, 404, "SUPPLIER_NOT_FOUND")
	}
	return &sp, nil
}

// Create crea un proveedor.
func (s *SupplierService) Create(ctx context.Context, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if s.cfg.UseMockData {
		return s.createMock(ctx, in)
	}
	env, err := s.api.Post(ctx, supplierEndpoint, in)
	if err != nil {
		return nil, domain.WrapService("Failed to create supplier", err, 400, "CREATE_SUPPLIER_ERROR")
	}
	sp, err := rest.DecodeData[entity.Supplier](env)
	if err != nil {
		return nil, domain.WrapService("Failed to create supplier", err, 400, "CREATE_SUPPLIER_ERROR")
	}
	return &sp, nil
}

// Update actualiza un proveedor existente.
func (s *SupplierService) Update(ctx context.Context, id string, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if s.cfg.UseMockData {
		return s.updateMock(ctx, id, in)
	}
	env, err := s.api.Put(ctx, supplierEndpoint+"/"+id, in)
	if err != nil {
		return nil, domain.WrapService("Failed to update supplier", err, 400, "UPDATE_SUPPLIER_ERROR")
	}
	sp, err := rest.DecodeData[entity.Supplier](env)
	if err != nil {
		return nil, domain.WrapService("Failed to update supplier", err, 400, "UPDATE_SUPPLIER_ERROR")
	}
	return &sp, nil
}

// Delete elimina un proveedor por id.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	if s.cfg.UseMockData {
		return s.deleteMock(ctx, id)
	}
	if _, err := s.api.Delete(ctx, supplierEndpoint+"/"+id); err != nil {
		return domain.WrapService("Failed to delete supplier", err, 400, "DELETE_SUPPLIER_ERROR")
	}
	return nil
}

// ResetMockData restaura el snapshot semilla del store.
func (s *SupplierService) ResetMockData() {
	s.store.Reset()
}

// ── Camino mock ───────────────────────────────────────────────────────────────

func (s *SupplierService) getAllMock(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Supplier], error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	f.Normalize()
	items := s.store.Items()
	if f.Search != "" {
		items = listutil.FilterBySearch(items, f.Search, func(sp entity.Supplier) []string {
			return []string{sp.Name, sp.Email, sp.Phone}
		})
	}
	if f.SortField != "" && f.SortDirection != "" {
		items = listutil.SortItems(items, f.SortDirection, supplierLess(f.SortField))
	}
	pageItems, total := listutil.Paginate(items, f.Page, f.PerPage)
	return &dto.PaginatedResponse[entity.Supplier]{
		Data:       pageItems,
		Pagination: dto.NewPagination(f.Page, f.PerPage, total),
	}, nil
}

func (s *SupplierService) getByIDMock(ctx context.Context, id string) (*entity.Supplier, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	sp, ok := s.store.Find(func(sp entity.Supplier) bool { return sp.ID == id })
	if !ok {
		return nil, domain.NotFound("Supplier not found", "SUPPLIER_NOT_FOUND")
	}
	return &sp, nil
}

func (s *SupplierService) createMock(ctx context.Context, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	sp := entity.Supplier{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.Prepend(sp)
	return &sp, nil
}

func (s *SupplierService) updateMock(ctx context.Context, id string, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	idx := s.store.FindIndex(func(sp entity.Supplier) bool { return sp.ID == id })
	if idx < 0 {
		return nil, domain.NotFound("Supplier not found", "SUPPLIER_NOT_FOUND")
	}
	sp := s.store.Get(idx)
	sp.Name = in.Name
	sp.Email = in.Email
	sp.Phone = in.Phone
	sp.Address = in.Address
	sp.Description = in.Description
	sp.UpdatedAt = time.Now()
	s.store.Set(idx, sp)
	return &sp, nil
}

func (s *SupplierService) deleteMock(ctx context.Context, id string) error {
	if err := s.sim.Simulate(ctx); err != nil {
		return err
	}
	if !s.store.Remove(func(sp entity.Supplier) bool { return sp.ID == id }) {
		return domain.NotFound("Supplier not found", "SUPPLIER_NOT_FOUND")
	}
	return nil
}

func supplierLess(field string) func(a, b entity.Supplier) bool {
	switch field {
	case "created_at":
		return func(a, b entity.Supplier) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b entity.Supplier) bool { return listutil.Fold(a.Name) < listutil.Fold(b.Name) }
	}
}
