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

// BranchService CRUD de sucursales.
type BranchService struct {
	cfg   config.APIConfig
	api   *rest.Client
	store *memory.Store[entity.Branch]
	sim   *memory.Simulator
}

const branchEndpoint = "/branches"

// NewBranchService construye el servicio. store y sim solo se usan en modo mock.
func NewBranchService(cfg config.APIConfig, api *rest.Client, store *memory.Store[entity.Branch], sim *memory.Simulator) *BranchService {
	return &BranchService{cfg: cfg, api: api, store: store, sim: sim}
}

// GetAll lista sucursales con búsqueda, orden y paginación.
func (s *BranchService) GetAll(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Branch], error) {
	if s.cfg.UseMockData {
		return s.getAllMock(ctx, f)
	}
	env, err := s.api.Get(ctx, withQuery(branchEndpoint, baseQuery(f)))
	if err != nil {
		return nil, domain.WrapService("Failed to fetch branches", err, 500, "FETCH_BRANCHES_ERROR")
	}
	page, err := rest.DecodeData[dto.PaginatedResponse[entity.Branch]](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch branches", err, 500, "FETCH_BRANCHES_ERROR")
	}
	return &page, nil
}

// GetByID obtiene una sucursal por id.
func (s *BranchService) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	if s.cfg.UseMockData {
		return s.getByIDMock(ctx, id)
	}
	env, err := s.api.Get(ctx, branchEndpoint+"/"+id)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch branch", err, 404, "BRANCH_NOT_FOUND")
	}
	b, err := rest.DecodeData[entity.Branch](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch branch", err, 404, "BRANCH_NOT_FOUND")
	}
	return &b, nil
}

// Create crea una sucursal.
func (s *BranchService) Create(ctx context.Context, in dto.CreateBranchRequest) (*entity.Branch, error) {
	if s.cfg.UseMockData {
		return s.createMock(ctx, in)
	}
	env, err := s.api.Post(ctx, branchEndpoint, in)
	if err != nil {
		return nil, domain.WrapService("Failed to create branch", err, 400, "CREATE_BRANCH_ERROR")
	}
	b, err := rest.DecodeData[entity.Branch](env)
	if err != nil {
		return nil, domain.WrapService("Failed to create branch", err, 400, "CREATE_BRANCH_ERROR")
	}
	return &b, nil
}

// Update actualiza una sucursal existente.
func (s *BranchService) Update(ctx context.Context, id string, in dto.CreateBranchRequest) (*entity.Branch, error) {
	if s.cfg.UseMockData {
		return s.updateMock(ctx, id, in)
	}
	env, err := s.api.Put(ctx, branchEndpoint+"/"+id, in)
	if err != nil {
		return nil, domain.WrapService("Failed to update branch", err, 400, "UPDATE_BRANCH_ERROR")
	}
	b, err := rest.DecodeData[entity.Branch](env)
	if err != nil {
		return nil, domain.WrapService("Failed to update branch", err, 400, "UPDATE_BRANCH_ERROR")
	}
	return &b, nil
}

// Delete elimina una sucursal por id.
func (s *BranchService) Delete(ctx context.Context, id string) error {
	if s.cfg.UseMockData {
		return s.deleteMock(ctx, id)
	}
	if _, err := s.api.Delete(ctx, branchEndpoint+"/"+id); err != nil {
		return domain.WrapService("Failed to delete branch", err, 400, "DELETE_BRANCH_ERROR")
	}
	return nil
}

// ResetMockData restaura el snapshot semilla del store.
func (s *BranchService) ResetMockData() {
	s.store.Reset()
}

// ── Camino mock ───────────────────────────────────────────────────────────────

func (s *BranchService) getAllMock(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Branch], error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	f.Normalize()
	items := s.store.Items()
	if f.Search != "" {
		items = listutil.FilterBySearch(items, f.Search, func(b entity.Branch) []string {
			return []string{b.Name, b.Description}
		})
	}
	if f.SortField != "" && f.SortDirection != "" {
		items = listutil.SortItems(items, f.SortDirection, branchLess(f.SortField))
	}
	pageItems, total := listutil.Paginate(items, f.Page, f.PerPage)
	return &dto.PaginatedResponse[entity.Branch]{
		Data:       pageItems,
		Pagination: dto.NewPagination(f.Page, f.PerPage, total),
	}, nil
}

func (s *BranchService) getByIDMock(ctx context.Context, id string) (*entity.Branch, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	b, ok := s.store.Find(func(b entity.Branch) bool { return b.ID == id })
	if !ok {
		return nil, domain.NotFound("Branch not found", "BRANCH_NOT_FOUND")
	}
	return &b, nil
}

func (s *BranchService) createMock(ctx context.Context, in dto.CreateBranchRequest) (*entity.Branch, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	b := entity.Branch{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.Prepend(b)
	return &b, nil
}

func (s *BranchService) updateMock(ctx context.Context, id string, in dto.CreateBranchRequest) (*entity.Branch, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	idx := s.store.FindIndex(func(b entity.Branch) bool { return b.ID == id })
	if idx < 0 {
		return nil, domain.NotFound("Branch not found", "BRANCH_NOT_FOUND")
	}
	b := s.store.Get(idx)
	b.Name = in.Name
	b.Description = in.Description
	b.UpdatedAt = time.Now()
	s.store.Set(idx, b)
	return &b, nil
}

func (s *BranchService) deleteMock(ctx context.Context, id string) error {
	if err := s.sim.Simulate(ctx); err != nil {
		return err
	}
	if !s.store.Remove(func(b entity.Branch) bool { return b.ID == id }) {
		return domain.NotFound("Branch not found", "BRANCH_NOT_FOUND")
	}
	return nil
}

func branchLess(field string) func(a, b entity.Branch) bool {
	switch field {
	case "created_at":
		return func(a, b entity.Branch) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b entity.Branch) bool { return listutil.Fold(a.Name) < listutil.Fold(b.Name) }
	}
}
