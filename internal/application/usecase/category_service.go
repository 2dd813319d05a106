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

// CategoryService CRUD de categorías.
type CategoryService struct {
	cfg   config.APIConfig
	api   *rest.Client
	store *memory.Store[entity.Category]
	sim   *memory.Simulator
}

const categoryEndpoint = "/categories"

// NewCategoryService construye el servicio.
func NewCategoryService(cfg config.APIConfig, api *rest.Client, store *memory.Store[entity.Category], sim *memory.Simulator) *CategoryService {
	return &CategoryService{cfg: cfg, api: api, store: store, sim: sim}
}

// GetAll lista categorías.
func (s *CategoryService) GetAll(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Category], error) {
	if s.cfg.UseMockData {
		return s.getAllMock(ctx, f)
	}
	env, err := s.api.Get(ctx, withQuery(categoryEndpoint, baseQuery(f)))
	if err != nil {
		return nil, domain.WrapService("Failed to fetch categories", err, 500, "FETCH_CATEGORIES_ERROR")
	}
	page, err := rest.DecodeData[dto.PaginatedResponse[entity.Category]](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch categories", err, 500, "FETCH_CATEGORIES_ERROR")
	}
	return &page, nil
}

// GetByID obtiene una categoría por id.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if s.cfg.UseMockData {
		return s.getByIDMock(ctx, id)
	}
	env, err := s.api.Get(ctx, categoryEndpoint+"/"+id)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch category", err, 404, "CATEGORY_NOT_FOUND")
	}
	c, err := rest.DecodeData[entity.Category](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch category", err, 404, "CATEGORY_NOT_FOUND")
	}
	return &c, nil
}

// Create crea una categoría.
func (s *CategoryService) Create(ctx context.Context, in dto.CreateCategoryRequest) (*entity.Category, error) {
	if s.cfg.UseMockData {
		return s.createMock(ctx, in)
	}
	env, err := s.api.Post(ctx, categoryEndpoint, in)
	if err != nil {
		return nil, domain.WrapService("Failed to create category", err, 400, "CREATE_CATEGORY_ERROR")
	}
	c, err := rest.DecodeData[entity.Category](env)
	if err != nil {
		return nil, domain.WrapService("Failed to create category", err, 400, "CREATE_CATEGORY_ERROR")
	}
	return &c, nil
}

// Update actualiza una categoría existente.
func (s *CategoryService) Update(ctx context.Context, id string, in dto.CreateCategoryRequest) (*entity.Category, error) {
	if s.cfg.UseMockData {
		return s.updateMock(ctx, id, in)
	}
	env, err := s.api.Put(ctx, categoryEndpoint+"/"+id, in)
	if err != nil {
		return nil, domain.WrapService("Failed to update category", err, 400, "UPDATE_CATEGORY_ERROR")
	}
	c, err := rest.DecodeData[entity.Category](env)
	if err != nil {
		return nil, domain.WrapService("Failed to update category", err, 400, "UPDATE_CATEGORY_ERROR")
	}
	return &c, nil
}

// Delete elimina una categoría por id.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if s.cfg.UseMockData {
		return s.deleteMock(ctx, id)
	}
	if _, err := s.api.Delete(ctx, categoryEndpoint+"/"+id); err != nil {
		return domain.WrapService("Failed to delete category", err, 400, "DELETE_CATEGORY_ERROR")
	}
	return nil
}

// ResetMockData restaura el snapshot semilla del store.
func (s *CategoryService) ResetMockData() {
	s.store.Reset()
}

// ── Camino mock ───────────────────────────────────────────────────────────────

func (s *CategoryService) getAllMock(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Category], error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	f.Normalize()
	items := s.store.Items()
	if f.Search != "" {
		items = listutil.FilterBySearch(items, f.Search, func(c entity.Category) []string {
			return []string{c.Name, c.Description}
		})
	}
	if f.SortField != "" && f.SortDirection != "" {
		items = listutil.SortItems(items, f.SortDirection, categoryLess(f.SortField))
	}
	pageItems, total := listutil.Paginate(items, f.Page, f.PerPage)
	return &dto.PaginatedResponse[entity.Category]{
		Data:       pageItems,
		Pagination: dto.NewPagination(f.Page, f.PerPage, total),
	}, nil
}

func (s *CategoryService) getByIDMock(ctx context.Context, id string) (*entity.Category, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	c, ok := s.store.Find(func(c entity.Category) bool { return c.ID == id })
	if !ok {
		return nil, domain.NotFound("Category not found", "CATEGORY_NOT_FOUND")
	}
	return &c, nil
}

func (s *CategoryService) createMock(ctx context.Context, in dto.CreateCategoryRequest) (*entity.Category, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	c := entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.Prepend(c)
	return &c, nil
}

func (s *CategoryService) updateMock(ctx context.Context, id string, in dto.CreateCategoryRequest) (*entity.Category, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	idx := s.store.FindIndex(func(c entity.Category) bool { return c.ID == id })
	if idx < 0 {
		return nil, domain.NotFound("Category not found", "CATEGORY_NOT_FOUND")
	}
	c := s.store.Get(idx)
	c.Name = in.Name
	c.Description = in.Description
	c.UpdatedAt = time.Now()
	s.store.Set(idx, c)
	return &c, nil
}

func (s *CategoryService) deleteMock(ctx context.Context, id string) error {
	if err := s.sim.Simulate(ctx); err != nil {
		return err
	}
	if !s.store.Remove(func(c entity.Category) bool { return c.ID == id }) {
		return domain.NotFound("Category not found", "CATEGORY_NOT_FOUND")
	}
	return nil
}

func categoryLess(field string) func(a, b entity.Category) bool {
	switch field {
	case "created_at":
		return func(a, b entity.Category) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b entity.Category) bool { return listutil.Fold(a.Name) < listutil.Fold(b.Name) }
	}
}
