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

// DepartmentService CRUD de departamentos.
type DepartmentService struct {
	cfg   config.APIConfig
	api   *rest.Client
	store *memory.Store[entity.Department]
	sim   *memory.Simulator
}

const departmentEndpoint = "/departments"

// NewDepartmentService construye el servicio.
func NewDepartmentService(cfg config.APIConfig, api *rest.Client, store *memory.Store[entity.Department], sim *memory.Simulator) *DepartmentService {
	return &DepartmentService{cfg: cfg, api: api, store: store, sim: sim}
}

// GetAll lista departamentos; admite filtro por sucursal.
func (s *DepartmentService) GetAll(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Department], error) {
	if s.cfg.UseMockData {
		return s.getAllMock(ctx, f)
	}
	env, err := s.api.Get(ctx, withQuery(departmentEndpoint, baseQuery(f)))
	if err != nil {
		return nil, domain.WrapService("Failed to fetch departments", err, 500, "FETCH_DEPARTMENTS_ERROR")
	}
	page, err := rest.DecodeData[dto.PaginatedResponse[entity.Department]](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch departments", err, 500, "FETCH_DEPARTMENTS_ERROR")
	}
	return &page, nil
}

// GetByID obtiene un departamento por id.
func (s *DepartmentService) GetByID(ctx context.Context, id string) (*entity.Department, error) {
	if s.cfg.UseMockData {
		return s.getByIDMock(ctx, id)
	}
	env, err := s.api.Get(ctx, departmentEndpoint+"/"+id)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch department", err, 404, "DEPARTMENT_NOT_FOUND")
	}
	d, err := rest.DecodeData[entity.Department](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch department", err, 404, "DEPARTMENT_NOT_FOUND")
	}
	return &d, nil
}

// Create crea un departamento.
func (s *DepartmentService) Create(ctx context.Context, in dto.CreateDepartmentRequest) (*entity.Department, error) {
	if s.cfg.UseMockData {
		return s.createMock(ctx, in)
	}
	env, err := s.api.Post(ctx, departmentEndpoint, in)
	if err != nil {
		return nil, domain.WrapService("Failed to create department", err, 400, "CREATE_DEPARTMENT_ERROR")
	}
	d, err := rest.DecodeData[entity.Department](env)
	if err != nil {
		return nil, domain.WrapService("Failed to create department", err, 400, "CREATE_DEPARTMENT_ERROR")
	}
	return &d, nil
}

// Update actualiza un departamento existente.
func (s *DepartmentService) Update(ctx context.Context, id string, in dto.CreateDepartmentRequest) (*entity.Department, error) {
	if s.cfg.UseMockData {
		return s.updateMock(ctx, id, in)
	}
	env, err := s.api.Put(ctx, departmentEndpoint+"/"+id, in)
	if err != nil {
		return nil, domain.WrapService("Failed to update department", err, 400, "UPDATE_DEPARTMENT_ERROR")
	}
	d, err := rest.DecodeData[entity.Department](env)
	if err != nil {
		return nil, domain.WrapService("Failed to update department", err, 400, "UPDATE_DEPARTMENT_ERROR")
	}
	return &d, nil
}

// Delete elimina un departamento por id.
func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	if s.cfg.UseMockData {
		return s.deleteMock(ctx, id)
	}
	if _, err := s.api.Delete(ctx, departmentEndpoint+"/"+id); err != nil {
		return domain.WrapService("Failed to delete department", err, 400, "DELETE_DEPARTMENT_ERROR")
	}
	return nil
}

// ResetMockData restaura el snapshot semilla del store.
func (s *DepartmentService) ResetMockData() {
	s.store.Reset()
}

// ── Camino mock ───────────────────────────────────────────────────────────────

func (s *DepartmentService) getAllMock(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Department], error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	f.Normalize()
	items := s.store.Items()
	if f.BranchID != "" {
		filtered := items[:0:0]
		for _, d := range items {
			if d.BranchID == f.BranchID {
				filtered = append(filtered, d)
			}
		}
		items = filtered
	}
	if f.Search != "" {
		items = listutil.FilterBySearch(items, f.Search, func(d entity.Department) []string {
			return []string{d.Name, d.Description}
		})
	}
	if f.SortField != "" && f.SortDirection != "" {
		items = listutil.SortItems(items, f.SortDirection, departmentLess(f.SortField))
	}
	pageItems, total := listutil.Paginate(items, f.Page, f.PerPage)
	return &dto.PaginatedResponse[entity.Department]{
		Data:       pageItems,
		Pagination: dto.NewPagination(f.Page, f.PerPage, total),
	}, nil
}

func (s *DepartmentService) getByIDMock(ctx context.Context, id string) (*entity.Department, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	d, ok := s.store.Find(func(d entity.Department) bool { return d.ID == id })
	if !ok {
		return nil, domain.NotFound("Department not found", "DEPARTMENT_NOT_FOUND")
	}
	return &d, nil
}

func (s *DepartmentService) createMock(ctx context.Context, in dto.CreateDepartmentRequest) (*entity.Department, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	d := entity.Department{
		ID:          uuid.New().String(),
		BranchID:    in.BranchID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.Prepend(d)
	return &d, nil
}

func (s *DepartmentService) updateMock(ctx context.Context, id string, in dto.CreateDepartmentRequest) (*entity.Department, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	idx := s.store.FindIndex(func(d entity.Department) bool { return d.ID == id })
	if idx < 0 {
		return nil, domain.NotFound("Department not found", "DEPARTMENT_NOT_FOUND")
	}
	d := s.store.Get(idx)
	d.BranchID = in.BranchID
	d.Name = in.Name
	d.Description = in.Description
	d.UpdatedAt = time.Now()
	s.store.Set(idx, d)
	return &d, nil
}

func (s *DepartmentService) deleteMock(ctx context.Context, id string) error {
	if err := s.sim.Simulate(ctx); err != nil {
		return err
	}
	if !s.store.Remove(func(d entity.Department) bool { return d.ID == id }) {
		return domain.NotFound("Department not found", "DEPARTMENT_NOT_FOUND")
	}
	return nil
}

func departmentLess(field string) func(a, b entity.Department) bool {
	switch field {
	case "created_at":
		return func(a, b entity.Department) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b entity.Department) bool { return listutil.Fold(a.Name) < listutil.Fold(b.Name) }
	}
}
