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

// UnitService CRUD de unidades de medida.
type UnitService struct {
	cfg   config.APIConfig
	api   *rest.Client
	store *memory.Store[entity.Unit]
	sim   *memory.Simulator
}

const unitEndpoint = "/units"

// NewUnitService construye el servicio.
func NewUnitService(cfg config.APIConfig, api *rest.Client, store *memory.Store[entity.Unit], sim *memory.Simulator) *UnitService {
	return &UnitService{cfg: cfg, api: api, store: store, sim: sim}
}

// GetAll lista unidades.
func (s *UnitService) GetAll(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Unit], error) {
	if s.cfg.UseMockData {
		return s.getAllMock(ctx, f)
	}
	env, err := s.api.Get(ctx, withQuery(unitEndpoint, baseQuery(f)))
	if err != nil {
		return nil, domain.WrapService("Failed to fetch units", err, 500, "FETCH_UNITS_ERROR")
	}
	page, err := rest.DecodeData[dto.PaginatedResponse[entity.Unit]](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch units", err, 500, "FETCH_UNITS_ERROR")
	}
	return &page, nil
}

// GetByID obtiene una unidad por id.
func (s *UnitService) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	if s.cfg.UseMockData {
		return s.getByIDMock(ctx, id)
	}
	env, err := s.api.Get(ctx, unitEndpoint+"/"+id)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch unit", err, 404, "UNIT_NOT_FOUND")
	}
	u, err := rest.DecodeData[entity.Unit](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch unit", err, 404, "UNIT_NOT_FOUND")
	}
	return &u, nil
}

// Create crea una unidad.
func (s *UnitService) Create(ctx context.Context, in dto.CreateUnitRequest) (*entity.Unit, error) {
	if s.cfg.UseMockData {
		return s.createMock(ctx, in)
	}
	env, err := s.api.Post(ctx, unitEndpoint, in)
	if err != nil {
		return nil, domain.WrapService("Failed to create unit", err, 400, "CREATE_UNIT_ERROR")
	}
	u, err := rest.DecodeData[entity.Unit](env)
	if err != nil {
		return nil, domain.WrapService("Failed to create unit", err, 400, "CREATE_UNIT_ERROR")
	}
	return &u, nil
}

// Update actualiza una unidad existente.
func (s *UnitService) Update(ctx context.Context, id string, in dto.CreateUnitRequest) (*entity.Unit, error) {
	if s.cfg.UseMockData {
		return s.updateMock(ctx, id, in)
	}
	env, err := s.api.Put(ctx, unitEndpoint+"/"+id, in)
	if err != nil {
		return nil, domain.WrapService("Failed to update unit", err, 400, "UPDATE_UNIT_ERROR")
	}
	u, err := rest.DecodeData[entity.Unit](env)
	if err != nil {
		return nil, domain.WrapService("Failed to update unit", err, 400, "UPDATE_UNIT_ERROR")
	}
	return &u, nil
}

// Delete elimina una unidad por id.
func (s *UnitService) Delete(ctx context.Context, id string) error {
	if s.cfg.UseMockData {
		return s.deleteMock(ctx, id)
	}
	if _, err := s.api.Delete(ctx, unitEndpoint+"/"+id); err != nil {
		return domain.WrapService("Failed to delete unit", err, 400, "DELETE_UNIT_ERROR")
	}
	return nil
}

// ResetMockData restaura el snapshot semilla del store.
func (s *UnitService) ResetMockData() {
	s.store.Reset()
}

// ── Camino mock ───────────────────────────────────────────────────────────────

func (s *UnitService) getAllMock(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[entity.Unit], error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	f.Normalize()
	items := s.store.Items()
	if f.Search != "" {
		items = listutil.FilterBySearch(items, f.Search, func(u entity.Unit) []string {
			return []string{u.Name, u.Abbreviation}
		})
	}
	if f.SortField != "" && f.SortDirection != "" {
		items = listutil.SortItems(items, f.SortDirection, unitLess(f.SortField))
	}
	pageItems, total := listutil.Paginate(items, f.Page, f.PerPage)
	return &dto.PaginatedResponse[entity.Unit]{
		Data:       pageItems,
		Pagination: dto.NewPagination(f.Page, f.PerPage, total),
	}, nil
}

func (s *UnitService) getByIDMock(ctx context.Context, id string) (*entity.Unit, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	u, ok := s.store.Find(func(u entity.Unit) bool { return u.ID == id })
	if !ok {
		return nil, domain.NotFound("Unit not found", "UNIT_NOT_FOUND")
	}
	return &u, nil
}

func (s *UnitService) createMock(ctx context.Context, in dto.CreateUnitRequest) (*entity.Unit, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	u := entity.Unit{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Abbreviation: in.Abbreviation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.store.Prepend(u)
	return &u, nil
}

func (s *UnitService) updateMock(ctx context.Context, id string, in dto.CreateUnitRequest) (*entity.Unit, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	idx := s.store.FindIndex(func(u entity.Unit) bool { return u.ID == id })
	if idx < 0 {
		return nil, domain.NotFound("Unit not found", "UNIT_NOT_FOUND")
	}
	u := s.store.Get(idx)
	u.Name = in.Name
	u.Abbreviation = in.Abbreviation
	u.UpdatedAt = time.Now()
	s.store.Set(idx, u)
	return &u, nil
}

func (s *UnitService) deleteMock(ctx context.Context, id string) error {
	if err := s.sim.Simulate(ctx); err != nil {
		return err
	}
	if !s.store.Remove(func(u entity.Unit) bool { return u.ID == id }) {
		return domain.NotFound("Unit not found", "UNIT_NOT_FOUND")
	}
	return nil
}

func unitLess(field string) func(a, b entity.Unit) bool {
	switch field {
	case "created_at":
		return func(a, b entity.Unit) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b entity.Unit) bool { return listutil.Fold(a.Name) < listutil.Fold(b.Name) }
	}
}
