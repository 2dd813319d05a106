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

// InventoryMovementService log append-only de movimientos con filtrado rico.
// Los campos troncales de un movimiento (tipo, artículo) son inmutables
// después del alta; update solo toca atributos secundarios.
type InventoryMovementService struct {
	cfg     config.APIConfig
	api     *rest.Client
	store   *memory.Store[entity.InventoryMovement]
	sim     *memory.Simulator
	catalog Catalog
}

const movementEndpoint = "/inventory-movements"

// NewInventoryMovementService construye el servicio.
func NewInventoryMovementService(cfg config.APIConfig, api *rest.Client, store *memory.Store[entity.InventoryMovement], sim *memory.Simulator, catalog Catalog) *InventoryMovementService {
	return &InventoryMovementService{cfg: cfg, api: api, store: store, sim: sim, catalog: catalog}
}

// GetAll lista movimientos aplicando los filtros de forma conjuntiva, en este
// orden fijo: sucursal → departamento (vía artículo) → búsqueda → tipo de
// transacción → categoría (vía artículo) → ventana de fecha → orden → página.
func (s *InventoryMovementService) GetAll(ctx context.Context, f dto.MovementFilters) (*dto.PaginatedResponse[entity.InventoryMovement], error) {
	if s.cfg.UseMockData {
		return s.getAllMock(ctx, f)
	}
	q := baseQuery(f.BaseFilters)
	if f.TransactionType != "" {
		q.Set("transaction_type", f.TransactionType)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.DateRange != "" {
		q.Set("date_range", f.DateRange)
	}
	env, err := s.api.Get(ctx, withQuery(movementEndpoint, q))
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory movements", err, 500, "FETCH_INVENTORY_MOVEMENTS_ERROR")
	}
	page, err := rest.DecodeData[dto.PaginatedResponse[entity.InventoryMovement]](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory movements", err, 500, "FETCH_INVENTORY_MOVEMENTS_ERROR")
	}
	return &page, nil
}

// GetByID obtiene un movimiento por id.
func (s *InventoryMovementService) GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	if s.cfg.UseMockData {
		return s.getByIDMock(ctx, id)
	}
	env, err := s.api.Get(ctx, movementEndpoint+"/"+id)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory movement", err, 404, "INVENTORY_MOVEMENT_NOT_FOUND")
	}
	m, err := rest.DecodeData[entity.InventoryMovement](env)
	if err != nil {
		return nil, domain.WrapService("Failed to fetch inventory movement", err, 404, "INVENTORY_MOVEMENT_NOT_FOUND")
	}
	return &m, nil
}

// Create registra un movimiento nuevo.
func (s *InventoryMovementService) Create(ctx context.Context, in dto.CreateStockEntryRequest) (*entity.InventoryMovement, error) {
	if s.cfg.UseMockData {
		return s.createMock(ctx, in)
	}
	env, err := s.api.Post(ctx, movementEndpoint, in)
	if err != nil {
		return nil, domain.WrapService("Failed to create inventory movement", err, 400, "CREATE_INVENTORY_MOVEMENT_ERROR")
	}
	m, err := rest.DecodeData[entity.InventoryMovement](env)
	if err != nil {
		return nil, domain.WrapService("Failed to create inventory movement", err, 400, "CREATE_INVENTORY_MOVEMENT_ERROR")
	}
	return &m, nil
}

// Update ajusta los campos secundarios de un movimiento existente.
func (s *InventoryMovementService) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*entity.InventoryMovement, error) {
	if s.cfg.UseMockData {
		return s.updateMock(ctx, id, in)
	}
	env, err := s.api.Put(ctx, movementEndpoint+"/"+id, in)
	if err != nil {
		return nil, domain.WrapService("Failed to update inventory movement", err, 400, "UPDATE_INVENTORY_MOVEMENT_ERROR")
	}
	m, err := rest.DecodeData[entity.InventoryMovement](env)
	if err != nil {
		return nil, domain.WrapService("Failed to update inventory movement", err, 400, "UPDATE_INVENTORY_MOVEMENT_ERROR")
	}
	return &m, nil
}

// Remove retira un movimiento del log. Existe para la compensación del
// recorder cuando la segunda escritura falla; no es parte del contrato
// público del backend.
func (s *InventoryMovementService) Remove(ctx context.Context, id string) error {
	if s.cfg.UseMockData {
		if !s.store.Remove(func(m entity.InventoryMovement) bool { return m.ID == id }) {
			return domain.NotFound("Inventory movement not found", "INVENTORY_MOVEMENT_NOT_FOUND")
		}
		return nil
	}
	if _, err := s.api.Delete(ctx, movementEndpoint+"/"+id); err != nil {
		return domain.WrapService("Failed to delete inventory movement", err, 400, "DELETE_INVENTORY_MOVEMENT_ERROR")
	}
	return nil
}

// ResetMockData restaura el snapshot semilla del store.
func (s *InventoryMovementService) ResetMockData() {
	s.store.Reset()
}

// ── Camino mock ───────────────────────────────────────────────────────────────

func (s *InventoryMovementService) getAllMock(ctx context.Context, f dto.MovementFilters) (*dto.PaginatedResponse[entity.InventoryMovement], error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	f.Normalize()
	items := s.store.Items()

	if f.BranchID != "" {
		items = keepMovements(items, func(m entity.InventoryMovement) bool {
			return m.BranchID == f.BranchID
		})
	}
	if f.DepartmentID != "" {
		items = keepMovements(items, func(m entity.InventoryMovement) bool {
			return m.InventoryItem != nil && m.InventoryItem.DepartmentID == f.DepartmentID
		})
	}
	if f.Search != "" {
		// Substring estricto sobre notas, nombre del artículo y proveedor.
		items = keepMovements(items, func(m entity.InventoryMovement) bool {
			fields := []string{}
			if m.Notes != nil {
				fields = append(fields, *m.Notes)
			}
			if m.InventoryItem != nil {
				fields = append(fields, m.InventoryItem.Name)
			}
			if m.Supplier != nil {
				fields = append(fields, m.Supplier.Name)
			}
			return listutil.Matches(f.Search, fields...)
		})
	}
	if f.TransactionType != "" {
		items = keepMovements(items, func(m entity.InventoryMovement) bool {
			return m.TransactionType == f.TransactionType
		})
	}
	if f.Category != "" {
		items = keepMovements(items, func(m entity.InventoryMovement) bool {
			return m.InventoryItem != nil && m.InventoryItem.CategoryID == f.Category
		})
	}
	if f.DateRange != "" {
		bound := dateRangeBound(f.DateRange, time.Now())
		items = keepMovements(items, func(m entity.InventoryMovement) bool {
			return !m.CreatedAt.Before(bound)
		})
	}
	if f.SortField != "" && f.SortDirection != "" {
		items = listutil.SortItems(items, f.SortDirection, movementLess(f.SortField))
	}
	pageItems, total := listutil.Paginate(items, f.Page, f.PerPage)
	return &dto.PaginatedResponse[entity.InventoryMovement]{
		Data:       pageItems,
		Pagination: dto.NewPagination(f.Page, f.PerPage, total),
	}, nil
}

func (s *InventoryMovementService) getByIDMock(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	m, ok := s.store.Find(func(m entity.InventoryMovement) bool { return m.ID == id })
	if !ok {
		return nil, domain.NotFound("Inventory movement not found", "INVENTORY_MOVEMENT_NOT_FOUND")
	}
	return &m, nil
}

func (s *InventoryMovementService) createMock(ctx context.Context, in dto.CreateStockEntryRequest) (*entity.InventoryMovement, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	m := entity.InventoryMovement{
		ID:                  uuid.New().String(),
		InventoryItemID:     in.InventoryItemID,
		BranchID:            in.BranchID,
		TransactionType:     in.TransactionType,
		Quantity:            in.Quantity,
		UnitPurchasePrice:   in.UnitPurchasePrice,
		SupplierID:          in.SupplierID,
		DestinationBranchID: in.DestinationBranchID,
		WasteReason:         in.WasteReason,
		Notes:               in.Notes,
		ExpirationDate:      in.ExpirationDate,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if it, ok := s.catalog.ResolveItem(in.InventoryItemID); ok {
		m.InventoryItem = it
	}
	if in.SupplierID != nil {
		if sp, ok := s.catalog.ResolveSupplier(*in.SupplierID); ok {
			m.Supplier = sp
		}
	}
	s.store.Prepend(m)
	return &m, nil
}

func (s *InventoryMovementService) updateMock(ctx context.Context, id string, in dto.UpdateMovementRequest) (*entity.InventoryMovement, error) {
	if err := s.sim.Simulate(ctx); err != nil {
		return nil, err
	}
	idx := s.store.FindIndex(func(m entity.InventoryMovement) bool { return m.ID == id })
	if idx < 0 {
		return nil, domain.NotFound("Inventory movement not found", "INVENTORY_MOVEMENT_NOT_FOUND")
	}
	m := s.store.Get(idx)
	if in.Quantity != nil {
		m.Quantity = *in.Quantity
	}
	if in.UnitPurchasePrice != nil {
		m.UnitPurchasePrice = in.UnitPurchasePrice
	}
	if in.SupplierID != nil {
		m.SupplierID = in.SupplierID
		if sp, ok := s.catalog.ResolveSupplier(*in.SupplierID); ok {
			m.Supplier = sp
		}
	}
	if in.DestinationBranchID != nil {
		m.DestinationBranchID = in.DestinationBranchID
	}
	if in.WasteReason != nil {
		m.WasteReason = in.WasteReason
	}
	if in.Notes != nil {
		m.Notes = in.Notes
	}
	if in.ExpirationDate != nil {
		m.ExpirationDate = in.ExpirationDate
	}
	m.UpdatedAt = time.Now()
	s.store.Set(idx, m)
	return &m, nil
}

// dateRangeBound calcula la cota inferior de la ventana de fechas.
// today = medianoche local del día en curso; week = ahora menos 7 días;
// month = ahora menos 1 mes calendario; cualquier otro valor = época.
func dateRangeBound(dateRange string, now time.Time) time.Time {
	switch dateRange {
	case dto.DateRangeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case dto.DateRangeWeek:
		return now.AddDate(0, 0, -7)
	case dto.DateRangeMonth:
		return now.AddDate(0, -1, 0)
	default:
		return time.Unix(0, 0)
	}
}

func keepMovements(items []entity.InventoryMovement, pred func(entity.InventoryMovement) bool) []entity.InventoryMovement {
	out := items[:0:0]
	for _, m := range items {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}

func movementLess(field string) func(a, b entity.InventoryMovement) bool {
	switch field {
	case "quantity":
		return func(a, b entity.InventoryMovement) bool { return a.Quantity.LessThan(b.Quantity) }
	case "transaction_type":
		return func(a, b entity.InventoryMovement) bool { return a.TransactionType < b.TransactionType }
	default: // created_at
		return func(a, b entity.InventoryMovement) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}
