package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/usecase"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain/entity"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/memory"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/config"
)

func seedBranches(now time.Time) []entity.Branch {
	return []entity.Branch{
		{ID: "branch-1", Name: "Centro", CreatedAt: now.AddDate(0, 0, -30)},
		{ID: "branch-2", Name: "Ávila Norte", CreatedAt: now.AddDate(0, 0, -20)},
		{ID: "branch-3", Name: "bodega sur", CreatedAt: now.AddDate(0, 0, -10)},
	}
}

func newBranchService(t *testing.T) (*usecase.BranchService, *memory.Store[entity.Branch]) {
	t.Helper()
	store := memory.NewStore(seedBranches(time.Now()))
	return usecase.NewBranchService(mockCfg, nil, store, nil), store
}

func TestBranches_OrdenPorNombreYPaginacion(t *testing.T) {
	svc, _ := newBranchService(t)

	page, err := svc.GetAll(context.Background(), dto.BaseFilters{
		SortField:     "name",
		SortDirection: "asc",
		Page:          1,
		PerPage:       2,
	})
	require.NoError(t, err)

	// El orden ignora acentos y mayúsculas: Ávila < bodega < Centro.
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Ávila Norte", page.Data[0].Name)
	assert.Equal(t, "bodega sur", page.Data[1].Name)

	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
}

func TestBranches_BusquedaPorNombre(t *testing.T) {
	svc, _ := newBranchService(t)

	f := dto.BaseFilters{Search: "avila"}
	page, err := svc.GetAll(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "branch-2", page.Data[0].ID)
}

func TestBranches_GetByIDInexistente(t *testing.T) {
	svc, _ := newBranchService(t)

	_, err := svc.GetByID(context.Background(), "branch-999")
	require.Error(t, err)

	svcErr, ok := domain.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, 404, svcErr.Status)
	assert.Equal(t, "BRANCH_NOT_FOUND", svcErr.Code)
}

func TestBranches_CreateQuedaPrimero(t *testing.T) {
	svc, store := newBranchService(t)

	b, err := svc.Create(context.Background(), dto.CreateBranchRequest{Name: "Sucursal Nueva"})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, b.ID, store.Items()[0].ID, "el alta más reciente encabeza la lista")
	assert.Equal(t, 4, store.Len())
}

func TestBranches_UpdateYDelete(t *testing.T) {
	svc, store := newBranchService(t)

	got, err := svc.Update(context.Background(), "branch-1", dto.CreateBranchRequest{Name: "Centro Histórico"})
	require.NoError(t, err)
	assert.Equal(t, "Centro Histórico", got.Name)

	require.NoError(t, svc.Delete(context.Background(), "branch-1"))
	assert.Equal(t, 2, store.Len())

	err = svc.Delete(context.Background(), "branch-1")
	require.Error(t, err, "borrar dos veces falla con not found")
}

func TestBranches_ResetRestauraSemilla(t *testing.T) {
	svc, store := newBranchService(t)

	_, err := svc.Create(context.Background(), dto.CreateBranchRequest{Name: "Temporal"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), "branch-2"))

	svc.ResetMockData()
	assert.Equal(t, 3, store.Len())
	_, err = svc.GetByID(context.Background(), "branch-2")
	assert.NoError(t, err)
}

// Con ErrorRate 1 toda operación mock falla con el error simulado.
func TestBranches_SimuladorInyectaError(t *testing.T) {
	store := memory.NewStore(seedBranches(time.Now()))
	sim := memory.NewSimulator(config.MockConfig{ErrorRate: 1})
	svc := usecase.NewBranchService(mockCfg, nil, store, sim)

	_, err := svc.GetAll(context.Background(), dto.BaseFilters{})
	require.Error(t, err)

	svcErr, ok := domain.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "MOCK_ERROR", svcErr.Code)
	assert.Equal(t, 500, svcErr.Status)
}

// La latencia artificial respeta la cancelación del contexto.
func TestBranches_SimuladorRespetaCancelacion(t *testing.T) {
	store := memory.NewStore(seedBranches(time.Now()))
	sim := memory.NewSimulator(config.MockConfig{DelayMin: time.Second, DelayMax: 2 * time.Second})
	svc := usecase.NewBranchService(mockCfg, nil, store, sim)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := svc.GetAll(ctx, dto.BaseFilters{})
	require.Error(t, err)

	svcErr, ok := domain.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "NETWORK_ERROR", svcErr.Code)
}
