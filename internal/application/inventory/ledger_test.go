package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/inventory"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain/entity"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// itemsStub resuelve artículos desde un mapa fijo.
type itemsStub map[string]*entity.InventoryItem

func (s itemsStub) ResolveItem(id string) (*entity.InventoryItem, bool) {
	it, ok := s[id]
	return it, ok
}

func newLedger(t *testing.T, seed []entity.InventoryStock) (*inventory.Ledger, *memory.Store[entity.InventoryStock]) {
	t.Helper()
	store := memory.NewStore(seed)
	items := itemsStub{
		"item-1": {ID: "item-1", Name: "Café en grano"},
	}
	return inventory.NewLedger(store, items), store
}

func entry(itemID, tipo string, qty int64) dto.CreateStockEntryRequest {
	return dto.CreateStockEntryRequest{
		InventoryItemID: itemID,
		BranchID:        "branch-1",
		TransactionType: tipo,
		Quantity:        decimal.NewFromInt(qty),
	}
}

func seedStock(qty int64) []entity.InventoryStock {
	return []entity.InventoryStock{{
		ID:                "stock-1",
		InventoryItemID:   "item-1",
		BranchID:          "branch-1",
		Quantity:          decimal.NewFromInt(qty),
		UnitPurchasePrice: decimal.NewFromInt(5),
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aritmética del ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitMovement_INSumaCantidad(t *testing.T) {
	ledger, _ := newLedger(t, seedStock(10))

	stock, err := ledger.SubmitMovement(context.Background(), entry("item-1", entity.MovementTypeIN, 4))
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(14)),
		"IN debe sumar la cantidad: 10 + 4 = 14, obtuvo %s", stock.Quantity)
}

func TestSubmitMovement_OUTRestaCantidad(t *testing.T) {
	ledger, _ := newLedger(t, seedStock(10))

	stock, err := ledger.SubmitMovement(context.Background(), entry("item-1", entity.MovementTypeOUT, 3))
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestSubmitMovement_WASTERestaComoOUT(t *testing.T) {
	ledger, _ := newLedger(t, seedStock(10))

	stock, err := ledger.SubmitMovement(context.Background(), entry("item-1", entity.MovementTypeWASTE, 10))
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
}

// Sobre-resta: el piso es cero, nunca un error ni una cantidad negativa.
func TestSubmitMovement_RestaSaturadaEnCero(t *testing.T) {
	ledger, store := newLedger(t, seedStock(5))

	stock, err := ledger.SubmitMovement(context.Background(), entry("item-1", entity.MovementTypeOUT, 50))
	require.NoError(t, err, "sobre-restar no es un error")
	assert.True(t, stock.Quantity.IsZero(), "la cantidad satura en cero")

	persisted, ok := store.Find(func(s entity.InventoryStock) bool { return s.ID == "stock-1" })
	require.True(t, ok)
	assert.True(t, persisted.Quantity.IsZero(), "el store debe reflejar la saturación")
}

// TRANSFER no altera la cantidad del registro origen.
func TestSubmitMovement_TRANSFERNoCambiaCantidad(t *testing.T) {
	ledger, _ := newLedger(t, seedStock(10))

	stock, err := ledger.SubmitMovement(context.Background(), entry("item-1", entity.MovementTypeTRANSFER, 4))
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta perezosa y retención de opcionales
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitMovement_AltaPerezosaEnPrimerMovimiento(t *testing.T) {
	ledger, store := newLedger(t, nil)

	in := entry("item-1", entity.MovementTypeIN, 8)
	stock, err := ledger.SubmitMovement(context.Background(), in)
	require.NoError(t, err)

	assert.NotEmpty(t, stock.ID)
	assert.Equal(t, "item-1", stock.InventoryItemID)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(8)))
	assert.True(t, stock.UnitPurchasePrice.IsZero(), "sin precio en el movimiento, el alta usa cero")
	assert.Equal(t, 1, store.Len())

	// La relación con el artículo viene resuelta del catálogo.
	require.NotNil(t, stock.InventoryItem)
	assert.Equal(t, "Café en grano", stock.InventoryItem.Name)
}

func TestSubmitMovement_PrecioYVencimientoSoloSeSobreescribenSiVienen(t *testing.T) {
	venc := "2026-12-31"
	seed := seedStock(10)
	seed[0].ExpirationDate = &venc
	ledger, _ := newLedger(t, seed)

	// Movimiento sin precio ni vencimiento: se conservan los anteriores.
	stock, err := ledger.SubmitMovement(context.Background(), entry("item-1", entity.MovementTypeIN, 1))
	require.NoError(t, err)
	assert.True(t, stock.UnitPurchasePrice.Equal(decimal.NewFromInt(5)))
	require.NotNil(t, stock.ExpirationDate)
	assert.Equal(t, "2026-12-31", *stock.ExpirationDate)

	// Movimiento con valores nuevos: se sobreescriben.
	nuevoPrecio := decimal.NewFromFloat(7.5)
	nuevoVenc := "2027-06-30"
	in := entry("item-1", entity.MovementTypeIN, 1)
	in.UnitPurchasePrice = &nuevoPrecio
	in.ExpirationDate = &nuevoVenc
	stock, err = ledger.SubmitMovement(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, stock.UnitPurchasePrice.Equal(nuevoPrecio))
	assert.Equal(t, "2027-06-30", *stock.ExpirationDate)
}

// Como máximo un registro por artículo: movimientos sucesivos mutan el mismo.
func TestSubmitMovement_UnSoloRegistroPorArticulo(t *testing.T) {
	ledger, store := newLedger(t, nil)

	_, err := ledger.SubmitMovement(context.Background(), entry("item-1", entity.MovementTypeIN, 5))
	require.NoError(t, err)
	_, err = ledger.SubmitMovement(context.Background(), entry("item-1", entity.MovementTypeIN, 3))
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	stock, _ := store.Find(func(s entity.InventoryStock) bool { return s.InventoryItemID == "item-1" })
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(8)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitMovement_TipoInvalidoFalla(t *testing.T) {
	ledger, store := newLedger(t, seedStock(10))

	_, err := ledger.SubmitMovement(context.Background(), entry("item-1", "SIDEWAYS", 1))
	require.Error(t, err)

	svcErr, ok := domain.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, 400, svcErr.Status)
	assert.Equal(t, "ADD_STOCK_ENTRY_ERROR", svcErr.Code)

	stock, _ := store.Find(func(s entity.InventoryStock) bool { return s.ID == "stock-1" })
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(10)), "un movimiento inválido no toca el stock")
}

func TestSubmitMovement_CantidadNegativaFalla(t *testing.T) {
	ledger, _ := newLedger(t, seedStock(10))

	_, err := ledger.SubmitMovement(context.Background(), entry("item-1", entity.MovementTypeIN, -2))
	require.Error(t, err)

	svcErr, ok := domain.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, 400, svcErr.Status)
}
