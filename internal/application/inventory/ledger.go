// Package inventory contiene el motor de stock: el ledger que materializa la
// cantidad actual por artículo a partir de los movimientos, y el recorder que
// mantiene log y ledger como una sola unidad lógica.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain/entity"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/memory"
)

// ItemResolver join de lectura contra el catálogo de artículos. El ledger
// nunca toca el store de artículos directamente.
type ItemResolver interface {
	ResolveItem(id string) (*entity.InventoryItem, bool)
}

// Ledger posee en exclusiva la mutación de InventoryStock.Quantity: los
// callers solo pueden someter movimientos, nunca fijar la cantidad.
// Mantiene como máximo un registro de stock por inventory_item_id.
type Ledger struct {
	stocks *memory.Store[entity.InventoryStock]
	items  ItemResolver
}

// NewLedger construye el ledger sobre el store de stock dado.
func NewLedger(stocks *memory.Store[entity.InventoryStock], items ItemResolver) *Ledger {
	return &Ledger{stocks: stocks, items: items}
}

// SubmitMovement deriva y muta el registro de stock del artículo del
// movimiento:
//
//   - IN suma la cantidad; OUT y WASTE la restan con saturación en cero
//     (la cantidad almacenada nunca es negativa; una sobre-resta no es un
//     error, es política deliberada). TRANSFER no altera la cantidad del
//     registro origen: el efecto en la sucursal destino es del backend.
//   - Precio y vencimiento solo se sobreescriben si el movimiento trae un
//     valor nuevo; si no, se conserva el anterior.
//   - Si el artículo no tiene registro, se crea con la cantidad del
//     movimiento y precio cero por defecto.
//   - La relación con el artículo se refresca desde el catálogo en cada
//     escritura.
func (l *Ledger) SubmitMovement(ctx context.Context, in dto.CreateStockEntryRequest) (*entity.InventoryStock, error) {
	if !entity.ValidMovementType(in.TransactionType) {
		return nil, domain.NewServiceError("Invalid transaction type: "+in.TransactionType, 400, "ADD_STOCK_ENTRY_ERROR")
	}
	if in.Quantity.IsNegative() {
		return nil, domain.NewServiceError("Quantity must not be negative", 400, "ADD_STOCK_ENTRY_ERROR")
	}

	now := time.Now()
	item, _ := l.items.ResolveItem(in.InventoryItemID)

	idx := l.stocks.FindIndex(func(s entity.InventoryStock) bool {
		return s.InventoryItemID == in.InventoryItemID
	})
	if idx >= 0 {
		stock := l.stocks.Get(idx)
		qty := stock.Quantity
		switch in.TransactionType {
		case entity.MovementTypeIN:
			qty = qty.Add(in.Quantity)
		case entity.MovementTypeOUT, entity.MovementTypeWASTE:
			qty = qty.Sub(in.Quantity)
		}
		// Resta saturada: el piso es cero, nunca un error.
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		stock.Quantity = qty
		if in.UnitPurchasePrice != nil {
			stock.UnitPurchasePrice = *in.UnitPurchasePrice
		}
		if in.ExpirationDate != nil {
			stock.ExpirationDate = in.ExpirationDate
		}
		if item != nil {
			stock.InventoryItem = item
		}
		stock.UpdatedAt = now
		l.stocks.Set(idx, stock)
		return &stock, nil
	}

	// Alta perezosa en el primer movimiento del artículo.
	price := decimal.Zero
	if in.UnitPurchasePrice != nil {
		price = *in.UnitPurchasePrice
	}
	stock := entity.InventoryStock{
		ID:                uuid.New().String(),
		InventoryItemID:   in.InventoryItemID,
		BranchID:          in.BranchID,
		Quantity:          in.Quantity,
		UnitPurchasePrice: price,
		ExpirationDate:    in.ExpirationDate,
		CreatedAt:         now,
		UpdatedAt:         now,
		InventoryItem:     item,
	}
	l.stocks.Prepend(stock)
	return &stock, nil
}
