package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryStock snapshot materializado de la cantidad actual de un artículo.
// Derivado de los movimientos, nunca editado directamente: solo el ledger
// muta Quantity. Como máximo existe un registro por inventory_item_id.
type InventoryStock struct {
	ID                string          `json:"id"`
	InventoryItemID   string          `json:"inventory_item_id"`
	BranchID          string          `json:"branch_id"`
	Quantity          decimal.Decimal `json:"quantity"` // nunca negativa
	UnitPurchasePrice decimal.Decimal `json:"unit_purchase_price"`
	ExpirationDate    *string         `json:"expiration_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Relación enriquecida, refrescada desde el catálogo en cada escritura.
	InventoryItem *InventoryItem `json:"inventory_item,omitempty"`
}
