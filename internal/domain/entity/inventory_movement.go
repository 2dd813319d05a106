package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN       = "IN"       // entrada
	MovementTypeOUT      = "OUT"      // salida
	MovementTypeWASTE    = "WASTE"    // merma
	MovementTypeTRANSFER = "TRANSFER" // traslado entre sucursales
)

// InventoryMovement registro append-only de un cambio de cantidad.
// Se crea una vez; update solo ajusta campos secundarios (precio, proveedor,
// notas, vencimiento), nunca el tipo de transacción ni el artículo.
type InventoryMovement struct {
	ID                  string           `json:"id"`
	InventoryItemID     string           `json:"inventory_item_id"`
	BranchID            string           `json:"branch_id"`
	TransactionType     string           `json:"transaction_type"`
	Quantity            decimal.Decimal  `json:"quantity"` // escalar positivo
	UnitPurchasePrice   *decimal.Decimal `json:"unit_purchase_price,omitempty"`
	SupplierID          *string          `json:"supplier_id,omitempty"`
	DestinationBranchID *string          `json:"destination_branch_id,omitempty"` // solo TRANSFER
	WasteReason         *string          `json:"waste_reason,omitempty"`          // solo WASTE
	Notes               *string          `json:"notes,omitempty"`
	ExpirationDate      *string          `json:"expiration_date,omitempty"` // YYYY-MM-DD
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`

	// Relaciones enriquecidas.
	InventoryItem *InventoryItem `json:"inventory_item,omitempty"`
	Supplier      *Supplier      `json:"supplier,omitempty"`
}

// ValidMovementType indica si el tipo de transacción es uno de los cuatro conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeWASTE, MovementTypeTRANSFER:
		return true
	}
	return false
}
