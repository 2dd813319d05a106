package entity

import "time"

// InventoryItem artículo de inventario. La identidad es inmutable;
// los atributos se modifican vía update.
type InventoryItem struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	CategoryID        string    `json:"inventory_item_category_id"`
	UnitID            string    `json:"unit_id"`
	DepartmentID      string    `json:"department_id"`
	BranchID          string    `json:"branch_id"`
	ThresholdQuantity int       `json:"threshold_quantity"`
	ReorderQuantity   int       `json:"reorder_quantity"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relaciones enriquecidas por el backend (o por el join del modo mock).
	Category *Category `json:"category,omitempty"`
	Unit     *Unit     `json:"unit,omitempty"`
}
