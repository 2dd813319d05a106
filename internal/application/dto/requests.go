package dto

import "github.com/shopspring/decimal"

// CreateBranchRequest body para crear/actualizar una sucursal.
type CreateBranchRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateDepartmentRequest body para crear/actualizar un departamento.
type CreateDepartmentRequest struct {
	BranchID    string `json:"branch_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateCategoryRequest body para crear/actualizar una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateUnitRequest body para crear/actualizar una unidad de medida.
type CreateUnitRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// CreateSupplierRequest body para crear/actualizar un proveedor.
type CreateSupplierRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateInventoryItemRequest body para crear/actualizar un artículo.
type CreateInventoryItemRequest struct {
	Name              string `json:"name"`
	CategoryID        string `json:"inventory_item_category_id"`
	UnitID            string `json:"unit_id"`
	DepartmentID      string `json:"department_id"`
	BranchID          string `json:"branch_id"`
	ThresholdQuantity int    `json:"threshold_quantity"`
	ReorderQuantity   int    `json:"reorder_quantity"`
}

// CreateStockEntryRequest entrada del ledger: un movimiento a registrar.
type CreateStockEntryRequest struct {
	InventoryItemID     string           `json:"inventory_item_id"`
	BranchID            string           `json:"branch_id"`
	TransactionType     string           `json:"transaction_type"` // IN | OUT | WASTE | TRANSFER
	Quantity            decimal.Decimal  `json:"quantity"`
	UnitPurchasePrice   *decimal.Decimal `json:"unit_purchase_price,omitempty"`
	SupplierID          *string          `json:"supplier_id,omitempty"`
	DestinationBranchID *string          `json:"destination_branch_id,omitempty"`
	WasteReason         *string          `json:"waste_reason,omitempty"`
	Notes               *string          `json:"notes,omitempty"`
	ExpirationDate      *string          `json:"expiration_date,omitempty"`
}

// UpdateMovementRequest campos secundarios modificables de un movimiento.
// El tipo de transacción y el artículo nunca cambian después del alta.
type UpdateMovementRequest struct {
	Quantity            *decimal.Decimal `json:"quantity,omitempty"`
	UnitPurchasePrice   *decimal.Decimal `json:"unit_purchase_price,omitempty"`
	SupplierID          *string          `json:"supplier_id,omitempty"`
	DestinationBranchID *string          `json:"destination_branch_id,omitempty"`
	WasteReason         *string          `json:"waste_reason,omitempty"`
	Notes               *string          `json:"notes,omitempty"`
	ExpirationDate      *string          `json:"expiration_date,omitempty"`
}
