package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/usecase"
)

// StockHandler maneja los snapshots de stock. La cantidad nunca se fija por
// PUT: solo cambia sometiendo entradas al ledger.
type StockHandler struct {
	svc *usecase.InventoryStockService
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(svc *usecase.InventoryStockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// List responde el shape plano {data, pagination}.
func (h *StockHandler) List(c *fiber.Ctx) error {
	page, err := h.svc.GetAll(c.Context(), parseBaseFilters(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetByID responde la entidad desnuda.
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	out, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(out)
}

// AddEntry somete un movimiento al ledger y responde el snapshot resultante.
func (h *StockHandler) AddEntry(c *fiber.Ctx) error {
	var in dto.CreateStockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.AddEntry(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondEnvelope(c, fiber.StatusCreated, out, "entrada aplicada")
}
