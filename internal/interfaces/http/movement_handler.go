package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/inventory"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/usecase"
)

// MovementHandler maneja el log de movimientos de inventario. El alta pasa
// por el recorder para que log y ledger queden coherentes.
type MovementHandler struct {
	svc      *usecase.InventoryMovementService
	recorder *inventory.Recorder
}

// NewMovementHandler construye el handler de movimientos.
func NewMovementHandler(svc *usecase.InventoryMovementService, recorder *inventory.Recorder) *MovementHandler {
	return &MovementHandler{svc: svc, recorder: recorder}
}

// List admite los filtros conjuntivos del log (tipo, categoría, rango de fecha).
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page, err := h.svc.GetAll(c.Context(), parseMovementFilters(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetByID responde la entidad desnuda.
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
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

// Create registra el movimiento y aplica el delta al stock como unidad lógica.
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	mov, _, err := h.recorder.RecordMovementAndUpdateStock(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondEnvelope(c, fiber.StatusCreated, mov, "movimiento registrado")
}

// Update solo toca campos secundarios; el tipo y el artículo nunca cambian.
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.Update(c.Context(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondEnvelope(c, fiber.StatusOK, out, "actualizado")
}

// Delete retira un movimiento del log. No revierte el stock.
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	if err := h.svc.Remove(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return respondEnvelope(c, fiber.StatusOK, nil, "eliminado")
}
