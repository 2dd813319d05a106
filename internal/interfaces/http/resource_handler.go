package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
)

// resourceService es el contrato común de los servicios CRUD planos.
type resourceService[T any, C any] interface {
	GetAll(ctx context.Context, f dto.BaseFilters) (*dto.PaginatedResponse[T], error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id string, in C) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ResourceHandler maneja las peticiones HTTP de un recurso CRUD plano.
// Un solo handler genérico cubre sucursales, departamentos, categorías,
// unidades, proveedores y artículos: todos comparten el mismo contrato.
type ResourceHandler[T any, C any] struct {
	svc resourceService[T, C]
}

// NewResourceHandler construye el handler para un servicio CRUD.
func NewResourceHandler[T any, C any](svc resourceService[T, C]) *ResourceHandler[T, C] {
	return &ResourceHandler[T, C]{svc: svc}
}

// List responde el shape plano {data, pagination}.
func (h *ResourceHandler[T, C]) List(c *fiber.Ctx) error {
	page, err := h.svc.GetAll(c.Context(), parseBaseFilters(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetByID responde la entidad desnuda.
func (h *ResourceHandler[T, C]) GetByID(c *fiber.Ctx) error {
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

// Create responde el sobre {success, data} con 201.
func (h *ResourceHandler[T, C]) Create(c *fiber.Ctx) error {
	var in C
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.Create(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondEnvelope(c, fiber.StatusCreated, out, "creado")
}

// Update responde el sobre {success, data}.
func (h *ResourceHandler[T, C]) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	var in C
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.Update(c.Context(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondEnvelope(c, fiber.StatusOK, out, "actualizado")
}

// Delete responde el sobre {success} sin data.
func (h *ResourceHandler[T, C]) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return respondEnvelope(c, fiber.StatusOK, nil, "eliminado")
}
