package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain"
)

// Los listados responden el shape plano {data, pagination}; los GET por id
// devuelven la entidad desnuda; las mutaciones el sobre {success, data}.
// El cliente normaliza los tres shapes, así que variarlos acá mantiene
// ejercitados los tres caminos durante el desarrollo.

func respondEnvelope(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success":   true,
		"data":      data,
		"message":   message,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error:     code,
		Message:   message,
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
		Path:      c.Path(),
	})
}

// respondServiceError traduce errores de servicio al cuerpo de error HTTP.
func respondServiceError(c *fiber.Ctx, err error) error {
	if svcErr, ok := domain.AsServiceError(err); ok {
		status := svcErr.Status
		if status <= 0 {
			status = fiber.StatusBadGateway
		}
		return respondError(c, status, svcErr.Code, svcErr.Message)
	}
	return respondError(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

func parseBaseFilters(c *fiber.Ctx) dto.BaseFilters {
	return dto.BaseFilters{
		Search:        c.Query("search"),
		Page:          c.QueryInt("page", 1),
		PerPage:       c.QueryInt("per_page", 10),
		SortField:     c.Query("sort_field"),
		SortDirection: c.Query("sort_direction"),
		BranchID:      c.Query("branch_id"),
		DepartmentID:  c.Query("department_id"),
	}
}

func parseMovementFilters(c *fiber.Ctx) dto.MovementFilters {
	return dto.MovementFilters{
		BaseFilters:     parseBaseFilters(c),
		TransactionType: c.Query("transaction_type"),
		Category:        c.Query("category"),
		DateRange:       c.Query("date_range"),
	}
}
