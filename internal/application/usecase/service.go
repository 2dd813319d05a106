// Package usecase contiene un servicio por recurso. Cada operación decide
// primero entre el camino vivo (cliente REST) y el camino mock (store en
// memoria con latencia y errores simulados), según la configuración.
package usecase

import (
	"net/url"
	"strconv"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
)

// baseQuery construye los query params comunes de los listados.
// Solo incluye los filtros presentes.
func baseQuery(f dto.BaseFilters) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.SortField != "" {
		q.Set("sort_field", f.SortField)
	}
	if f.SortDirection != "" {
		q.Set("sort_direction", f.SortDirection)
	}
	if f.BranchID != "" {
		q.Set("branch_id", f.BranchID)
	}
	if f.DepartmentID != "" {
		q.Set("department_id", f.DepartmentID)
	}
	return q
}

// withQuery adjunta los query params al endpoint si hay alguno.
func withQuery(endpoint string, q url.Values) string {
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}
