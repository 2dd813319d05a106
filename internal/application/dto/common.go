package dto

// Pagination metadatos de página en respuestas de listado.
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination calcula los metadatos para un total dado.
// page y perPage deben venir ya normalizados (ver BaseFilters.Normalize).
func NewPagination(page, perPage, total int) Pagination {
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// PaginatedResponse página de resultados con sus metadatos.
type PaginatedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// BaseFilters filtros comunes a todos los listados.
type BaseFilters struct {
	Search        string
	Page          int
	PerPage       int
	SortField     string
	SortDirection string // asc | desc
	BranchID      string
	DepartmentID  string
}

// Normalize aplica valores por defecto si Page/PerPage son cero.
func (f *BaseFilters) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = 10
	}
}

// Rangos de fecha reconocidos por los listados de movimientos.
const (
	DateRangeToday = "today"
	DateRangeWeek  = "week"
	DateRangeMonth = "month"
)

// MovementFilters filtros del log de movimientos.
type MovementFilters struct {
	BaseFilters
	TransactionType string
	Category        string // id de categoría, vía el artículo referenciado
	DateRange       string // today | week | month | otro = sin cota inferior
}
