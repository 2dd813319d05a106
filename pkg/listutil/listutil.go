// Package listutil contiene las funciones puras de listado que comparten
// todos los servicios en modo mock: búsqueda por substring, orden estable
// y paginación por slicing. Operan sobre copias; nunca mutan la entrada.
package listutil

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza un texto para comparación: minúsculas y sin diacríticos,
// de modo que "café" y "Cafe" se consideren equivalentes.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Matches indica si alguno de los campos contiene el término buscado
// (substring, insensible a mayúsculas y acentos).
func Matches(query string, fields ...string) bool {
	q := Fold(query)
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}

// FilterBySearch conserva los elementos cuyos campos (extraídos con fields)
// contienen el término buscado. Query vacío devuelve una copia sin filtrar.
func FilterBySearch[T any](items []T, query string, fields func(T) []string) []T {
	out := make([]T, 0, len(items))
	if query == "" {
		return append(out, items...)
	}
	for _, it := range items {
		if Matches(query, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}

// SortItems ordena de forma estable según less (orden ascendente);
// direction "desc" invierte el resultado. Devuelve una copia.
func SortItems[T any](items []T, direction string, less func(a, b T) bool) []T {
	out := append([]T(nil), items...)
	if direction == "desc" {
		sort.SliceStable(out, func(i, j int) bool { return less(out[j], out[i]) })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// Paginate devuelve el slice de la página pedida y el total de elementos.
// page y perPage deben venir normalizados (>= 1).
func Paginate[T any](items []T, page, perPage int) ([]T, int) {
	total := len(items)
	start := (page - 1) * perPage
	if start >= total {
		return []T{}, total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return append([]T(nil), items[start:end]...), total
}
