// Package memory implementa el backend mock del SDK: stores en memoria con
// snapshot semilla inyectado, reset explícito y simulación de latencia y
// errores. Cada servicio posee su propio store; no hay singletons de módulo.
package memory

import "sync"

// Store colección en memoria de un recurso. Guarda una copia privada del
// snapshot semilla; Reset vuelve a ese snapshot. Todas las operaciones
// toman el lock, así cada llamada observa orden de programa.
type Store[T any] struct {
	mu    sync.Mutex
	seed  []T
	items []T
}

// NewStore crea un store con el snapshot inicial dado.
func NewStore[T any](seed []T) *Store[T] {
	s := &Store[T]{seed: append([]T(nil), seed...)}
	s.items = append([]T(nil), s.seed...)
	return s
}

// Items devuelve una copia del contenido actual.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...)
}

// Len devuelve el número de elementos.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Find devuelve el primer elemento que cumple match.
func (s *Store[T]) Find(match func(T) bool) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// FindIndex devuelve el índice del primer elemento que cumple match, o -1.
func (s *Store[T]) FindIndex(match func(T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if match(it) {
			return i
		}
	}
	return -1
}

// Get devuelve el elemento en la posición i.
func (s *Store[T]) Get(i int) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[i]
}

// Set reemplaza el elemento en la posición i.
func (s *Store[T]) Set(i int, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[i] = item
}

// Prepend inserta al inicio (orden más-reciente-primero, como el backend).
func (s *Store[T]) Prepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{item}, s.items...)
}

// Remove elimina el primer elemento que cumple match. Devuelve false si no existe.
func (s *Store[T]) Remove(match func(T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if match(it) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Reset descarta los cambios y restaura el snapshot semilla.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T(nil), s.seed...)
}
