package domain

import (
	"errors"
	"fmt"
)

// ServiceError es el único tipo de error que exponen las operaciones públicas:
// mensaje humano, status numérico estilo HTTP y código de máquina
// (ej. BRANCH_NOT_FOUND, FETCH_INVENTORY_MOVEMENTS_ERROR).
// Los callers deciden por Status/Code, nunca por el texto del mensaje.
type ServiceError struct {
	Message string
	Status  int
	Code    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError construye un error de servicio.
func NewServiceError(message string, status int, code string) *ServiceError {
	return &ServiceError{Message: message, Status: status, Code: code}
}

// WrapService envuelve cualquier fallo en un ServiceError uniforme conservando
// el mensaje causal como contexto.
func WrapService(message string, err error, status int, code string) *ServiceError {
	if err != nil {
		message = fmt.Sprintf("%s: %s", message, err.Error())
	}
	return &ServiceError{Message: message, Status: status, Code: code}
}

// NotFound error 404 con el código indicado.
func NotFound(message, code string) *ServiceError {
	return &ServiceError{Message: message, Status: 404, Code: code}
}

// NetworkError error de transporte: status 0, sin presupuesto de reintentos.
func NetworkError(message string) *ServiceError {
	return &ServiceError{Message: message, Status: 0, Code: "NETWORK_ERROR"}
}

// SimulatedError fallo aleatorio del modo mock.
func SimulatedError() *ServiceError {
	return &ServiceError{Message: "Simulated API error", Status: 500, Code: "MOCK_ERROR"}
}

// AsServiceError extrae el *ServiceError de la cadena de errores, si existe.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Terminal indica si un fallo no debe reintentarse: cualquier status en
// [400,500) es un error del cliente y se propaga de inmediato.
// Red (status 0), timeout y 5xx son transitorios.
func Terminal(err error) bool {
	se, ok := AsServiceError(err)
	if !ok {
		return false
	}
	return se.Status >= 400 && se.Status < 500
}
