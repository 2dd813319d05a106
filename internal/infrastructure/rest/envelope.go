package rest

import (
	"encoding/json"
	"time"
)

// Envelope es la envoltura normalizada `{data, success, message, timestamp}`
// alrededor de cualquier payload. Data queda crudo; cada servicio lo
// decodifica al tipo que espera.
type Envelope struct {
	Data      json.RawMessage `json:"data"`
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// apiError es el cuerpo de error que produce el backend.
type apiError struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path,omitempty"`
}

// Normalize convierte las tres formas de respuesta posibles en una sola
// envoltura. El backend no garantiza una forma uniforme entre endpoints:
//
//  1. objeto con `data` y `pagination` hermanos -> payload paginado directo,
//     se envuelve entero;
//  2. objeto con campo `success` -> ya viene envuelto, se decodifica tal cual;
//  3. cualquier otra cosa -> entidad cruda, se envuelve con éxito sintetizado.
func Normalize(raw []byte) (*Envelope, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil {
		_, hasData := probe["data"]
		_, hasPagination := probe["pagination"]
		if hasData && hasPagination {
			return synthesize(raw), nil
		}
		if _, hasSuccess := probe["success"]; hasSuccess {
			var env Envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return nil, err
			}
			return &env, nil
		}
	}
	return synthesize(raw), nil
}

func synthesize(raw []byte) *Envelope {
	return &Envelope{
		Data:      json.RawMessage(raw),
		Success:   true,
		Message:   "Success",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// DecodeData decodifica Envelope.Data al tipo pedido.
func DecodeData[T any](env *Envelope) (T, error) {
	var out T
	err := json.Unmarshal(env.Data, &out)
	return out, err
}
