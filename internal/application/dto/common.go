package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DataResponse envoltorio {"data": ...} usado por todas las respuestas exitosas de la API.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// ErrorResponse cuerpo de error HTTP. Error es el mensaje que muestran los clientes.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrorResponse cuerpo de error 422 con mensajes por campo.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// naiveLayouts formatos ISO-8601 sin zona horaria (se interpretan en UTC).
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp serializa en RFC 3339 y acepta además marcas ISO-8601 sin zona.
type Timestamp time.Time

// MarshalJSON emite RFC 3339 con nanosegundos.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON acepta RFC 3339, ISO-8601 sin zona (UTC) o null.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	s = strings.TrimSpace(s)
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*t = Timestamp(v)
		return nil
	}
	for _, layout := range naiveLayouts {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t = Timestamp(v)
			return nil
		}
	}
	return fmt.Errorf("timestamp: formato no reconocido %q", s)
}

// Time devuelve el valor como time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }
