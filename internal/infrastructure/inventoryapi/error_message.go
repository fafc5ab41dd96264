package inventoryapi

import (
	"bytes"
	"encoding/json"
)

// ErrorMessage extrae el mensaje a mostrar de un cuerpo de error: "error" si es truthy,
// luego "errors" si es truthy, y si no fallback. Los strings se devuelven tal cual; otros
// valores (objetos, arrays, números) como JSON compacto.
func ErrorMessage(body []byte, fallback string) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	for _, key := range []string{"error", "errors"} {
		raw, ok := payload[key]
		if !ok || !truthy(raw) {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return string(raw)
		}
		return compact.String()
	}
	return fallback
}

// truthy replica la veracidad de un valor JSON: null, false, 0 y "" son falsos.
func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
