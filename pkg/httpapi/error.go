package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the uniform error body returned by the REST controllers:
// a stable machine-readable code, an operator-facing message, and optional
// per-field metadata (validation failures map field name to message).
type ErrorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// WriteJSON encodes payload as the response body with the given status. A
// nil payload writes the status and headers only.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

// WriteError responds with an ErrorEnvelope. meta may be nil.
func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	envelope := ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	}
	return WriteJSON(w, status, &envelope)
}
