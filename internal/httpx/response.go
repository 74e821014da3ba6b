package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope every handler speaks. Details carries
// the per-field violation map on validation failures, nil otherwise.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload with the given status. A nil payload serializes to
// JSON null; marshalling happens before the status line so an encode
// failure never truncates a 2xx response.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes the ErrorResponse envelope.
func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}
