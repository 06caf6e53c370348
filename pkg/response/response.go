// Package response writes the JSON bodies shared by every handler.
package response

import (
	"encoding/json"
	"net/http"

	"storefront/pkg/logger"
)

// Message is the {"message": "..."} body used for acknowledgements.
type Message struct {
	Message string `json:"message"`
}

// Error is the {"error": "..."} body used for failures.
type Error struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

// OK writes v with status 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Fail writes an error body with the given status code.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Error{Error: message})
}
