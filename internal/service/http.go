package service

import (
	"encoding/json"
	"net/http"
)

// errorBody is the canonical error payload returned by the API.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes the provided value to the response writer as JSON.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError renders an error response using the canonical error shape.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]any{
		"error": errorBody{Code: code, Message: message},
	})
}
