package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/wordcount"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadResponse is returned for a counted upload.
type UploadResponse struct {
	FileName string `json:"file_name"`
	wordcount.Result
}

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status string `json:"status"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
