package http

import (
	"encoding/json"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Message: message})
}

func respondFieldErrors(w http.ResponseWriter, errs map[string][]string) {
	respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Message: "The given data was invalid.",
		Errors:  errs,
	})
}
