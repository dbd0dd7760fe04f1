package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/user/macie-relay/internal/adapter/api/middleware"
	"github.com/user/macie-relay/internal/domain"
)

// successResponse is the envelope for every 2xx body.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorResponse is the envelope for every non-2xx body.
type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(successResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Success: false,
		Error: errorBody{
			Type:      errType,
			Message:   message,
			RequestID: middleware.RequestIDFrom(r.Context()),
		},
	})
}

// StatusForError maps a domain error to an HTTP status and error type.
// Request-side problems are 4xx, upstream failures are 502.
func StatusForError(err error) (int, string) {
	var (
		validationErr *domain.ValidationError
		formatErr     *domain.DestinationFormatError
		notFoundErr   *domain.DestinationNotFoundError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &formatErr):
		return http.StatusBadRequest, "validation_error"
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusBadGateway, "upstream_error"
	}
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, errType := StatusForError(err)
	writeError(w, r, status, errType, err.Error())
}
