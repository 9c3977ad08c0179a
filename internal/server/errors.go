package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/jobfit/internal/ingestion"
	"github.com/jonathan/jobfit/internal/library"
	"github.com/jonathan/jobfit/internal/types"
	"go.uber.org/zap"
)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error      string                  `json:"error"`
	Field      string                  `json:"field,omitempty"`
	Validation *types.ValidationResult `json:"validation,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		inputErr    *types.InputError
		rejectedErr *library.RejectedError
		extractErr  *ingestion.ExtractionError
	)
	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, library.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, library.ErrDuplicateID):
		return http.StatusConflict
	case errors.As(err, &rejectedErr), errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and writes it. Internal errors are logged
// and their detail withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	body := errorBody{Error: err.Error()}

	var (
		inputErr    *types.InputError
		rejectedErr *library.RejectedError
	)
	if errors.As(err, &inputErr) {
		body.Field = inputErr.Field
	}
	if errors.As(err, &rejectedErr) {
		body.Validation = &rejectedErr.Validation
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		body.Error = "internal error"
	}
	s.jsonResponse(w, status, body)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}
