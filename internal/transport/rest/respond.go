package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResponse struct {
	Error  string               `json:"error"`
	Fields []fieldErrorResponse `json:"fields,omitempty"`
}

// handleError maps domain errors to HTTP statuses. Anything unclassified is
// logged and hidden behind a generic 500.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	var extErr *domain.ExtractionError

	switch {
	case errors.As(err, &vErr):
		fields := make([]fieldErrorResponse, len(vErr.Errors))
		for i, fe := range vErr.Errors {
			fields[i] = fieldErrorResponse{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:  "validation failed",
			Fields: fields,
		})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrInvalidSessionState):
		writeError(w, http.StatusConflict, "no session in the required state")
	case errors.Is(err, domain.ErrInsufficientVocabulary):
		writeError(w, http.StatusUnprocessableEntity, "no vocabulary stored for this language")
	case errors.As(err, &extErr):
		handleExtractionError(w, extErr)
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func handleExtractionError(w http.ResponseWriter, err *domain.ExtractionError) {
	status := http.StatusUnprocessableEntity
	if err.Reason == domain.ExtractionGatewayUnreachable {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{
		"error":  "extraction failed",
		"reason": string(err.Reason),
		"stage":  err.Stage,
		"field":  err.Field,
	})
}
