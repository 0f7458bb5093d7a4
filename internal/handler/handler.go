package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"chowline/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status and code.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service-layer error onto an HTTP response.
// Domain errors carry their own code; anything else is an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", logger)
}

// statusForCode maps domain error codes onto HTTP statuses. Reference
// failures in a request body are the caller's fault, so they map to 400
// rather than 404.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON, model.ErrCodeValidation, model.ErrCodeReferenceNotFound:
		return http.StatusBadRequest
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeConflict:
		return http.StatusConflict
	case model.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case model.ErrCodeCalculation:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body, reporting a client error on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// splitCSV splits a comma-separated query value, dropping empty parts.
func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// methodNotAllowed writes the standard 405 response.
func methodNotAllowed(w http.ResponseWriter, logger zerolog.Logger) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", logger)
}
