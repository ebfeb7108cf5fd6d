package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hinglaj-store/internal/model"

	"github.com/rs/zerolog"
)

// statusForCode maps domain error codes onto HTTP statuses.
var statusForCode = map[string]int{
	model.ErrCodeValidation:      http.StatusBadRequest,
	model.ErrCodeUnauthenticated: http.StatusUnauthorized,
	model.ErrCodeForbidden:       http.StatusForbidden,
	model.ErrCodeNotFound:        http.StatusNotFound,
	model.ErrCodeConflict:        http.StatusConflict,
	model.ErrCodeInternalError:   http.StatusInternalServerError,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeServiceError maps a service failure onto the wire. Domain errors keep
// their message and mapped status; anything else is an unexpected failure
// surfaced as a 500 with the generic fallback, detail logged server-side only.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusForCode[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeError(w, status, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: fallback})
}

// idFromPath extracts the integer id segment following prefix, e.g. 17 from
// /api/orders/17 or /api/orders/17/status.
func idFromPath(path, prefix string) (int, error) {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return strconv.Atoi(rest)
}
