package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tlhtlh2211/datavis-project2/internal/core/domain"
	"github.com/tlhtlh2211/datavis-project2/internal/core/ports"
)

// Machine-readable error codes.
const (
	errCodeInvalidArgument       = "INVALID_ARGUMENT"
	errCodeNotFound              = "NOT_FOUND"
	errCodeFeaturesUnavailable   = "FEATURES_UNAVAILABLE"
	errCodeProviderNotConfigured = "PROVIDER_NOT_CONFIGURED"
	errCodeInternal              = "INTERNAL"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// internalMessage replaces the detail of unexpected errors in responses.
const internalMessage = "internal server error"

// writeError sends the mapped status and code. Unexpected errors are logged
// with the request ID and reported to the client without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("internal error",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeErrorWithCode(w, status, internalMessage, code)
		return
	}
	writeErrorWithCode(w, status, err.Error(), code)
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, errCodeInvalidArgument
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errCodeNotFound
	case errors.Is(err, ports.ErrFeaturesUnavailable):
		return http.StatusBadGateway, errCodeFeaturesUnavailable
	case errors.Is(err, ports.ErrProviderNotConfigured):
		return http.StatusServiceUnavailable, errCodeProviderNotConfigured
	default:
		return http.StatusInternalServerError, errCodeInternal
	}
}
