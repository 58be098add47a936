package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/api"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
)

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(kind, common.ErrNotVerified):
		return http.StatusForbidden
	case errors.Is(kind, common.ErrInvalidToken), errors.Is(kind, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(kind, common.ErrResendTooSoon):
		return http.StatusTooManyRequests
	case errors.Is(kind, common.ErrNotificationFailure),
		errors.Is(kind, common.ErrConfiguration),
		errors.Is(kind, common.ErrorInternal):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn(r.Context(), "failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := common.Kind(err)
	code := statusFor(kind)

	if code >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}

	body := api.ErrorResponse{Message: common.Message(kind)}
	if s.exposeErrors {
		body.Error = err.Error()
	}
	s.writeJSON(w, r, code, body)
}

// decode reads a JSON body into v. Malformed bodies are invalid input.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %w: %v", common.ErrInvalidInput, err)
	}
	return nil
}
