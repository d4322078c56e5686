package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bettrack/api/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps the failure taxonomy onto HTTP statuses. Anything
// outside the known categories is logged with full context and flattened
// to a generic 500.
func writeDomainError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, domain.ErrEmailTaken.Error())
	case errors.Is(err, domain.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, domain.ErrTokenInvalid.Error())
	case errors.Is(err, domain.ErrBetNotFound):
		writeError(w, http.StatusNotFound, domain.ErrBetNotFound.Error())
	default:
		log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
	}
}

// parseDateRange reads optional startDate/endDate RFC 3339 query params.
func parseDateRange(r *http.Request) (start, end *time.Time, err error) {
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		start = &t
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		end = &t
	}
	return start, end, nil
}
