package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/diewo77/cleanbiz/auth"
	"github.com/diewo77/cleanbiz/httpx"
	"github.com/diewo77/cleanbiz/internal/services"
)

// scope extracts the storage scope key for the authenticated user.
func scope(r *http.Request) (string, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return "", false
	}
	return auth.ScopeKey(uid), true
}

// now is swapped in tests to pin the clock.
var now = time.Now

// writeServiceError maps service errors onto the API error contract.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, fallback, nil)
}
