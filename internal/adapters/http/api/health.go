package api

import (
	"net/http"
	"time"
)

// HealthHandler serves liveness checks.
type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// HandleHealth handles GET /healthz.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	const op = "api.health"

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", Wrap(op, ErrMethodNotAllowed))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"uptimeSeconds": int64(time.Since(h.startedAt).Seconds()),
	})
}
