package api

import "net/http"

// StatusHandler serves the public pool status.
type StatusHandler struct {
	deps Dependencies
}

func NewStatusHandler(deps Dependencies) *StatusHandler {
	return &StatusHandler{deps: deps}
}

// HandleStatus handles GET /status.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.status"

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", Wrap(op, ErrMethodNotAllowed))
		return
	}

	status, err := h.deps.Status(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
