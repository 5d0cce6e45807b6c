package api

import (
	"net/http"
	"strconv"
)

// PicksHandler serves pick views. Before reveal, non-admin callers see only
// which names have submitted; a valid admin key bypasses the veil.
type PicksHandler struct {
	deps     Dependencies
	adminKey string
}

func NewPicksHandler(deps Dependencies, adminKey string) *PicksHandler {
	return &PicksHandler{deps: deps, adminKey: adminKey}
}

// HandleGetPicks handles GET /picks?week=N. Omitting week targets the
// current week.
func (h *PicksHandler) HandleGetPicks(w http.ResponseWriter, r *http.Request) {
	const op = "api.picks"

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", Wrap(op, ErrMethodNotAllowed))
		return
	}

	week := 0
	if raw := r.URL.Query().Get("week"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, "week must be a positive integer"))
			return
		}
		week = n
	}

	admin := adminAuthorized(r, h.adminKey)

	view, err := h.deps.Picks(r.Context(), week, admin)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
