package api

import (
	"encoding/json"
	"net/http"
)

// Admin action names accepted by POST /admin.
const (
	ActionReveal        = "reveal"
	ActionAdvanceWeek   = "advanceWeek"
	ActionViewAll       = "viewAll"
	ActionSetWeek       = "setWeek"
	ActionSetAutoReveal = "setAutoReveal"
)

// AdminHandler serves the authenticated admin surface.
type AdminHandler struct {
	deps     Dependencies
	adminKey string
}

func NewAdminHandler(deps Dependencies, adminKey string) *AdminHandler {
	return &AdminHandler{deps: deps, adminKey: adminKey}
}

// HandleAdmin handles POST /admin. The admin key is checked before the body
// is decoded so an unauthenticated caller learns nothing about the schema.
func (h *AdminHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	const op = "api.admin"

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", Wrap(op, ErrMethodNotAllowed))
		return
	}
	if !adminAuthorized(r, h.adminKey) {
		writeError(w, http.StatusUnauthorized, "unauthorized", Wrap(op, ErrUnauthorized))
		return
	}

	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	switch req.Action {
	case ActionReveal:
		result, err := h.deps.Reveal(r.Context())
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, result)

	case ActionAdvanceWeek:
		result, err := h.deps.AdvanceWeek(r.Context())
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, result)

	case ActionViewAll:
		view, err := h.deps.ViewAll(r.Context(), req.WeekNumber)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	case ActionSetWeek:
		view, err := h.deps.SetWeek(r.Context(), req.WeekNumber, req.Tournament)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	case ActionSetAutoReveal:
		if req.Enabled == nil {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, "setAutoReveal requires an enabled flag"))
			return
		}
		settings, err := h.deps.SetAutoReveal(r.Context(), *req.Enabled)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	default:
		writeError(w, http.StatusBadRequest, "bad_request",
			NewKind(op, "unknown action; valid actions are reveal, advanceWeek, viewAll, setWeek, setAutoReveal"))
	}
}
