package api

import (
	"net/http"

	"github.com/fairway/pickem/internal/domain/model"
)

// WeeksHandler serves the season week index.
type WeeksHandler struct {
	deps Dependencies
}

// weeksResponse is the wire envelope for GET /weeks.
type weeksResponse struct {
	Weeks model.WeekIndex `json:"weeks"`
}

func NewWeeksHandler(deps Dependencies) *WeeksHandler {
	return &WeeksHandler{deps: deps}
}

// HandleWeeks handles GET /weeks.
func (h *WeeksHandler) HandleWeeks(w http.ResponseWriter, r *http.Request) {
	const op = "api.weeks"

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", Wrap(op, ErrMethodNotAllowed))
		return
	}

	weeks, err := h.deps.Weeks(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, weeksResponse{Weeks: weeks})
}
