package api

import "net/http"

// StatsHandler serves service statistics.
type StatsHandler struct {
	provider StatsProvider
}

func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.stats"

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", Wrap(op, ErrMethodNotAllowed))
		return
	}

	writeJSON(w, http.StatusOK, h.provider.GetStats())
}
