// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/fairway/pickem/internal/app"
	"github.com/fairway/pickem/internal/domain/model"
	"github.com/fairway/pickem/pkg/metrics"
)

// AdminKeyHeader carries the admin credential on /admin and, optionally,
// on /picks for the pre-reveal bypass.
const AdminKeyHeader = "X-Admin-Key"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// CheckAutoReveal runs the scheduled reveal check; it executes on every
	// inbound request before routing.
	CheckAutoReveal(ctx context.Context) error

	Status(ctx context.Context) (service.Status, error)
	Weeks(ctx context.Context) (model.WeekIndex, error)
	Picks(ctx context.Context, week int, admin bool) (service.PicksView, error)
	Submit(ctx context.Context, name, pick string) (service.SubmitReceipt, error)

	Reveal(ctx context.Context) (service.RevealResult, error)
	AdvanceWeek(ctx context.Context) (service.AdvanceResult, error)
	ViewAll(ctx context.Context, week int) (service.WeekView, error)
	SetWeek(ctx context.Context, week int, tournament string) (service.WeekView, error)
	SetAutoReveal(ctx context.Context, enabled bool) (model.Settings, error)
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the pool API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	statusHandler *StatusHandler
	weeksHandler  *WeeksHandler
	picksHandler  *PicksHandler
	submitHandler *SubmitHandler
	adminHandler  *AdminHandler
}

// NewServer creates a new API server with all handlers. adminKey is the
// shared secret expected in the X-Admin-Key header.
func NewServer(deps Dependencies, statsProvider StatsProvider, adminKey string) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		statusHandler: NewStatusHandler(deps),
		weeksHandler:  NewWeeksHandler(deps),
		picksHandler:  NewPicksHandler(deps, adminKey),
		submitHandler: NewSubmitHandler(deps),
		adminHandler:  NewAdminHandler(deps, adminKey),
	}
}

// Register attaches all HTTP routes to mux. Every pool route runs the
// auto-reveal check ahead of its handler.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, deps Dependencies) {
	wrap := func(endpoint string, h http.HandlerFunc) http.HandlerFunc {
		return MetricsMiddleware(RequestIDMiddleware(AutoRevealMiddleware(deps, h)), endpoint)
	}

	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/status", wrap("status", s.statusHandler.HandleStatus))
	mux.HandleFunc("/weeks", wrap("weeks", s.weeksHandler.HandleWeeks))
	mux.HandleFunc("/picks", wrap("picks", s.picksHandler.HandleGetPicks))
	mux.HandleFunc("/submit", wrap("submit", s.submitHandler.HandleSubmit))
	mux.HandleFunc("/admin", wrap("admin", s.adminHandler.HandleAdmin))

	// Catch-all for unmatched routes. Errors stay structured JSON on every
	// path, and the reveal check runs here too.
	mux.HandleFunc("/", wrap("not_found", s.handleNotFound))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", NewKind("api.route", "no such route: "+r.URL.Path))
}

// submitRequest mirrors the wire schema for POST /submit. The golferPick
// field name is part of the public contract.
type submitRequest struct {
	Name       string `json:"name"`
	GolferPick string `json:"golferPick"`
}

// adminRequest mirrors the wire schema for POST /admin. Fields beyond action
// apply only to specific actions.
type adminRequest struct {
	Action     string `json:"action"`
	WeekNumber int    `json:"weekNumber,omitempty"`
	Tournament string `json:"tournament,omitempty"`
	Enabled    *bool  `json:"enabled,omitempty"`
}

// adminAuthorized reports whether the request carries the configured admin
// key. An empty configured key authorizes nobody; the comparison is
// constant-time.
func adminAuthorized(r *http.Request, adminKey string) bool {
	if adminKey == "" {
		return false
	}
	got := r.Header.Get(AdminKeyHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(adminKey)) == 1
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service sentinels into HTTP responses.
// Anything unrecognized is an internal failure surfaced with its message.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownParticipant),
		errors.Is(err, service.ErrEmptyPick),
		errors.Is(err, service.ErrInvalidWeek):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	case errors.Is(err, service.ErrWeekLocked):
		writeError(w, http.StatusBadRequest, "locked", Wrap(op, err))
	case errors.Is(err, service.ErrSeasonComplete):
		writeError(w, http.StatusBadRequest, "season_complete", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
