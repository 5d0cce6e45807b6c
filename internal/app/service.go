// Package service provides the core pool service implementing the
// dependencies required by the HTTP API.
package service

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fairway/pickem/internal/adapters/kv"
	"github.com/fairway/pickem/internal/adapters/repository"
	"github.com/fairway/pickem/internal/domain/model"
	"github.com/fairway/pickem/internal/domain/reveal"
	"github.com/fairway/pickem/pkg/logger"
)

// Service implements the pool operations behind the HTTP API. It holds no
// mutable pool state; every operation rereads from the store so concurrent
// instances stay coherent up to last-writer-wins.
type Service struct {
	pool   *repository.Pool
	engine *reveal.Engine

	store    kv.Store
	clock    clockwork.Clock
	loc      *time.Location
	roster   []string
	season   []string
	defaults model.Settings

	logger    logger.Logger
	startedAt time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing key-value store.
func WithStore(store kv.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock, letting tests drive time.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocation sets the time zone reveal times are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithRoster sets the closed participant roster.
func WithRoster(roster []string) Option {
	return func(s *Service) {
		if len(roster) > 0 {
			s.roster = roster
		}
	}
}

// WithSeason sets the ordered tournament list.
func WithSeason(season []string) Option {
	return func(s *Service) {
		if len(season) > 0 {
			s.season = season
		}
	}
}

// WithDefaultSettings sets the Settings record created on first access.
func WithDefaultSettings(defaults model.Settings) Option {
	return func(s *Service) {
		s.defaults = defaults
	}
}

// New constructs a Service. Options not supplied fall back to an in-memory
// store, the real clock, and UTC.
func New(opts ...Option) *Service {
	s := &Service{
		store: kv.NewMemory(),
		clock: clockwork.NewRealClock(),
		loc:   time.UTC,
		defaults: model.Settings{
			CurrentWeek:  1,
			AutoReveal:   true,
			RevealDow:    3,
			RevealHour:   21,
			RevealMinute: 0,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.pool = repository.New(s.store,
		repository.WithClock(s.clock),
		repository.WithSeason(s.season),
		repository.WithDefaultSettings(s.defaults),
	)
	s.engine = reveal.New(s.clock, s.loc)
	s.startedAt = s.clock.Now()
	return s
}

// GetStats returns a snapshot of service-level statistics for /stats.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"rosterSize":    len(s.roster),
		"seasonLength":  len(s.season),
		"timezone":      s.loc.String(),
		"uptimeSeconds": int(s.clock.Now().Sub(s.startedAt).Seconds()),
	}
}

func (s *Service) isMember(name string) bool {
	for _, member := range s.roster {
		if member == name {
			return true
		}
	}
	return false
}
