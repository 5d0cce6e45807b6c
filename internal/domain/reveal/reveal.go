// Package reveal decides when a week transitions from hidden to revealed.
package reveal

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fairway/pickem/internal/domain/model"
	"github.com/fairway/pickem/internal/domain/schedule"
)

// Engine evaluates the reveal guard for the current week. It is stateless;
// all inputs come from the store, all time comes from the injected clock.
type Engine struct {
	clock clockwork.Clock
	loc   *time.Location
}

// New creates an Engine for the given clock and zone.
func New(clock clockwork.Clock, loc *time.Location) *Engine {
	return &Engine{clock: clock, loc: loc}
}

// Now returns the engine's current instant.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Due reports whether the week should reveal now. An already revealed week is
// never due; re-evaluating after the transition is a no-op by construction.
//
// Two guard variants exist. A per-week absolute instant (meta.RevealAfter)
// takes precedence when set; otherwise the weekly weekday/time rule from
// Settings applies: due once the configured weekday has been reached this
// cycle and the wall clock is at or past the configured time. Days before
// the configured weekday never satisfy the guard.
func (e *Engine) Due(settings model.Settings, meta model.WeekMeta) bool {
	if !settings.AutoReveal || meta.Revealed {
		return false
	}

	now := e.clock.Now()
	if meta.RevealAfter != nil {
		return !now.Before(*meta.RevealAfter)
	}

	civil := schedule.Civil(e.loc, now)
	day := int(civil.Weekday)
	switch {
	case day > settings.RevealDow:
		return true
	case day < settings.RevealDow:
		return false
	}
	return civil.Hour > settings.RevealHour ||
		(civil.Hour == settings.RevealHour && civil.Minute >= settings.RevealMinute)
}

// Apply performs the transition on meta and the matching index entry:
// locked, revealed, revealedAt=now, index status revealed. Idempotent;
// returns false if the week was already revealed.
func (e *Engine) Apply(meta *model.WeekMeta, idx model.WeekIndex) bool {
	if !meta.Reveal(e.clock.Now()) {
		return false
	}
	if entry := idx.Find(meta.Week); entry != nil {
		entry.Status = model.StatusRevealed
	}
	return true
}

// NextOccurrence returns the next scheduled reveal instant after now for the
// configured weekly slot.
func (e *Engine) NextOccurrence(settings model.Settings) time.Time {
	return schedule.NextOccurrence(e.loc, time.Weekday(settings.RevealDow),
		settings.RevealHour, settings.RevealMinute, e.clock.Now())
}
