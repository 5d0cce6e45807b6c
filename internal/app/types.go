package service

import (
	"time"

	"github.com/fairway/pickem/internal/domain/model"
)

// Reveal triggers, recorded in metrics and logs.
const (
	TriggerAuto    = "auto"
	TriggerManual  = "manual"
	TriggerAdvance = "advance"
)

// AutoRevealInfo describes the scheduled reveal configuration.
type AutoRevealInfo struct {
	Enabled      bool `json:"enabled"`
	RevealDow    int  `json:"revealDow"`
	RevealHour   int  `json:"revealHour"`
	RevealMinute int  `json:"revealMinute"`
}

// Status is the public view of the pool's current week.
type Status struct {
	CurrentWeek int            `json:"currentWeek"`
	Tournament  string         `json:"tournament"`
	Locked      bool           `json:"locked"`
	Revealed    bool           `json:"revealed"`
	AutoReveal  AutoRevealInfo `json:"autoReveal"`
	NextReveal  *time.Time     `json:"nextReveal,omitempty"`
}

// PicksView is the public view of a week's picks. Before reveal, Picks is
// nil and Submitted lists the names that have submitted; after reveal (or for
// an admin) Picks carries the full map and Submitted is nil.
type PicksView struct {
	Week       int           `json:"week"`
	Tournament string        `json:"tournament"`
	Locked     bool          `json:"locked"`
	Revealed   bool          `json:"revealed"`
	RevealedAt *time.Time    `json:"revealedAt"`
	Picks      model.PickSet `json:"picks"`
	Submitted  []string      `json:"submitted"`
}

// SubmitReceipt echoes a recorded pick.
type SubmitReceipt struct {
	Week       int    `json:"week"`
	Tournament string `json:"tournament"`
	Name       string `json:"name"`
	Pick       string `json:"pick"`
}

// RevealResult is the admin view returned by a forced reveal.
type RevealResult struct {
	Week       int           `json:"week"`
	Tournament string        `json:"tournament"`
	Picks      model.PickSet `json:"picks"`
}

// AdvanceResult reports a completed week advancement.
type AdvanceResult struct {
	PreviousWeek int    `json:"previousWeek"`
	CurrentWeek  int    `json:"currentWeek"`
	Tournament   string `json:"tournament"`
}

// WeekView is the admin bypass view of an arbitrary week.
type WeekView struct {
	Week       int           `json:"week"`
	Tournament string        `json:"tournament"`
	Locked     bool          `json:"locked"`
	Revealed   bool          `json:"revealed"`
	RevealedAt *time.Time    `json:"revealedAt"`
	Picks      model.PickSet `json:"picks"`
}
