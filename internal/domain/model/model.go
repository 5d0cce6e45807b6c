// Package model contains the persisted pool state passed between layers.
//
// All types round-trip through JSON in the key-value store, so field tags are
// part of the storage format and must stay stable.
package model

import (
	"sort"
	"time"
)

// Week index entry statuses.
const (
	StatusActive   = "active"
	StatusRevealed = "revealed"
)

// Settings is the singleton pool configuration record. It is created lazily
// with deployment defaults on first access.
type Settings struct {
	CurrentWeek  int  `json:"currentWeek"`
	AutoReveal   bool `json:"autoReveal"`
	RevealDow    int  `json:"revealDow"`
	RevealHour   int  `json:"revealHour"`
	RevealMinute int  `json:"revealMinute"`
}

// WeekIndexEntry is one row of the ordered week index.
type WeekIndexEntry struct {
	Week       int    `json:"week"`
	Tournament string `json:"tournament"`
	Status     string `json:"status"`
}

// WeekIndex is the ordered sequence of weeks, unique by week number,
// ascending. At most one entry is active under normal operation.
type WeekIndex []WeekIndexEntry

// Find returns a pointer to the entry for week, or nil.
func (idx WeekIndex) Find(week int) *WeekIndexEntry {
	for i := range idx {
		if idx[i].Week == week {
			return &idx[i]
		}
	}
	return nil
}

// Sort orders the index by week number ascending.
func (idx WeekIndex) Sort() {
	sort.Slice(idx, func(i, j int) bool { return idx[i].Week < idx[j].Week })
}

// MarkRevealedBefore flips every entry with a week number below week to
// revealed. Used by setWeek to heal the single-active invariant.
func (idx WeekIndex) MarkRevealedBefore(week int) {
	for i := range idx {
		if idx[i].Week < week {
			idx[i].Status = StatusRevealed
		}
	}
}

// WeekMeta is the per-week lifecycle record.
//
// Invariants: Revealed implies Locked; RevealedAt is non-nil iff Revealed.
// RevealAfter, when set, overrides the weekly weekday/time rule with an
// absolute instant for that week.
type WeekMeta struct {
	Week        int        `json:"week"`
	Tournament  string     `json:"tournament"`
	Locked      bool       `json:"locked"`
	Revealed    bool       `json:"revealed"`
	RevealedAt  *time.Time `json:"revealedAt"`
	RevealAfter *time.Time `json:"revealAfter,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Reveal applies the irreversible hidden->revealed transition at now.
// Returns false when the week was already revealed.
func (m *WeekMeta) Reveal(now time.Time) bool {
	if m.Revealed {
		return false
	}
	m.Locked = true
	m.Revealed = true
	t := now
	m.RevealedAt = &t
	return true
}

// CheckInvariants reports whether the reveal/lock invariants hold.
func (m *WeekMeta) CheckInvariants() bool {
	if m.Revealed && !m.Locked {
		return false
	}
	return m.Revealed == (m.RevealedAt != nil)
}

// Pick is one participant's recorded pick for a week.
type Pick struct {
	Pick        string    `json:"pick"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// PickSet maps participant name to their pick for a week. A later submission
// overwrites an earlier one; no history is kept.
type PickSet map[string]Pick

// Names returns the participants who have submitted, sorted.
func (p PickSet) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
