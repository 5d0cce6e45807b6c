// Package schedule resolves wall-clock fields in a named time zone and
// computes the next occurrence of a weekly weekday/time slot.
package schedule

import (
	"fmt"
	"time"
)

const daysPerWeek = 7

// CivilTime holds the wall-clock fields a person in a zone would observe.
type CivilTime struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

// Civil returns the civil time of t in loc. Daylight-saving rules are
// handled by the location; no offsets are hard-coded.
func Civil(loc *time.Location, t time.Time) CivilTime {
	local := t.In(loc)
	return CivilTime{
		Weekday: local.Weekday(),
		Hour:    local.Hour(),
		Minute:  local.Minute(),
	}
}

// Location resolves an IANA zone name, wrapping failures in ErrUnknownZone.
func Location(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownZone, name, err)
	}
	return loc, nil
}

// NextOccurrence returns the earliest instant strictly after from whose civil
// time in loc matches the target weekday/hour/minute. If from already sits
// exactly on the slot, the result is one week later; the rule fires weekly,
// never continuously.
//
// The UTC offset is resolved for the computed target date via time.Date in
// loc, so a daylight-saving change between from and the target yields the
// offset of the target day, not today's.
func NextOccurrence(loc *time.Location, dow time.Weekday, hour, minute int, from time.Time) time.Time {
	local := from.In(loc)
	daysAhead := (int(dow) - int(local.Weekday()) + daysPerWeek) % daysPerWeek

	candidate := time.Date(local.Year(), local.Month(), local.Day()+daysAhead,
		hour, minute, 0, 0, loc)
	if !candidate.After(from) {
		candidate = time.Date(local.Year(), local.Month(), local.Day()+daysAhead+daysPerWeek,
			hour, minute, 0, 0, loc)
	}
	return candidate
}
