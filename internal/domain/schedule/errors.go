package schedule

import "errors"

// Sentinel kinds for schedule errors.
var (
	ErrUnknownZone = errors.New("unknown time zone")
)
