package service

import "errors"

// Sentinel kinds for pool operation errors. The HTTP layer maps these onto
// status codes with errors.Is.
var (
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrEmptyPick          = errors.New("pick must not be empty")
	ErrWeekLocked         = errors.New("week is locked")
	ErrSeasonComplete     = errors.New("no more tournaments")
	ErrInvalidWeek        = errors.New("invalid week number")
)
