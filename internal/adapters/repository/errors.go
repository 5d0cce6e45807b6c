package repository

import "errors"

// Sentinel kinds for lifecycle store errors.
var (
	ErrCorruptRecord = errors.New("corrupt stored record")
	ErrEncodeRecord  = errors.New("encode record failed")
)
