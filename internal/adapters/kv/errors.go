package kv

import "errors"

// Sentinel kinds for store errors.
var (
	ErrGet    = errors.New("kv get failed")
	ErrPut    = errors.New("kv put failed")
	ErrBucket = errors.New("kv bucket unavailable")
)
