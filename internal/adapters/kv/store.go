// Package kv defines the string-keyed store contract the pool persists into.
//
// The store holds small JSON documents. It offers no multi-key transactions;
// callers perform read-modify-write sequences and accept last-writer-wins
// at this deployment's request volume.
package kv

import "context"

// Store provides get/put of opaque values by string key.
type Store interface {
	// Get returns the value for key. found is false when the key has never
	// been written; that is not an error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
