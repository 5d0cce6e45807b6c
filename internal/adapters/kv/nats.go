package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
)

// NATSKV adapts a JetStream key-value bucket to the Store contract.
type NATSKV struct {
	bucket jetstream.KeyValue
}

// NewNATS binds (creating if needed) the named JetStream bucket.
func NewNATS(ctx context.Context, js jetstream.JetStream, bucket string) (*NATSKV, error) {
	b, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "pick'em pool state",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBucket, bucket, err)
	}
	return &NATSKV{bucket: b}, nil
}

// Get fetches a key, mapping a missing key to found=false.
func (n *NATSKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := n.bucket.Get(ctx, encodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %q: %w", ErrGet, key, err)
	}
	return entry.Value(), true, nil
}

// Put stores value under key.
func (n *NATSKV) Put(ctx context.Context, key string, value []byte) error {
	if _, err := n.bucket.Put(ctx, encodeKey(key), value); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrPut, key, err)
	}
	return nil
}

// encodeKey maps the pool's colon-separated keys onto the JetStream key
// charset, which does not allow ':'.
func encodeKey(key string) string {
	return strings.ReplaceAll(key, ":", ".")
}
