package app

import "context"

// KeyValueStore is the durable string-keyed storage the cart blob lives in.
// Get reports ok=false for a missing key instead of an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	MultiRemove(ctx context.Context, keys []string) error
}
