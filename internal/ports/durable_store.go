package ports

import "context"

// DurableStore is client-side storage that survives restarts. Get of a missing key
// returns an error matching domain.ErrKeyNotFound.
type DurableStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
