package cache

import (
	"context"
	"errors"
	"time"
)

// HoldTTL is how long held checkout data stays retrievable. Carts and
// session assets both expire after 30 minutes; an expired hold is
// indistinguishable from one that was never written.
const HoldTTL = 1800 * time.Second

var ErrCacheMiss = errors.New("cache miss")

// Store is the ephemeral key-value capability shared by all handlers.
// Per-key atomicity is delegated to the backing store.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

func CartKey(token string) string {
	return "cart:" + token
}

func SessionKey(id string) string {
	return "session:" + id
}
