package guard

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyGuard hands out keys with SET NX EX so that concurrent processes agree.
type ValkeyGuard struct {
	client valkey.Client
	prefix string
}

// NewValkeyGuard constructs a guard backed by Valkey.
func NewValkeyGuard(client valkey.Client, prefix string) *ValkeyGuard {
	if prefix == "" {
		prefix = "moodsip"
	}
	return &ValkeyGuard{client: client, prefix: prefix}
}

// Acquire reports whether key was free and is now held for ttl.
func (g *ValkeyGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	cmd := g.client.B().Set().Key(g.key(key)).Value(time.Now().UTC().Format(time.RFC3339)).Nx().ExSeconds(ttlSeconds(ttl)).Build()
	err := g.client.Do(ctx, cmd).Error()
	if err == nil {
		return true, nil
	}
	if valkey.IsValkeyNil(err) {
		return false, nil
	}
	return false, err
}

// Release frees key.
func (g *ValkeyGuard) Release(ctx context.Context, key string) error {
	return g.client.Do(ctx, g.client.B().Del().Key(g.key(key)).Build()).Error()
}

func (g *ValkeyGuard) key(key string) string {
	return g.prefix + ":guard:" + key
}

func ttlSeconds(ttl time.Duration) int64 {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	return int64(ttl / time.Second)
}
