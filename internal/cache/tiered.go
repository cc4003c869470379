package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Tiered is the read-through cache used by the aggregator. Reads check the
// in-process tier first and fall back to the remote tier, backfilling on a
// remote hit. Writes always land in-process; the remote write is best-effort
// and its failure never reaches the caller.
type Tiered struct {
	local  *Memory
	remote Remote
	logger *zap.Logger
	ttl    time.Duration
}

// NewTiered composes the tiers. remote may be nil, which keeps the cache
// local-only with an unchanged contract.
func NewTiered(logger *zap.Logger, remote Remote, ttl time.Duration) *Tiered {
	return &Tiered{
		local:  NewMemory(),
		remote: remote,
		logger: logger,
		ttl:    ttl,
	}
}

// TTL returns the configured entry lifetime.
func (t *Tiered) TTL() time.Duration { return t.ttl }

// HasRemote reports whether a shared tier is configured.
func (t *Tiered) HasRemote() bool { return t.remote != nil }

// EntryCount returns the local tier entry count.
func (t *Tiered) EntryCount() int { return t.local.Len() }

// Get looks key up and, on a hit, unmarshals the cached value into out.
func (t *Tiered) Get(ctx context.Context, key string, out any) bool {
	if value, ok := t.local.Get(key); ok {
		if err := json.Unmarshal(value, out); err != nil {
			t.logger.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
			t.local.Delete(key)
			return false
		}
		return true
	}

	if t.remote == nil {
		return false
	}

	value, ok, err := t.remote.Get(ctx, key)
	if err != nil {
		t.logger.Warn("remote cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal(value, out); err != nil {
		t.logger.Warn("dropping undecodable remote cache entry", zap.String("key", key), zap.Error(err))
		return false
	}

	t.local.Set(key, value, t.ttl)
	return true
}

// Set stores value under key in both tiers. A remote failure degrades the
// write to local-only.
func (t *Tiered) Set(ctx context.Context, key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		t.logger.Error("cache value not serializable", zap.String("key", key), zap.Error(err))
		return
	}

	t.local.Set(key, encoded, t.ttl)

	if t.remote == nil {
		return
	}
	if err := t.remote.Set(ctx, key, encoded, t.ttl); err != nil {
		t.logger.Warn("remote cache write failed, entry is local-only", zap.String("key", key), zap.Error(err))
	}
}

// Clear drops entries matching prefix from both tiers, bypassing TTL. An
// empty prefix clears everything.
func (t *Tiered) Clear(ctx context.Context, prefix string) int {
	dropped := t.local.Clear(prefix)

	if t.remote != nil {
		if err := t.remote.Clear(ctx, prefix); err != nil {
			t.logger.Warn("remote cache clear failed", zap.String("prefix", prefix), zap.Error(err))
		}
	}

	return dropped
}
