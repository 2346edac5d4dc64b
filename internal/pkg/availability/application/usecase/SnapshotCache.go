package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	cacheport "github.com/FlintShadey/huddleuptime/internal/infrastructure/cache/port"
	appLog "github.com/FlintShadey/huddleuptime/internal/log"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
)

const (
	snapshotKey           = "availability:all"
	snapshotGenerationKey = "availability:gen"
	snapshotTTL           = 5 * time.Minute
)

// SnapshotCache holds the full record list between reads. A nil
// *SnapshotCache is valid and caches nothing. Cache failures never fail the
// calling use case.
//
// Snapshots are stored under the generation current when the backing read
// started. Invalidate bumps the generation, so a fill that raced a write
// lands under a key nobody reads again.
type SnapshotCache struct {
	cache cacheport.Cache
	ttl   time.Duration
}

func NewSnapshotCache(c cacheport.Cache) *SnapshotCache {
	if c == nil {
		return nil
	}
	return &SnapshotCache{cache: c, ttl: snapshotTTL}
}

// Generation identifies one snapshot epoch. The zero value never caches.
type Generation struct {
	key string
}

func (g Generation) valid() bool { return g.key != "" }

// Get returns the snapshot for the current generation. On a miss the
// returned Generation must be passed to Set after reading the store.
func (s *SnapshotCache) Get(ctx context.Context) ([]availability.Record, Generation, bool) {
	if s == nil {
		return nil, Generation{}, false
	}
	gen, err := s.generation(ctx)
	if err != nil {
		appLog.Warn("availability snapshot generation read failed", "err", err)
		return nil, Generation{}, false
	}
	raw, err := s.cache.Get(ctx, gen.key)
	if err != nil {
		if !errors.Is(err, cacheport.ErrMiss) {
			appLog.Warn("availability snapshot read failed", "err", err)
			return nil, Generation{}, false
		}
		return nil, gen, false
	}
	var records []availability.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		appLog.Warn("availability snapshot corrupt, dropping", "err", err)
		s.Invalidate(ctx)
		return nil, Generation{}, false
	}
	return records, gen, true
}

// Set stores records under gen. If an invalidation happened since gen was
// read, the entry is unreachable and simply expires.
func (s *SnapshotCache) Set(ctx context.Context, gen Generation, records []availability.Record) {
	if s == nil || !gen.valid() {
		return
	}
	b, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, gen.key, string(b), s.ttl); err != nil {
		appLog.Warn("availability snapshot write failed", "err", err)
	}
}

// Invalidate retires the current snapshot. It is called after writes and on
// every change event.
func (s *SnapshotCache) Invalidate(ctx context.Context) {
	if s == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, snapshotGenerationKey); err != nil {
		appLog.Warn("availability snapshot invalidate failed", "err", err)
		// Without a new generation, at least drop the entry we can see.
		if gen, gerr := s.generation(ctx); gerr == nil {
			_, _ = s.cache.Del(ctx, gen.key)
		}
	}
}

func (s *SnapshotCache) generation(ctx context.Context) (Generation, error) {
	raw, err := s.cache.Get(ctx, snapshotGenerationKey)
	switch {
	case errors.Is(err, cacheport.ErrMiss):
		raw = "0"
	case err != nil:
		return Generation{}, err
	}
	return Generation{key: snapshotKey + ":" + raw}, nil
}
