package markup

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// notFoundSentinel caches a definitive "no rule" answer so repeated searches
// for unruled airlines do not hammer the rules database.
const notFoundSentinel = "none"

// CachedStore is a read-through Redis layer in front of another RuleStore.
type CachedStore struct {
	store RuleStore
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedStore(store RuleStore, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{store: store, rdb: rdb, ttl: ttl}
}

func (c *CachedStore) Lookup(ctx context.Context, q Query) (float64, bool, error) {
	q = q.normalized()
	key := cacheKey(q)

	if val, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if val == notFoundSentinel {
			return 0, false, nil
		}
		if percent, err := strconv.ParseFloat(val, 64); err == nil {
			return percent, true, nil
		}
	}

	percent, found, err := c.store.Lookup(ctx, q)
	if err != nil {
		return 0, false, err
	}

	val := notFoundSentinel
	if found {
		val = strconv.FormatFloat(percent, 'f', -1, 64)
	}
	// Cache write failure is not worth failing the lookup over.
	_ = c.rdb.Set(ctx, key, val, c.ttl).Err()

	return percent, found, nil
}

func cacheKey(q Query) string {
	return "markup:" + q.Airline + ":" + string(q.Role) + ":" + q.Origin + ":" + q.Dest
}
