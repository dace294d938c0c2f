package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yepeleya/jig-projet/metrics"
	"github.com/yepeleya/jig-projet/scoring"
)

// RankingTTL bounds how stale a cached ranking can get if an invalidation is lost.
const RankingTTL = time.Minute

// generationKey counts invalidations. A ranking is only stored if no
// invalidation happened since its votes were read.
const generationKey = "classement:generation"

// ErrStale reports that rankings were invalidated while a result was being
// computed, so it was not stored.
var ErrStale = errors.New("ranking invalidated while computing")

// RankingCache stores rendered rankings per mode. A nil client turns every
// operation into a no-op.
type RankingCache struct {
	rdb *redis.Client
}

// New connects to redisURL. An empty or unreachable URL yields a disabled cache.
func New(redisURL string) *RankingCache {
	if redisURL == "" {
		slog.Info("redis not configured, ranking cache disabled")
		return &RankingCache{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("invalid redis URL, ranking cache disabled", "error", err)
		return &RankingCache{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, ranking cache disabled", "error", err)
		rdb.Close()
		return &RankingCache{}
	}

	slog.Info("redis connected, ranking cache enabled")
	return &RankingCache{rdb: rdb}
}

// Enabled reports whether a Redis client is attached.
func (c *RankingCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get returns the cached ranking for mode, or nil on a miss.
func (c *RankingCache) Get(ctx context.Context, mode scoring.Mode) ([]byte, error) {
	if !c.Enabled() {
		return nil, nil
	}

	data, err := c.rdb.Get(ctx, rankingKey(mode)).Bytes()
	if err == redis.Nil {
		metrics.CacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		metrics.CacheMisses.Inc()
		return nil, err
	}

	metrics.CacheHits.Inc()
	return data, nil
}

// Generation returns the current invalidation count. Read it before fetching
// the votes a ranking is computed from and hand it to Set.
func (c *RankingCache) Generation(ctx context.Context) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	return generation(ctx, c.rdb)
}

// Set stores v as JSON under mode, unless Invalidate ran after gen was read.
// In that case it returns ErrStale and nothing is written.
func (c *RankingCache) Set(ctx context.Context, mode scoring.Mode, v interface{}, gen int64) error {
	if !c.Enabled() {
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return ErrStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, rankingKey(mode), b, RankingTTL)
			return nil
		})
		return err
	}, generationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// Invalidate drops the rankings of every mode and bumps the generation.
func (c *RankingCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, rankingKey(scoring.ModeFinal), rankingKey(scoring.ModePopular))
		return nil
	})
	return err
}

func (c *RankingCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}

func rankingKey(mode scoring.Mode) string {
	return "classement:" + string(mode)
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, r getter) (int64, error) {
	n, err := r.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
