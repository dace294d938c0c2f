/*
Package cache keeps rendered rankings in Redis.

Rankings are stored per mode under "classement:<mode>" with a one minute
TTL. Any write that changes a score calls Invalidate, which also bumps a
generation counter. Read the generation before computing a ranking and pass
it to Set; Set returns ErrStale instead of caching a ranking that an
invalidation has overtaken.

	gen, _ := rc.Generation(ctx)
	// ... fetch votes and rank ...
	err := rc.Set(ctx, scoring.ModeFinal, response, gen)

	rc := cache.New(cfg.RedisURL)
	defer rc.Close()

When no URL is configured, or Redis cannot be reached at startup, the cache
is disabled and every method returns immediately.
*/
package cache
