// Package redis opens the optional Redis client used by the identity
// cache.
//
//	if cfg.Redis.Enabled() {
//		client, err := redis.Open(ctx, cfg.Redis)
//		if err != nil {
//			return err
//		}
//		app := awesome.New(
//			awesome.ShutdownHook(redis.Shutdown(client)),
//		)
//	}
//
// [Open] pings the server before returning and retries transient failures.
// [Healthcheck] plugs into the readiness endpoint.
package redis
