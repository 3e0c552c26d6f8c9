// Package redis provides Redis client initialization and health checking for the Redis-backed session store.
//
// Connect validates the URL (redis:// or rediss://), creates a go-redis client and waits for
// a successful PING, retrying with exponential backoff. Healthcheck returns a probe function.
//
// # Configuration
//
// Config maps to environment variables:
//
//	REDIS_URL             (default: redis://localhost:6379/0)
//	REDIS_RETRY_ATTEMPTS  (default: 3)
//	REDIS_RETRY_INTERVAL  (default: 5s, doubled after each failed attempt)
//	REDIS_CONNECT_TIMEOUT (default: 30s, bounds the whole connect process)
//	REDIS_SCAN_BATCH_SIZE (default: 1000, used by stores that scan key prefixes)
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	store, err := redisstore.New[Cart](client, redisstore.WithScanBatchSize[Cart](cfg.ScanBatchSize))
//
// # Error Handling
//
//   - ErrEmptyConnectionURL: no connection URL provided
//   - ErrFailedToParseRedisConnString: malformed URL or unsupported scheme
//   - ErrRedisNotReady: Redis did not answer PING within the retry budget
//   - ErrHealthcheckFailed: health check ping failed
package redis
