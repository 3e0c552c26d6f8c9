package redisstore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis commands the store issues.
// *redis.Client satisfies it. On a cluster SCAN only walks the node it is sent to.
type Client interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}
