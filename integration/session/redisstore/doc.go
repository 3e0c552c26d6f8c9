// Package redisstore implements session.Store on top of Redis hashes.
//
// Each session lives at <prefix><sid> (default prefix "session:") as a hash whose field
// names come from session.Config, the same mapping the MongoDB store uses:
//
//	HSET session:abc sid abc data {"views":3} lastActivity 2024-05-01T12:00:00Z
//
// Expiration is lazy: Get deletes a stale hash and reports session.ErrNotFound. No Redis
// TTL is attached, so Length counts stale sessions until they are read or cleared.
// Length and Clear SCAN the key prefix in batches (see WithScanBatchSize).
//
//	client, _ := redis.Connect(ctx, cfg)
//	store, err := redisstore.New[Cart](client)
package redisstore
