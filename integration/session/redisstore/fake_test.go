package redisstore_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/docsession/integration/session/redisstore"
)

var _ redisstore.Client = (*fakeClient)(nil)

// fakeClient keeps hashes in memory. SCAN pages over a snapshot taken when
// the cursor is zero, so deletes between pages do not skip keys.
type fakeClient struct {
	mu       sync.Mutex
	hashes   map[string]map[string]string
	calls    map[string]int
	snapshot []string

	// scanRepeat makes every page after the first also return the first key,
	// the way SCAN may during a rehash.
	scanRepeat bool

	getErr  error
	setErr  error
	delErr  error
	scanErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		hashes: make(map[string]map[string]string),
		calls:  make(map[string]int),
	}
}

func (c *fakeClient) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["HGetAll"]++

	if c.getErr != nil {
		return redis.NewMapStringStringResult(nil, c.getErr)
	}
	out := make(map[string]string, len(c.hashes[key]))
	for k, v := range c.hashes[key] {
		out[k] = v
	}
	return redis.NewMapStringStringResult(out, nil)
}

func (c *fakeClient) HSet(ctx context.Context, key string, values ...any) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["HSet"]++

	if c.setErr != nil {
		return redis.NewIntResult(0, c.setErr)
	}
	h, ok := c.hashes[key]
	if !ok {
		h = make(map[string]string)
		c.hashes[key] = h
	}
	var added int64
	for i := 0; i+1 < len(values); i += 2 {
		field := fmt.Sprint(values[i])
		if _, exists := h[field]; !exists {
			added++
		}
		h[field] = fmt.Sprint(values[i+1])
	}
	return redis.NewIntResult(added, nil)
}

func (c *fakeClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["Del"]++

	if c.delErr != nil {
		return redis.NewIntResult(0, c.delErr)
	}
	var n int64
	for _, k := range keys {
		if _, ok := c.hashes[k]; ok {
			delete(c.hashes, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (c *fakeClient) Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls["Scan"]++

	if c.scanErr != nil {
		return redis.NewScanCmdResult(nil, 0, c.scanErr)
	}

	if cursor == 0 {
		prefix := unescapeGlob(strings.TrimSuffix(match, "*"))
		c.snapshot = c.snapshot[:0]
		for k := range c.hashes {
			if strings.HasPrefix(k, prefix) {
				c.snapshot = append(c.snapshot, k)
			}
		}
		sort.Strings(c.snapshot)
	}
	all := c.snapshot

	start := int(cursor)
	if start >= len(all) {
		return redis.NewScanCmdResult(nil, 0, nil)
	}
	end := min(start+int(count), len(all))
	next := uint64(end)
	if end == len(all) {
		next = 0
	}
	keys := append([]string(nil), all[start:end]...)
	if c.scanRepeat && start > 0 {
		keys = append(keys, all[0])
	}
	return redis.NewScanCmdResult(keys, next, nil)
}

func (c *fakeClient) hash(key string) (map[string]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hashes[key]
	return h, ok
}

func (c *fakeClient) put(key string, fields map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hashes[key] = fields
}

func (c *fakeClient) count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func unescapeGlob(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
