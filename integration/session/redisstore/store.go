package redisstore

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/dmitrymomot/docsession/core/session"
)

// Compile-time check that Store implements session.Store.
var _ session.Store[any] = (*Store[any])(nil)

var (
	// ErrNilClient is returned when the store is constructed without a Redis client.
	ErrNilClient = errors.New("redis session store requires a client")
	// ErrEmptyKeyPrefix is returned when the store is configured without a key prefix.
	ErrEmptyKeyPrefix = errors.New("redis session store requires a key prefix")
)

// Store keeps each session as a Redis hash at <prefix><sid>.
// The hash fields are named by session.Config, so the same mapping works for Mongo and Redis.
// No Redis TTL is set: expiration is enforced on Get like the document store.
type Store[Data any] struct {
	client Client
	cfg    session.Config
	codec  session.Codec[Data]
	now    func() time.Time
	prefix string
	batch  int64
}

// New builds a Store. client is usually a *redis.Client.
// A nil client, including a nil *redis.Client, yields ErrNilClient.
func New[Data any](client Client, opts ...Option[Data]) (*Store[Data], error) {
	if isNil(client) {
		return nil, ErrNilClient
	}

	s := &Store[Data]{
		client: client,
		cfg:    session.DefaultConfig(),
		codec:  session.JSONCodec[Data]{},
		now:    time.Now,
		prefix: DefaultKeyPrefix,
		batch:  DefaultScanBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.codec == nil {
		return nil, session.ErrNilCodec
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.prefix == "" {
		return nil, ErrEmptyKeyPrefix
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the field mapping and expiration in use.
func (s *Store[Data]) Config() session.Config {
	return s.cfg
}

// Get loads the hash for sid. See session.Store for the expiration contract.
func (s *Store[Data]) Get(ctx context.Context, sid string) (Data, error) {
	var zero Data

	fields, err := s.client.HGetAll(ctx, s.key(sid)).Result()
	if err != nil {
		return zero, err
	}
	if len(fields) == 0 {
		return zero, session.ErrNotFound
	}

	raw, hasData := fields[s.cfg.DataField]
	lastActivity, _ := time.Parse(time.RFC3339Nano, fields[s.cfg.LastActivityField])

	if !hasData || session.IsExpired(lastActivity, s.now(), s.cfg.DefaultExpiration) {
		if err := s.Destroy(ctx, sid); err != nil {
			return zero, err
		}
		return zero, session.ErrNotFound
	}

	data, err := s.codec.Decode(raw)
	if err != nil {
		if !errors.Is(err, session.ErrDecode) {
			err = errors.Join(session.ErrDecode, err)
		}
		return zero, err
	}
	return data, nil
}

// Set writes the three mapped fields with HSET; other hash fields are kept.
func (s *Store[Data]) Set(ctx context.Context, sid string, data Data) error {
	raw, err := s.codec.Encode(data)
	if err != nil {
		if !errors.Is(err, session.ErrEncode) {
			err = errors.Join(session.ErrEncode, err)
		}
		return err
	}

	return s.client.HSet(ctx, s.key(sid),
		s.cfg.SessionIDField, sid,
		s.cfg.DataField, raw,
		s.cfg.LastActivityField, s.now().UTC().Format(time.RFC3339Nano),
	).Err()
}

// Destroy deletes the hash for sid.
func (s *Store[Data]) Destroy(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.key(sid)).Err()
}

// Length counts distinct keys under the prefix, expired or not.
// Keys written or deleted while the scan runs may or may not be counted.
func (s *Store[Data]) Length(ctx context.Context) (int64, error) {
	seen := make(map[string]struct{})
	err := s.scan(ctx, func(keys []string) error {
		for _, k := range keys {
			seen[k] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int64(len(seen)), nil
}

// Clear deletes every key under the prefix.
func (s *Store[Data]) Clear(ctx context.Context) error {
	return s.scan(ctx, func(keys []string) error {
		return s.client.Del(ctx, keys...).Err()
	})
}

func (s *Store[Data]) key(sid string) string {
	return s.prefix + sid
}

// scan walks every key under the prefix and hands non-empty batches to fn.
// SCAN may return a key more than once; callers must tolerate repeats.
func (s *Store[Data]) scan(ctx context.Context, fn func(keys []string) error) error {
	match := escapeGlob(s.prefix) + "*"

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, s.batch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func isNil(client Client) bool {
	if client == nil {
		return true
	}
	v := reflect.ValueOf(client)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// escapeGlob escapes characters that MATCH treats as patterns.
func escapeGlob(s string) string {
	if !strings.ContainsAny(s, `*?[]\`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
