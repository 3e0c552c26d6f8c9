package redisstore

import (
	"time"

	"github.com/dmitrymomot/docsession/core/session"
)

const (
	DefaultKeyPrefix     = "session:"
	DefaultScanBatchSize = 1000
)

// Option configures a Store.
type Option[Data any] func(*Store[Data])

// WithConfig replaces the whole field mapping and expiration config.
func WithConfig[Data any](cfg session.Config) Option[Data] {
	return func(s *Store[Data]) {
		s.cfg = cfg
	}
}

// WithConfigOptions applies session config options on top of the current config.
func WithConfigOptions[Data any](opts ...session.Option) Option[Data] {
	return func(s *Store[Data]) {
		for _, opt := range opts {
			opt(&s.cfg)
		}
	}
}

// WithCodec sets the serializer for the data field. Defaults to session.JSONCodec.
func WithCodec[Data any](codec session.Codec[Data]) Option[Data] {
	return func(s *Store[Data]) {
		s.codec = codec
	}
}

// WithClock overrides the time source.
func WithClock[Data any](now func() time.Time) Option[Data] {
	return func(s *Store[Data]) {
		s.now = now
	}
}

// WithKeyPrefix sets the prefix prepended to session ids to build hash keys.
// Length and Clear operate on every key under this prefix, so it should be dedicated to sessions.
func WithKeyPrefix[Data any](prefix string) Option[Data] {
	return func(s *Store[Data]) {
		s.prefix = prefix
	}
}

// WithScanBatchSize sets the COUNT hint used when scanning keys for Length and Clear.
func WithScanBatchSize[Data any](n int) Option[Data] {
	return func(s *Store[Data]) {
		if n > 0 {
			s.batch = int64(n)
		}
	}
}
