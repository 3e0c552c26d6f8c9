package mongostore

import (
	"time"

	"github.com/dmitrymomot/docsession/core/session"
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

// WithClock overrides the time source used for last activity and expiration checks.
func WithClock[Data any](now func() time.Time) Option[Data] {
	return func(s *Store[Data]) {
		s.now = now
	}
}
