package session

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Default field names and expiration.
const (
	DefaultSessionIDField    = "sid"
	DefaultDataField         = "data"
	DefaultLastActivityField = "lastActivity"
	DefaultExpiration        = 24 * time.Hour
)

// Config maps session record properties onto document field names and sets the
// expiration policy. A Config is copied into each store and never changes afterwards.
type Config struct {
	// Field holding the caller-supplied session id (not the document's own _id).
	SessionIDField string `env:"SESSION_ID_FIELD" envDefault:"sid" yaml:"session_id_field"`
	// Field holding the serialized session data.
	DataField string `env:"SESSION_DATA_FIELD" envDefault:"data" yaml:"data_field"`
	// Field holding the last time the session was written.
	LastActivityField string `env:"SESSION_LAST_ACTIVITY_FIELD" envDefault:"lastActivity" yaml:"last_activity_field"`

	// UpdateLastActivityOnRead is accepted for compatibility with stores that refresh
	// activity on read. Stores currently refresh last activity only on Set; Get never writes.
	UpdateLastActivityOnRead bool `env:"SESSION_UPDATE_LAST_ACTIVITY_ON_READ" envDefault:"true" yaml:"update_last_activity_on_read"`

	// DefaultExpiration is the idle period after which a record is considered expired.
	DefaultExpiration time.Duration `env:"SESSION_DEFAULT_EXPIRATION" envDefault:"24h" yaml:"default_expiration"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SessionIDField:           DefaultSessionIDField,
		DataField:                DefaultDataField,
		LastActivityField:        DefaultLastActivityField,
		UpdateLastActivityOnRead: true,
		DefaultExpiration:        DefaultExpiration,
	}
}

// Option is a functional option for adjusting a Config.
type Option func(*Config)

// WithSessionIDField sets the document field holding the session id.
func WithSessionIDField(name string) Option {
	return func(c *Config) {
		c.SessionIDField = name
	}
}

// WithDataField sets the document field holding the serialized data.
func WithDataField(name string) Option {
	return func(c *Config) {
		c.DataField = name
	}
}

// WithLastActivityField sets the document field holding the last activity timestamp.
func WithLastActivityField(name string) Option {
	return func(c *Config) {
		c.LastActivityField = name
	}
}

// WithUpdateLastActivityOnRead toggles the read-refresh flag.
// See Config.UpdateLastActivityOnRead: the flag is recorded but does not change Get.
func WithUpdateLastActivityOnRead(enabled bool) Option {
	return func(c *Config) {
		c.UpdateLastActivityOnRead = enabled
	}
}

// WithDefaultExpiration sets the idle expiration period.
func WithDefaultExpiration(d time.Duration) Option {
	return func(c *Config) {
		c.DefaultExpiration = d
	}
}

// NewConfig returns DefaultConfig with opts applied and validated.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field names and expiration. All problems are reported together,
// each joined with ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error

	fields := []struct {
		label string
		value string
	}{
		{"session id field", c.SessionIDField},
		{"data field", c.DataField},
		{"last activity field", c.LastActivityField},
	}

	seen := make(map[string]string, len(fields))
	for _, f := range fields {
		switch {
		case f.value == "":
			errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalidConfig, f.label))
			continue
		case strings.HasPrefix(f.value, "$"):
			errs = append(errs, fmt.Errorf("%w: %s %q must not start with '$'", ErrInvalidConfig, f.label, f.value))
		case strings.Contains(f.value, "."):
			// Dots are paths into embedded documents; records are read back by flat key.
			errs = append(errs, fmt.Errorf("%w: %s %q must not contain '.'", ErrInvalidConfig, f.label, f.value))
		}
		if other, ok := seen[f.value]; ok {
			errs = append(errs, fmt.Errorf("%w: %s and %s both use %q", ErrInvalidConfig, other, f.label, f.value))
			continue
		}
		seen[f.value] = f.label
	}

	if c.DefaultExpiration <= 0 {
		errs = append(errs, fmt.Errorf("%w: default expiration must be positive, got %s", ErrInvalidConfig, c.DefaultExpiration))
	}

	return errors.Join(errs...)
}

// DecodeConfig reads a YAML document into a Config. Keys absent from the document
// keep their defaults. Unknown keys are rejected.
//
//	session_id_field: sessionId
//	default_expiration: 2h
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv builds a Config from SESSION_* environment variables.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
