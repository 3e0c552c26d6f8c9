package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into the target struct.
var ErrParsingConfig = errors.New("failed to parse config from environment")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> value of that type
	loadMu     sync.Mutex
)

// Load populates dst from environment variables. The first successful load of a type
// is cached; later calls for the same type copy the cached value into dst.
func Load[T any](dst *T) error {
	dotenvOnce.Do(func() {
		// A missing .env file is normal outside local development.
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(dst).Elem()
	if v, ok := cache.Load(typ); ok {
		*dst = v.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	if v, ok := cache.Load(typ); ok {
		*dst = v.(T)
		return nil
	}

	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache.Store(typ, cfg)
	*dst = cfg
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](dst *T) {
	if err := Load(dst); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
