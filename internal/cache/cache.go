// Package cache stores optimization results keyed by a digest of the input
// and the optimizer settings. Backends are interchangeable behind Cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Cache is a byte-oriented store with per-entry expiry
type Cache interface {
	// Get returns ErrMiss when the key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value; ttl 0 uses the backend default, negative never expires
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key under the backend's prefix
	Clear(ctx context.Context) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// Backend names a Cache implementation
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendSQL    Backend = "sql"
	BackendNone   Backend = "none"
)

// Config configures whichever backend is selected
type Config struct {
	Backend Backend       `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Prefix  string        `mapstructure:"prefix"`
	Redis   RedisConfig   `mapstructure:"redis"`
	SQL     SQLConfig     `mapstructure:"sql"`
}

// RedisConfig holds the connection settings for BackendRedis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SQLConfig holds the connection settings for BackendSQL. Driver is one of
// sqlite3, pgx or postgres.
type SQLConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Table  string `mapstructure:"table"`
}

// DefaultConfig returns an in-memory cache with a one hour TTL
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		TTL:     time.Hour,
		Prefix:  "eggmath:",
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		SQL: SQLConfig{
			Driver: "sqlite3",
			DSN:    "eggmath-cache.db",
			Table:  "eggmath_cache",
		},
	}
}

// New builds the configured backend. BackendNone yields a nil Cache. logger
// receives background maintenance failures and may be nil.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Cache, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryCache(cfg), nil
	case BackendRedis:
		r, err := DialRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendSQL:
		c, err := OpenSQL(ctx, cfg, WithSQLLogger(logger))
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// ErrMiss is returned when a key is not found
type ErrMiss struct {
	Key string
}

func (e ErrMiss) Error() string {
	return "cache miss: " + e.Key
}

// IsMiss reports whether err is a cache miss
func IsMiss(err error) bool {
	_, ok := err.(ErrMiss)
	return ok
}

// Key digests parts into a fixed-length key. Parts are length-prefixed so
// that ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		fmt.Fprintf(&b, "%d:%s;", len(p), p)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
