package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conduit-lang/eggmath/internal/cache"
	"github.com/conduit-lang/eggmath/internal/errors"
	"github.com/conduit-lang/eggmath/internal/rewrite"
	"github.com/conduit-lang/eggmath/internal/rules"
)

// FileName is the config file looked up in the working directory, without
// extension
const FileName = "eggmath"

// EnvPrefix prefixes environment overrides, e.g. EGGMATH_RUNNER_ITER_LIMIT
const EnvPrefix = "EGGMATH"

// Config represents the eggmath configuration
type Config struct {
	Runner rewrite.Limits `mapstructure:"runner"`
	Rules  RulesConfig    `mapstructure:"rules"`
	Cache  cache.Config   `mapstructure:"cache"`
	Server ServerConfig   `mapstructure:"server"`
	Log    LogConfig      `mapstructure:"log"`
}

// RulesConfig selects which parts of the corpus are enabled. Empty lists
// enable everything. Files name YAML rule files loaded after the built-in
// groups.
type RulesConfig struct {
	Groups    []string `mapstructure:"groups"`
	Soundness []string `mapstructure:"soundness"`
	Files     []string `mapstructure:"files"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host      string          `mapstructure:"host"`
	Port      int             `mapstructure:"port"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig throttles the optimize endpoints per client. Requests of
// zero disables it. The redis backend shares counters through the
// cache.redis server.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
	Backend  string        `mapstructure:"backend"`
}

// Enabled reports whether requests are limited
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0
}

// AuthConfig enables bearer-token auth on the /v1 routes when Secret is set
type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// Enabled reports whether a signing secret is configured
func (a AuthConfig) Enabled() bool {
	return a.Secret != ""
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	limits := rewrite.DefaultLimits()
	v.SetDefault("runner.iter_limit", limits.Iterations)
	v.SetDefault("runner.node_limit", limits.Nodes)
	v.SetDefault("runner.time_limit", limits.Time)
	v.SetDefault("runner.match_limit", limits.MatchLimit)
	v.SetDefault("runner.ban_length", limits.BanLength)

	v.SetDefault("rules.groups", []string{})
	v.SetDefault("rules.soundness", []string{})
	v.SetDefault("rules.files", []string{})

	c := cache.DefaultConfig()
	v.SetDefault("cache.backend", string(c.Backend))
	v.SetDefault("cache.ttl", c.TTL)
	v.SetDefault("cache.prefix", c.Prefix)
	v.SetDefault("cache.redis.addr", c.Redis.Addr)
	v.SetDefault("cache.redis.password", c.Redis.Password)
	v.SetDefault("cache.redis.db", c.Redis.DB)
	v.SetDefault("cache.sql.driver", c.SQL.Driver)
	v.SetDefault("cache.sql.dsn", c.SQL.DSN)
	v.SetDefault("cache.sql.table", c.SQL.Table)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.auth.secret", "")
	v.SetDefault("server.auth.token_ttl", 24*time.Hour)
	v.SetDefault("server.rate_limit.requests", 0)
	v.SetDefault("server.rate_limit.window", time.Minute)
	v.SetDefault("server.rate_limit.backend", "memory")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads eggmath.yml from the working directory when present, applies
// EGGMATH_* environment overrides, and validates the result.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory; an explicit path that does not exist is an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Soundness returns the parsed soundness filter. The config must have been
// validated.
func (c *Config) Soundness() []rules.Soundness {
	out := make([]rules.Soundness, 0, len(c.Rules.Soundness))
	for _, name := range c.Rules.Soundness {
		s, err := rules.ParseSoundness(name)
		if err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Find walks up from the working directory looking for eggmath.yml or
// eggmath.yaml and returns its path
func Find() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, ext := range []string{".yml", ".yaml"} {
			candidate := filepath.Join(dir, FileName+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s.yml found in this or any parent directory", FileName)
		}
		dir = parent
	}
}

// validateConfig reports every invalid value at once
func validateConfig(cfg *Config) error {
	var diags errors.ErrorList

	if cfg.Runner.Iterations <= 0 {
		diags = append(diags, errors.NewInvalidConfigValue("runner.iter_limit", cfg.Runner.Iterations, "must be positive"))
	}
	if cfg.Runner.Nodes <= 0 {
		diags = append(diags, errors.NewInvalidConfigValue("runner.node_limit", cfg.Runner.Nodes, "must be positive"))
	}
	if cfg.Runner.Time <= 0 {
		diags = append(diags, errors.NewInvalidConfigValue("runner.time_limit", cfg.Runner.Time, "must be positive"))
	}
	if cfg.Runner.MatchLimit == 0 {
		diags = append(diags, errors.NewInvalidConfigValue("runner.match_limit", 0, "must not be zero").
			WithExpected("a positive limit, or -1 to apply every match"))
	}
	if cfg.Runner.BanLength <= 0 {
		diags = append(diags, errors.NewInvalidConfigValue("runner.ban_length", cfg.Runner.BanLength, "must be positive"))
	}

	for _, name := range cfg.Rules.Soundness {
		if _, err := rules.ParseSoundness(name); err != nil {
			diags = append(diags, errors.NewInvalidConfigValue("rules.soundness", name, err.Error()).
				WithExpected(fmt.Sprintf("%v", rules.AllSoundness())))
		}
	}

	switch cfg.Cache.Backend {
	case cache.BackendMemory, cache.BackendRedis, cache.BackendSQL, cache.BackendNone:
	default:
		diags = append(diags, errors.NewInvalidConfigValue("cache.backend", cfg.Cache.Backend, "unknown backend").
			WithExpected("memory, redis, sql or none"))
	}
	if cfg.Cache.TTL < 0 {
		diags = append(diags, errors.NewInvalidConfigValue("cache.ttl", cfg.Cache.TTL, "must not be negative"))
	}
	if cfg.Cache.Backend == cache.BackendRedis && cfg.Cache.Redis.Addr == "" {
		diags = append(diags, errors.NewInvalidConfigValue("cache.redis.addr", "", "required for the redis backend"))
	}
	if cfg.Cache.Backend == cache.BackendSQL {
		if !contains(cache.SQLDrivers, cfg.Cache.SQL.Driver) {
			diags = append(diags, errors.NewInvalidConfigValue("cache.sql.driver", cfg.Cache.SQL.Driver, "unsupported driver").
				WithExpected(strings.Join(cache.SQLDrivers, ", ")))
		}
		if cfg.Cache.SQL.DSN == "" {
			diags = append(diags, errors.NewInvalidConfigValue("cache.sql.dsn", "", "required for the sql backend"))
		}
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		diags = append(diags, errors.NewInvalidConfigValue("server.port", cfg.Server.Port, "must be between 0 and 65535"))
	}
	if cfg.Server.Auth.TokenTTL < 0 {
		diags = append(diags, errors.NewInvalidConfigValue("server.auth.token_ttl", cfg.Server.Auth.TokenTTL, "must not be negative"))
	}
	if cfg.Server.Auth.Enabled() && len(cfg.Server.Auth.Secret) < 16 {
		diags = append(diags, errors.NewInvalidConfigValue("server.auth.secret", "<redacted>", "must be at least 16 bytes"))
	}
	if rl := cfg.Server.RateLimit; rl.Requests < 0 {
		diags = append(diags, errors.NewInvalidConfigValue("server.rate_limit.requests", rl.Requests, "must not be negative"))
	} else if rl.Enabled() {
		if rl.Window <= 0 {
			diags = append(diags, errors.NewInvalidConfigValue("server.rate_limit.window", rl.Window, "must be positive"))
		}
		switch rl.Backend {
		case "memory":
		case "redis":
			if cfg.Cache.Redis.Addr == "" {
				diags = append(diags, errors.NewInvalidConfigValue("cache.redis.addr", "", "required for the redis rate limiter"))
			}
		default:
			diags = append(diags, errors.NewInvalidConfigValue("server.rate_limit.backend", rl.Backend, "unknown backend").
				WithExpected("memory or redis"))
		}
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		diags = append(diags, errors.NewInvalidConfigValue("log.level", cfg.Log.Level, "unknown level").
			WithExpected("debug, info, warn or error"))
	}

	return diags.Err()
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
