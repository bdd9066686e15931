package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/eggmath/internal/cache"
	"github.com/conduit-lang/eggmath/internal/cli/config"
	"github.com/conduit-lang/eggmath/internal/logging"
	"github.com/conduit-lang/eggmath/internal/optimizer"
	"github.com/conduit-lang/eggmath/internal/rules"
)

// globalOptions holds the persistent root flags
type globalOptions struct {
	configPath string
	noColor    bool
	verbose    bool
}

// app is everything a command needs once configuration is resolved
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	cache  cache.Cache
	opt    *optimizer.Optimizer
}

// setup loads configuration, lets the command apply its flag overrides,
// then builds the logger, cache and optimizer. Callers must Close the app.
func (g *globalOptions) setup(ctx context.Context, override func(*config.Config)) (*app, error) {
	cfg, err := config.LoadFile(g.configPath)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if g.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	extra, err := rules.LoadFiles(cfg.Rules.Files...)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	c, err := cache.New(ctx, cfg.Cache, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open %s cache: %w", cfg.Cache.Backend, err)
	}

	opt, err := optimizer.New(
		optimizer.WithExtraRules(extra...),
		optimizer.WithLimits(cfg.Runner),
		optimizer.WithGroups(cfg.Rules.Groups...),
		optimizer.WithSoundness(cfg.Soundness()...),
		optimizer.WithCache(c, cfg.Cache.TTL),
		optimizer.WithLogger(logger),
	)
	if err != nil {
		if c != nil {
			_ = c.Close()
		}
		_ = logger.Sync()
		return nil, err
	}

	logger.Debug("configuration loaded",
		zap.Int("iter_limit", opt.Limits().Iterations),
		zap.Int("node_limit", opt.Limits().Nodes),
		zap.Duration("time_limit", opt.Limits().Time),
		zap.Int("match_limit", opt.Limits().MatchLimit),
		zap.Strings("groups", opt.Selected().Names()),
		zap.String("cache", string(cfg.Cache.Backend)),
		zap.Strings("rule_files", cfg.Rules.Files),
	)
	return &app{cfg: cfg, logger: logger, cache: c, opt: opt}, nil
}

// Close releases the cache and flushes logs
func (a *app) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close cache", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
