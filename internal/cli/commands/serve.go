package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/eggmath/internal/cache"
	"github.com/conduit-lang/eggmath/internal/cli/config"
	"github.com/conduit-lang/eggmath/internal/server"
)

func newServeCommand(g *globalOptions) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the optimizer over HTTP",
		Long: `Serve the optimizer over HTTP until interrupted.

Endpoints:
  GET  /health                 liveness
  GET  /v1/vocabulary          operators and named constants
  GET  /v1/rules[/{group}]     rule groups and their rules
  POST /v1/optimize            {"expr": "...", "groups": [...]}
  GET  /v1/optimize/stream     websocket; send one optimize request,
                               receive iteration frames then the result

When server.rate_limit.requests is set, each client may start that many
optimizations per server.rate_limit.window.

When server.auth.secret is set, every /v1 route requires a bearer token
issued by 'eggmath token'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := g.setup(ctx, func(cfg *config.Config) {
				if cmd.Flags().Changed("host") {
					cfg.Server.Host = host
				}
				if cmd.Flags().Changed("port") {
					cfg.Server.Port = port
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			var opts []server.Option
			if auth := a.cfg.Server.Auth; auth.Enabled() {
				opts = append(opts, server.WithAuth(server.NewAuthenticator(auth.Secret, auth.TokenTTL)))
			}
			if rl := a.cfg.Server.RateLimit; rl.Enabled() {
				limiter, closeLimiter, err := newLimiter(ctx, a.cfg)
				if err != nil {
					return err
				}
				defer closeLimiter()
				opts = append(opts, server.WithRateLimit(limiter))
			}

			a.logger.Info("starting server",
				zap.String("addr", a.cfg.Server.Addr()),
				zap.Int("groups", a.opt.Selected().Len()),
				zap.Bool("auth", a.cfg.Server.Auth.Enabled()),
				zap.Int("rate_limit", a.cfg.Server.RateLimit.Requests),
			)
			return server.New(a.opt, a.logger, opts...).ListenAndServe(ctx, a.cfg.Server.Addr())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (default: server.host from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default: server.port from config)")
	return cmd
}

func newLimiter(ctx context.Context, cfg *config.Config) (server.Limiter, func(), error) {
	rl := cfg.Server.RateLimit
	if rl.Backend != "redis" {
		return server.NewTokenBucket(rl.Requests, rl.Window), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Cache.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open redis rate limiter: %w", err)
	}
	limiter := server.NewRedisLimiter(client, rl.Requests, rl.Window, cfg.Cache.Prefix+"ratelimit:")
	return limiter, func() { _ = limiter.Close() }, nil
}
