package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/eggmath/internal/cli/config"
	"github.com/conduit-lang/eggmath/internal/errors"
	"github.com/conduit-lang/eggmath/internal/server"
)

func newTokenCommand(g *globalOptions) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue a bearer token for the HTTP API",
		Long: `Sign a bearer token for 'eggmath serve' with server.auth.secret.

The subject names the client in server logs.`,
		Example: `  EGGMATH_SERVER_AUTH_SECRET=... eggmath token ci-bot --ttl 1h`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := g.setup(ctx, func(cfg *config.Config) {
				if cmd.Flags().Changed("ttl") {
					cfg.Server.Auth.TokenTTL = ttl
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			auth := a.cfg.Server.Auth
			if !auth.Enabled() {
				return errors.NewInvalidConfigValue("server.auth.secret", "", "required to issue tokens")
			}

			token, err := server.NewAuthenticator(auth.Secret, auth.TokenTTL).Issue(args[0])
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime, 0 for no expiry (default: server.auth.token_ttl from config)")
	return cmd
}
