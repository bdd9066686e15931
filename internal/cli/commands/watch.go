package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/eggmath/internal/cli/ui"
	"github.com/conduit-lang/eggmath/internal/optimizer"
	"github.com/conduit-lang/eggmath/internal/watch"
)

type watchOptions struct {
	optimizeOptions

	mu sync.Mutex
}

func newWatchCommand(g *globalOptions) *cobra.Command {
	o := &watchOptions{optimizeOptions: optimizeOptions{globalOptions: g}}

	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Re-optimize expression files whenever they change",
		Long: `Optimize every expression in each file, then again each time a file is
saved, until interrupted. Files hold one expression per line; lines starting
with ';' are comments.`,
		Example: `  eggmath watch scratch.txt
  eggmath watch --json -g id-reduce-fp-safe a.txt b.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return o.run(ctx, cmd, args)
		},
	}

	cmd.Flags().BoolVar(&o.json, "json", false, "Print results as JSON")
	cmd.Flags().StringSliceVarP(&o.groups, "groups", "g", nil, "Rule groups to use (default: all, or rules.groups from config)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "Bypass the result cache")
	cmd.Flags().DurationVar(&o.timeLimit, "time-limit", 0, "Maximum saturation time per expression")
	return cmd
}

func (o *watchOptions) run(ctx context.Context, cmd *cobra.Command, files []string) error {
	a, err := o.setup(ctx, o.override)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, path := range files {
		o.optimizeFile(ctx, cmd, a.opt, path)
	}

	w, err := watch.NewFileWatcher(files, watch.DefaultDelay, a.logger, func(changed []string) {
		for _, path := range changed {
			o.optimizeFile(ctx, cmd, a.opt, path)
		}
	})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return err
	}
	a.logger.Info("watching for changes", zap.Strings("files", files))

	<-ctx.Done()
	return w.Stop()
}

// optimizeFile prints results for every expression in path. Failures are
// reported and the watch continues.
func (o *watchOptions) optimizeFile(ctx context.Context, cmd *cobra.Command, opt *optimizer.Optimizer, path string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if !o.json {
		ui.Header(out, path, color.NoColor)
	}

	f, err := os.Open(path)
	if err != nil {
		ui.DescribeError(err, opt.Corpus().Names(), color.NoColor).Write(errOut)
		return
	}
	texts, err := readExpressions(f)
	_ = f.Close()
	if err != nil {
		ui.DescribeError(err, opt.Corpus().Names(), color.NoColor).Write(errOut)
		return
	}

	for _, text := range texts {
		res, err := opt.Optimize(ctx, text)
		if err != nil {
			fmt.Fprintf(errOut, "%s: ", path)
			ui.DescribeError(err, opt.Corpus().Names(), color.NoColor).Write(errOut)
			continue
		}
		if err := o.emit(out, res); err != nil {
			ui.DescribeError(err, nil, color.NoColor).Write(errOut)
			return
		}
	}
	if !o.json {
		fmt.Fprintln(out)
	}
}
