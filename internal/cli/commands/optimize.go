package commands

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/conduit-lang/eggmath/internal/cache"
	"github.com/conduit-lang/eggmath/internal/cli/config"
	"github.com/conduit-lang/eggmath/internal/cli/ui"
	"github.com/conduit-lang/eggmath/internal/optimizer"
	"github.com/conduit-lang/eggmath/internal/rewrite"
	"github.com/conduit-lang/eggmath/internal/sexpr"
)

type optimizeOptions struct {
	*globalOptions

	json        bool
	groups      []string
	iterLimit   int
	nodeLimit   int
	timeLimit   time.Duration
	noCache     bool
	progress    bool
	interactive bool
	jobs        int

	// ask prompts for one expression; replaced in tests
	ask func(validate func(string) error) (string, error)
}

func newOptimizeCommand(g *globalOptions) *cobra.Command {
	o := &optimizeOptions{globalOptions: g, ask: askExpression}

	cmd := &cobra.Command{
		Use:   "optimize [expression...]",
		Short: "Find the cheapest equivalent of each expression",
		Long: `Optimize each expression and print its cheapest known equivalent.

Expressions are s-expressions over the operator vocabulary ('eggmath vocab').
Atoms that are not operators or numbers are variables. With no arguments,
expressions are read from standard input, one per line; lines starting with
';' are comments.`,
		Example: `  # Identities and constant folding
  eggmath optimize "(* (+ x 0) 1)" "(+ 1/2 1/3)"

  # Only use the sound identity rules
  eggmath optimize --groups id-reduce-fp-safe "(- (+ a b) 0)"

  # Machine-readable output, one JSON object per expression
  echo "(/ (* x 2) 2)" | eggmath optimize --json

  # Optimize a file of expressions on four workers
  eggmath optimize --jobs 4 < benchmarks.txt

  # Prompt for expressions until an empty line
  eggmath optimize --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	cmd.Flags().BoolVar(&o.json, "json", false, "Print results as JSON")
	cmd.Flags().StringSliceVarP(&o.groups, "groups", "g", nil, "Rule groups to use (default: all, or rules.groups from config)")
	cmd.Flags().IntVar(&o.iterLimit, "iter-limit", 0, "Maximum saturation iterations")
	cmd.Flags().IntVar(&o.nodeLimit, "node-limit", 0, "Maximum e-graph nodes")
	cmd.Flags().DurationVar(&o.timeLimit, "time-limit", 0, "Maximum saturation time per expression")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "Bypass the result cache")
	cmd.Flags().BoolVar(&o.progress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "Prompt for expressions")
	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", 1, "Expressions optimized in parallel; output keeps input order")
	cmd.MarkFlagsMutuallyExclusive("progress", "jobs")
	cmd.MarkFlagsMutuallyExclusive("interactive", "jobs")

	return cmd
}

func (o *optimizeOptions) override(cfg *config.Config) {
	if len(o.groups) > 0 {
		cfg.Rules.Groups = o.groups
	}
	if o.iterLimit > 0 {
		cfg.Runner.Iterations = o.iterLimit
	}
	if o.nodeLimit > 0 {
		cfg.Runner.Nodes = o.nodeLimit
	}
	if o.timeLimit > 0 {
		cfg.Runner.Time = o.timeLimit
	}
	if o.noCache {
		cfg.Cache.Backend = cache.BackendNone
	}
}

func (o *optimizeOptions) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := o.setup(ctx, o.override)
	if err != nil {
		return err
	}
	defer a.Close()

	if o.interactive {
		return o.runInteractive(ctx, cmd, a.opt)
	}

	texts := args
	if len(texts) == 0 {
		texts, err = readExpressions(cmd.InOrStdin())
		if err != nil {
			return err
		}
		if len(texts) == 0 {
			return fmt.Errorf("no expressions given; pass them as arguments or on standard input")
		}
	}
	if o.jobs > 1 {
		return o.optimizeParallel(ctx, cmd, a.opt, texts)
	}
	for _, text := range texts {
		if err := o.optimizeOne(ctx, cmd, a.opt, text); err != nil {
			return err
		}
	}
	return nil
}

// readExpressions returns the non-blank lines of r that are not ';' comments
func readExpressions(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var texts []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		texts = append(texts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expressions: %w", err)
	}
	return texts, nil
}

// optimizeParallel runs up to o.jobs optimizations at once. The first
// failure cancels the rest and nothing is printed.
func (o *optimizeOptions) optimizeParallel(ctx context.Context, cmd *cobra.Command, opt *optimizer.Optimizer, texts []string) error {
	results := make([]*optimizer.Result, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.jobs)
	for i, text := range texts {
		g.Go(func() error {
			res, err := opt.Optimize(gctx, text)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		if err := o.emit(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	}
	return nil
}

func (o *optimizeOptions) optimizeOne(ctx context.Context, cmd *cobra.Command, opt *optimizer.Optimizer, text string) error {
	var hook func(rewrite.Iteration)
	var bar *ui.ProgressBar
	if o.progress {
		bar = ui.NewProgressBar(cmd.ErrOrStderr(), opt.Limits().Iterations, 0, color.NoColor)
		hook = func(it rewrite.Iteration) {
			bar.Set(it.Index+1, fmt.Sprintf("nodes=%d classes=%d", it.Nodes, it.Classes))
		}
	}

	res, err := opt.Stream(ctx, text, hook)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}
	return o.emit(cmd.OutOrStdout(), res)
}

func (o *optimizeOptions) emit(w io.Writer, res *optimizer.Result) error {
	if o.json {
		return json.NewEncoder(w).Encode(res)
	}
	o.render(w, res)
	return nil
}

func (o *optimizeOptions) render(w io.Writer, res *optimizer.Result) {
	if !o.verbose {
		fmt.Fprintln(w, res.Output)
		return
	}

	kv := ui.NewKeyValueTable(w, color.NoColor)
	kv.AddRow("Input", res.Input)
	kv.AddRow("Output", res.Output)
	kv.AddRow("Cost", fmt.Sprintf("%s → %s", res.InputCost, res.Cost))
	kv.AddRow("Improved", strconv.FormatBool(res.Improved()))
	kv.AddRow("Stop reason", string(res.StopReason))
	kv.AddRow("E-graph", fmt.Sprintf("%d nodes, %d classes", res.Nodes, res.Classes))
	kv.AddRow("Elapsed", res.Elapsed.Round(time.Microsecond).String())
	kv.AddRow("Cached", strconv.FormatBool(res.Cached))
	kv.Render()

	if len(res.Iterations) == 0 {
		return
	}
	fmt.Fprintln(w)
	table := ui.NewTable(w, color.NoColor, "Iter", "Unions", "Nodes", "Classes", "Top rules")
	for _, it := range res.Iterations {
		table.AddRow(
			strconv.Itoa(it.Index),
			strconv.Itoa(it.Unions),
			strconv.Itoa(it.Nodes),
			strconv.Itoa(it.Classes),
			topRules(it.Applied, 3),
		)
	}
	table.Render()
}

// topRules lists the n rules with the most applications, most first
func topRules(applied map[string]int, n int) string {
	names := make([]string, 0, len(applied))
	for name, count := range applied {
		if count > 0 {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if applied[names[i]] != applied[names[j]] {
			return applied[names[i]] > applied[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s×%d", name, applied[name])
	}
	return strings.Join(parts, ", ")
}

func (o *optimizeOptions) runInteractive(ctx context.Context, cmd *cobra.Command, opt *optimizer.Optimizer) error {
	validate := func(text string) error {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		_, err := sexpr.ParseExpr(text, opt.Vocabulary())
		return err
	}

	for {
		text, err := o.ask(validate)
		if stderrors.Is(err, terminal.InterruptErr) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return nil
		}

		spinner := ui.NewSpinner(cmd.ErrOrStderr(), "Saturating...", 0, color.NoColor)
		spinner.Start()
		res, err := opt.Optimize(ctx, text)
		spinner.Stop()
		if err != nil {
			ui.DescribeError(err, opt.Corpus().Names(), color.NoColor).Write(cmd.ErrOrStderr())
			continue
		}
		o.render(cmd.OutOrStdout(), res)
	}
}

func askExpression(validate func(string) error) (string, error) {
	var text string
	prompt := &survey.Input{
		Message: "Expression (empty to quit):",
		Help:    "An s-expression such as (* (+ x 0) 1). Run 'eggmath vocab' for operators.",
	}
	err := survey.AskOne(prompt, &text, survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		return validate(s)
	}))
	return text, err
}
