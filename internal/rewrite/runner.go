package rewrite

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/conduit-lang/eggmath/internal/egraph"
)

// StopReason explains why a run ended
type StopReason string

const (
	// Saturated means an iteration changed nothing
	Saturated StopReason = "saturated"
	// IterationLimit means the iteration budget ran out
	IterationLimit StopReason = "iteration-limit"
	// NodeLimit means the graph grew past the node budget
	NodeLimit StopReason = "node-limit"
	// TimeLimit means the time budget ran out
	TimeLimit StopReason = "time-limit"
	// Canceled means the context was done
	Canceled StopReason = "canceled"
)

// Limits bounds a saturation run. The node, time and cancellation checks run
// before every search and every rule application, so a run overshoots the
// node budget by at most one instantiated right-hand side.
//
// MatchLimit and BanLength drive the backoff scheduler: a rule matching more
// than MatchLimit times in one iteration is skipped for BanLength
// iterations, and both double on every ban. A negative MatchLimit applies
// every match.
type Limits struct {
	Iterations int           `json:"iterations" mapstructure:"iter_limit"`
	Nodes      int           `json:"nodes" mapstructure:"node_limit"`
	Time       time.Duration `json:"time" mapstructure:"time_limit"`
	MatchLimit int           `json:"match_limit" mapstructure:"match_limit"`
	BanLength  int           `json:"ban_length" mapstructure:"ban_length"`
}

// DefaultLimits returns 30 iterations, 10000 nodes, 5 seconds, and a backoff
// of 1000 matches and 5 iterations
func DefaultLimits() Limits {
	return Limits{
		Iterations: 30,
		Nodes:      10000,
		Time:       5 * time.Second,
		MatchLimit: 1000,
		BanLength:  5,
	}
}

// Iteration reports one search-apply-rebuild round
type Iteration struct {
	Index   int            `json:"index"`
	Applied map[string]int `json:"applied"`
	Unions  int            `json:"unions"`
	Nodes   int            `json:"nodes"`
	Classes int            `json:"classes"`
	Elapsed time.Duration  `json:"elapsed"`
}

// Report summarizes a run
type Report struct {
	Iterations []Iteration   `json:"iterations"`
	StopReason StopReason    `json:"stop_reason"`
	Nodes      int           `json:"nodes"`
	Classes    int           `json:"classes"`
	Elapsed    time.Duration `json:"elapsed"`
}

// RunnerOption configures a Runner
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	logger *zap.Logger
	hook   func(Iteration)
}

// WithLogger logs each iteration at debug level
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(c *runnerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHook calls hook after every iteration, on the runner's goroutine
func WithHook(hook func(Iteration)) RunnerOption {
	return func(c *runnerConfig) {
		c.hook = hook
	}
}

// Runner drives equality saturation over a graph
type Runner[D any] struct {
	limits Limits
	config runnerConfig
}

// NewRunner creates a runner. Non-positive limits fall back to the defaults.
func NewRunner[D any](limits Limits, opts ...RunnerOption) *Runner[D] {
	defaults := DefaultLimits()
	if limits.Iterations <= 0 {
		limits.Iterations = defaults.Iterations
	}
	if limits.Nodes <= 0 {
		limits.Nodes = defaults.Nodes
	}
	if limits.Time <= 0 {
		limits.Time = defaults.Time
	}
	if limits.MatchLimit == 0 {
		limits.MatchLimit = defaults.MatchLimit
	}
	if limits.BanLength <= 0 {
		limits.BanLength = defaults.BanLength
	}

	config := runnerConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&config)
	}
	return &Runner[D]{limits: limits, config: config}
}

// Limits returns the effective limits
func (r *Runner[D]) Limits() Limits {
	return r.limits
}

// Run saturates g with rules. Each iteration searches every rule before
// applying any, so matches are taken against one consistent snapshot. A limit
// reached while applying ends the run after the graph is rebuilt, and that
// partial iteration is still reported.
func (r *Runner[D]) Run(ctx context.Context, g *egraph.EGraph[D], rules []*Rewrite) Report {
	start := time.Now()
	g.Rebuild()

	sched := newBackoff(r.limits.MatchLimit, r.limits.BanLength)
	report := Report{}
	for {
		if reason, stop := r.shouldStop(ctx, g, len(report.Iterations), start); stop {
			report.StopReason = reason
			break
		}

		iter := r.step(ctx, g, rules, sched, len(report.Iterations), start)
		if !iter.searched {
			report.StopReason = iter.stop
			break
		}
		report.Iterations = append(report.Iterations, iter.Iteration)

		r.config.logger.Debug("saturation iteration",
			zap.Int("iteration", iter.Index),
			zap.Int("unions", iter.Unions),
			zap.Int("nodes", iter.Nodes),
			zap.Int("classes", iter.Classes),
			zap.Int("banned", iter.banned),
			zap.Duration("elapsed", iter.Elapsed),
		)
		if r.config.hook != nil {
			r.config.hook(iter.Iteration)
		}

		if iter.stop != "" {
			report.StopReason = iter.stop
			break
		}
		if !iter.changed && sched.canStop(iter.Index) {
			report.StopReason = Saturated
			break
		}
	}

	report.Nodes = g.NodeCount()
	report.Classes = g.ClassCount()
	report.Elapsed = time.Since(start)
	r.config.logger.Debug("saturation finished",
		zap.String("stop_reason", string(report.StopReason)),
		zap.Int("iterations", len(report.Iterations)),
		zap.Int("nodes", report.Nodes),
		zap.Int("classes", report.Classes),
	)
	return report
}

func (r *Runner[D]) shouldStop(ctx context.Context, g *egraph.EGraph[D], done int, start time.Time) (StopReason, bool) {
	if done >= r.limits.Iterations {
		if ctx.Err() != nil {
			return Canceled, true
		}
		return IterationLimit, true
	}
	return r.exceeded(ctx, g, start)
}

// exceeded checks the budgets that can run out in the middle of an iteration
func (r *Runner[D]) exceeded(ctx context.Context, g *egraph.EGraph[D], start time.Time) (StopReason, bool) {
	switch {
	case ctx.Err() != nil:
		return Canceled, true
	case g.NodeCount() > r.limits.Nodes:
		return NodeLimit, true
	case time.Since(start) > r.limits.Time:
		return TimeLimit, true
	}
	return "", false
}

type stepResult struct {
	Iteration
	changed  bool
	searched bool
	banned   int
	stop     StopReason
}

func (r *Runner[D]) step(ctx context.Context, g *egraph.EGraph[D], rules []*Rewrite, sched *backoff, index int, start time.Time) stepResult {
	began := time.Now()

	matches := make([][]Match, len(rules))
	banned := 0
	for i, rw := range rules {
		if reason, stop := r.exceeded(ctx, g, start); stop {
			return stepResult{stop: reason}
		}
		var ok bool
		matches[i], ok = sched.search(index, rw, func() []Match { return Search(g, rw.LHS) })
		if !ok {
			banned++
		}
	}

	nodes, classes, unions := g.NodeCount(), g.ClassCount(), g.Unions()
	applied := make(map[string]int)
	var reason StopReason
apply:
	for i, rw := range rules {
		for j := range matches[i] {
			if why, stop := r.exceeded(ctx, g, start); stop {
				reason = why
				break apply
			}
			if Apply(g, rw, matches[i][j:j+1]) > 0 {
				applied[rw.Name]++
			}
		}
	}
	g.Rebuild()

	it := Iteration{
		Index:   index,
		Applied: applied,
		Unions:  g.Unions() - unions,
		Nodes:   g.NodeCount(),
		Classes: g.ClassCount(),
		Elapsed: time.Since(began),
	}
	changed := it.Unions > 0 || it.Nodes != nodes || it.Classes != classes
	return stepResult{Iteration: it, changed: changed, searched: true, banned: banned, stop: reason}
}
