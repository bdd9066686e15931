// Package optimizer is the front door of eggmath: it parses an expression,
// saturates it with the selected rewrite groups, and extracts the cheapest
// equivalent expression recorded by the class metadata.
package optimizer

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/conduit-lang/eggmath/internal/cache"
	"github.com/conduit-lang/eggmath/internal/egraph"
	"github.com/conduit-lang/eggmath/internal/errors"
	"github.com/conduit-lang/eggmath/internal/logging"
	"github.com/conduit-lang/eggmath/internal/meta"
	"github.com/conduit-lang/eggmath/internal/rewrite"
	"github.com/conduit-lang/eggmath/internal/rules"
	"github.com/conduit-lang/eggmath/internal/sexpr"
	"github.com/conduit-lang/eggmath/internal/term"
)

// InputSource names user-supplied expression text in diagnostics
const InputSource = "<input>"

// Result is the outcome of one optimization
type Result struct {
	Input      string              `json:"input"`
	Output     string              `json:"output"`
	InputCost  term.Cost           `json:"input_cost"`
	Cost       term.Cost           `json:"cost"`
	Iterations []rewrite.Iteration `json:"iterations"`
	StopReason rewrite.StopReason  `json:"stop_reason"`
	Nodes      int                 `json:"nodes"`
	Classes    int                 `json:"classes"`
	Elapsed    time.Duration       `json:"elapsed"`
	Cached     bool                `json:"cached"`
}

// Improved reports whether the output is strictly cheaper than the input
func (r *Result) Improved() bool {
	return r.Cost.Less(r.InputCost)
}

// Option configures an Optimizer
type Option func(*Optimizer)

// WithVocabulary replaces the default operator table
func WithVocabulary(v *term.Vocabulary) Option {
	return func(o *Optimizer) { o.vocab = v }
}

// WithCorpus replaces the built-in rewrite corpus
func WithCorpus(c *rules.Corpus) Option {
	return func(o *Optimizer) { o.corpus = c }
}

// WithExtraRules appends user-defined groups to the built-in corpus. It has
// no effect together with WithCorpus.
func WithExtraRules(defs ...rules.Definition) Option {
	return func(o *Optimizer) { o.extra = defs }
}

// WithLimits sets the saturation limits
func WithLimits(l rewrite.Limits) Option {
	return func(o *Optimizer) { o.limits = l }
}

// WithGroups restricts saturation to the named groups
func WithGroups(names ...string) Option {
	return func(o *Optimizer) { o.groups = names }
}

// WithSoundness restricts saturation to groups of the given classes
func WithSoundness(classes ...rules.Soundness) Option {
	return func(o *Optimizer) { o.soundness = classes }
}

// WithCache stores results in c for ttl. A nil cache disables caching.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(o *Optimizer) {
		o.cache = c
		o.ttl = ttl
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Optimizer) { o.logger = logging.Or(logger) }
}

// Optimizer is safe for concurrent use; every call builds its own graph.
type Optimizer struct {
	vocab     *term.Vocabulary
	corpus    *rules.Corpus
	selected  *rules.Corpus
	rewrites  []*rewrite.Rewrite
	ruleset   string
	extra     []rules.Definition
	groups    []string
	soundness []rules.Soundness
	limits    rewrite.Limits
	cache     cache.Cache
	ttl       time.Duration
	logger    *zap.Logger
}

// New builds an optimizer. Unknown group names are reported as RUL204.
func New(opts ...Option) (*Optimizer, error) {
	o := &Optimizer{
		limits: rewrite.DefaultLimits(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.vocab == nil {
		v, err := term.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load vocabulary: %w", err)
		}
		o.vocab = v
	}
	if o.corpus == nil {
		c, err := rules.NewCorpus(append(rules.Builtin(), o.extra...), o.vocab)
		if err != nil {
			return nil, fmt.Errorf("failed to assemble rule corpus: %w", err)
		}
		o.corpus = c
	}

	if err := o.selectRules(); err != nil {
		return nil, err
	}
	o.limits = rewrite.NewRunner[meta.Meta](o.limits).Limits()
	return o, nil
}

func (o *Optimizer) selectRules() error {
	selected, err := o.corpus.Select(o.groups...)
	if err != nil {
		return err
	}
	o.selected = selected.BySoundness(o.soundness...)
	o.rewrites = o.selected.Rewrites()

	text := make([]string, len(o.rewrites))
	for i, rw := range o.rewrites {
		text[i] = rw.String()
	}
	o.ruleset = cache.Key(text...)
	return nil
}

// Derive returns a copy restricted to groups, sharing the cache and logger.
// No groups keeps the current selection.
func (o *Optimizer) Derive(groups ...string) (*Optimizer, error) {
	if len(groups) == 0 {
		return o, nil
	}
	d := *o
	d.groups = groups
	if err := d.selectRules(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Vocabulary returns the operator table
func (o *Optimizer) Vocabulary() *term.Vocabulary {
	return o.vocab
}

// Corpus returns the full corpus, before group selection
func (o *Optimizer) Corpus() *rules.Corpus {
	return o.corpus
}

// Selected returns the groups that saturation will use
func (o *Optimizer) Selected() *rules.Corpus {
	return o.selected
}

// Limits returns the effective saturation limits
func (o *Optimizer) Limits() rewrite.Limits {
	return o.limits
}

// Optimize parses text and returns its cheapest known equivalent
func (o *Optimizer) Optimize(ctx context.Context, text string) (*Result, error) {
	return o.Stream(ctx, text, nil)
}

// Stream is Optimize with a hook called after every saturation iteration.
// Cached results are returned without calling the hook. A canceled context
// yields the best result found so far, which is not cached.
func (o *Optimizer) Stream(ctx context.Context, text string, hook func(rewrite.Iteration)) (*Result, error) {
	expr, err := sexpr.ParseExpr(text, o.vocab)
	if err != nil {
		var d *errors.Diagnostic
		if stderrors.As(err, &d) && d.Source == "" {
			d.Source = InputSource
		}
		return nil, err
	}

	input := expr.String()
	key := o.cacheKey(input)
	if res, ok := o.lookup(ctx, key); ok {
		return res, nil
	}

	g := meta.NewGraph()
	root := g.AddExpr(expr)

	runner := rewrite.NewRunner[meta.Meta](o.limits,
		rewrite.WithLogger(o.logger),
		rewrite.WithHook(hook),
	)
	report := runner.Run(ctx, g, o.rewrites)
	best := Extract(g, root)

	res := &Result{
		Input:      input,
		Output:     best.BestString(),
		InputCost:  expr.Cost(),
		Cost:       best.Cost,
		Iterations: report.Iterations,
		StopReason: report.StopReason,
		Nodes:      report.Nodes,
		Classes:    report.Classes,
		Elapsed:    report.Elapsed,
	}
	if res.Iterations == nil {
		res.Iterations = []rewrite.Iteration{}
	}

	o.logger.Debug("optimized expression",
		zap.String("input", res.Input),
		zap.String("output", res.Output),
		zap.Stringer("input_cost", res.InputCost),
		zap.Stringer("cost", res.Cost),
		zap.String("stop_reason", string(res.StopReason)),
	)

	if report.StopReason != rewrite.Canceled {
		o.store(ctx, key, res)
	}
	return res, nil
}

// Extract reads the cheapest expression recorded for the class of id
func Extract(g *meta.Graph, id egraph.ClassID) meta.Meta {
	return g.Data(id)
}

// cacheKey covers the canonical input and everything that changes the result
func (o *Optimizer) cacheKey(input string) string {
	return cache.Key(
		"v1",
		input,
		strings.Join(o.selected.Names(), ","),
		o.ruleset,
		strconv.Itoa(o.limits.Iterations),
		strconv.Itoa(o.limits.Nodes),
		o.limits.Time.String(),
		strconv.Itoa(o.limits.MatchLimit),
		strconv.Itoa(o.limits.BanLength),
	)
}

func (o *Optimizer) lookup(ctx context.Context, key string) (*Result, bool) {
	if o.cache == nil {
		return nil, false
	}

	data, err := o.cache.Get(ctx, key)
	if err != nil {
		if !cache.IsMiss(err) {
			o.logger.Warn("cache lookup failed", zap.Error(err))
		}
		return nil, false
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		o.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	res.Cached = true
	o.logger.Debug("cache hit", zap.String("key", key))
	return &res, true
}

func (o *Optimizer) store(ctx context.Context, key string, res *Result) {
	if o.cache == nil {
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		o.logger.Warn("failed to encode result for cache", zap.Error(err))
		return
	}
	if err := o.cache.Set(ctx, key, data, o.ttl); err != nil {
		o.logger.Warn("cache store failed", zap.Error(err))
	}
}
