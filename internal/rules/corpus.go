package rules

import (
	stderrors "errors"

	"github.com/conduit-lang/eggmath/internal/errors"
	"github.com/conduit-lang/eggmath/internal/rewrite"
	"github.com/conduit-lang/eggmath/internal/sexpr"
	"github.com/conduit-lang/eggmath/internal/term"
)

// Group is an assembled group of rewrites
type Group struct {
	Name      string
	Soundness Soundness
	Rewrites  []*rewrite.Rewrite
}

// Corpus is an ordered, validated set of groups. A Corpus is immutable and
// safe to share between goroutines.
type Corpus struct {
	groups []*Group
	byName map[string]*Group
}

// NewCorpus parses and validates every definition. All problems are
// collected into one errors.ErrorList; no corpus is returned unless every
// rule is valid.
func NewCorpus(defs []Definition, vocab *term.Vocabulary) (*Corpus, error) {
	c := &Corpus{byName: make(map[string]*Group, len(defs))}
	ruleGroup := make(map[string]string)

	var diags errors.ErrorList
	for _, def := range defs {
		if _, exists := c.byName[def.Name]; exists {
			diags = append(diags, errors.NewDuplicateGroup(def.Name))
			continue
		}

		group := &Group{Name: def.Name, Soundness: def.Soundness}
		for _, r := range def.Rules {
			if prev, exists := ruleGroup[r.Name]; exists {
				diags = append(diags, errors.NewDuplicateRule(r.Name, def.Name, prev))
				continue
			}
			ruleGroup[r.Name] = def.Name

			rw, diag := compile(r, vocab)
			if diag != nil {
				diags = append(diags, diag)
				continue
			}
			group.Rewrites = append(group.Rewrites, rw)
		}

		c.groups = append(c.groups, group)
		c.byName[group.Name] = group
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func compile(r Rule, vocab *term.Vocabulary) (*rewrite.Rewrite, *errors.Diagnostic) {
	lhs, err := sexpr.ParsePattern(r.LHS, vocab)
	if err != nil {
		return nil, errors.NewInvalidPattern(r.Name, "left-hand", asDiagnostic(err))
	}
	rhs, err := sexpr.ParsePattern(r.RHS, vocab)
	if err != nil {
		return nil, errors.NewInvalidPattern(r.Name, "right-hand", asDiagnostic(err))
	}
	rw, err := rewrite.NewRewrite(r.Name, lhs, rhs)
	if err != nil {
		return nil, asDiagnostic(err)
	}
	return rw, nil
}

func asDiagnostic(err error) *errors.Diagnostic {
	var d *errors.Diagnostic
	if stderrors.As(err, &d) {
		return d
	}
	return &errors.Diagnostic{Message: err.Error(), Severity: errors.SeverityError}
}

// Default assembles the built-in corpus against the default vocabulary
func Default() (*Corpus, error) {
	vocab, err := term.Default()
	if err != nil {
		return nil, err
	}
	return NewCorpus(builtin, vocab)
}

// Groups returns the groups in registration order
func (c *Corpus) Groups() []*Group {
	out := make([]*Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// Group looks up a group by name
func (c *Corpus) Group(name string) (*Group, bool) {
	g, ok := c.byName[name]
	return g, ok
}

// Len returns the total number of rewrites
func (c *Corpus) Len() int {
	n := 0
	for _, g := range c.groups {
		n += len(g.Rewrites)
	}
	return n
}

// Select returns the sub-corpus of the named groups, keeping registration
// order. No names selects everything. Unknown names are reported together.
func (c *Corpus) Select(names ...string) (*Corpus, error) {
	if len(names) == 0 {
		return c, nil
	}

	want := make(map[string]struct{}, len(names))
	var diags errors.ErrorList
	for _, name := range names {
		if _, ok := c.byName[name]; !ok {
			diags = append(diags, errors.NewUnknownGroup(name))
			continue
		}
		want[name] = struct{}{}
	}
	if err := diags.Err(); err != nil {
		return nil, err
	}

	return c.filter(func(g *Group) bool {
		_, ok := want[g.Name]
		return ok
	}), nil
}

// BySoundness returns the sub-corpus whose groups belong to one of classes.
// No classes selects everything.
func (c *Corpus) BySoundness(classes ...Soundness) *Corpus {
	if len(classes) == 0 {
		return c
	}
	return c.filter(func(g *Group) bool {
		for _, s := range classes {
			if g.Soundness == s {
				return true
			}
		}
		return false
	})
}

// Rewrites flattens the corpus in registration order
func (c *Corpus) Rewrites() []*rewrite.Rewrite {
	out := make([]*rewrite.Rewrite, 0, c.Len())
	for _, g := range c.groups {
		out = append(out, g.Rewrites...)
	}
	return out
}

// Names returns the group names in registration order
func (c *Corpus) Names() []string {
	out := make([]string, len(c.groups))
	for i, g := range c.groups {
		out[i] = g.Name
	}
	return out
}

func (c *Corpus) filter(keep func(*Group) bool) *Corpus {
	out := &Corpus{byName: make(map[string]*Group)}
	for _, g := range c.groups {
		if keep(g) {
			out.groups = append(out.groups, g)
			out.byName[g.Name] = g
		}
	}
	return out
}
