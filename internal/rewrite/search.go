// Package rewrite implements pattern matching over an e-graph, rewrite
// rules, and the saturation loop that applies them until a fixpoint or a
// limit is reached.
package rewrite

import (
	"sort"
	"strconv"
	"strings"

	"github.com/conduit-lang/eggmath/internal/egraph"
	"github.com/conduit-lang/eggmath/internal/term"
)

// Subst binds pattern variables to classes
type Subst map[string]egraph.ClassID

func (s Subst) with(name string, id egraph.ClassID) Subst {
	out := make(Subst, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[name] = id
	return out
}

func (s Subst) key() string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, k := range names {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strconv.FormatUint(uint64(s[k]), 10))
		b.WriteByte(' ')
	}
	return b.String()
}

// Match is one occurrence of a pattern rooted at Class
type Match struct {
	Class egraph.ClassID
	Subst Subst
}

// Search finds every match of p in g, ordered by class ID. The graph must
// be clean (rebuilt) for matches to be complete.
func Search[D any](g *egraph.EGraph[D], p *term.Pattern) []Match {
	var matches []Match
	for _, id := range g.Classes() {
		matches = append(matches, SearchClass(g, p, id)...)
	}
	return matches
}

// SearchClass finds the matches of p rooted at the class containing id
func SearchClass[D any](g *egraph.EGraph[D], p *term.Pattern, id egraph.ClassID) []Match {
	id = g.Find(id)
	substs := matchClass(g, p, id, Subst{})
	matches := make([]Match, 0, len(substs))
	seen := make(map[string]struct{}, len(substs))
	for _, s := range substs {
		k := s.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		matches = append(matches, Match{Class: id, Subst: s})
	}
	return matches
}

func matchClass[D any](g *egraph.EGraph[D], p *term.Pattern, id egraph.ClassID, s Subst) []Subst {
	if p.IsVar() {
		if bound, ok := s[p.Var]; ok {
			if g.Find(bound) == g.Find(id) {
				return []Subst{s}
			}
			return nil
		}
		return []Subst{s.with(p.Var, g.Find(id))}
	}

	var out []Subst
	for _, n := range g.Nodes(id) {
		if !n.Op.Equal(p.Op) || len(n.Children) != len(p.Children) {
			continue
		}
		substs := []Subst{s}
		for i, child := range p.Children {
			var next []Subst
			for _, cur := range substs {
				next = append(next, matchClass(g, child, n.Children[i], cur)...)
			}
			substs = next
			if len(substs) == 0 {
				break
			}
		}
		out = append(out, substs...)
	}
	return out
}

// Instantiate adds p to g under s and returns the resulting class. Every
// variable of p must be bound.
func Instantiate[D any](g *egraph.EGraph[D], p *term.Pattern, s Subst) egraph.ClassID {
	if p.IsVar() {
		return g.Find(s[p.Var])
	}
	children := make([]egraph.ClassID, len(p.Children))
	for i, c := range p.Children {
		children[i] = Instantiate(g, c, s)
	}
	return g.Add(egraph.Node{Op: p.Op, Children: children})
}
