// Package egraph is the equality-saturation engine that hosts the class
// metadata protocol. Classes live in an arena addressed by ClassID with a
// path-compressing union-find; nodes are hash-consed so that structurally
// equal nodes always land in the same class.
//
// An EGraph is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
package egraph

import (
	"sort"

	"github.com/conduit-lang/eggmath/internal/term"
)

// Analysis maintains per-class metadata of type D
type Analysis[D any] interface {
	// Make computes the metadata of a freshly inserted node. Children are
	// canonical and their metadata is available through g.Data.
	Make(g *EGraph[D], n Node) D
	// Merge combines the metadata of two classes being unified. into belongs
	// to the surviving (older) class. The bool reports whether the result
	// differs from into.
	Merge(into, from D) (D, bool)
	// Modify runs after congruence has been restored and may add nodes or
	// unions.
	Modify(g *EGraph[D], id ClassID)
}

// EClass is one equivalence class
type EClass[D any] struct {
	ID      ClassID
	Nodes   []Node
	Data    D
	parents []parent
}

type parent struct {
	node  Node
	class ClassID
}

// EGraph is an e-graph with metadata of type D
type EGraph[D any] struct {
	analysis Analysis[D]
	uf       unionFind
	classes  map[ClassID]*EClass[D]
	memo     map[string]ClassID
	pending  []ClassID
	touched  map[ClassID]struct{}
	unions   int
	size     int
}

// New returns an empty e-graph driven by analysis
func New[D any](analysis Analysis[D]) *EGraph[D] {
	return &EGraph[D]{
		analysis: analysis,
		classes:  make(map[ClassID]*EClass[D]),
		memo:     make(map[string]ClassID),
		touched:  make(map[ClassID]struct{}),
	}
}

// Find returns the canonical ID of the class containing id
func (g *EGraph[D]) Find(id ClassID) ClassID {
	return g.uf.find(id)
}

// Data returns the metadata of the class containing id
func (g *EGraph[D]) Data(id ClassID) D {
	return g.classes[g.Find(id)].Data
}

// Nodes returns the nodes of the class containing id. The slice is owned by
// the graph and must not be modified.
func (g *EGraph[D]) Nodes(id ClassID) []Node {
	return g.classes[g.Find(id)].Nodes
}

// Classes returns the canonical class IDs in ascending order
func (g *EGraph[D]) Classes() []ClassID {
	ids := make([]ClassID, 0, len(g.classes))
	for id := range g.classes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ClassCount returns the number of live classes
func (g *EGraph[D]) ClassCount() int {
	return len(g.classes)
}

// NodeCount returns the number of nodes across all classes. Between a union
// and the next rebuild it may count nodes that rebuilding will deduplicate.
func (g *EGraph[D]) NodeCount() int {
	return g.size
}

// Unions returns how many successful unions the graph has performed
func (g *EGraph[D]) Unions() int {
	return g.unions
}

// Clean reports whether all unions have been rebuilt
func (g *EGraph[D]) Clean() bool {
	return len(g.pending) == 0 && len(g.touched) == 0
}

func (g *EGraph[D]) canonicalize(n Node) Node {
	if len(n.Children) == 0 {
		return n
	}
	children := make([]ClassID, len(n.Children))
	for i, c := range n.Children {
		children[i] = g.Find(c)
	}
	return Node{Op: n.Op, Children: children}
}

// Lookup returns the class holding a node structurally equal to n
func (g *EGraph[D]) Lookup(n Node) (ClassID, bool) {
	id, ok := g.memo[g.canonicalize(n).key()]
	if !ok {
		return 0, false
	}
	return g.Find(id), true
}

// Add inserts n, returning the class of an existing equal node when there is
// one. New classes get their metadata from Analysis.Make.
func (g *EGraph[D]) Add(n Node) ClassID {
	n = g.canonicalize(n)
	key := n.key()
	if id, ok := g.memo[key]; ok {
		return g.Find(id)
	}

	id := g.uf.makeSet()
	class := &EClass[D]{ID: id, Nodes: []Node{n}}
	g.classes[id] = class
	g.size++
	for _, child := range n.Children {
		c := g.classes[child]
		c.parents = append(c.parents, parent{node: n, class: id})
	}
	g.memo[key] = id
	class.Data = g.analysis.Make(g, n)
	g.touched[id] = struct{}{}
	return id
}

// AddExpr inserts an expression tree bottom-up and returns the root class
func (g *EGraph[D]) AddExpr(e *term.Expr) ClassID {
	children := make([]ClassID, len(e.Children))
	for i, c := range e.Children {
		children[i] = g.AddExpr(c)
	}
	return g.Add(Node{Op: e.Op, Children: children})
}

// Union merges the classes of a and b. The older class (lower ID) survives
// and its metadata is passed first to Analysis.Merge, so ties always resolve
// in favour of the class that existed first. The graph must be rebuilt
// before it is searched again.
func (g *EGraph[D]) Union(a, b ClassID) (ClassID, bool) {
	a, b = g.Find(a), g.Find(b)
	if a == b {
		return a, false
	}
	if b < a {
		a, b = b, a
	}

	root, other := g.classes[a], g.classes[b]
	g.uf.union(a, b)
	g.unions++

	if data, changed := g.analysis.Merge(root.Data, other.Data); changed {
		root.Data = data
	}
	root.Nodes = append(root.Nodes, other.Nodes...)
	root.parents = append(root.parents, other.parents...)
	delete(g.classes, b)
	delete(g.touched, b)

	g.pending = append(g.pending, a)
	g.touched[a] = struct{}{}
	return a, true
}

// Rebuild restores the congruence and metadata invariants after unions,
// then runs Analysis.Modify on every class touched since the last rebuild
// until no further work is produced.
func (g *EGraph[D]) Rebuild() {
	for len(g.pending) > 0 || len(g.touched) > 0 {
		for len(g.pending) > 0 {
			todo := g.pending
			g.pending = nil
			seen := make(map[ClassID]struct{}, len(todo))
			for _, id := range todo {
				id = g.Find(id)
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				g.repair(id)
			}
		}

		touched := make([]ClassID, 0, len(g.touched))
		for id := range g.touched {
			touched = append(touched, id)
		}
		g.touched = make(map[ClassID]struct{})
		sort.Slice(touched, func(i, j int) bool { return touched[i] < touched[j] })

		done := make(map[ClassID]struct{}, len(touched))
		for _, id := range touched {
			id = g.Find(id)
			if _, dup := done[id]; dup {
				continue
			}
			done[id] = struct{}{}
			g.analysis.Modify(g, id)
		}
	}

	g.dedupNodes()
}

// repair re-canonicalizes the parents of a class, merging parents that have
// become congruent, and re-makes parent metadata so improvements propagate
// upward.
func (g *EGraph[D]) repair(id ClassID) {
	class := g.classes[id]
	parents := class.parents
	class.parents = nil

	for _, p := range parents {
		delete(g.memo, p.node.key())
	}
	for _, p := range parents {
		n := g.canonicalize(p.node)
		g.memo[n.key()] = g.Find(p.class)
	}

	kept := make([]parent, 0, len(parents))
	index := make(map[string]int, len(parents))
	for _, p := range parents {
		n := g.canonicalize(p.node)
		key := n.key()
		if i, ok := index[key]; ok {
			g.Union(kept[i].class, p.class)
			kept[i].class = g.Find(kept[i].class)
			continue
		}
		index[key] = len(kept)
		kept = append(kept, parent{node: n, class: g.Find(p.class)})
	}

	for _, p := range kept {
		pc := g.classes[g.Find(p.class)]
		made := g.analysis.Make(g, g.canonicalize(p.node))
		if data, changed := g.analysis.Merge(pc.Data, made); changed {
			pc.Data = data
			g.pending = append(g.pending, pc.ID)
			g.touched[pc.ID] = struct{}{}
		}
	}

	root := g.classes[g.Find(id)]
	root.parents = append(root.parents, kept...)
}

func (g *EGraph[D]) dedupNodes() {
	g.size = 0
	for _, class := range g.classes {
		seen := make(map[string]struct{}, len(class.Nodes))
		nodes := class.Nodes[:0]
		for _, n := range class.Nodes {
			n = g.canonicalize(n)
			key := n.key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			nodes = append(nodes, n)
		}
		class.Nodes = nodes
		g.size += len(nodes)
	}
}
