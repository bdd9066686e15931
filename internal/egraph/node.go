package egraph

import (
	"strconv"
	"strings"

	"github.com/conduit-lang/eggmath/internal/term"
)

// Node is an operator applied to child classes
type Node struct {
	Op       term.Op
	Children []ClassID
}

// Leaf returns a childless node
func Leaf(op term.Op) Node {
	return Node{Op: op}
}

// IsLeaf reports whether the node has no children
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// key is the hash-consing key: equal op and equal child IDs give equal keys
func (n Node) key() string {
	var b strings.Builder
	b.WriteString(n.Op.Key())
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(uint64(c), 10))
	}
	b.WriteByte(')')
	return b.String()
}

func (n Node) String() string {
	var b strings.Builder
	b.WriteString(n.Op.String())
	for _, c := range n.Children {
		b.WriteString(" #")
		b.WriteString(strconv.FormatUint(uint64(c), 10))
	}
	return b.String()
}
