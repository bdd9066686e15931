package term

import (
	"fmt"
	"math/big"
)

// Cost is a non-negative integer of unbounded width. The zero value is 0.
type Cost struct {
	n *big.Int
}

// NewCost returns a Cost of n
func NewCost(n uint64) Cost {
	return Cost{n: new(big.Int).SetUint64(n)}
}

func (c Cost) int() *big.Int {
	if c.n == nil {
		return new(big.Int)
	}
	return c.n
}

// Add returns c + o
func (c Cost) Add(o Cost) Cost {
	return Cost{n: new(big.Int).Add(c.int(), o.int())}
}

// Cmp returns -1, 0 or +1 as c is less than, equal to, or greater than o
func (c Cost) Cmp(o Cost) int {
	return c.int().Cmp(o.int())
}

// Less reports c < o
func (c Cost) Less(o Cost) bool {
	return c.Cmp(o) < 0
}

// IsZero reports c == 0
func (c Cost) IsZero() bool {
	return c.n == nil || c.n.Sign() == 0
}

// Uint64 returns the cost as a uint64 and whether it fit
func (c Cost) Uint64() (uint64, bool) {
	n := c.int()
	if !n.IsUint64() {
		return 0, false
	}
	return n.Uint64(), true
}

func (c Cost) String() string {
	return c.int().String()
}

// MarshalJSON encodes the cost as a bare JSON number
func (c Cost) MarshalJSON() ([]byte, error) {
	return []byte(c.int().String()), nil
}

// UnmarshalJSON decodes a JSON number
func (c *Cost) UnmarshalJSON(data []byte) error {
	n, ok := new(big.Int).SetString(string(data), 10)
	if !ok || n.Sign() < 0 {
		return fmt.Errorf("invalid cost %s", data)
	}
	c.n = n
	return nil
}

// CostOf is the cost model: leaves cost 0 and every other operator costs one
// more than the sum of its children. Cost grows strictly with subtree size,
// so a folded constant always beats any operator application.
func CostOf(op Op, children []Cost) Cost {
	if op.IsLeaf() {
		return Cost{}
	}
	total := new(big.Int).SetInt64(1)
	for _, c := range children {
		total.Add(total, c.int())
	}
	return Cost{n: total}
}
