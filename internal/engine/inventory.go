package engine

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/talgya/oreworks/internal/exact"
	"github.com/talgya/oreworks/internal/goods"
)

// Inventory maps each good to an exact rational quantity. Every cataloged
// good has an entry at all times — a fresh inventory starts with all goods
// at zero rather than a blank map, so views never see absent goods.
type Inventory map[goods.Good]*big.Rat

// NewInventory returns an inventory holding an exact zero for every
// cataloged good.
func NewInventory() Inventory {
	inv := make(Inventory, goods.NumGoods)
	for _, g := range goods.All() {
		inv[g] = exact.Zero()
	}
	return inv
}

// Get returns a copy of the stored quantity, or exact zero if absent.
func (inv Inventory) Get(g goods.Good) *big.Rat {
	if q, ok := inv[g]; ok {
		return exact.Copy(q)
	}
	return exact.Zero()
}

// Credit adds amount to the stored quantity, inserting a zero-based entry
// first if absent. Amount must be non-negative.
func (inv Inventory) Credit(g goods.Good, amount *big.Rat) {
	if amount.Sign() < 0 {
		panic(fmt.Sprintf("engine: credit of negative amount %s for %s", amount.RatString(), g))
	}
	q, ok := inv[g]
	if !ok {
		q = exact.Zero()
		inv[g] = q
	}
	q.Add(q, amount)
}

// Debit subtracts amount from the stored quantity. Amount must be
// non-negative. There is no floor at zero: the production engine is
// responsible for never requesting more than is available.
func (inv Inventory) Debit(g goods.Good, amount *big.Rat) {
	if amount.Sign() < 0 {
		panic(fmt.Sprintf("engine: debit of negative amount %s for %s", amount.RatString(), g))
	}
	q, ok := inv[g]
	if !ok {
		q = exact.Zero()
		inv[g] = q
	}
	q.Sub(q, amount)
}

// Holding is one good and a copy of its quantity, for display.
type Holding struct {
	Good   goods.Good
	Amount *big.Rat
}

// Sorted returns the inventory as holdings ordered by good identifier.
func (inv Inventory) Sorted() []Holding {
	out := make([]Holding, 0, len(inv))
	for g, q := range inv {
		out = append(out, Holding{Good: g, Amount: exact.Copy(q)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Good < out[j].Good })
	return out
}
