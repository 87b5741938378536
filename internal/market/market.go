// Package market prices goods in money and executes sales. Each sellable
// good has a base price derived from its mining difficulty and a drift
// factor sampled from smooth noise along the simulation-time axis, so
// prices wander slowly instead of jumping per tick.
package market

import (
	"errors"
	"math"
	"math/big"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/oreworks/internal/exact"
	"github.com/talgya/oreworks/internal/goods"
)

var (
	ErrNotSellable       = errors.New("market: good has no price")
	ErrInvalidQuantity   = errors.New("market: quantity must be positive")
	ErrInsufficientStock = errors.New("market: insufficient stock")
)

// driftPeriod is the number of ticks over which a price moves through one
// unit of noise space; larger values mean slower drift.
const driftPeriod = 1200

// laneSpacing separates the per-good noise lanes far enough that prices
// drift independently.
const laneSpacing = 9.7

// Ledger is the subset of the inventory the market reads and mutates.
type Ledger interface {
	Get(g goods.Good) *big.Rat
	Credit(g goods.Good, amount *big.Rat)
	Debit(g goods.Good, amount *big.Rat)
}

// Board holds the current unit prices for every sellable good.
type Board struct {
	noise  opensimplex.Noise
	prices map[goods.Good]*big.Rat
}

// NewBoard creates a price board seeded for a reproducible drift curve,
// with prices positioned at tick zero.
func NewBoard(seed int64) *Board {
	b := &Board{
		noise:  opensimplex.NewNormalized(seed),
		prices: make(map[goods.Good]*big.Rat),
	}
	b.Advance(0)
	return b
}

// Advance recomputes every price for the given tick. The drift factor is
// the noise sample mapped into [1/2, 3/2] and quantized to thousandths, so
// the price stays an exact rational.
func (b *Board) Advance(tick uint64) {
	for _, g := range goods.All() {
		if g == goods.Money {
			continue
		}
		n := b.noise.Eval2(float64(tick)/driftPeriod, float64(g)*laneSpacing)
		drift := big.NewRat(int64(math.Round((0.5+n)*1000)), 1000)
		b.prices[g] = new(big.Rat).Mul(basePrice(g), drift)
	}
}

// Price returns a copy of the current unit price of g in money.
// Money itself has no price.
func (b *Board) Price(g goods.Good) (*big.Rat, bool) {
	p, ok := b.prices[g]
	if !ok {
		return nil, false
	}
	return exact.Copy(p), true
}

// Sell debits qty units of g from the ledger and credits the proceeds in
// money at the current price. Returns the proceeds.
func (b *Board) Sell(inv Ledger, g goods.Good, qty int64) (*big.Rat, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	price, ok := b.Price(g)
	if !ok {
		return nil, ErrNotSellable
	}
	amount := exact.FromInt(qty)
	if inv.Get(g).Cmp(amount) < 0 {
		return nil, ErrInsufficientStock
	}
	proceeds := new(big.Rat).Mul(price, amount)
	inv.Debit(g, amount)
	inv.Credit(goods.Money, proceeds)
	return proceeds, nil
}

// basePrice anchors a good's price to its mining difficulty: rarer ores are
// harder to mine and fetch more.
func basePrice(g goods.Good) *big.Rat {
	d := int64(g.Properties().Difficulty)
	return exact.FromInt(1 + d*d)
}
