// Producer ticking with proportional throttling: a producer starved of an
// input scales its whole tick down to the largest fraction its scarcest
// input can sustain, instead of producing nothing at all. Partial output at
// the margin beats full-rate/zero-rate flapping.
package engine

import (
	"math/big"

	"github.com/talgya/oreworks/internal/exact"
	"github.com/talgya/oreworks/internal/goods"
	"github.com/talgya/oreworks/internal/producers"
)

// Advance applies one producer to inv for a time slice of dt seconds.
//
// The binding scale is min(dt, min over inputs of balance/rate), clamped to
// [0, dt]. Zero-rate inputs are unconstrained, never a division. With the
// scale fixed, outputs are credited and inputs debited at rate×scale, so a
// balance driven only by the engine never goes negative.
func Advance(p producers.Producer, inv Inventory, dt *big.Rat) {
	props := p.Properties()

	scale := dt
	for g, rate := range props.Inputs {
		if rate.Sign() == 0 {
			continue
		}
		affordable := new(big.Rat).Quo(inv.Get(g), rate)
		scale = exact.Min(scale, affordable)
	}
	if scale.Sign() < 0 {
		scale = exact.Zero()
	}

	for g, rate := range props.Outputs {
		inv.Credit(g, new(big.Rat).Mul(rate, scale))
	}
	for g, rate := range props.Inputs {
		inv.Debit(g, new(big.Rat).Mul(rate, scale))
	}
}

// AdvanceAll applies Advance to every producer in order. When two producers
// compete for the same scarce input within one tick, the earlier one wins
// the available balance; the ordering is the caller's, not the engine's.
func AdvanceAll(ps []producers.Producer, inv Inventory, dt *big.Rat) {
	for _, p := range ps {
		Advance(p, inv, dt)
	}
}

// Rates is the aggregate theoretical throughput for one good.
type Rates struct {
	Out *big.Rat // Units produced per second, unthrottled
	In  *big.Rat // Units consumed per second, unthrottled
}

// TheoreticalRates sums every producer's unscaled output and input rates
// per good, for display ("+3/s, -1/4/s"). Recomputed on demand; linear in
// the number of producers, which stays small.
func TheoreticalRates(ps []producers.Producer) map[goods.Good]Rates {
	table := make(map[goods.Good]Rates)
	entry := func(g goods.Good) Rates {
		r, ok := table[g]
		if !ok {
			r = Rates{Out: exact.Zero(), In: exact.Zero()}
			table[g] = r
		}
		return r
	}
	for _, p := range ps {
		props := p.Properties()
		for g, rate := range props.Outputs {
			r := entry(g)
			r.Out.Add(r.Out, rate)
		}
		for g, rate := range props.Inputs {
			r := entry(g)
			r.In.Add(r.In, rate)
		}
	}
	return table
}
