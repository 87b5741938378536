// Package exact provides small helpers over math/big.Rat, the arbitrary
// precision rational type used for every quantity in the simulation.
// Production rates accumulate over unboundedly many ticks, so floating
// point would drift visibly across a long session.
package exact

import (
	"fmt"
	"math/big"
)

// New returns the rational num/den.
func New(num, den int64) *big.Rat {
	return big.NewRat(num, den)
}

// FromInt returns n as an exact rational.
func FromInt(n int64) *big.Rat {
	return big.NewRat(n, 1)
}

// Zero returns a fresh exact zero.
func Zero() *big.Rat {
	return new(big.Rat)
}

// Copy returns an independent copy of x.
func Copy(x *big.Rat) *big.Rat {
	return new(big.Rat).Set(x)
}

// Min returns the smaller of a and b. The result aliases one of the
// operands; callers that mutate must copy first.
func Min(a, b *big.Rat) *big.Rat {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Format renders x in the canonical num/den form used by the persistence
// layer, e.g. "7/2" or "3".
func Format(x *big.Rat) string {
	return x.RatString()
}

// Parse reads a rational in the form produced by Format.
func Parse(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("exact: malformed rational %q", s)
	}
	return r, nil
}

// Floor returns the largest integer not greater than x, for display.
func Floor(x *big.Rat) int64 {
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(x.Num(), x.Denom(), m)
	return q.Int64()
}
