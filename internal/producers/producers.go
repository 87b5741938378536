// Package producers defines the producer identifiers and their economic
// catalog: cost, output rates, and input rates. A producer is identified by
// its (kind, good) pair — drill kinds are specialized per ore — and carries
// no mutable state of its own.
package producers

import (
	"fmt"
	"math/big"

	"github.com/talgya/oreworks/internal/exact"
	"github.com/talgya/oreworks/internal/goods"
)

// Kind enumerates the producer variants.
type Kind uint8

const (
	KindNone         Kind = iota // Blank element, debug only
	KindGravityDrill             // Mines its ore for free
	KindCoalDrill                // Mines its ore, burning coal
)

// NumKinds is the total number of declared producer kinds.
const NumKinds = 3

// Producer identifies one producer by kind and specialization good.
// The good is ignored for KindNone.
type Producer struct {
	Kind Kind       `json:"kind"`
	Good goods.Good `json:"good"`
}

// Properties is a producer's static economic catalog entry. Rates are in
// units per second and are always non-negative; a producer with an empty
// Inputs map is unconstrained. Every call builds a fresh record — the maps
// and rationals are owned by the caller.
type Properties struct {
	Name    string
	Cost    *big.Rat
	Outputs map[goods.Good]*big.Rat
	Inputs  map[goods.Good]*big.Rat
}

// Properties returns the catalog entry for p. Total over the declared kind
// space; an out-of-range kind is an invariant violation and panics.
func (p Producer) Properties() Properties {
	switch p.Kind {
	case KindNone:
		return Properties{
			Name:    "None",
			Cost:    exact.Zero(),
			Outputs: map[goods.Good]*big.Rat{},
			Inputs:  map[goods.Good]*big.Rat{},
		}
	case KindGravityDrill:
		return Properties{
			Name:    "Gravity Drill",
			Cost:    exact.FromInt(10),
			Outputs: map[goods.Good]*big.Rat{p.Good: exact.FromInt(1)},
			Inputs:  map[goods.Good]*big.Rat{},
		}
	case KindCoalDrill:
		return Properties{
			Name:    "Coal Drill",
			Cost:    exact.FromInt(10),
			Outputs: map[goods.Good]*big.Rat{p.Good: exact.FromInt(1)},
			Inputs:  map[goods.Good]*big.Rat{goods.Coal: exact.New(1, 4)},
		}
	}
	panic(fmt.Sprintf("producers: unknown kind %d", uint8(p.Kind)))
}

func (p Producer) String() string {
	switch p.Kind {
	case KindNone:
		return "None"
	default:
		return fmt.Sprintf("%s (%s)", p.Properties().Name, p.Good)
	}
}

// Valid reports whether p names a declared kind and good.
func (p Producer) Valid() bool {
	return uint8(p.Kind) < NumKinds && p.Good.Valid()
}

// Key returns the stable identifier for a kind, used in persistence and the API.
func (k Kind) Key() string {
	switch k {
	case KindNone:
		return "none"
	case KindGravityDrill:
		return "gravity_drill"
	case KindCoalDrill:
		return "coal_drill"
	}
	panic(fmt.Sprintf("producers: unknown kind %d", uint8(k)))
}

// KindByKey resolves a stable key back to its Kind. Unknown keys are
// reported, not fatal — persisted state may be older or newer than the catalog.
func KindByKey(key string) (Kind, bool) {
	for k := Kind(0); uint8(k) < NumKinds; k++ {
		if k.Key() == key {
			return k, true
		}
	}
	return 0, false
}
