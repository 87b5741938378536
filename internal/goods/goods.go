// Package goods defines the tradeable resource identifiers and their
// static catalog properties. Behavior is resolved by catalog lookup rather
// than carried on the values: a Good is pure identity.
package goods

import "fmt"

// Good identifies a distinct tradeable or producible resource.
type Good uint8

const (
	Money Good = iota
	IronOre
	GoldOre
	SilverOre
	Coal
)

// NumGoods is the total number of declared goods.
const NumGoods = 5

// Group buckets goods for iteration and default selection.
type Group uint8

const (
	GroupMoney Group = iota
	GroupOre
)

// NumGroups is the total number of declared groups.
const NumGroups = 2

// Properties is a good's static catalog entry.
type Properties struct {
	Name       string // Display name
	Key        string // Stable identifier used in persistence and the API
	Group      Group
	Difficulty int // Mining minigame sequence length; 0 = not minable
}

// Properties returns the catalog entry for g. The catalog is total over the
// declared identifier space; an out-of-range identifier is an invariant
// violation and panics.
func (g Good) Properties() Properties {
	switch g {
	case Money:
		return Properties{Name: "Money", Key: "money", Group: GroupMoney, Difficulty: 0}
	case IronOre:
		return Properties{Name: "Iron Ore", Key: "iron_ore", Group: GroupOre, Difficulty: 1}
	case GoldOre:
		return Properties{Name: "Gold Ore", Key: "gold_ore", Group: GroupOre, Difficulty: 3}
	case SilverOre:
		return Properties{Name: "Silver Ore", Key: "silver_ore", Group: GroupOre, Difficulty: 2}
	case Coal:
		return Properties{Name: "Coal", Key: "coal", Group: GroupOre, Difficulty: 1}
	}
	panic(fmt.Sprintf("goods: unknown good %d", uint8(g)))
}

func (g Good) String() string {
	return g.Properties().Name
}

// Valid reports whether g is a declared good.
func (g Good) Valid() bool {
	return uint8(g) < NumGoods
}

// All returns every declared good in declaration order.
func All() []Good {
	out := make([]Good, 0, NumGoods)
	for g := Good(0); g.Valid(); g++ {
		out = append(out, g)
	}
	return out
}

// GroupGoods returns the goods belonging to group, in declaration order of
// the Good identifiers (not sorted by any property).
func GroupGoods(group Group) []Good {
	var out []Good
	for _, g := range All() {
		if g.Properties().Group == group {
			out = append(out, g)
		}
	}
	return out
}

// DefaultForGroup returns the canonical good used when a UI needs a
// pre-selected member of a group.
func DefaultForGroup(group Group) Good {
	switch group {
	case GroupMoney:
		return Money
	case GroupOre:
		return IronOre
	}
	panic(fmt.Sprintf("goods: unknown group %d", uint8(group)))
}

// ByKey resolves a stable key back to its Good. Used when reading persisted
// state, where unknown keys are skipped rather than fatal.
func ByKey(key string) (Good, bool) {
	for _, g := range All() {
		if g.Properties().Key == key {
			return g, true
		}
	}
	return 0, false
}
