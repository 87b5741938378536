// Package engine holds the simulation core: the exact-rational inventory,
// the producer tick, the game clock, and the State aggregate that owns all
// of it. The aggregate is single-threaded by design — one Update call per
// rendered frame — and a concurrent host must serialize every mutation
// behind one lock.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/talgya/oreworks/internal/exact"
	"github.com/talgya/oreworks/internal/goods"
	"github.com/talgya/oreworks/internal/market"
	"github.com/talgya/oreworks/internal/mines"
	"github.com/talgya/oreworks/internal/producers"
)

var (
	ErrInsufficientFunds = errors.New("engine: not enough money")
	ErrNotMinable        = errors.New("engine: good has no mining minigame")
	ErrUnknownProducer   = errors.New("engine: unknown producer")
)

// Element is one player-owned entity, addressed by a stable handle. The
// title and open flag are round-tripped for the rendering host's windows.
type Element struct {
	Handle   uint64             `json:"handle"`
	Producer producers.Producer `json:"producer"`
	Title    string             `json:"title"`
	Open     bool               `json:"open"`
}

// State is the complete mutable game aggregate.
type State struct {
	Inventory Inventory
	Elements  map[uint64]*Element
	Clock     *Clock
	Prices    *market.Board
	TickCount uint64

	// Handles come from a counter that only ever moves forward. Deriving
	// them from len(Elements) would collide after any removal.
	nextHandle uint64

	mineSessions map[goods.Good]*mines.Minigame
	rng          *rand.Rand
}

// NewState builds a fresh aggregate: all goods at zero, no elements, clock
// anchored at now. The seed drives minigame orders and the price curve.
func NewState(now time.Time, ticksPerSecond int64, catchUpLimit int, seed int64) *State {
	return &State{
		Inventory:    NewInventory(),
		Elements:     make(map[uint64]*Element),
		Clock:        NewClock(now, ticksPerSecond, catchUpLimit),
		Prices:       market.NewBoard(seed),
		nextHandle:   1,
		mineSessions: make(map[goods.Good]*mines.Minigame),
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Update is the single per-frame entry point: it drains the clock's whole
// ticks and advances every producer and the price board once per tick.
// Returns the number of ticks simulated.
func (s *State) Update(now time.Time) int {
	ticks := s.Clock.Advance(now)
	if ticks == 0 {
		return 0
	}
	dt := s.Clock.TickDuration()
	ps := s.Producers()
	for i := 0; i < ticks; i++ {
		s.TickCount++
		AdvanceAll(ps, s.Inventory, dt)
		s.Prices.Advance(s.TickCount)
	}
	return ticks
}

// Producers returns the producer identities of all elements in ascending
// handle order. This is the order AdvanceAll runs them in, so the oldest
// producer wins a contested input.
func (s *State) Producers() []producers.Producer {
	handles := make([]uint64, 0, len(s.Elements))
	for h := range s.Elements {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	out := make([]producers.Producer, 0, len(handles))
	for _, h := range handles {
		out = append(out, s.Elements[h].Producer)
	}
	return out
}

// AddProducer buys a producer at its catalog cost and registers it under a
// fresh handle.
func (s *State) AddProducer(p producers.Producer) (uint64, error) {
	if !p.Valid() {
		return 0, ErrUnknownProducer
	}
	cost := p.Properties().Cost
	if s.Inventory.Get(goods.Money).Cmp(cost) < 0 {
		return 0, ErrInsufficientFunds
	}
	s.Inventory.Debit(goods.Money, cost)

	h := s.nextHandle
	s.nextHandle++
	s.Elements[h] = &Element{
		Handle:   h,
		Producer: p,
		Title:    fmt.Sprintf("%d: %s", h, p),
	}
	return h, nil
}

// RemoveProducer deletes the element under handle. No refund. The handle is
// retired for good — it will never be reissued.
func (s *State) RemoveProducer(handle uint64) bool {
	if _, ok := s.Elements[handle]; !ok {
		return false
	}
	delete(s.Elements, handle)
	return true
}

// Mine returns the minigame session for g, creating it lazily on first
// access. Goods with difficulty zero (money) have no session; nil is
// returned for those.
func (s *State) Mine(g goods.Good) *mines.Minigame {
	if !g.Valid() || g.Properties().Difficulty < 1 {
		return nil
	}
	m, ok := s.mineSessions[g]
	if !ok {
		m = mines.New(g.Properties().Difficulty, rand.New(rand.NewSource(s.rng.Int63())))
		s.mineSessions[g] = m
	}
	return m
}

// PressMine applies one minigame press for g. On a solving press the reward
// — one unit of g — is credited exactly once, then the session resets so
// the ore can keep being farmed. A failing press leaves the session failed;
// resetting it is the caller's explicit move.
func (s *State) PressMine(g goods.Good, value int) (*mines.Minigame, error) {
	m := s.Mine(g)
	if m == nil {
		return nil, ErrNotMinable
	}
	m.Press(value).DoIfSolved(func(*mines.Minigame) {
		s.Inventory.Credit(g, exact.FromInt(1))
	}).ResetIfSolved()
	return m, nil
}

// ResetMine restarts the minigame session for g with a fresh order.
func (s *State) ResetMine(g goods.Good) (*mines.Minigame, error) {
	m := s.Mine(g)
	if m == nil {
		return nil, ErrNotMinable
	}
	return m.Reset(), nil
}

// SellGood sells qty units of g at the current market price.
func (s *State) SellGood(g goods.Good, qty int64) error {
	_, err := s.Prices.Sell(s.Inventory, g, qty)
	return err
}

// NextHandle exposes the handle counter for persistence.
func (s *State) NextHandle() uint64 {
	return s.nextHandle
}

// RestoreHandles raises the handle counter after loading persisted
// elements. The counter never moves backwards.
func (s *State) RestoreHandles(next uint64) {
	if next > s.nextHandle {
		s.nextHandle = next
	}
	for h := range s.Elements {
		if h >= s.nextHandle {
			s.nextHandle = h + 1
		}
	}
}
