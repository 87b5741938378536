// Package mines implements the ore-mining skill check: a sequence-matching
// minigame played once per ore. The displayed buttons carry the values
// 1..difficulty in a shuffled order; the player must press them in ascending
// value order. One wrong press fails the whole session.
package mines

import (
	"fmt"
	"math/rand"
)

// Minigame is one mining session for a single ore. It is a small state
// machine: in progress (tracking the next expected value), failed, or
// solved. Sessions are never persisted; a fresh order is rolled on every
// reset from the session's own RNG, so tests can seed it.
type Minigame struct {
	difficulty int
	order      []int
	next       int
	failed     bool
	rng        *rand.Rand
}

// New creates a session with a random permutation of 1..difficulty.
// Difficulty is fixed for the life of the session; resets preserve it.
func New(difficulty int, rng *rand.Rand) *Minigame {
	if difficulty < 1 {
		panic(fmt.Sprintf("mines: difficulty must be at least 1, got %d", difficulty))
	}
	m := &Minigame{difficulty: difficulty, rng: rng}
	m.reroll()
	return m
}

func (m *Minigame) reroll() {
	m.order = make([]int, m.difficulty)
	for i := range m.order {
		m.order[i] = i + 1
	}
	m.rng.Shuffle(len(m.order), func(i, j int) {
		m.order[i], m.order[j] = m.order[j], m.order[i]
	})
	m.next = 1
	m.failed = false
}

// Press handles one button press carrying value v. Pressing the next
// expected value advances the session; pressing anything else — including a
// value that was already accepted — fails it. Presses on a failed or solved
// session are ignored; the caller must Reset.
func (m *Minigame) Press(v int) *Minigame {
	if m.failed || m.IsSolved() {
		return m
	}
	if v == m.next {
		m.next++
	} else {
		m.failed = true
	}
	return m
}

// IsSolved reports whether every value has been pressed in order.
func (m *Minigame) IsSolved() bool {
	return !m.failed && m.next > m.difficulty
}

// IsFailed reports whether the session has been failed by an out-of-order press.
func (m *Minigame) IsFailed() bool {
	return m.failed
}

// Reset rolls a fresh order of the same difficulty and returns the session
// to its initial state.
func (m *Minigame) Reset() *Minigame {
	m.reroll()
	return m
}

// ResetIfFailed resets the session only if it has been failed.
func (m *Minigame) ResetIfFailed() *Minigame {
	if m.failed {
		m.reroll()
	}
	return m
}

// DoIfSolved applies f if the session is solved. The reward-granting caller
// must invoke its effect through here before resetting, never after.
func (m *Minigame) DoIfSolved(f func(*Minigame)) *Minigame {
	if m.IsSolved() {
		f(m)
	}
	return m
}

// ResetIfSolved resets the session only if it has been solved.
func (m *Minigame) ResetIfSolved() *Minigame {
	if m.IsSolved() {
		m.reroll()
	}
	return m
}

// Order returns a copy of the displayed button order.
func (m *Minigame) Order() []int {
	out := make([]int, len(m.order))
	copy(out, m.order)
	return out
}

// Next returns the next expected value, starting at 1.
func (m *Minigame) Next() int {
	return m.next
}

// Difficulty returns the session's fixed sequence length.
func (m *Minigame) Difficulty() int {
	return m.difficulty
}
