package market

import (
	"errors"
	"math/big"
	"testing"

	"github.com/talgya/oreworks/internal/exact"
	"github.com/talgya/oreworks/internal/goods"
)

// ledger is a minimal in-memory Ledger for tests.
type ledger map[goods.Good]*big.Rat

func (l ledger) Get(g goods.Good) *big.Rat {
	if q, ok := l[g]; ok {
		return exact.Copy(q)
	}
	return exact.Zero()
}

func (l ledger) Credit(g goods.Good, amount *big.Rat) {
	q, ok := l[g]
	if !ok {
		q = exact.Zero()
		l[g] = q
	}
	q.Add(q, amount)
}

func (l ledger) Debit(g goods.Good, amount *big.Rat) {
	q, ok := l[g]
	if !ok {
		q = exact.Zero()
		l[g] = q
	}
	q.Sub(q, amount)
}

func TestPricesStayWithinDriftBounds(t *testing.T) {
	b := NewBoard(42)
	for tick := uint64(0); tick < 5000; tick += 50 {
		b.Advance(tick)
		for _, g := range goods.All() {
			if g == goods.Money {
				continue
			}
			p, ok := b.Price(g)
			if !ok {
				t.Fatalf("no price for %s", g)
			}
			base := basePrice(g)
			lo := new(big.Rat).Mul(base, exact.New(1, 2))
			hi := new(big.Rat).Mul(base, exact.New(3, 2))
			if p.Cmp(lo) < 0 || p.Cmp(hi) > 0 {
				t.Fatalf("tick %d: %s price %s outside [%s, %s]",
					tick, g, p.RatString(), lo.RatString(), hi.RatString())
			}
		}
	}
}

func TestMoneyHasNoPrice(t *testing.T) {
	b := NewBoard(1)
	if _, ok := b.Price(goods.Money); ok {
		t.Fatalf("money must not be priced")
	}
}

func TestSameSeedSamePrices(t *testing.T) {
	a, b := NewBoard(7), NewBoard(7)
	a.Advance(300)
	b.Advance(300)
	for _, g := range goods.GroupGoods(goods.GroupOre) {
		pa, _ := a.Price(g)
		pb, _ := b.Price(g)
		if pa.Cmp(pb) != 0 {
			t.Fatalf("%s: %s vs %s", g, pa.RatString(), pb.RatString())
		}
	}
}

func TestSellExactArithmetic(t *testing.T) {
	b := NewBoard(3)
	inv := ledger{}
	inv.Credit(goods.SilverOre, exact.FromInt(5))

	price, _ := b.Price(goods.SilverOre)
	proceeds, err := b.Sell(inv, goods.SilverOre, 3)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}

	want := new(big.Rat).Mul(price, exact.FromInt(3))
	if proceeds.Cmp(want) != 0 {
		t.Fatalf("proceeds %s, want %s", proceeds.RatString(), want.RatString())
	}
	if got := inv.Get(goods.SilverOre); got.Cmp(exact.FromInt(2)) != 0 {
		t.Fatalf("stock after sale: %s", got.RatString())
	}
	if got := inv.Get(goods.Money); got.Cmp(want) != 0 {
		t.Fatalf("money after sale: %s", got.RatString())
	}
}

func TestSellRejections(t *testing.T) {
	b := NewBoard(3)
	inv := ledger{}
	inv.Credit(goods.IronOre, exact.FromInt(1))

	if _, err := b.Sell(inv, goods.IronOre, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero qty: %v", err)
	}
	if _, err := b.Sell(inv, goods.IronOre, -2); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("negative qty: %v", err)
	}
	if _, err := b.Sell(inv, goods.IronOre, 2); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("overdraw: %v", err)
	}
	if _, err := b.Sell(inv, goods.Money, 1); !errors.Is(err, ErrNotSellable) {
		t.Fatalf("selling money: %v", err)
	}
	// Failed sales must not move the ledger.
	if got := inv.Get(goods.IronOre); got.Cmp(exact.FromInt(1)) != 0 {
		t.Fatalf("stock moved on rejected sale: %s", got.RatString())
	}
	if got := inv.Get(goods.Money); got.Sign() != 0 {
		t.Fatalf("money moved on rejected sale: %s", got.RatString())
	}
}

func TestHarderOresFetchMore(t *testing.T) {
	iron := basePrice(goods.IronOre)
	gold := basePrice(goods.GoldOre)
	if gold.Cmp(iron) <= 0 {
		t.Fatalf("gold base %s should exceed iron base %s", gold.RatString(), iron.RatString())
	}
}
