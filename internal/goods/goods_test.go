package goods

import "testing"

func TestCatalogTotal(t *testing.T) {
	for _, g := range All() {
		p := g.Properties()
		if p.Name == "" {
			t.Fatalf("good %d has no name", g)
		}
		if p.Key == "" {
			t.Fatalf("good %s has no key", p.Name)
		}
		if p.Group >= NumGroups {
			t.Fatalf("good %s has unknown group %d", p.Name, p.Group)
		}
		if p.Difficulty < 0 {
			t.Fatalf("good %s has negative difficulty", p.Name)
		}
	}
	if len(All()) != NumGoods {
		t.Fatalf("expected %d goods, got %d", NumGoods, len(All()))
	}
}

func TestGroupGoodsDeclarationOrder(t *testing.T) {
	ores := GroupGoods(GroupOre)
	want := []Good{IronOre, GoldOre, SilverOre, Coal}
	if len(ores) != len(want) {
		t.Fatalf("expected %d ores, got %d", len(want), len(ores))
	}
	for i, g := range want {
		if ores[i] != g {
			t.Fatalf("ore order: expected %s at %d, got %s", g, i, ores[i])
		}
	}

	money := GroupGoods(GroupMoney)
	if len(money) != 1 || money[0] != Money {
		t.Fatalf("money group: %v", money)
	}
}

func TestDefaultForGroup(t *testing.T) {
	if DefaultForGroup(GroupMoney) != Money {
		t.Fatalf("default for money group")
	}
	if DefaultForGroup(GroupOre) != IronOre {
		t.Fatalf("default for ore group")
	}
}

func TestByKeyRoundTrip(t *testing.T) {
	for _, g := range All() {
		got, ok := ByKey(g.Properties().Key)
		if !ok || got != g {
			t.Fatalf("key %q did not resolve to %s", g.Properties().Key, g)
		}
	}
	if _, ok := ByKey("plutonium"); ok {
		t.Fatalf("expected unknown key rejected")
	}
}

func TestMoneyIsNotMinable(t *testing.T) {
	if d := Money.Properties().Difficulty; d != 0 {
		t.Fatalf("money difficulty should be 0, got %d", d)
	}
	for _, g := range GroupGoods(GroupOre) {
		if g.Properties().Difficulty < 1 {
			t.Fatalf("ore %s should be minable", g)
		}
	}
}
