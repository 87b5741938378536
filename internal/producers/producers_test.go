package producers

import (
	"testing"

	"github.com/talgya/oreworks/internal/exact"
	"github.com/talgya/oreworks/internal/goods"
)

func TestCoalDrillProperties(t *testing.T) {
	p := Producer{Kind: KindCoalDrill, Good: goods.IronOre}
	props := p.Properties()

	if props.Cost.Cmp(exact.FromInt(10)) != 0 {
		t.Fatalf("cost: %s", props.Cost.RatString())
	}
	out, ok := props.Outputs[goods.IronOre]
	if !ok || out.Cmp(exact.FromInt(1)) != 0 {
		t.Fatalf("output rate: %v", props.Outputs)
	}
	in, ok := props.Inputs[goods.Coal]
	if !ok || in.Cmp(exact.New(1, 4)) != 0 {
		t.Fatalf("input rate: %v", props.Inputs)
	}
}

func TestGravityDrillHasNoInputs(t *testing.T) {
	p := Producer{Kind: KindGravityDrill, Good: goods.GoldOre}
	if len(p.Properties().Inputs) != 0 {
		t.Fatalf("gravity drill should have no inputs")
	}
}

func TestPropertiesAreFreshPerCall(t *testing.T) {
	p := Producer{Kind: KindCoalDrill, Good: goods.SilverOre}
	first := p.Properties()
	first.Outputs[goods.SilverOre].SetInt64(99)
	first.Inputs[goods.Coal].SetInt64(99)

	second := p.Properties()
	if second.Outputs[goods.SilverOre].Cmp(exact.FromInt(1)) != 0 {
		t.Fatalf("catalog output rate was mutated through a returned record")
	}
	if second.Inputs[goods.Coal].Cmp(exact.New(1, 4)) != 0 {
		t.Fatalf("catalog input rate was mutated through a returned record")
	}
}

func TestKindKeyRoundTrip(t *testing.T) {
	for k := Kind(0); uint8(k) < NumKinds; k++ {
		got, ok := KindByKey(k.Key())
		if !ok || got != k {
			t.Fatalf("key %q did not resolve to kind %d", k.Key(), k)
		}
	}
	if _, ok := KindByKey("fusion_drill"); ok {
		t.Fatalf("expected unknown kind rejected")
	}
}

func TestString(t *testing.T) {
	p := Producer{Kind: KindGravityDrill, Good: goods.IronOre}
	if got := p.String(); got != "Gravity Drill (Iron Ore)" {
		t.Fatalf("String: %q", got)
	}
	if got := (Producer{Kind: KindNone}).String(); got != "None" {
		t.Fatalf("String none: %q", got)
	}
}
