package exact

import "testing"

func TestFormatParseRoundTrip(t *testing.T) {
	cases := []string{"0", "3", "-3", "7/2", "-1/4", "12345678901234567890/7"}
	for _, s := range cases {
		r, err := Parse(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if Format(r) != s {
			t.Fatalf("round trip %q -> %q", s, Format(r))
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "seven", "1/0", "1//2"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestMin(t *testing.T) {
	a, b := New(1, 3), New(1, 2)
	if Min(a, b) != a {
		t.Fatalf("1/3 should be the minimum")
	}
	if Min(b, a) != a {
		t.Fatalf("min should be symmetric in value")
	}
	if Min(a, a) != a {
		t.Fatalf("min of equal values")
	}
}

func TestFloor(t *testing.T) {
	cases := []struct {
		num, den int64
		want     int64
	}{
		{7, 2, 3},
		{4, 1, 4},
		{0, 1, 0},
		{-1, 2, -1},
		{-7, 2, -4},
	}
	for _, c := range cases {
		if got := Floor(New(c.num, c.den)); got != c.want {
			t.Fatalf("floor(%d/%d) = %d, want %d", c.num, c.den, got, c.want)
		}
	}
}

func TestCopyIsIndependent(t *testing.T) {
	a := New(2, 3)
	b := Copy(a)
	b.SetInt64(9)
	if a.Cmp(New(2, 3)) != 0 {
		t.Fatalf("copy aliased the original")
	}
}
