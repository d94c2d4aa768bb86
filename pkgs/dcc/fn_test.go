package dcc

import "testing"

func TestGroupIndex(t *testing.T) {
	cases := []struct {
		fn       int
		expected int
	}{
		{0, 0}, {4, 0}, {5, 1}, {8, 1}, {9, 2}, {12, 2},
	}
	for _, c := range cases {
		if got := GroupIndex(c.fn); got != c.expected {
			t.Errorf("GroupIndex(%d) = %d; want %d", c.fn, got, c.expected)
		}
	}
}

func TestFunctionShift(t *testing.T) {
	cases := []struct {
		fn       int
		expected int
	}{
		{0, 4}, {1, 0}, {2, 1}, {4, 3}, {5, 0}, {8, 3}, {9, 0}, {12, 3},
	}
	for _, c := range cases {
		if got := FunctionShift(c.fn); got != c.expected {
			t.Errorf("FunctionShift(%d) = %d; want %d", c.fn, got, c.expected)
		}
	}
}

func TestGroupPrefix(t *testing.T) {
	cases := []struct {
		fn       int
		expected byte
	}{
		{0, 0b10000000}, {4, 0b10000000},
		{5, 0b10110000}, {8, 0b10110000},
		{9, 0b10100000}, {12, 0b10100000},
	}
	for _, c := range cases {
		if got := GroupPrefix(c.fn); got != c.expected {
			t.Errorf("GroupPrefix(%d) = %08b; want %08b", c.fn, got, c.expected)
		}
	}
}

func TestFunctionGroupsSetGet(t *testing.T) {
	g := NewFunctionGroups()

	if g != (FunctionGroups{0b10000000, 0b10110000, 0b10100000}) {
		t.Fatalf("fresh groups carry wrong prefixes: %08b", g)
	}
	for fn := 0; fn <= MaxFunction; fn++ {
		if g.Get(fn) {
			t.Errorf("F%d reads on in a fresh state", fn)
		}
	}

	if !g.Set(0, true) {
		t.Fatal("Set(0) rejected")
	}
	if g[0] != 0b10010000 {
		t.Errorf("group 0 after FL on = %08b; want 10010000", g[0])
	}
	if !g.Get(0) {
		t.Error("FL should read on")
	}

	g.Set(6, true)
	if g[1] != 0b10110010 {
		t.Errorf("group 1 after F6 on = %08b; want 10110010", g[1])
	}

	g.Set(6, false)
	if g[1] != 0b10110000 {
		t.Errorf("group 1 after F6 off = %08b; want the bare prefix", g[1])
	}

	// out of range numbers are ignored, not an error
	before := g
	if g.Set(13, true) || g.Set(-1, true) {
		t.Error("out-of-range Set must report untouched state")
	}
	if g != before {
		t.Error("out-of-range Set must not change any group byte")
	}
	if g.Get(13) {
		t.Error("out-of-range Get must read off")
	}
}
