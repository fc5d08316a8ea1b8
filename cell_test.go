package tui

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		ch   rune
		attr Attr
		fg   uint16
		bg   uint16
	}{
		{'a', 0, DefaultColor(), DefaultColor()},
		{'Z', AttrBold | AttrUnderline, PaletteColor(200), PaletteColor(0)},
		{'字', AttrItalic, TrueColorHex("#ff00aa"), DefaultColor()},
		{0x1F600, AttrReverse | AttrStrikethrough, PaletteColor(255), PaletteColor(255)},
	}

	for _, c := range cases {
		cell := Pack(c.ch, c.attr, c.fg, c.bg)
		if cell.Char() != c.ch {
			t.Errorf("Char() = %q, want %q", cell.Char(), c.ch)
		}
		if cell.AttrByte() != c.attr {
			t.Errorf("AttrByte() = %v, want %v", cell.AttrByte(), c.attr)
		}
		if cell.Fg() != c.fg {
			t.Errorf("Fg() = %d, want %d", cell.Fg(), c.fg)
		}
		if cell.Bg() != c.bg {
			t.Errorf("Bg() = %d, want %d", cell.Bg(), c.bg)
		}
	}
}

func TestEmptyCell(t *testing.T) {
	e := Empty()
	if e.Char() != ' ' || e.AttrByte() != 0 || e.Fg() != DefaultColor() || e.Bg() != DefaultColor() {
		t.Errorf("Empty() = %+v, want space/no-attr/default/default", e)
	}
}

func TestPaletteColorRoundTrip(t *testing.T) {
	for _, p := range []int{0, 1, 128, 255} {
		enc := PaletteColor(p)
		kind, idx, _, _, _ := DecodeColor(enc)
		if kind != ColorKindPalette {
			t.Fatalf("PaletteColor(%d) decoded kind = %v, want palette", p, kind)
		}
		if int(idx) != p {
			t.Errorf("PaletteColor(%d) decoded index = %d", p, idx)
		}
	}
}

func TestPaletteColorClamps(t *testing.T) {
	if got := PaletteColor(-5); got != PaletteColor(0) {
		t.Errorf("PaletteColor(-5) = %d, want PaletteColor(0)", got)
	}
	if got := PaletteColor(999); got != PaletteColor(255) {
		t.Errorf("PaletteColor(999) = %d, want PaletteColor(255)", got)
	}
}

func TestDefaultColorDecode(t *testing.T) {
	kind, _, _, _, _ := DecodeColor(DefaultColor())
	if kind != ColorKindDefault {
		t.Errorf("DefaultColor decoded kind = %v, want default", kind)
	}
}

func TestTrueColorWithinTolerance(t *testing.T) {
	cases := []struct{ r, g, b uint8 }{
		{0xff, 0xff, 0xff},
		{0x00, 0x00, 0x00},
		{0x7f, 0x40, 0xc0},
		{0x01, 0x02, 0x03},
	}
	for _, c := range cases {
		enc := TrueColorRGB(c.r, c.g, c.b)
		kind, _, r, g, b := DecodeColor(enc)
		if kind != ColorKindTrueColor {
			t.Fatalf("TrueColorRGB decoded kind = %v, want truecolor", kind)
		}
		if absDiff(r, c.r) > 4 || absDiff(g, c.g) > 4 || absDiff(b, c.b) > 4 {
			t.Errorf("round trip (%d,%d,%d) -> (%d,%d,%d) exceeds +/-4", c.r, c.g, c.b, r, g, b)
		}
	}
}

func TestTrueColorHexExact(t *testing.T) {
	_, _, r, g, b := DecodeColor(TrueColorHex("#000000"))
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("#000000 decoded to (%d,%d,%d), want (0,0,0)", r, g, b)
	}

	_, _, r, g, b = DecodeColor(TrueColorHex("#ffffff"))
	if absDiff(r, 255) > 4 || absDiff(g, 255) > 4 || absDiff(b, 255) > 4 {
		t.Errorf("#ffffff decoded to (%d,%d,%d), want near (255,255,255)", r, g, b)
	}
}

func TestTrueColorHexInvalidIsDefault(t *testing.T) {
	invalid := []string{"", "#fff", "ff00aa", "#gg0000", "#12345", "#1234567"}
	for _, h := range invalid {
		if got := TrueColorHex(h); got != DefaultColor() {
			t.Errorf("TrueColorHex(%q) = %d, want DefaultColor()", h, got)
		}
	}
}

func TestEqualsAndSameStyle(t *testing.T) {
	a := Pack('a', AttrBold, PaletteColor(1), DefaultColor())
	b := Pack('a', AttrBold, PaletteColor(1), DefaultColor())
	c := Pack('b', AttrBold, PaletteColor(1), DefaultColor())

	if !a.Equals(b) {
		t.Error("expected a.Equals(b)")
	}
	if a.Equals(c) {
		t.Error("expected !a.Equals(c)")
	}
	if !a.SameStyle(c) {
		t.Error("expected a.SameStyle(c) despite different char")
	}
}

func TestClearRange(t *testing.T) {
	buf := make([]Cell, 5)
	for i := range buf {
		buf[i] = Pack('x', AttrBold, PaletteColor(2), PaletteColor(3))
	}

	ClearRange(buf, 1, 4)
	for i, c := range buf {
		if i >= 1 && i < 4 {
			if !c.Equals(Empty()) {
				t.Errorf("buf[%d] = %+v, want Empty()", i, c)
			}
		} else if c.Equals(Empty()) {
			t.Errorf("buf[%d] unexpectedly cleared", i)
		}
	}
}

func TestClearRangeClampsOutOfRange(t *testing.T) {
	buf := make([]Cell, 3)
	ClearRange(buf, -10, 100) // should not panic, should clear all
	for i, c := range buf {
		if !c.Equals(Empty()) {
			t.Errorf("buf[%d] = %+v, want Empty()", i, c)
		}
	}
}

func TestClearRangeIdempotent(t *testing.T) {
	buf1 := make([]Cell, 4)
	for i := range buf1 {
		buf1[i] = Pack('z', 0, 1, 1)
	}
	buf2 := make([]Cell, 4)
	copy(buf2, buf1)

	ClearRange(buf1, 1, 3)
	ClearRange(buf1, 1, 3)

	ClearRange(buf2, 1, 3)

	for i := range buf1 {
		if !buf1[i].Equals(buf2[i]) {
			t.Errorf("cell %d differs after repeated ClearRange", i)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
