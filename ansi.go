package tui

import (
	"strconv"
	"strings"
)

// sgrCodeFor maps each attribute bit to its SGR parameter, in the fixed
// order the spec requires: bold, dim, italic, underline, reverse, strike.
var sgrCodeFor = [...]struct {
	bit  Attr
	code int
}{
	{AttrBold, 1},
	{AttrDim, 2},
	{AttrItalic, 3},
	{AttrUnderline, 4},
	{AttrReverse, 7},
	{AttrStrikethrough, 9},
}

// AttrLUT is precomputed once at package init: for every possible attribute
// byte it holds "\x1b[0;<codes>m", codes sorted ascending. Index 0 (no
// attributes) holds the same reset-only "\x1b[0m" that BuildANSISequence
// produces when nothing is set, so callers may index it unconditionally.
var AttrLUT [256]string

func init() {
	for b := 0; b < 256; b++ {
		AttrLUT[b] = buildAttrSequence(Attr(b))
	}
}

func buildAttrSequence(a Attr) string {
	var codes []int
	for _, e := range sgrCodeFor {
		if a&e.bit != 0 {
			codes = append(codes, e.code)
		}
	}
	if len(codes) == 0 {
		return "\x1b[0m"
	}
	var b strings.Builder
	b.WriteString("\x1b[0")
	for _, c := range codes {
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(c))
	}
	b.WriteByte('m')
	return b.String()
}

// MoveTo returns the CSI cursor-position sequence for a 1-based (row, col).
func MoveTo(row, col int) string {
	return "\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// MoveUp returns the CSI cursor-up sequence, or "" if n <= 0.
func MoveUp(n int) string { return moveDir(n, 'A') }

// MoveDown returns the CSI cursor-down sequence, or "" if n <= 0.
func MoveDown(n int) string { return moveDir(n, 'B') }

// MoveRight returns the CSI cursor-forward sequence, or "" if n <= 0.
func MoveRight(n int) string { return moveDir(n, 'C') }

// MoveLeft returns the CSI cursor-backward sequence, or "" if n <= 0.
func MoveLeft(n int) string { return moveDir(n, 'D') }

func moveDir(n int, final byte) string {
	if n <= 0 {
		return ""
	}
	return "\x1b[" + strconv.Itoa(n) + string(final)
}

// ColorToANSI renders a single encoded color as its SGR fragment (without
// the leading/trailing "\x1b[...m" wrapper it would carry as a standalone
// sequence's payload). isBg selects the 38/48 (fg/bg) SGR base. A default
// color renders as "".
func ColorToANSI(c uint16, isBg bool) string {
	base := 38
	if isBg {
		base = 48
	}
	kind, palette, r, g, b := DecodeColor(c)
	switch kind {
	case ColorKindDefault:
		return ""
	case ColorKindPalette:
		return strconv.Itoa(base) + ";5;" + strconv.Itoa(int(palette))
	default:
		return strconv.Itoa(base) + ";2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
	}
}

// BuildANSISequence renders the full "\x1b[...m" sequence for an attribute
// byte plus two encoded colors. If nothing is set (attr==0, both colors
// default) it emits the canonical reset "\x1b[0m".
func BuildANSISequence(attr Attr, fg, bg uint16) string {
	var parts []string
	for _, e := range sgrCodeFor {
		if attr&e.bit != 0 {
			parts = append(parts, strconv.Itoa(e.code))
		}
	}
	if f := ColorToANSI(fg, false); f != "" {
		parts = append(parts, f)
	}
	if bgPart := ColorToANSI(bg, true); bgPart != "" {
		parts = append(parts, bgPart)
	}
	if len(parts) == 0 {
		return "\x1b[0m"
	}
	return "\x1b[0;" + strings.Join(parts, ";") + "m"
}
