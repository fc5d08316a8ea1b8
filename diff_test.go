package tui

import (
	"strings"
	"testing"
)

func TestComputeDiffMovesCursorToRun(t *testing.T) {
	g := NewGrid(3, 10)
	g.SetCell(1, 4, 'H', 0, DefaultColor(), DefaultColor())
	diff := string(g.ComputeDiff())
	// Every cell of row 1 shares the default style, so the changed run is
	// the whole row and starts at column 0.
	if !strings.Contains(diff, MoveTo(2, 1)) {
		t.Errorf("diff %q missing MoveTo(2,1)", diff)
	}
	if !strings.Contains(diff, "H") {
		t.Errorf("diff %q missing character", diff)
	}
}

func TestComputeDiffSkipsCleanRuns(t *testing.T) {
	g := NewGrid(1, 5)
	// Column 2 is plain and its neighbours bold, so the row splits into
	// three style runs: 0-1, 2 and 3-4.
	for c := 0; c < 5; c++ {
		attr := AttrBold
		if c == 2 {
			attr = 0
		}
		g.SetCell(0, c, 'x', attr, DefaultColor(), DefaultColor())
	}
	g.ComputeDiff() // establishes front == back

	g.SetCell(0, 2, 'y', 0, DefaultColor(), DefaultColor())
	diff := string(g.ComputeDiff())
	if !strings.Contains(diff, "y") {
		t.Fatal("expected changed cell in diff")
	}
	if strings.Contains(diff, "x") {
		t.Errorf("clean cells should not be re-emitted: %q", diff)
	}
}

func TestComputeDiffBackgroundResetOnTransition(t *testing.T) {
	// Scenario from spec: 1x2 grid, (0,0) red bg 'X', (0,1) default bg 'Y'.
	// The bytes must contain "49" inside an ESC[...]m before 'Y'.
	g := NewGrid(1, 2)
	g.SetCell(0, 0, 'X', 0, TrueColorHex("#ff0000"), PaletteColor(1))
	g.SetCell(0, 1, 'Y', 0, DefaultColor(), DefaultColor())

	diff := string(g.ComputeDiff())
	yIdx := strings.IndexByte(diff, 'Y')
	if yIdx < 0 {
		t.Fatal("diff missing 'Y'")
	}
	before := diff[:yIdx]
	if !strings.Contains(before, "49") {
		t.Errorf("expected a 49 background reset before Y, got %q", diff)
	}
}

func TestComputeDiffAttrOnlyUsesLUT(t *testing.T) {
	g := NewGrid(1, 3)
	g.SetCell(0, 0, 'a', AttrBold, DefaultColor(), DefaultColor())
	diff := string(g.ComputeDiff())
	if !strings.Contains(diff, AttrLUT[AttrBold]) {
		t.Errorf("expected AttrLUT entry in diff, got %q", diff)
	}
}

func TestComputeDiffFinalResetWhenStateWasSet(t *testing.T) {
	g := NewGrid(1, 1)
	g.SetCell(0, 0, 'a', AttrBold, DefaultColor(), DefaultColor())
	diff := string(g.ComputeDiff())
	if !strings.HasSuffix(diff, "\x1b[0m") {
		t.Errorf("expected trailing reset, got %q", diff)
	}
}

func TestComputeDiffNoResetWhenNothingSet(t *testing.T) {
	g := NewGrid(1, 1)
	g.SetCell(0, 0, 'a', 0, DefaultColor(), DefaultColor())
	diff := string(g.ComputeDiff())
	if strings.Contains(diff, "\x1b[0m") {
		t.Errorf("no attributes/colors were ever set; unexpected reset in %q", diff)
	}
}

func TestComputeDiffRunGrouping(t *testing.T) {
	g := NewGrid(1, 6)
	for c := 0; c < 3; c++ {
		g.SetCell(0, c, 'a', AttrBold, PaletteColor(1), DefaultColor())
	}
	for c := 3; c < 6; c++ {
		g.SetCell(0, c, 'b', AttrItalic, PaletteColor(2), DefaultColor())
	}
	diff := string(g.ComputeDiff())
	// Only one MoveTo is needed since the whole dirty row is one contiguous
	// write starting at column 0; a style change happens mid-run without an
	// extra cursor move.
	if strings.Count(diff, "\x1b[") == 0 {
		t.Fatal("expected escape sequences in diff")
	}
	if !strings.Contains(diff, "aaa") || !strings.Contains(diff, "bbb") {
		t.Errorf("expected both runs' characters present, got %q", diff)
	}
}

func TestComputeDiffEndToEndIdleAfter100Cells(t *testing.T) {
	g := NewGrid(10, 10)
	for i := 0; i < 100; i++ {
		g.SetCell(i/10, i%10, rune('a'+i%26), 0, DefaultColor(), DefaultColor())
	}
	if len(g.ComputeDiff()) == 0 {
		t.Fatal("expected non-empty diff for initial writes")
	}
	if len(g.ComputeDiff()) != 0 {
		t.Fatal("expected empty diff for the idle second call")
	}
}
