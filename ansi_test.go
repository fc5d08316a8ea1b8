package tui

import "testing"

func TestAttrLUTZeroIsReset(t *testing.T) {
	if AttrLUT[0] != "\x1b[0m" {
		t.Errorf("AttrLUT[0] = %q, want \\x1b[0m", AttrLUT[0])
	}
}

func TestAttrLUTOrdering(t *testing.T) {
	got := AttrLUT[int(AttrBold|AttrUnderline|AttrStrikethrough)]
	want := "\x1b[0;1;4;9m"
	if got != want {
		t.Errorf("AttrLUT[bold|underline|strike] = %q, want %q", got, want)
	}
}

func TestMoveTo(t *testing.T) {
	if got := MoveTo(1, 1); got != "\x1b[1;1H" {
		t.Errorf("MoveTo(1,1) = %q", got)
	}
	if got := MoveTo(24, 80); got != "\x1b[24;80H" {
		t.Errorf("MoveTo(24,80) = %q", got)
	}
}

func TestMoveDirectionsNonPositive(t *testing.T) {
	if MoveUp(0) != "" || MoveUp(-1) != "" {
		t.Error("MoveUp(<=0) should be empty")
	}
	if MoveDown(0) != "" {
		t.Error("MoveDown(0) should be empty")
	}
	if MoveLeft(0) != "" {
		t.Error("MoveLeft(0) should be empty")
	}
	if MoveRight(0) != "" {
		t.Error("MoveRight(0) should be empty")
	}
}

func TestMoveDirectionsPositive(t *testing.T) {
	if got := MoveUp(3); got != "\x1b[3A" {
		t.Errorf("MoveUp(3) = %q", got)
	}
	if got := MoveDown(3); got != "\x1b[3B" {
		t.Errorf("MoveDown(3) = %q", got)
	}
	if got := MoveRight(3); got != "\x1b[3C" {
		t.Errorf("MoveRight(3) = %q", got)
	}
	if got := MoveLeft(3); got != "\x1b[3D" {
		t.Errorf("MoveLeft(3) = %q", got)
	}
}

func TestColorToANSIPalette(t *testing.T) {
	if got := ColorToANSI(PaletteColor(200), false); got != "38;5;200" {
		t.Errorf("fg palette = %q", got)
	}
	if got := ColorToANSI(PaletteColor(5), true); got != "48;5;5" {
		t.Errorf("bg palette = %q", got)
	}
}

func TestColorToANSITrueColor(t *testing.T) {
	got := ColorToANSI(TrueColorRGB(255, 0, 128), false)
	if got != "38;2;255;0;132" {
		t.Errorf("fg truecolor = %q", got)
	}
}

func TestColorToANSIDefaultIsEmpty(t *testing.T) {
	if ColorToANSI(DefaultColor(), false) != "" {
		t.Error("default fg should render empty")
	}
	if ColorToANSI(DefaultColor(), true) != "" {
		t.Error("default bg should render empty")
	}
}

func TestBuildANSISequenceEmpty(t *testing.T) {
	if got := BuildANSISequence(0, DefaultColor(), DefaultColor()); got != "\x1b[0m" {
		t.Errorf("BuildANSISequence(no attrs, defaults) = %q", got)
	}
}

func TestBuildANSISequenceCombined(t *testing.T) {
	got := BuildANSISequence(AttrBold, PaletteColor(1), DefaultColor())
	want := "\x1b[0;1;38;5;1m"
	if got != want {
		t.Errorf("BuildANSISequence = %q, want %q", got, want)
	}
}
