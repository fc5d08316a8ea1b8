package tui

// Event is the tagged union of input events: KeyEvent, MouseEvent,
// PasteEvent, FocusEvent and ClipboardEvent come from the decoder;
// ResizeEvent is built by the host.
type Event interface {
	isEvent()
}

// Modifiers reports which of the four physical modifier keys were held.
type Modifiers struct {
	Shift, Ctrl, Alt, Meta bool
}

// KeyName enumerates the named (non-character) keys the decoder can
// produce. KeyNone means the KeyCode instead carries a Unicode scalar in
// Char.
type KeyName int

const (
	KeyNone KeyName = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyShift
	KeyControl
	KeyAlt
	KeyMeta
	KeyCapsLock
	KeyNumLock
	KeyScrollLock
)

// KeyCode is either a named key or a single Unicode scalar. Name == KeyNone
// means Char holds the scalar.
type KeyCode struct {
	Name KeyName
	Char rune
}

// Char builds a KeyCode carrying a single Unicode scalar.
func Char(r rune) KeyCode { return KeyCode{Name: KeyNone, Char: r} }

// Named builds a KeyCode for one of the fixed named keys.
func Named(n KeyName) KeyCode { return KeyCode{Name: n} }

// IsChar reports whether the code carries a character rather than a named
// key.
func (k KeyCode) IsChar() bool { return k.Name == KeyNone }

// KeyKind distinguishes press/repeat/release. It is only meaningful
// (non-KeyKindUnspecified) when Kitty event-type reporting is active;
// otherwise every key reads as a bare keystroke with no lifecycle.
type KeyKind int

const (
	KeyKindUnspecified KeyKind = iota
	KeyKindPress
	KeyKindRepeat
	KeyKindRelease
)

// KeyEvent reports a keystroke.
type KeyEvent struct {
	Code   KeyCode
	Mods   Modifiers
	Kind   KeyKind
	Repeat bool
	Raw    []byte
}

func (KeyEvent) isEvent() {}

// MouseKind classifies a mouse event.
type MouseKind int

const (
	MouseDown MouseKind = iota
	MouseUp
	MouseDrag
	MouseMove
	MouseScroll
)

// MouseButton identifies which button (if any) a mouse event concerns.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)

// MouseEvent reports a click, drag, move or scroll. X and Y are 1-based
// terminal cell coordinates.
type MouseEvent struct {
	Kind   MouseKind
	Button MouseButton
	X, Y   int
	Mods   Modifiers
	Raw    []byte
}

func (MouseEvent) isEvent() {}

// PasteEvent reports the full content of a bracketed paste.
type PasteEvent struct {
	Content string
}

func (PasteEvent) isEvent() {}

// FocusEvent reports a terminal focus transition.
type FocusEvent struct {
	Gained bool
}

func (FocusEvent) isEvent() {}

// ClipboardEvent reports clipboard content delivered via OSC 52.
type ClipboardEvent struct {
	Content string
}

func (ClipboardEvent) isEvent() {}

// ResizeEvent reports a terminal dimension change (typically driven by
// SIGWINCH on the host side).
type ResizeEvent struct {
	Rows, Cols int
}

func (ResizeEvent) isEvent() {}
