package tui

// Escape sequence constants from spec.md §6. The renderer writes the
// cursor, clear-screen and synchronized-update ones. Mouse/Kitty/paste/focus
// toggle sequences live in capability.go next to the FeatureOption checks
// that guard them.
const (
	SeqResetAttributes = "\x1b[0m"
	SeqClearScreen     = "\x1b[2J"
	SeqHideCursor      = "\x1b[?25l"
	SeqShowCursor      = "\x1b[?25h"
	SeqBeginSync       = "\x1b[?2026h"
	SeqEndSync         = "\x1b[?2026l"
)
