// Package tui provides the low-level runtime underneath a terminal UI
// library: a packed cell model with a run-diffing renderer, a byte-level
// input decoder for keyboard/mouse/paste/focus/clipboard events, and a
// capability controller that detects and negotiates terminal features.
//
// It does not lay out widgets, manage a scene graph, or reflow content on
// resize; it turns cell writes into minimal ANSI output and turns raw
// terminal bytes into typed events, and nothing more.
//
// # Quick start
//
// A host owns a Grid, writes cells into it, and renders the diff to
// whatever it is connected to (a pty, a file, a network socket):
//
//	grid := tui.NewGrid(24, 80)
//	grid.SetCell(0, 0, 'H', 0, tui.DefaultColor(), tui.DefaultColor())
//	renderer := tui.NewRenderer(grid, os.Stdout)
//	renderer.Render(context.Background())
//
// # Cell model
//
// A [Cell] packs a rune, an attribute bitmask and two colors into two
// 32-bit words ([Pack], [Cell.Char], [Cell.Fg], [Cell.Bg]). [Grid] holds a
// double-buffered array of cells; [Grid.ComputeDiff] compares the buffers
// row by row and returns only the ANSI bytes needed to bring a real
// terminal's screen in line with the back buffer.
//
// # Input decoding
//
// [Decoder] consumes raw input bytes with [Decoder.Feed] and yields
// [Event] values (KeyEvent, MouseEvent, PasteEvent, FocusEvent,
// ClipboardEvent) with [Decoder.Next]. It understands CSI/SS3/OSC
// sequences, SGR and X10 mouse reporting, the Kitty keyboard protocol and
// bracketed paste, and never blocks. The OSC buffer and the CSI parameter
// list are capped; bracketed-paste content is buffered in full, without a
// cap, until its terminator arrives.
//
// # Capability negotiation
//
// [Controller] inspects the environment to guess the terminal in use,
// looks up a static feature matrix, optionally probes for Kitty keyboard
// support, and writes the enable/disable sequences for whichever features
// a host asks for via [Controller.Enable] and [Controller.Reset].
package tui
