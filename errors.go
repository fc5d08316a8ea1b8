package tui

import "errors"

// ErrFeatureUnsupported is returned by [Controller.Enable] when a feature
// marked required is not supported by the detected terminal.
var ErrFeatureUnsupported = errors.New("tui: feature unsupported by terminal")

// ErrProbeTimeout is returned by [Controller.ProbeKittyKeyboard] when the
// terminal does not answer the Kitty keyboard query within the deadline.
var ErrProbeTimeout = errors.New("tui: capability probe timed out")
