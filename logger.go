package tui

// Logger receives diagnostic messages from the decoder, controller and
// renderer. All are silent by default; supply one with WithDecoderLogger,
// WithControllerLogger or WithRendererLogger to observe protocol
// malformations, write failures and terminal-restore errors.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NoopLogger discards every message.
type NoopLogger struct{}

func (NoopLogger) Debugf(format string, args ...any) {}
func (NoopLogger) Errorf(format string, args ...any) {}

var _ Logger = NoopLogger{}
