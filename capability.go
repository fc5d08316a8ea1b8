package tui

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/term"
)

// TerminalType is the detected terminal identity, used both to seed the
// feature matrix and to key the decoder's quirks table.
type TerminalType int

const (
	TerminalUnknown TerminalType = iota
	TerminalKitty
	TerminalGhostty
	TerminalITerm
	TerminalTmux
	TerminalSSH
)

func (t TerminalType) String() string {
	switch t {
	case TerminalKitty:
		return "kitty"
	case TerminalGhostty:
		return "ghostty"
	case TerminalITerm:
		return "iterm"
	case TerminalTmux:
		return "tmux"
	case TerminalSSH:
		return "ssh"
	default:
		return "unknown"
	}
}

// FeatureLevel is how well a terminal is believed to support one feature.
type FeatureLevel int

const (
	LevelNone FeatureLevel = iota
	LevelPartial
	LevelFull
)

// Capability is the cached result of environment inspection (and, if run,
// an interactive probe).
type Capability struct {
	Terminal       TerminalType
	Version        string
	IsSSH          bool
	IsTmux         bool
	Mouse          FeatureLevel
	KittyKeyboard  FeatureLevel
	BracketedPaste FeatureLevel
	Focus          FeatureLevel
	Clipboard      FeatureLevel
}

// featureMatrix is the static seed table from spec.md §6, before any
// SSH/Tmux downgrades are applied.
var featureMatrix = map[TerminalType]Capability{
	TerminalKitty:   {Mouse: LevelFull, KittyKeyboard: LevelFull, BracketedPaste: LevelFull, Focus: LevelFull, Clipboard: LevelFull},
	TerminalGhostty: {Mouse: LevelFull, KittyKeyboard: LevelFull, BracketedPaste: LevelFull, Focus: LevelFull, Clipboard: LevelFull},
	TerminalITerm:   {Mouse: LevelPartial, KittyKeyboard: LevelNone, BracketedPaste: LevelFull, Focus: LevelFull, Clipboard: LevelFull},
	TerminalTmux:    {Mouse: LevelPartial, KittyKeyboard: LevelNone, BracketedPaste: LevelFull, Focus: LevelNone, Clipboard: LevelPartial},
	TerminalSSH:     {Mouse: LevelPartial, KittyKeyboard: LevelNone, BracketedPaste: LevelPartial, Focus: LevelNone, Clipboard: LevelNone},
	TerminalUnknown: {Mouse: LevelNone, KittyKeyboard: LevelNone, BracketedPaste: LevelNone, Focus: LevelNone, Clipboard: LevelNone},
}

// Environment is the slice of the process environment the controller reads.
// Populated from os.Getenv by NewController, or supplied directly for tests.
type Environment struct {
	Term               string
	TermProgram        string
	TermProgramVersion string
	SSHConnection      string
	Tmux               string
}

// EnvironmentFromOS reads the environment variables spec.md §6 names.
func EnvironmentFromOS() Environment {
	return Environment{
		Term:               os.Getenv("TERM"),
		TermProgram:        os.Getenv("TERM_PROGRAM"),
		TermProgramVersion: os.Getenv("TERM_PROGRAM_VERSION"),
		SSHConnection:      os.Getenv("SSH_CONNECTION"),
		Tmux:               os.Getenv("TMUX"),
	}
}

// DetectTerminalType derives the terminal identity with priority
// TERM_PROGRAM -> TERM substring -> Tmux -> SSH -> Unknown.
func DetectTerminalType(env Environment) TerminalType {
	switch strings.ToLower(env.TermProgram) {
	case "kitty":
		return TerminalKitty
	case "ghostty":
		return TerminalGhostty
	case "iterm.app":
		return TerminalITerm
	}
	term := strings.ToLower(env.Term)
	switch {
	case strings.Contains(term, "kitty"):
		return TerminalKitty
	case strings.Contains(term, "ghostty"):
		return TerminalGhostty
	case strings.Contains(term, "iterm"):
		return TerminalITerm
	}
	if env.Tmux != "" {
		return TerminalTmux
	}
	if env.SSHConnection != "" {
		return TerminalSSH
	}
	return TerminalUnknown
}

// KittyFlag is a bit in the Kitty keyboard protocol progressive
// enhancement flag set (CSI > flags u).
type KittyFlag uint8

const (
	KittyDisambiguateEscapes KittyFlag = 1 << iota
	KittyReportEventTypes
	KittyReportAlternateKeys
	KittyReportAllKeysAsEscapeCodes
	KittyReportAssociatedText
)

// DefaultKittyFlags matches spec.md §4.E's default enable request.
const DefaultKittyFlags = KittyDisambiguateEscapes | KittyReportEventTypes | KittyReportAllKeysAsEscapeCodes

// FeatureOption is one entry of a Features request: whether to enable a
// feature, and whether its absence should be a fatal configuration error.
type FeatureOption struct {
	Enabled  bool
	Required bool
}

// Features is the host-supplied feature configuration for Controller.Enable.
type Features struct {
	MouseTracking FeatureOption
	MouseAnyEvent bool
	MouseSGR      bool

	KittyKeyboard FeatureOption
	KittyFlags    KittyFlag

	BracketedPaste FeatureOption
	FocusEvents    FeatureOption
	Clipboard      FeatureOption
}

// ControllerOption configures a Controller during construction.
type ControllerOption func(*Controller)

// WithControllerLogger attaches a Logger for probe/cleanup diagnostics.
func WithControllerLogger(l Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithProbeTimeout overrides the default 200ms Kitty-probe timeout.
func WithProbeTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) { c.probeTimeout = d }
}

// WithEnvironment overrides the environment read at Detect time, primarily
// for tests.
func WithEnvironment(env Environment) ControllerOption {
	return func(c *Controller) { c.env = env; c.envSet = true }
}

// WithClipboardProvider attaches the system clipboard seam WriteClipboard
// and ReadClipboard round-trip through. Defaults to NoopClipboard.
func WithClipboardProvider(p ClipboardProvider) ControllerOption {
	return func(c *Controller) {
		if p != nil {
			c.clipboard = p
		}
	}
}

// Controller is the sole writer of enable/disable escape sequences and the
// owner of the capability cache. It is not a global: a host that wants
// process-wide access constructs one and holds onto it.
type Controller struct {
	sink         ByteSink
	logger       Logger
	probeTimeout time.Duration
	env          Environment
	envSet       bool
	clipboard    ClipboardProvider

	cache   *Capability
	enabled []func() string // disable sequences, pushed as features are enabled
}

// NewController builds a Controller that writes enable/disable sequences to
// sink.
func NewController(sink ByteSink, opts ...ControllerOption) *Controller {
	c := &Controller{
		sink:         sink,
		logger:       NoopLogger{},
		probeTimeout: 200 * time.Millisecond,
		clipboard:    NoopClipboard{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.envSet {
		c.env = EnvironmentFromOS()
	}
	return c
}

// ClearCache invalidates the cached Capability so the next Detect call
// re-derives it.
func (c *Controller) ClearCache() { c.cache = nil }

// Detect inspects the environment, seeds and downgrades the feature matrix,
// and caches the result.
func (c *Controller) Detect() Capability {
	if c.cache != nil {
		return *c.cache
	}
	term := DetectTerminalType(c.env)
	cap := featureMatrix[term]
	cap.Terminal = term
	cap.Version = c.env.TermProgramVersion
	cap.IsSSH = c.env.SSHConnection != ""
	cap.IsTmux = c.env.Tmux != ""

	if term == TerminalSSH || cap.IsSSH {
		if cap.Clipboard == LevelFull {
			cap.Clipboard = LevelPartial
		}
		cap.Focus = LevelNone
	}
	if term == TerminalTmux || cap.IsTmux {
		cap.KittyKeyboard = LevelNone
		cap.Focus = LevelNone
	}

	c.cache = &cap
	return cap
}

var kittyProbeResponse = regexp.MustCompile(`\x1b\[\?(\d+)(?:;(\d+))?u`)

// ProbeKittyKeyboard writes the Kitty keyboard query and waits up to the
// configured timeout for a matching response, temporarily switching fd
// into raw mode so the reply isn't line-buffered or echoed. It is only
// meaningful to call when Detect reports TerminalUnknown; callers are
// expected to gate on that themselves per spec.md §4.E.
func (c *Controller) ProbeKittyKeyboard(ctx context.Context, fd int, source *os.File) (bool, error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return false, fmt.Errorf("tui: enter raw mode for probe: %w", err)
	}
	defer func() {
		if err := term.Restore(fd, oldState); err != nil {
			c.logger.Errorf("tui: restore terminal after probe: %v", err)
		}
	}()

	if _, err := c.sink.Write([]byte("\x1b[?u")); err != nil {
		return false, fmt.Errorf("tui: write probe query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	type result struct {
		matched bool
		err     error
	}
	done := make(chan result, 1)
	go func() {
		reader := bufio.NewReader(source)
		buf := make([]byte, 0, 32)
		for len(buf) < 32 {
			b, err := reader.ReadByte()
			if err != nil {
				done <- result{err: err}
				return
			}
			buf = append(buf, b)
			if kittyProbeResponse.Match(buf) {
				done <- result{matched: true}
				return
			}
		}
		done <- result{matched: false}
	}()

	select {
	case <-ctx.Done():
		return false, ErrProbeTimeout
	case r := <-done:
		if r.err != nil {
			return false, fmt.Errorf("tui: read probe response: %w", r.err)
		}
		return r.matched, nil
	}
}

// Enable writes the enable sequences for every requested feature, checking
// each against the cached Capability. A required feature the terminal
// cannot support returns ErrFeatureUnsupported; features already found
// unsupported and not required are silently skipped. Enable may be called
// more than once to layer on additional features: each call's disable
// sequences accumulate so Reset always undoes everything enabled so far.
func (c *Controller) Enable(f Features) error {
	cap := c.Detect()

	if f.MouseTracking.Enabled {
		if err := c.enableFeature("MouseTracking", cap.Mouse, f.MouseTracking.Required, func() {
			c.write("\x1b[?1000h")
			c.write("\x1b[?1002h")
			if f.MouseAnyEvent {
				c.write("\x1b[?1003h")
			}
			if f.MouseSGR {
				c.write("\x1b[?1006h")
			}
			c.pushDisable(func() string {
				seq := "\x1b[?1006l\x1b[?1000l\x1b[?1002l"
				if f.MouseAnyEvent {
					seq += "\x1b[?1003l"
				}
				return seq
			})
		}); err != nil {
			return err
		}
	}

	if f.KittyKeyboard.Enabled {
		if err := c.enableFeature("KittyKeyboard", cap.KittyKeyboard, f.KittyKeyboard.Required, func() {
			flags := f.KittyFlags
			if flags == 0 {
				flags = DefaultKittyFlags
			}
			c.write(fmt.Sprintf("\x1b[>%du", flags))
			c.pushDisable(func() string { return "\x1b[<u" })
		}); err != nil {
			return err
		}
	}

	if f.BracketedPaste.Enabled {
		if err := c.enableFeature("BracketedPaste", cap.BracketedPaste, f.BracketedPaste.Required, func() {
			c.write("\x1b[?2004h")
			c.pushDisable(func() string { return "\x1b[?2004l" })
		}); err != nil {
			return err
		}
	}

	if f.FocusEvents.Enabled {
		if err := c.enableFeature("FocusEvents", cap.Focus, f.FocusEvents.Required, func() {
			c.write("\x1b[?1004h")
			c.pushDisable(func() string { return "\x1b[?1004l" })
		}); err != nil {
			return err
		}
	}

	if f.Clipboard.Enabled && f.Clipboard.Required && cap.Clipboard == LevelNone {
		return fmt.Errorf("%w: Clipboard on %s", ErrFeatureUnsupported, cap.Terminal)
	}

	return nil
}

// WriteClipboard sends an OSC 52 clipboard-set request to the terminal and
// mirrors content into the configured ClipboardProvider, so a host running
// over SSH keeps its local clipboard helper (pbcopy, xclip, ...) in sync
// with whatever it just pushed to the remote terminal. Returns
// ErrFeatureUnsupported if the detected terminal has no clipboard support.
func (c *Controller) WriteClipboard(content string) error {
	cap := c.Detect()
	if cap.Clipboard == LevelNone {
		return fmt.Errorf("%w: Clipboard on %s", ErrFeatureUnsupported, cap.Terminal)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	c.write("\x1b]52;c;" + encoded + "\x07")
	return c.clipboard.Write(content)
}

// ReadClipboard returns the local clipboard content via the configured
// ClipboardProvider. It does not round-trip through the terminal: reading
// a terminal's clipboard is asynchronous (an OSC 52 report arrives later
// as a ClipboardEvent from the Decoder); this is the synchronous local
// fallback the same provider seam offers.
func (c *Controller) ReadClipboard() (string, error) {
	return c.clipboard.Read()
}

func (c *Controller) enableFeature(name string, level FeatureLevel, required bool, apply func()) error {
	if level == LevelNone {
		if required {
			return fmt.Errorf("%w: %s on %s", ErrFeatureUnsupported, name, c.Detect().Terminal)
		}
		return nil
	}
	apply()
	return nil
}

func (c *Controller) write(seq string) {
	if _, err := c.sink.Write([]byte(seq)); err != nil {
		c.logger.Errorf("tui: write capability sequence: %v", err)
	}
}

func (c *Controller) pushDisable(seq func() string) {
	c.enabled = append(c.enabled, seq)
}

// Reset emits the disable sequences for every enabled feature in reverse
// order. It is idempotent: calling it twice, or with nothing enabled, is a
// no-op after the first call.
func (c *Controller) Reset() {
	for i := len(c.enabled) - 1; i >= 0; i-- {
		c.write(c.enabled[i]())
	}
	c.enabled = c.enabled[:0]
}
