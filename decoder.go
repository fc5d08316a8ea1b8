package tui

import (
	"bytes"
	"encoding/base64"
	"strconv"

	utf8dec "github.com/danielgatis/go-utf8"
)

// parserState is one node of the byte-level state machine spec.md §4.D
// names: Idle, Escape, CSI (with its Param/Intermediate sub-phases folded
// into flags rather than separate constants, since they share dispatch),
// SS3, OSC, DCS, Paste, plus an internal X10-mouse continuation state.
type parserState int

const (
	stateIdle parserState = iota
	stateEscape
	stateCSI
	stateSS3
	stateOSC
	stateDCS
	statePaste
	stateX10Mouse
)

const (
	maxParams   = 16
	maxParamVal = 0x00FFFFFF
	maxRawBuf   = 256
	maxOSCBuf   = 10000
	pasteTerm   = "\x1b[201~"
)

// DecoderOption configures a Decoder during construction.
type DecoderOption func(*Decoder)

// WithKittyKeyboard enables Kitty keyboard protocol handling: plain
// printable bytes are suppressed in favor of the disambiguated CSI-u tail.
func WithKittyKeyboard(enabled bool) DecoderOption {
	return func(d *Decoder) { d.kittyKeyboard = enabled }
}

// WithQuirks enables the vendor-quirk compensation layer (physical-modifier
// shadow, non-standard control bytes, ESC b/f remaps).
func WithQuirks(enabled bool) DecoderOption {
	return func(d *Decoder) { d.quirks = enabled }
}

// WithQuirkTerminal tells the decoder which terminal identity to key the
// quirks table on, typically the Terminal field of Controller.Detect's
// result.
func WithQuirkTerminal(t TerminalType) DecoderOption {
	return func(d *Decoder) { d.quirkTerminal = t }
}

// WithDecoderLogger attaches a Logger for protocol-malformation diagnostics.
// Defaults to a no-op.
func WithDecoderLogger(l Logger) DecoderOption {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMiddleware attaches event-dispatch middleware.
func WithMiddleware(m *Middleware) DecoderOption {
	return func(d *Decoder) {
		if d.middleware == nil {
			d.middleware = &Middleware{}
		}
		d.middleware.Merge(m)
	}
}

// Decoder is a byte-driven state machine that turns a raw terminal input
// stream into a queue of typed Events. Feed is the only way bytes enter it;
// Next pops one event at a time. It is not re-entrant and owns all of its
// state; nothing about it is safe for concurrent use.
type Decoder struct {
	kittyKeyboard bool
	quirks        bool
	quirkTerminal TerminalType
	logger        Logger
	middleware    *Middleware

	state parserState
	queue []Event

	raw []byte // bytes of the sequence currently being parsed, capped at maxRawBuf

	params     [][]int64 // each top-level param, possibly with colon subparams
	paramCount int       // total committed entries across all groups, capped at maxParams
	curParam   int64
	haveDigit  bool
	intermed   []byte

	oscBuf     []byte
	oscEscSeen bool

	pasteBuf []byte

	x10Bytes [3]byte
	x10Count int

	lastMouseButton MouseButton
	haveLastMouse   bool

	shiftDown, ctrlDown, altDown, metaDown bool

	utf8Pending []byte
}

// NewDecoder builds a Decoder in its Idle state.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		logger:          NoopLogger{},
		lastMouseButton: MouseButtonNone,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HasEvents reports whether Next would return an event.
func (d *Decoder) HasEvents() bool { return len(d.queue) > 0 }

// Next pops the oldest queued event.
func (d *Decoder) Next() (Event, bool) {
	if len(d.queue) == 0 {
		return nil, false
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	return ev, true
}

// Clear discards only the completed-event queue; any in-progress partial
// sequence is left untouched so a subsequent Feed can complete it.
func (d *Decoder) Clear() {
	d.queue = d.queue[:0]
}

func (d *Decoder) enqueue(ev Event) {
	switch e := ev.(type) {
	case KeyEvent:
		d.middleware.dispatchKey(e, func(ev Event) { d.queue = append(d.queue, ev) })
	case MouseEvent:
		d.middleware.dispatchMouse(e, func(ev Event) { d.queue = append(d.queue, ev) })
	case PasteEvent:
		d.middleware.dispatchPaste(e, func(ev Event) { d.queue = append(d.queue, ev) })
	case FocusEvent:
		d.middleware.dispatchFocus(e, func(ev Event) { d.queue = append(d.queue, ev) })
	case ClipboardEvent:
		d.middleware.dispatchClipboard(e, func(ev Event) { d.queue = append(d.queue, ev) })
	default:
		d.queue = append(d.queue, ev)
	}
}

func (d *Decoder) appendRaw(b byte) {
	if len(d.raw) >= maxRawBuf {
		return
	}
	d.raw = append(d.raw, b)
}

func (d *Decoder) resetSequence() {
	d.state = stateIdle
	d.raw = nil
	d.params = nil
	d.paramCount = 0
	d.curParam = 0
	d.haveDigit = false
	d.intermed = nil
}

// Feed consumes a chunk of bytes, advancing the state machine one byte at a
// time and enqueuing zero or more events. Feeding a chunk byte-by-byte or
// all at once produces the same event sequence.
func (d *Decoder) Feed(data []byte) {
	for _, b := range data {
		d.feedByte(b)
	}
}

func (d *Decoder) feedByte(b byte) {
	switch d.state {
	case stateIdle:
		d.feedIdle(b)
	case stateEscape:
		d.feedEscape(b)
	case stateCSI:
		d.feedCSI(b)
	case stateSS3:
		d.feedSS3(b)
	case stateOSC:
		d.feedOSC(b)
	case stateDCS:
		d.feedDCS(b)
	case statePaste:
		d.feedPaste(b)
	case stateX10Mouse:
		d.feedX10(b)
	}
}

func (d *Decoder) feedIdle(b byte) {
	if len(d.utf8Pending) > 0 {
		d.feedUTF8Continuation(b)
		return
	}

	switch {
	case b == 0x1B:
		d.resetSequence()
		d.state = stateEscape
		d.appendRaw(b)
	case b < 0x20 || b == 0x7F:
		d.emitControl(b)
	default:
		d.startUTF8(b)
	}
}

func expectedUTF8Len(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return -1
	}
}

func (d *Decoder) startUTF8(b byte) {
	n := expectedUTF8Len(b)
	if n <= 0 {
		// Not a valid UTF-8 leader; drop it silently rather than fail.
		d.logger.Debugf("decoder: dropped invalid UTF-8 lead byte %#x", b)
		return
	}
	if n == 1 {
		d.emitPrintable([]byte{b}, rune(b))
		return
	}
	d.utf8Pending = []byte{b}
}

func (d *Decoder) feedUTF8Continuation(b byte) {
	if b&0xC0 != 0x80 {
		// Malformed multi-byte sequence: drop the partial parse and
		// reconsider this byte fresh, as spec.md §4.D requires.
		d.utf8Pending = nil
		d.feedIdle(b)
		return
	}
	d.utf8Pending = append(d.utf8Pending, b)
	if len(d.utf8Pending) < expectedUTF8Len(d.utf8Pending[0]) {
		return
	}
	r, _ := utf8dec.DecodeRune(d.utf8Pending)
	raw := append([]byte(nil), d.utf8Pending...)
	d.utf8Pending = nil
	d.emitPrintable(raw, r)
}

// emitPrintable delivers a decoded printable rune, unless Kitty keyboard
// mode is active, in which case plain printable bytes are suppressed: the
// Kitty CSI-u tail will deliver the same keystroke with modifiers and kind.
func (d *Decoder) emitPrintable(raw []byte, r rune) {
	if d.kittyKeyboard {
		return
	}
	d.enqueue(KeyEvent{Code: Char(r), Raw: raw})
}

// c0Names maps control bytes with a named-key meaning distinct from the
// generic Ctrl+letter rule.
var c0Names = map[byte]KeyName{
	9:   KeyTab,
	13:  KeyEnter,
	127: KeyBackspace,
}

func (d *Decoder) emitControl(b byte) {
	if ev, ok := d.quirkControlOverride(b); ok {
		d.enqueue(ev)
		return
	}

	raw := []byte{b}
	if name, ok := c0Names[b]; ok {
		d.enqueue(KeyEvent{Code: Named(name), Raw: raw})
		return
	}
	if b == 0 {
		d.enqueue(KeyEvent{Code: Char(' '), Mods: Modifiers{Ctrl: true}, Raw: raw})
		return
	}
	if b >= 1 && b <= 26 {
		d.enqueue(KeyEvent{Code: Char(rune('a' + b - 1)), Mods: Modifiers{Ctrl: true}, Raw: raw})
		return
	}
	// Remaining C0 bytes (28-31): best-effort, no named mapping exists.
	d.enqueue(KeyEvent{Code: Char(rune(b)), Mods: Modifiers{Ctrl: true}, Raw: raw})
}

func (d *Decoder) feedEscape(b byte) {
	d.appendRaw(b)
	switch b {
	case '[':
		d.state = stateCSI
	case 'O':
		d.state = stateSS3
	case 'P':
		d.state = stateDCS
	case ']':
		d.state = stateOSC
		d.oscBuf = nil
		d.oscEscSeen = false
	default:
		if b >= 0x20 && b < 0x7F {
			if d.quirks {
				if b == 'b' {
					d.finishKey(KeyEvent{Code: Named(KeyLeft), Mods: Modifiers{Alt: true}, Raw: d.raw})
					return
				}
				if b == 'f' {
					d.finishKey(KeyEvent{Code: Named(KeyRight), Mods: Modifiers{Alt: true}, Raw: d.raw})
					return
				}
			}
			d.finishKey(KeyEvent{Code: Char(rune(b)), Mods: Modifiers{Alt: true}, Raw: d.raw})
			return
		}
		// Illegal escape byte: emit a debug-aid Unknown key rather than
		// silently resetting (the asymmetry with CSI is intentional).
		d.enqueue(KeyEvent{Code: Char('?'), Raw: append([]byte(nil), d.raw...)})
		d.resetSequence()
	}
}

func (d *Decoder) finishKey(ev KeyEvent) {
	d.enqueue(ev)
	d.resetSequence()
}

func (d *Decoder) feedSS3(b byte) {
	d.appendRaw(b)
	var name KeyName
	switch b {
	case 'A':
		name = KeyUp
	case 'B':
		name = KeyDown
	case 'C':
		name = KeyRight
	case 'D':
		name = KeyLeft
	case 'H':
		name = KeyHome
	case 'F':
		name = KeyEnd
	case 'P':
		name = KeyF1
	case 'Q':
		name = KeyF2
	case 'R':
		name = KeyF3
	case 'S':
		name = KeyF4
	default:
		d.resetSequence()
		return
	}
	d.finishKey(KeyEvent{Code: Named(name), Raw: append([]byte(nil), d.raw...)})
}

// pushParamDigit accumulates a decimal digit into the current parameter,
// capping the value rather than overflowing.
func (d *Decoder) pushParamDigit(digit byte) {
	d.haveDigit = true
	d.curParam = d.curParam*10 + int64(digit-'0')
	if d.curParam > maxParamVal {
		d.curParam = maxParamVal
	}
}

// commitParam closes the value accumulated in curParam into the current
// top-level group, then, if newSubgroup is set (a ';' or the final byte),
// opens a fresh top-level group for whatever follows. A ':' passes false:
// it keeps appending into the same group, which is how Kitty's
// unicode;modifiers:event_type sub-parameters accumulate.
//
// paramCount bounds the total number of committed entries across every
// group at maxParams, not just the group count: once the cap is hit,
// further ';'/':' bytes are consumed but produce no new entries, so
// neither a long run of top-level params nor a long run of colon
// sub-params on a single group can grow d.params without bound.
func (d *Decoder) commitParam(newSubgroup bool) {
	if d.paramCount >= maxParams {
		d.curParam = 0
		d.haveDigit = false
		return
	}
	if len(d.params) == 0 {
		d.params = append(d.params, []int64{})
	}
	last := len(d.params) - 1
	d.params[last] = append(d.params[last], d.curParam)
	d.paramCount++
	d.curParam = 0
	d.haveDigit = false
	if newSubgroup && d.paramCount < maxParams {
		d.params = append(d.params, []int64{})
	}
}

func (d *Decoder) feedCSI(b byte) {
	d.appendRaw(b)
	switch {
	case b >= '0' && b <= '9':
		d.pushParamDigit(b)
	case b == ';':
		d.commitParam(true)
	case b == ':':
		d.commitParam(false)
	case b == 0x3C || b == 0x3D || b == 0x3E || b == 0x3F: // < = > ?
		d.intermed = append(d.intermed, b)
	case b >= 0x20 && b <= 0x2F:
		d.intermed = append(d.intermed, b)
	case b >= 0x40 && b <= 0x7E:
		if d.haveDigit || len(d.params) > 0 {
			d.commitParam(true)
		}
		d.dispatchCSI(b)
	default:
		d.logger.Debugf("decoder: malformed CSI byte %#x, resetting", b)
		d.resetSequence()
	}
}

func (d *Decoder) dispatchCSI(final byte) {
	raw := append([]byte(nil), d.raw...)
	params := d.params
	intermed := d.intermed
	d.resetSequence()

	hasMarker := func(m byte) bool { return bytes.IndexByte(intermed, m) >= 0 }

	switch {
	case hasMarker('<') && (final == 'M' || final == 'm'):
		d.dispatchSGRMouse(params, final == 'm', raw)
		return
	case final == 'M' && !hasMarker('<') && len(params) == 0:
		d.state = stateX10Mouse
		d.x10Count = 0
		d.raw = raw
		return
	case final == 'u' && len(intermed) == 0:
		d.dispatchKittyKey(params, raw)
		return
	case final == '~':
		d.dispatchTilde(params, raw)
		return
	case final == 'I' && len(params) == 0:
		d.enqueue(FocusEvent{Gained: true})
		return
	case final == 'O' && len(params) == 0:
		d.enqueue(FocusEvent{Gained: false})
		return
	}

	if final == 'Z' {
		d.enqueue(KeyEvent{Code: Named(KeyTab), Mods: Modifiers{Shift: true}, Raw: raw})
		return
	}

	if name, ok := csiFinalKeys[final]; ok {
		mods := modsFromParams(params, 1)
		d.enqueue(KeyEvent{Code: Named(name), Mods: mods, Raw: raw})
		return
	}

	d.logger.Debugf("decoder: unknown CSI final %q, params=%v", string(final), params)
}

var csiFinalKeys = map[byte]KeyName{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// tildeKeys maps the first CSI ~ parameter to a named key.
var tildeKeys = map[int64]KeyName{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd, 5: KeyPageUp, 6: KeyPageDown,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4, 15: KeyF5,
	17: KeyF6, 18: KeyF7, 19: KeyF8, 20: KeyF9, 21: KeyF10,
	23: KeyF11, 24: KeyF12,
}

func (d *Decoder) dispatchTilde(params [][]int64, raw []byte) {
	if len(params) == 0 || len(params[0]) == 0 {
		d.logger.Debugf("decoder: CSI ~ with no parameters")
		return
	}
	code := params[0][0]
	switch code {
	case 200:
		d.state = statePaste
		d.pasteBuf = nil
		return
	case 201:
		return // stray paste terminator outside paste mode: ignore
	}
	name, ok := tildeKeys[code]
	if !ok {
		d.logger.Debugf("decoder: unknown CSI ~ code %d", code)
		return
	}
	mods := modsFromParams(params, 1)
	kind, repeat := eventKindFromParams(params, 1)
	d.enqueue(KeyEvent{Code: Named(name), Mods: mods, Kind: kind, Repeat: repeat, Raw: raw})
}

// modsFromParams extracts the modifier bitfield from params[idx] (a
// 1-based "1 + bitfield" value per spec.md §4.D), tolerating a colon
// sub-param at params[idx][0] as well as a bare scalar.
func modsFromParams(params [][]int64, idx int) Modifiers {
	if idx >= len(params) || len(params[idx]) == 0 {
		return Modifiers{}
	}
	v := params[idx][0]
	if v <= 0 {
		return Modifiers{}
	}
	bits := v - 1
	return Modifiers{
		Shift: bits&1 != 0,
		Alt:   bits&2 != 0,
		Ctrl:  bits&4 != 0,
		Meta:  bits&8 != 0,
	}
}

// eventKindFromParams looks for an event-type value either as a colon
// sub-param on params[modIdx] or as a separate top-level param at
// params[modIdx+1].
func eventKindFromParams(params [][]int64, modIdx int) (KeyKind, bool) {
	if modIdx < len(params) && len(params[modIdx]) > 1 {
		return kindFromInt(params[modIdx][1])
	}
	if modIdx+1 < len(params) && len(params[modIdx+1]) > 0 {
		return kindFromInt(params[modIdx+1][0])
	}
	return KeyKindUnspecified, false
}

func kindFromInt(v int64) (KeyKind, bool) {
	switch v {
	case 2:
		return KeyKindRepeat, true
	case 3:
		return KeyKindRelease, false
	default:
		return KeyKindPress, false
	}
}

func (d *Decoder) feedOSC(b byte) {
	if d.oscEscSeen {
		if b == '\\' {
			d.dispatchOSC()
			return
		}
		d.oscEscSeen = false
	}
	if b == 0x07 {
		d.dispatchOSC()
		return
	}
	if b == 0x1B {
		d.oscEscSeen = true
		return
	}
	if len(d.oscBuf) >= maxOSCBuf {
		d.logger.Debugf("decoder: OSC buffer exceeded %d bytes, abandoning", maxOSCBuf)
		d.resetSequence()
		d.oscBuf = nil
		return
	}
	d.oscBuf = append(d.oscBuf, b)
}

func (d *Decoder) dispatchOSC() {
	buf := d.oscBuf
	d.oscBuf = nil
	d.resetSequence()

	parts := bytes.SplitN(buf, []byte(";"), 3)
	if len(parts) < 2 {
		return
	}
	code, err := strconv.Atoi(string(parts[0]))
	if err != nil {
		return
	}
	if code != 52 || len(parts) < 3 {
		return
	}
	payload := parts[2]
	decoded, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		return
	}
	if len(parts[1]) > 0 && parts[1][0] == 'c' {
		d.enqueue(ClipboardEvent{Content: string(decoded)})
	}
}

func (d *Decoder) feedDCS(b byte) {
	// DCS bodies (e.g. termcap/terminfo queries) are accepted and
	// discarded: nothing in the event vocabulary reports them. Once raw is
	// full, only its last byte is kept so the ESC \ terminator is still seen.
	if len(d.raw) >= maxRawBuf {
		last := d.raw[len(d.raw)-1]
		d.raw = append(d.raw[:0], last)
	}
	d.appendRaw(b)
	if b == 0x1B {
		return
	}
	if b == '\\' && len(d.raw) >= 2 && d.raw[len(d.raw)-2] == 0x1B {
		d.resetSequence()
	}
}

func (d *Decoder) feedPaste(b byte) {
	d.pasteBuf = append(d.pasteBuf, b)
	if len(d.pasteBuf) >= len(pasteTerm) && bytes.Equal(d.pasteBuf[len(d.pasteBuf)-len(pasteTerm):], []byte(pasteTerm)) {
		content := d.pasteBuf[:len(d.pasteBuf)-len(pasteTerm)]
		d.enqueue(PasteEvent{Content: string(content)})
		d.pasteBuf = nil
		d.state = stateIdle
	}
}

func (d *Decoder) feedX10(b byte) {
	d.x10Bytes[d.x10Count] = b
	d.x10Count++
	if d.x10Count < 3 {
		return
	}
	raw := d.raw
	d.raw = nil
	d.state = stateIdle

	code := int(d.x10Bytes[0]) - 32
	x := int(d.x10Bytes[1]) - 32
	y := int(d.x10Bytes[2]) - 32
	kind, btn, mods := classifyMouseCode(code, releaseSignal{}, &d.lastMouseButton, &d.haveLastMouse)
	d.enqueue(MouseEvent{Kind: kind, Button: btn, X: x, Y: y, Mods: mods, Raw: append(raw, d.x10Bytes[:]...)})
}

func (d *Decoder) quirkControlOverride(b byte) (KeyEvent, bool) {
	if !d.quirks {
		return KeyEvent{}, false
	}
	rule, ok := controlQuirks[d.quirkTerminal][b]
	if !ok {
		return KeyEvent{}, false
	}
	return KeyEvent{Code: rule.code, Mods: rule.mods, Raw: []byte{b}}, true
}
