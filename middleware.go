package tui

// Middleware intercepts decoder event dispatch, allowing custom behavior
// before an event reaches the host's queue. Each field wraps one event
// family: it receives the decoded event and a next function that enqueues
// it (or that the middleware may simply not call, to suppress the event).
type Middleware struct {
	// Key wraps key event dispatch.
	Key func(ev KeyEvent, next func(KeyEvent))

	// Mouse wraps mouse event dispatch.
	Mouse func(ev MouseEvent, next func(MouseEvent))

	// Paste wraps paste event dispatch.
	Paste func(ev PasteEvent, next func(PasteEvent))

	// Focus wraps focus event dispatch.
	Focus func(ev FocusEvent, next func(FocusEvent))

	// Clipboard wraps clipboard (OSC 52) event dispatch.
	Clipboard func(ev ClipboardEvent, next func(ClipboardEvent))
}

// Merge overlays non-nil fields from other onto m, so a caller can compose
// several partial middlewares.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if other.Key != nil {
		m.Key = other.Key
	}
	if other.Mouse != nil {
		m.Mouse = other.Mouse
	}
	if other.Paste != nil {
		m.Paste = other.Paste
	}
	if other.Focus != nil {
		m.Focus = other.Focus
	}
	if other.Clipboard != nil {
		m.Clipboard = other.Clipboard
	}
}

func (m *Middleware) dispatchKey(ev KeyEvent, enqueue func(Event)) {
	next := func(e KeyEvent) { enqueue(e) }
	if m != nil && m.Key != nil {
		m.Key(ev, next)
		return
	}
	next(ev)
}

func (m *Middleware) dispatchMouse(ev MouseEvent, enqueue func(Event)) {
	next := func(e MouseEvent) { enqueue(e) }
	if m != nil && m.Mouse != nil {
		m.Mouse(ev, next)
		return
	}
	next(ev)
}

func (m *Middleware) dispatchPaste(ev PasteEvent, enqueue func(Event)) {
	next := func(e PasteEvent) { enqueue(e) }
	if m != nil && m.Paste != nil {
		m.Paste(ev, next)
		return
	}
	next(ev)
}

func (m *Middleware) dispatchFocus(ev FocusEvent, enqueue func(Event)) {
	next := func(e FocusEvent) { enqueue(e) }
	if m != nil && m.Focus != nil {
		m.Focus(ev, next)
		return
	}
	next(ev)
}

func (m *Middleware) dispatchClipboard(ev ClipboardEvent, enqueue func(Event)) {
	next := func(e ClipboardEvent) { enqueue(e) }
	if m != nil && m.Clipboard != nil {
		m.Clipboard(ev, next)
		return
	}
	next(ev)
}
