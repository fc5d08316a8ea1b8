package tui

// kittyModifierKeys maps the Kitty private-use codepoints for modifier and
// lock keys, in the order spec.md §4.D lists them.
var kittyModifierKeys = map[int64]KeyName{
	57441: KeyShift, 57442: KeyShift,
	57443: KeyControl, 57444: KeyControl,
	57445: KeyAlt, 57446: KeyAlt,
	57447: KeyMeta, 57448: KeyMeta,
	57449: KeyCapsLock, 57450: KeyNumLock, 57451: KeyScrollLock,
}

var kittyC0Names = map[int64]KeyName{
	13:  KeyEnter,
	27:  KeyEscape,
	9:   KeyTab,
	127: KeyBackspace,
}

// dispatchKittyKey decodes a Kitty keyboard protocol report
// (`ESC [ unicode ; modifiers : event_type u`) into a KeyEvent.
func (d *Decoder) dispatchKittyKey(params [][]int64, raw []byte) {
	if len(params) == 0 || len(params[0]) == 0 {
		d.logger.Debugf("decoder: Kitty CSI u with no unicode param")
		return
	}
	unicode := params[0][0]
	mods := modsFromParams(params, 1)
	kind, repeat := eventKindFromParams(params, 1)
	if kind == KeyKindUnspecified {
		kind = KeyKindPress
	}

	var code KeyCode
	if name, ok := d.remapKittyModifier(unicode); ok {
		code = Named(name)
	} else if name, ok := kittyC0Names[unicode]; ok {
		code = Named(name)
	} else {
		code = Char(rune(unicode))
	}

	ev := KeyEvent{Code: code, Mods: mods, Kind: kind, Repeat: repeat, Raw: raw}
	d.applyPhysicalShadow(&ev)
	d.enqueue(ev)
}

// remapKittyModifier resolves a Kitty modifier/lock codepoint to its named
// key, applying the quirks table's remap for terminals known to report
// mis-numbered scalars before falling back to the standard table.
func (d *Decoder) remapKittyModifier(unicode int64) (KeyName, bool) {
	if d.quirks {
		if remapped, ok := kittyModifierQuirks[d.quirkTerminal][unicode]; ok {
			unicode = remapped
		}
	}
	name, ok := kittyModifierKeys[unicode]
	return name, ok
}

// applyPhysicalShadow updates and consults the physical-modifier shadow: a
// modifier key's own self-bit is always cleared from its own event, the
// shadow is updated on press/release, and (only with quirks enabled) any
// modifier the shadow believes released is cleared from other events too.
func (d *Decoder) applyPhysicalShadow(ev *KeyEvent) {
	if !ev.Code.IsChar() {
		switch ev.Code.Name {
		case KeyShift:
			ev.Mods.Shift = false
			d.shiftDown = ev.Kind != KeyKindRelease
		case KeyControl:
			ev.Mods.Ctrl = false
			d.ctrlDown = ev.Kind != KeyKindRelease
		case KeyAlt:
			ev.Mods.Alt = false
			d.altDown = ev.Kind != KeyKindRelease
		case KeyMeta:
			ev.Mods.Meta = false
			d.metaDown = ev.Kind != KeyKindRelease
		}
	}
	if !d.quirks {
		return
	}
	if !d.shiftDown {
		ev.Mods.Shift = false
	}
	if !d.ctrlDown {
		ev.Mods.Ctrl = false
	}
	if !d.altDown {
		ev.Mods.Alt = false
	}
	if !d.metaDown {
		ev.Mods.Meta = false
	}
}
