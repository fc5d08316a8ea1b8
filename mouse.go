package tui

// dispatchSGRMouse decodes an SGR mouse report (`ESC [ < b ; x ; y M|m`)
// into a MouseEvent.
func (d *Decoder) dispatchSGRMouse(params [][]int64, release bool, raw []byte) {
	if len(params) < 3 {
		d.logger.Debugf("decoder: SGR mouse with insufficient params")
		return
	}
	code := int(paramScalar(params[0]))
	x := int(paramScalar(params[1]))
	y := int(paramScalar(params[2]))
	kind, btn, mods := classifyMouseCode(code, releaseSignal{explicit: true, released: release}, &d.lastMouseButton, &d.haveLastMouse)
	d.enqueue(MouseEvent{Kind: kind, Button: btn, X: x, Y: y, Mods: mods, Raw: raw})
}

func paramScalar(p []int64) int64 {
	if len(p) == 0 {
		return 0
	}
	return p[0]
}

// releaseSignal describes how a caller knows whether a mouse report is a
// release. SGR carries an explicit final byte (M vs m); X10 has no such
// byte and instead overloads button code 3 to mean "released, no button
// identity", a convention classifyMouseCode only applies when explicit is
// false.
type releaseSignal struct {
	explicit bool
	released bool
}

// classifyMouseCode decodes a raw SGR/X10 button code into a kind, button
// and modifier set, tracking the last pressed button so motion reports can
// be told apart as drag vs. move.
func classifyMouseCode(code int, rel releaseSignal, last *MouseButton, haveLast *bool) (MouseKind, MouseButton, Modifiers) {
	mods := Modifiers{
		Shift: code&0x4 != 0,
		Alt:   code&0x8 != 0,
		Ctrl:  code&0x10 != 0,
	}
	motion := code&0x20 != 0
	wheel := code&0x40 != 0

	if wheel {
		var btn MouseButton
		switch code & 0x3 {
		case 0:
			btn = MouseWheelUp
		case 1:
			btn = MouseWheelDown
		case 2:
			btn = MouseWheelLeft
		default:
			btn = MouseWheelRight
		}
		return MouseScroll, btn, mods
	}

	btnCode := code & 0x3
	isRelease := rel.released
	if !rel.explicit {
		isRelease = btnCode == 3
	}
	if isRelease {
		btn := *last
		if rel.explicit {
			btn = buttonFromCode(btnCode)
		}
		*haveLast = false
		*last = MouseButtonNone
		return MouseUp, btn, mods
	}

	btn := buttonFromCode(btnCode)
	if motion {
		if *haveLast {
			return MouseDrag, *last, mods
		}
		return MouseMove, MouseButtonNone, mods
	}

	*last = btn
	*haveLast = true
	return MouseDown, btn, mods
}

func buttonFromCode(code int) MouseButton {
	switch code {
	case 0:
		return MouseButtonLeft
	case 1:
		return MouseButtonMiddle
	case 2:
		return MouseButtonRight
	default:
		return MouseButtonNone
	}
}
