package tui

// controlQuirkRule remaps a single non-standard control byte to a KeyCode
// for a specific terminal, e.g. iTerm2's default Option-key bindings which
// emit C0 bytes instead of ESC-prefixed sequences.
type controlQuirkRule struct {
	code KeyCode
	mods Modifiers
}

// controlQuirks is indexed by detected terminal, then by the raw control
// byte received in the Idle state.
var controlQuirks = map[TerminalType]map[byte]controlQuirkRule{
	TerminalITerm: {
		0x15: {code: Named(KeyBackspace), mods: Modifiers{Meta: true}},
		0x01: {code: Named(KeyLeft), mods: Modifiers{Meta: true}},
		0x05: {code: Named(KeyRight), mods: Modifiers{Meta: true}},
	},
}

// kittyModifierQuirks remaps a mis-numbered Kitty modifier/lock codepoint
// to the value it was meant to carry, before the standard lookup table in
// kitty.go runs. Modern terminals (Kitty itself, Ghostty) are absent from
// this table by construction and pass their codepoints through unmodified.
var kittyModifierQuirks = map[TerminalType]map[int64]int64{}
