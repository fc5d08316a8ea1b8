package tui

import "strings"

// ansiState tracks what the terminal currently shows: the live attribute
// byte and colors, plus whether a non-default background was set at any
// point this frame (used to decide when an explicit "49" reset is needed).
type ansiState struct {
	attr     Attr
	fg, bg   uint16
	hasSetBg bool
}

// ComputeDiff produces the escape sequence that reconciles the front buffer
// with the back buffer, updates the front buffer to match, and clears every
// dirty flag it processed. Calling it twice with no intervening mutation
// returns an empty slice.
func (g *Grid) ComputeDiff() []byte {
	var out strings.Builder
	state := ansiState{attr: 0, fg: DefaultColor(), bg: DefaultColor()}
	cursorRow, cursorCol := -1, -1
	anySet := false

	for row := 0; row < g.rows; row++ {
		if !g.dirty[row] {
			continue
		}

		col := 0
		for col < g.cols {
			runStart := col
			base := g.idx(row, col)
			styleCell := g.back[base]
			col++
			for col < g.cols && g.back[g.idx(row, col)].SameStyle(styleCell) {
				col++
			}
			runEnd := col

			if !runDiffers(g, row, runStart, runEnd) {
				continue
			}

			if cursorRow != row || cursorCol != runStart {
				out.WriteString(MoveTo(row+1, runStart+1))
			}

			newAttr := styleCell.AttrByte()
			newFg := styleCell.Fg()
			newBg := styleCell.Bg()
			attrChanged := newAttr != state.attr
			colorChanged := newFg != state.fg || newBg != state.bg

			switch {
			case attrChanged && !colorChanged:
				out.WriteString(AttrLUT[newAttr])
			case colorChanged && !attrChanged:
				resetBg := newBg == DefaultColor() && state.hasSetBg
				out.WriteString(g.cache.delta(colorCacheKey{fg: newFg, bg: newBg, resetBg: resetBg}))
			case attrChanged && colorChanged:
				out.WriteString(BuildANSISequence(newAttr, newFg, newBg))
			}

			for k := runStart; k < runEnd; k++ {
				out.WriteRune(g.back[g.idx(row, k)].Char())
			}

			copy(g.front[g.idx(row, runStart):g.idx(row, runEnd)], g.back[g.idx(row, runStart):g.idx(row, runEnd)])

			state.attr, state.fg, state.bg = newAttr, newFg, newBg
			if newBg != DefaultColor() {
				state.hasSetBg = true
			}
			if newAttr != 0 || newFg != DefaultColor() || newBg != DefaultColor() {
				anySet = true
			}
			cursorRow, cursorCol = row, runEnd
		}

		g.dirty[row] = false
	}

	if anySet {
		out.WriteString("\x1b[0m")
	}

	return []byte(out.String())
}

// runDiffers reports whether any cell in back[row, lo:hi) differs from the
// corresponding front-buffer cell.
func runDiffers(g *Grid, row, lo, hi int) bool {
	for k := lo; k < hi; k++ {
		i := g.idx(row, k)
		if !g.back[i].Equals(g.front[i]) {
			return true
		}
	}
	return false
}
