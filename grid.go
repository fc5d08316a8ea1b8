package tui

// Position identifies a cell by row and column, both 0-based.
type Position struct {
	Row, Col int
}

// GridOption configures a Grid during construction.
type GridOption func(*Grid)

// WithColorCacheSize overrides the LRU color-delta cache's capacity.
// The default is 1024 entries; sizes <= 0 fall back to the default.
func WithColorCacheSize(n int) GridOption {
	return func(g *Grid) {
		g.cache = newColorCache(n)
	}
}

// Grid is a double-buffered rows x cols cell grid: a front buffer (the last
// state transmitted to the terminal) and a back buffer (what the host has
// written so far this frame), plus a per-row dirty bitmap. ComputeDiff
// reconciles the two and reports the minimal escape stream.
type Grid struct {
	rows, cols int
	front      []Cell
	back       []Cell
	dirty      []bool
	cache      *colorCache
}

// NewGrid allocates a rows x cols grid filled with the empty cell.
// rows and cols are forced to at least 1.
func NewGrid(rows, cols int, opts ...GridOption) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		front: make([]Cell, rows*cols),
		back:  make([]Cell, rows*cols),
		dirty: make([]bool, rows),
	}
	ClearRange(g.front, 0, len(g.front))
	ClearRange(g.back, 0, len(g.back))
	for _, opt := range opts {
		opt(g)
	}
	if g.cache == nil {
		g.cache = newColorCache(defaultColorCacheSize)
	}
	return g
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) idx(row, col int) int { return row*g.cols + col }

// GetCell returns the back-buffer cell at (row, col), or Empty() if out of
// range.
func (g *Grid) GetCell(row, col int) Cell {
	if !g.inBounds(row, col) {
		return Empty()
	}
	return g.back[g.idx(row, col)]
}

// SetCell writes a character and attributes into the back buffer at
// (row, col). Out-of-range coordinates are a no-op. The row is marked
// dirty only if the resulting cell differs from what's already there, so
// idle frames (writing the same content again) never dirty anything.
func (g *Grid) SetCell(row, col int, ch rune, attr Attr, fg, bg uint16) {
	g.SetCellPacked(row, col, Pack(ch, attr, fg, bg))
}

// SetCellPacked is SetCell taking an already-packed Cell.
func (g *Grid) SetCellPacked(row, col int, cell Cell) {
	if !g.inBounds(row, col) {
		return
	}
	i := g.idx(row, col)
	if g.back[i].Equals(cell) {
		return
	}
	g.back[i] = cell
	g.dirty[row] = true
}

// Clear fills the back buffer with the empty cell and marks every row
// dirty.
func (g *Grid) Clear() {
	ClearRange(g.back, 0, len(g.back))
	g.MarkAllDirty()
}

// MarkDirty flags a row for re-diffing. Advisory; safe on out-of-range rows.
func (g *Grid) MarkDirty(row int) {
	if row < 0 || row >= g.rows {
		return
	}
	g.dirty[row] = true
}

// MarkAllDirty flags every row for re-diffing.
func (g *Grid) MarkAllDirty() {
	for i := range g.dirty {
		g.dirty[i] = true
	}
}

// Resize reallocates both buffers to the new dimensions, filled with the
// empty cell, and marks every row dirty. Contents are not preserved — the
// host is expected to redraw after a resize. rows and cols are forced to
// at least 1.
func (g *Grid) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	g.rows = rows
	g.cols = cols
	g.front = make([]Cell, rows*cols)
	g.back = make([]Cell, rows*cols)
	g.dirty = make([]bool, rows)
	ClearRange(g.front, 0, len(g.front))
	ClearRange(g.back, 0, len(g.back))
	g.MarkAllDirty()
}
