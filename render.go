package tui

import "context"

// RendererOption configures a Renderer during construction.
type RendererOption func(*Renderer)

// WithRendererLogger attaches a Logger for write-failure diagnostics.
func WithRendererLogger(l Logger) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Renderer is the outer façade a host actually drives: it owns a Grid and
// writes the bytes ComputeDiff produces to an external sink, following the
// teacher's Terminal-as-façade-around-Buffer shape.
type Renderer struct {
	grid   *Grid
	sink   ByteSink
	logger Logger
}

// NewRenderer wraps grid with a byte sink.
func NewRenderer(grid *Grid, sink ByteSink, opts ...RendererOption) *Renderer {
	r := &Renderer{grid: grid, sink: sink, logger: NoopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Grid returns the underlying cell grid for mutation by the caller.
func (r *Renderer) Grid() *Grid { return r.grid }

// Render computes the diff since the last render and writes it to the
// sink, wrapped in a synchronized-update envelope so a terminal that
// supports it never paints a half-applied frame.
func (r *Renderer) Render(ctx context.Context) error {
	diff := r.grid.ComputeDiff()
	if len(diff) == 0 {
		return nil
	}
	return r.writeAll(ctx, append([]byte(SeqBeginSync), append(diff, []byte(SeqEndSync)...)...))
}

// HideCursor and ShowCursor toggle cursor visibility independent of Render.
func (r *Renderer) HideCursor(ctx context.Context) error { return r.writeAll(ctx, []byte(SeqHideCursor)) }
func (r *Renderer) ShowCursor(ctx context.Context) error { return r.writeAll(ctx, []byte(SeqShowCursor)) }

// Clear resets the grid to empty cells and clears the physical screen.
func (r *Renderer) Clear(ctx context.Context) error {
	r.grid.Clear()
	return r.writeAll(ctx, []byte(SeqClearScreen))
}

func (r *Renderer) writeAll(ctx context.Context, b []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.sink.Write(b)
	if err != nil {
		r.logger.Errorf("tui: renderer write: %v", err)
	}
	return err
}
