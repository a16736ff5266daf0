package vterm

import (
	"sync"
	"sync/atomic"
)

const (
	// DefaultRows is the default terminal row count.
	DefaultRows = 24
	// DefaultCols is the default terminal column count.
	DefaultCols = 80
)

// Terminal wires the parser, grid, control demuxer, and palette together
// behind one mutex, and drives the render projector on demand. It has no
// host-integration code of its own: a caller feeds it bytes (directly,
// or via StartReader against a Source) and pulls RenderCommand batches
// out via Render (spec.md §5).
//
// All exported methods are safe for concurrent use. The typical shape is
// one reader goroutine calling StartReader (or Write) against PTY
// output, and a separate render-thread goroutine calling Render on its
// own cadence; Terminal's internal mutex serializes the two against each
// other.
type Terminal struct {
	mu sync.Mutex

	grid    *Grid
	parser  *Parser
	palette Palette

	pendingControl     []byte
	kittyKeyboardStack []uint16

	syncOutput bool
	selection  Selection

	sink       Sink
	middleware *Middleware

	dirty atomic.Bool
}

// NewTerminal returns a Terminal sized cols x rows with default palette,
// a no-op Sink, and no middleware.
func NewTerminal(cols, rows int) *Terminal {
	return &Terminal{
		grid:    NewGrid(cols, rows),
		parser:  NewParser(),
		palette: DefaultPalette(),
		sink:    NoopSink{},
	}
}

// SetSink installs the writer reverse-channel query responses are sent
// to. Pass NoopSink{} to discard responses.
func (t *Terminal) SetSink(sink Sink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sink = sink
}

// SetMiddleware installs interception hooks (middleware.go). Pass nil to
// remove all interception.
func (t *Terminal) SetMiddleware(mw *Middleware) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.middleware = mw
}

// Write feeds data through both the VT parser and the reverse-channel
// demuxer, applying every resulting TerminalCommand to the grid and
// handling every resulting TerminalControl in place (spec.md §4, §5).
// It implements io.Writer.
func (t *Terminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cmds := t.parser.Parse(data)
	for _, cmd := range cmds {
		t.middleware.dispatchCommand(cmd, t.grid.Apply)
	}

	t.pendingControl = append(t.pendingControl, data...)
	controls := ExtractControls(&t.pendingControl)
	for _, ctrl := range controls {
		t.middleware.dispatchControl(ctrl, t.handleControl)
	}

	if len(cmds) > 0 || len(controls) > 0 {
		t.markDirty()
	}
	return len(data), nil
}

// StartReader launches a goroutine that repeatedly reads from src and
// feeds the bytes to Write until src.Read returns an error (typically
// io.EOF when the child exits). The goroutine exits silently on error;
// callers that need to observe the error should read from src
// themselves and call Write directly instead.
func (t *Terminal) StartReader(src Source) {
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := src.Read(buf)
			if n > 0 {
				t.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
}

// handleControl applies one recognized reverse-channel control: either
// writing an encoded response to the sink, mutating the live palette, or
// adjusting synchronized-output / kitty-keyboard-stack state. Caller
// must hold t.mu.
func (t *Terminal) handleControl(ctrl TerminalControl) {
	switch ctrl.Kind {
	case ControlQuery:
		row, col := t.grid.CursorPos()
		var kittyFlags uint16
		if n := len(t.kittyKeyboardStack); n > 0 {
			kittyFlags = t.kittyKeyboardStack[n-1]
		}
		resp := EncodeQueryResponse(ctrl.Query, row, col, t.palette.DefaultFg, t.palette.DefaultBg, kittyFlags)
		if resp != nil {
			t.sink.Write(resp)
		}
	case ControlSetDefaultForeground:
		t.palette.DefaultFg = ctrl.Color
	case ControlSetDefaultBackground:
		t.palette.DefaultBg = ctrl.Color
	case ControlSyncOutputBegin:
		t.syncOutput = true
	case ControlSyncOutputEnd:
		t.syncOutput = false
	case ControlKittyKeyboardPush:
		t.kittyKeyboardStack = append(t.kittyKeyboardStack, ctrl.N)
	case ControlKittyKeyboardPop:
		n := int(ctrl.N)
		if n > len(t.kittyKeyboardStack) {
			n = len(t.kittyKeyboardStack)
		}
		t.kittyKeyboardStack = t.kittyKeyboardStack[:len(t.kittyKeyboardStack)-n]
	}
}

func (t *Terminal) markDirty() {
	t.dirty.Store(true)
}

// ConsumeDirty reports whether grid state has changed since the last
// ConsumeDirty, and atomically clears the flag — a render loop calls
// this once per frame to decide whether a redraw is needed. While
// synchronized-output mode is active (CSI ?2026h), ConsumeDirty always reports
// false: the child has asked that redraws be withheld until it signals
// the frame is complete with CSI ?2026l (spec.md §4.3, §5).
func (t *Terminal) ConsumeDirty() bool {
	t.mu.Lock()
	syncing := t.syncOutput
	t.mu.Unlock()
	if syncing {
		return false
	}
	return t.dirty.CompareAndSwap(true, false)
}

// Resize changes the grid's dimensions in place.
func (t *Terminal) Resize(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid.Resize(cols, rows)
	t.markDirty()
}

// Cols and Rows report the terminal's current dimensions.
func (t *Terminal) Cols() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid.Cols()
}

func (t *Terminal) Rows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid.Rows()
}

// BeginSelection, UpdateSelection, FinishSelection, and ClearSelection
// drive the live Selection (selection.go) from pointer events.
func (t *Terminal) BeginSelection(p SelectionPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection = BeginSelection(p)
	t.markDirty()
}

func (t *Terminal) UpdateSelection(p SelectionPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection = t.selection.Update(p)
	t.markDirty()
}

func (t *Terminal) FinishSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection = t.selection.Finish()
}

func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection = Selection{}
	t.markDirty()
}

// SelectedText returns the plain-text content of the current selection,
// relative to the live viewport's base row (spec.md §4.5).
func (t *Terminal) SelectedText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selection.IsEmpty() {
		return ""
	}
	viewBaseRow := t.grid.ScrollbackLen() - t.grid.ScrollOffset()
	return ExtractText(t.grid.VisibleCells(), t.selection, viewBaseRow)
}

// Render runs the projector over the current grid, cursor, selection,
// and palette state and returns the resulting RenderCommand batch
// (spec.md §4.4). preedit is the host's in-progress IME composition
// text, if any; pass "" when there is none.
func (t *Terminal) Render(preedit string) []RenderCommand {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, col := t.grid.CursorPos()
	viewBaseRow := t.grid.ScrollbackLen() - t.grid.ScrollOffset()
	return GenerateRenderCommands(
		t.grid.VisibleCells(),
		row, col,
		t.grid.CursorVisible(),
		preedit,
		t.selection,
		viewBaseRow,
		t.palette,
	)
}

// ScrollUpView and ScrollDownView move the viewport within scrollback
// without affecting the live grid (spec.md §4.2).
func (t *Terminal) ScrollUpView(lines int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid.ScrollUpView(lines)
	t.markDirty()
}

func (t *Terminal) ScrollDownView(lines int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid.ScrollDownView(lines)
	t.markDirty()
}
