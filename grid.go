package vterm

// MaxScrollback is the row cap for the scrollback history (spec.md §3, §6).
const MaxScrollback = 10_000

// TabStop is the hard-coded tab width (spec.md §6).
const TabStop = 8

// Grid is the authoritative character-cell model: a fixed cols×rows buffer
// of Cell plus cursor, current SGR attribute state, and a ring-limited
// scrollback of evicted rows. apply is its sole mutator (spec.md §4.2).
type Grid struct {
	cells [][]Cell
	cols  int
	rows  int

	cursorRow, cursorCol int
	currentFg, currentBg Color
	currentFlags         CellFlags

	scrollback   [][]Cell
	scrollOffset int
	cursorVisible bool
}

// NewGrid returns a Grid of the given size, fully initialized to default
// cells with the cursor at the origin and visible.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{
		cols:          cols,
		rows:          rows,
		currentFg:     DefaultColor(),
		currentBg:     DefaultColor(),
		cursorVisible: true,
	}
	g.cells = make([][]Cell, rows)
	for i := range g.cells {
		g.cells[i] = newBlankRow(cols)
	}
	return g
}

func newBlankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = DefaultCell()
	}
	return row
}

// Cols and Rows report the grid's current dimensions.
func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Cells returns the live (non-scrollback) rows, row-major. Callers must
// not mutate the returned slices.
func (g *Grid) Cells() [][]Cell { return g.cells }

// CursorPos returns the zero-indexed (row, col) cursor position.
func (g *Grid) CursorPos() (row, col int) { return g.cursorRow, g.cursorCol }

// CursorVisible reports whether the cursor should be rendered (spec.md §3,
// toggled by ShowCursor/HideCursor).
func (g *Grid) CursorVisible() bool { return g.cursorVisible }

// ScrollOffset returns how many rows up from the live bottom the viewport
// is anchored (0 = live tail).
func (g *Grid) ScrollOffset() int { return g.scrollOffset }

// ScrollbackLen returns the number of rows currently retained in scrollback.
func (g *Grid) ScrollbackLen() int { return len(g.scrollback) }

// Scrollback returns the retained scrollback rows, oldest first. Callers
// must not mutate the returned slices.
func (g *Grid) Scrollback() [][]Cell { return g.scrollback }

// Apply mutates the grid for one TerminalCommand, per the behaviors in
// spec.md §4.2.
func (g *Grid) Apply(cmd TerminalCommand) {
	switch cmd.Kind {
	case CmdPrint:
		g.print(cmd.Char)
	case CmdCursorUp:
		g.cursorRow = saturatingSub(g.cursorRow, int(cmd.N))
	case CmdCursorDown:
		g.cursorRow = minInt(g.cursorRow+int(cmd.N), g.rows-1)
	case CmdCursorForward:
		g.cursorCol = minInt(g.cursorCol+int(cmd.N), g.cols-1)
	case CmdCursorBack:
		g.cursorCol = saturatingSub(g.cursorCol, int(cmd.N))
	case CmdCursorPosition:
		g.cursorRow = minInt(saturatingSub(int(cmd.Row), 1), g.rows-1)
		g.cursorCol = minInt(saturatingSub(int(cmd.Col), 1), g.cols-1)
	case CmdSetForeground:
		g.currentFg = cmd.Color
	case CmdSetBackground:
		g.currentBg = cmd.Color
	case CmdSetBold:
		g.currentFlags |= FlagBold
	case CmdSetDim:
		g.currentFlags |= FlagDim
	case CmdSetItalic:
		g.currentFlags |= FlagItalic
	case CmdSetUnderline:
		g.currentFlags |= FlagUnderline
	case CmdSetInverse:
		g.currentFlags |= FlagInverse
	case CmdSetHidden:
		g.currentFlags |= FlagHidden
	case CmdSetStrikethrough:
		g.currentFlags |= FlagStrikethrough
	case CmdResetBold:
		g.currentFlags &^= FlagBold | FlagDim
	case CmdResetItalic:
		g.currentFlags &^= FlagItalic
	case CmdResetUnderline:
		g.currentFlags &^= FlagUnderline
	case CmdResetInverse:
		g.currentFlags &^= FlagInverse
	case CmdResetHidden:
		g.currentFlags &^= FlagHidden
	case CmdResetStrikethrough:
		g.currentFlags &^= FlagStrikethrough
	case CmdResetAttributes:
		g.currentFg = DefaultColor()
		g.currentBg = DefaultColor()
		g.currentFlags = 0
	case CmdNewline:
		g.newline()
	case CmdCarriageReturn:
		g.cursorCol = 0
	case CmdBackspace:
		g.cursorCol = saturatingSub(g.cursorCol, 1)
	case CmdTab:
		col := ((g.cursorCol / TabStop) + 1) * TabStop
		if col >= g.cols {
			col = g.cols - 1
		}
		g.cursorCol = col
	case CmdBell:
		// no-op at the grid layer
	case CmdShowCursor:
		g.cursorVisible = true
	case CmdHideCursor:
		g.cursorVisible = false
	case CmdDeleteChars:
		g.deleteChars(int(cmd.N))
	case CmdEraseInLine:
		g.eraseInLine(int(cmd.Mode))
	case CmdEraseInDisplay:
		g.eraseInDisplay(int(cmd.Mode))
	}
}

// Resize extends or truncates every row to newCols and the row count to
// newRows, then clamps the cursor. Scrollback rows are left at their
// original width (spec.md §4.2, §9 open question).
func (g *Grid) Resize(newCols, newRows int) {
	for i, row := range g.cells {
		g.cells[i] = resizeRow(row, newCols)
	}
	if newRows > len(g.cells) {
		for len(g.cells) < newRows {
			g.cells = append(g.cells, newBlankRow(newCols))
		}
	} else {
		g.cells = g.cells[:newRows]
	}
	g.cols = newCols
	g.rows = newRows
	g.cursorRow = minInt(g.cursorRow, g.rows-1)
	g.cursorCol = minInt(g.cursorCol, g.cols-1)
}

func resizeRow(row []Cell, newCols int) []Cell {
	if newCols <= len(row) {
		return row[:newCols]
	}
	out := make([]Cell, newCols)
	copy(out, row)
	for i := len(row); i < newCols; i++ {
		out[i] = DefaultCell()
	}
	return out
}

func (g *Grid) print(c rune) {
	width := runeWidth(c)

	if width == 2 && g.cursorCol+1 >= g.cols {
		g.wrapCursor()
	}
	if g.cursorCol >= g.cols {
		g.wrapCursor()
	}

	g.cleanupOverwrite(g.cursorRow, g.cursorCol)

	flags := g.currentFlags
	if width == 2 {
		flags |= FlagWideChar
	}
	g.cells[g.cursorRow][g.cursorCol] = Cell{
		Char:  c,
		Fg:    g.currentFg,
		Bg:    g.currentBg,
		Flags: flags,
	}
	g.cursorCol++

	if width == 2 && g.cursorCol < g.cols {
		g.cells[g.cursorRow][g.cursorCol] = DefaultCell()
		g.cursorCol++
	}
}

// cleanupOverwrite clears the other half of a wide-char pair when either
// half is about to be overwritten (spec.md §3 invariants 1 and 2).
func (g *Grid) cleanupOverwrite(row, col int) {
	cell := g.cells[row][col]
	if cell.Flags.Has(FlagWideChar) && col+1 < g.cols {
		g.cells[row][col+1] = DefaultCell()
	}
	if col > 0 && g.cells[row][col-1].Flags.Has(FlagWideChar) {
		g.cells[row][col-1] = DefaultCell()
	}
}

func (g *Grid) wrapCursor() {
	g.cursorCol = 0
	if g.cursorRow+1 >= g.rows {
		g.scrollUp()
	} else {
		g.cursorRow++
	}
}

func (g *Grid) newline() {
	if g.cursorRow+1 >= g.rows {
		g.scrollUp()
	} else {
		g.cursorRow++
	}
}

// scrollUp evicts row 0 into scrollback, trims scrollback at MaxScrollback,
// and appends a fresh blank row at the bottom. If the viewport is
// currently scrolled, scroll_offset is nudged to keep the visible content
// stable (spec.md §3 invariant 4, §4.2).
func (g *Grid) scrollUp() {
	evicted := g.cells[0]
	g.cells = g.cells[1:]
	g.scrollback = append(g.scrollback, evicted)
	if len(g.scrollback) > MaxScrollback {
		g.scrollback = g.scrollback[1:]
		g.scrollOffset = minInt(g.scrollOffset, len(g.scrollback))
	}
	g.cells = append(g.cells, newBlankRow(g.cols))
	if g.scrollOffset > 0 {
		g.scrollOffset = minInt(g.scrollOffset+1, len(g.scrollback))
	}
}

// ScrollUpView moves the viewport up (toward history) by lines.
func (g *Grid) ScrollUpView(lines int) {
	g.scrollOffset = minInt(g.scrollOffset+lines, len(g.scrollback))
}

// ScrollDownView moves the viewport down (toward the live tail) by lines.
func (g *Grid) ScrollDownView(lines int) {
	g.scrollOffset = saturatingSub(g.scrollOffset, lines)
}

// ResetScroll snaps the viewport back to the live tail.
func (g *Grid) ResetScroll() { g.scrollOffset = 0 }

// VisibleCells returns the rows currently in view given scrollOffset: a
// suffix of scrollback stitched to a prefix of the live grid, stabilized
// so the same history stays visible as new rows are produced (spec.md §8
// scenario 3).
func (g *Grid) VisibleCells() [][]Cell {
	if g.scrollOffset == 0 {
		return g.cells
	}
	sbLen := len(g.scrollback)
	sbStart := saturatingSub(sbLen, g.scrollOffset)
	result := make([][]Cell, 0, g.rows)
	result = append(result, g.scrollback[sbStart:]...)
	need := g.rows - minInt(len(result), g.rows)
	if need > len(g.cells) {
		need = len(g.cells)
	}
	result = append(result, g.cells[:need]...)
	if len(result) > g.rows {
		result = result[:g.rows]
	}
	return result
}

func (g *Grid) blankCell() Cell {
	return Cell{Char: ' ', Fg: DefaultColor(), Bg: g.currentBg, Flags: 0}
}

func (g *Grid) deleteChars(n int) {
	row := g.cursorRow
	col := g.cursorCol
	blank := g.blankCell()
	for i := col; i < g.cols; i++ {
		if i+n < g.cols {
			g.cells[row][i] = g.cells[row][i+n]
		} else {
			g.cells[row][i] = blank
		}
	}
}

func (g *Grid) eraseInLine(mode int) {
	row := g.cursorRow
	blank := g.blankCell()
	switch mode {
	case 0:
		for col := g.cursorCol; col < g.cols; col++ {
			g.cells[row][col] = blank
		}
	case 1:
		for col := 0; col <= g.cursorCol; col++ {
			g.cells[row][col] = blank
		}
	case 2:
		for col := 0; col < g.cols; col++ {
			g.cells[row][col] = blank
		}
	}
}

func (g *Grid) fillRow(row int, blank Cell) {
	for col := 0; col < g.cols; col++ {
		g.cells[row][col] = blank
	}
}

func (g *Grid) eraseInDisplay(mode int) {
	blank := g.blankCell()
	switch mode {
	case 0:
		g.eraseInLine(0)
		for row := g.cursorRow + 1; row < g.rows; row++ {
			g.fillRow(row, blank)
		}
	case 1:
		for row := 0; row < g.cursorRow; row++ {
			g.fillRow(row, blank)
		}
		g.eraseInLine(1)
	case 2:
		for row := 0; row < g.rows; row++ {
			g.fillRow(row, blank)
		}
	}
}

func saturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
