package vterm

// GenerateRenderCommands projects a grid snapshot into a flat list of
// RenderCommand values a GPU rasterizer can consume directly, applying
// cursor, selection, and preedit overlays and resolving every cell's
// Color down to a concrete Rgb (spec.md §4.4). cells is expected to be
// the output of Grid.VisibleCells (or an equivalent stitched view);
// viewBaseRow is that view's first row in the same absolute row space
// selection uses. An empty selection (Start == End, including the zero
// Selection) highlights no cell.
func GenerateRenderCommands(
	cells [][]Cell,
	cursorRow, cursorCol int,
	cursorVisible bool,
	preedit string,
	sel Selection,
	viewBaseRow int,
	palette Palette,
) []RenderCommand {
	var out []RenderCommand

	preeditRunes := []rune(preedit)
	hasSel := !sel.IsEmpty()

	for row := range cells {
		skipNext := false
		for col := range cells[row] {
			cell := cells[row][col]
			if skipNext {
				skipNext = false
				continue
			}
			if cell.Flags.Has(FlagWideChar) {
				skipNext = true
			}

			isCursor := cursorVisible && row == cursorRow && col == cursorCol
			if isCursor && len(preeditRunes) > 0 {
				pcol := col
				for _, r := range preeditRunes {
					if pcol >= len(cells[row]) {
						break
					}
					out = append(out, projectCell(Cell{Char: r, Fg: cell.Fg, Bg: cell.Bg, Flags: cell.Flags},
						uint16(pcol), uint16(row), false, hasSel && sel.Contains(SelectionPoint{Row: viewBaseRow + row, Col: pcol}), palette))
					pcol += runeWidth(r)
				}
				continue
			}

			selected := hasSel && sel.Contains(SelectionPoint{Row: viewBaseRow + row, Col: col})
			out = append(out, projectCell(cell, uint16(col), uint16(row), isCursor, selected, palette))
		}
	}
	return out
}

// projectCell runs one cell through the attribute pipeline spec.md §4.4
// names: bold-promotion, resolve, cursor-swap, selection-swap,
// inverse-swap, dim, hidden.
func projectCell(cell Cell, col, row uint16, isCursor, isSelected bool, palette Palette) RenderCommand {
	fg, bg := cell.Fg, cell.Bg

	// Bold promotes a standard-intensity ANSI color to its bright
	// counterpart before resolution.
	if cell.Flags.Has(FlagBold) && fg.Kind == ColorIndexedKind && fg.Index < 8 {
		fg = IndexedColor(fg.Index + 8)
	}

	resolvedFg := resolveColor(fg, palette.DefaultFg)
	resolvedBg := resolveColor(bg, palette.DefaultBg)

	if isCursor {
		resolvedFg, resolvedBg = resolvedBg, resolvedFg
	}
	if isSelected {
		resolvedFg, resolvedBg = resolvedBg, resolvedFg
	}
	if cell.Flags.Has(FlagInverse) {
		resolvedFg, resolvedBg = resolvedBg, resolvedFg
	}
	if cell.Flags.Has(FlagDim) {
		resolvedFg = dimRgb(resolvedFg)
	}
	if cell.Flags.Has(FlagHidden) {
		resolvedFg = resolvedBg
	}

	ch := cell.Char
	if ch == 0 {
		ch = ' '
	}

	return RenderCommand{
		Col:   col,
		Row:   row,
		Char:  ch,
		Fg:    resolvedFg,
		Bg:    resolvedBg,
		Flags: cell.Flags,
	}
}

// dimRgb halves each channel's intensity (spec.md §4.4's dim step).
func dimRgb(c Rgb) Rgb {
	return Rgb{R: c.R / 2, G: c.G / 2, B: c.B / 2}
}
