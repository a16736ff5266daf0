package vterm

import "strings"

// SelectionPoint is a position in absolute row/col space, where row 0 is
// the oldest row currently retained in scrollback — not the top of the live
// viewport (spec.md §4.5).
type SelectionPoint struct {
	Row int
	Col int
}

// Selection is a drag-to-select span anchored at Start, tracked live as
// the pointer moves to End. Active is false once Finish has been called
// (spec.md §4.5).
type Selection struct {
	Start  SelectionPoint
	End    SelectionPoint
	Active bool
}

// BeginSelection starts a new active selection at p, with End equal to
// Start until the next Update.
func BeginSelection(p SelectionPoint) Selection {
	return Selection{Start: p, End: p, Active: true}
}

// Update moves the live end of an active selection. A finished
// (inactive) selection is left unchanged.
func (s Selection) Update(p SelectionPoint) Selection {
	if !s.Active {
		return s
	}
	s.End = p
	return s
}

// Finish freezes the selection: subsequent Update calls are no-ops.
func (s Selection) Finish() Selection {
	s.Active = false
	return s
}

// IsEmpty reports whether the selection's start and end are the same
// point (Start == End), as after a click with no drag. Contains still
// reports that single point as inside; the render projector treats an
// empty selection as no selection.
func (s Selection) IsEmpty() bool {
	a, b := s.Normalized()
	return a == b
}

// Normalized returns (start, end) ordered so start is never after end in
// row-major order, regardless of drag direction.
func (s Selection) Normalized() (start, end SelectionPoint) {
	if s.Start.Row < s.End.Row || (s.Start.Row == s.End.Row && s.Start.Col <= s.End.Col) {
		return s.Start, s.End
	}
	return s.End, s.Start
}

// Contains reports whether p falls within the selection's normalized
// span, inclusive of both endpoints.
func (s Selection) Contains(p SelectionPoint) bool {
	start, end := s.Normalized()
	if p.Row < start.Row || p.Row > end.Row {
		return false
	}
	if p.Row == start.Row && p.Col < start.Col {
		return false
	}
	if p.Row == end.Row && p.Col > end.Col {
		return false
	}
	return true
}

// ScreenNormalized converts an absolute-space selection into viewport-
// relative rows for rendering, given the view's base row in absolute
// space (viewBaseRow) and the number of visible rows. Points entirely
// outside the visible range are clamped away by the caller checking the
// returned ok flag.
func (s Selection) ScreenNormalized(viewBaseRow, visibleRows int) (startRow, startCol, endRow, endCol int, ok bool) {
	start, end := s.Normalized()
	if end.Row < viewBaseRow || start.Row >= viewBaseRow+visibleRows {
		return 0, 0, 0, 0, false
	}
	startRow = start.Row - viewBaseRow
	endRow = end.Row - viewBaseRow
	if startRow < 0 {
		startRow = 0
		startCol = 0
	} else {
		startCol = start.Col
	}
	if endRow >= visibleRows {
		endRow = visibleRows - 1
		endCol = -1 // sentinel: caller should treat as "to end of row"
	} else {
		endCol = end.Col
	}
	return startRow, startCol, endRow, endCol, true
}

// ExtractText reads the plain-text content of a selection out of a
// stitched visible-cells grid (as returned by Grid.VisibleCells), where
// row 0 of cells corresponds to viewBaseRow in absolute space. Trailing
// blank cells on each row are trimmed; rows are newline-joined
// (spec.md §4.5).
func ExtractText(cells [][]Cell, sel Selection, viewBaseRow int) string {
	start, end := sel.Normalized()
	var lines []string
	for absRow := start.Row; absRow <= end.Row; absRow++ {
		row := absRow - viewBaseRow
		if row < 0 || row >= len(cells) {
			lines = append(lines, "")
			continue
		}
		fromCol := 0
		if absRow == start.Row {
			fromCol = start.Col
		}
		toCol := len(cells[row]) - 1
		if absRow == end.Row {
			toCol = end.Col
		}
		lines = append(lines, extractRowText(cells[row], fromCol, toCol))
	}
	return strings.Join(lines, "\n")
}

func extractRowText(row []Cell, fromCol, toCol int) string {
	if fromCol < 0 {
		fromCol = 0
	}
	if toCol >= len(row) {
		toCol = len(row) - 1
	}
	var b strings.Builder
	for col := fromCol; col <= toCol && col < len(row); col++ {
		b.WriteRune(row[col].Char)
	}
	return strings.TrimRight(b.String(), " ")
}
