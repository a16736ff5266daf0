package vterm

import "github.com/danielgatis/go-vte"

// Parser drives the DEC/ANSI byte state machine (spec.md §4.1) via
// go-vte's Parser/Perform primitive — the same layer the original source's
// `vte` crate occupies in growterm-vt-parser. Unlike the teacher's
// go-ansicode, go-vte performs no semantic interpretation of its own: every
// mapping from parser action to TerminalCommand lives here, matching
// spec.md's action table exactly.
//
// Parser is not safe for concurrent use; callers serialize access the same
// way Terminal serializes grid access (see terminal.go).
type Parser struct {
	inner *vte.Parser
	out   []TerminalCommand
}

var _ vte.Perform = (*Parser)(nil)

// NewParser returns a Parser in its initial Ground state.
func NewParser() *Parser {
	return &Parser{inner: vte.NewParser()}
}

// Parse feeds data through the state machine one byte at a time and
// returns every TerminalCommand produced. The parser is stateful across
// calls: a sequence split across two Parse calls (mid-UTF-8, mid-CSI,
// mid-OSC) resumes correctly, per spec.md §4.1 and §9 ("UTF-8 buffering").
func (p *Parser) Parse(data []byte) []TerminalCommand {
	p.out = p.out[:0]
	for _, b := range data {
		p.inner.Advance(p, b)
	}
	return p.out
}

// --- vte.Perform ---

// Print implements vte.Perform: a decoded printable codepoint.
func (p *Parser) Print(r rune) {
	p.out = append(p.out, PrintCmd(r))
}

// Execute implements vte.Perform: a C0 control byte. Only the five
// controls spec.md §4.1 names produce a command; all others are ignored.
func (p *Parser) Execute(b byte) {
	switch b {
	case 0x07:
		p.out = append(p.out, BellCmd)
	case 0x08:
		p.out = append(p.out, BackspaceCmd)
	case 0x09:
		p.out = append(p.out, TabCmd)
	case 0x0A:
		p.out = append(p.out, NewlineCmd)
	case 0x0D:
		p.out = append(p.out, CarriageReturnCmd)
	}
}

// CsiDispatch implements vte.Perform: a complete CSI sequence. Unknown
// final bytes are silently ignored (spec.md §4.1 "Failure").
func (p *Parser) CsiDispatch(params *vte.Params, intermediates []byte, ignore bool, action rune) {
	groups := params.Iter()
	switch action {
	case 'A':
		p.out = append(p.out, CursorUpCmd(maxU16(paramAt(groups, 0), 1)))
	case 'B':
		p.out = append(p.out, CursorDownCmd(maxU16(paramAt(groups, 0), 1)))
	case 'C':
		p.out = append(p.out, CursorForwardCmd(maxU16(paramAt(groups, 0), 1)))
	case 'D':
		p.out = append(p.out, CursorBackCmd(maxU16(paramAt(groups, 0), 1)))
	case 'H', 'f':
		row := maxU16(paramAt(groups, 0), 1)
		col := maxU16(paramAt(groups, 1), 1)
		p.out = append(p.out, CursorPositionCmd(row, col))
	case 'J':
		p.out = append(p.out, EraseInDisplayCmd(paramAt(groups, 0)))
	case 'K':
		p.out = append(p.out, EraseInLineCmd(paramAt(groups, 0)))
	case 'P':
		p.out = append(p.out, DeleteCharsCmd(maxU16(paramAt(groups, 0), 1)))
	case 'm':
		p.dispatchSGR(groups)
	case 'h':
		if isPrivateMarker(intermediates) && paramAt(groups, 0) == 25 {
			p.out = append(p.out, ShowCursorCmd)
		}
	case 'l':
		if isPrivateMarker(intermediates) && paramAt(groups, 0) == 25 {
			p.out = append(p.out, HideCursorCmd)
		}
	}
}

// isPrivateMarker reports whether a CSI sequence carries the `?` private
// marker intermediate, distinguishing DECSET/DECRST (`CSI ? Pm h/l`) from
// the unrelated ANSI set/reset mode sequences that share the same final byte.
func isPrivateMarker(intermediates []byte) bool {
	for _, b := range intermediates {
		if b == '?' {
			return true
		}
	}
	return false
}

// Hook, Put, Unhook, OscDispatch, EscDispatch are reserved per spec.md
// §4.1 ("osc_dispatch, dcs_*, esc_dispatch — reserved for sequences the
// core does not interpret"). The control demuxer (demux.go) performs an
// independent scan of the same bytes for the sequences the core does act
// on; the VT parser itself absorbs them without producing a command.
func (p *Parser) Hook(params *vte.Params, intermediates []byte, ignore bool, c rune) {}
func (p *Parser) Put(b byte)                                                        {}
func (p *Parser) Unhook()                                                           {}
func (p *Parser) OscDispatch(params [][]byte, bellTerminated bool)                  {}
func (p *Parser) EscDispatch(intermediates []byte, ignore bool, b byte)             {}

func paramAt(groups [][]uint16, i int) uint16 {
	if i < len(groups) && len(groups[i]) > 0 {
		return groups[i][0]
	}
	return 0
}

func maxU16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}

// dispatchSGR expands one `CSI ... m` sequence into zero or more
// TerminalCommands, per spec.md §4.1's SGR semantics table.
func (p *Parser) dispatchSGR(groups [][]uint16) {
	if len(groups) == 0 {
		p.out = append(p.out, ResetAttributesCmd)
		return
	}
	for i := 0; i < len(groups); i++ {
		param := paramAt(groups, i)
		switch {
		case param == 0:
			p.out = append(p.out, ResetAttributesCmd)
		case param == 1:
			p.out = append(p.out, SetBoldCmd)
		case param == 2:
			p.out = append(p.out, SetDimCmd)
		case param == 3:
			p.out = append(p.out, SetItalicCmd)
		case param == 4:
			p.out = append(p.out, SetUnderlineCmd)
		case param == 7:
			p.out = append(p.out, SetInverseCmd)
		case param == 8:
			p.out = append(p.out, SetHiddenCmd)
		case param == 9:
			p.out = append(p.out, SetStrikethroughCmd)
		case param == 22:
			p.out = append(p.out, ResetBoldCmd)
		case param == 23:
			p.out = append(p.out, ResetItalicCmd)
		case param == 24:
			p.out = append(p.out, ResetUnderlineCmd)
		case param == 27:
			p.out = append(p.out, ResetInverseCmd)
		case param == 28:
			p.out = append(p.out, ResetHiddenCmd)
		case param == 29:
			p.out = append(p.out, ResetStrikethroughCmd)
		case param >= 30 && param <= 37:
			p.out = append(p.out, SetForegroundCmd(IndexedColor(uint8(param-30))))
		case param == 38:
			if c, consumed, ok := parseExtendedColor(groups, i); ok {
				p.out = append(p.out, SetForegroundCmd(c))
				i += consumed
			}
		case param == 39:
			p.out = append(p.out, SetForegroundCmd(DefaultColor()))
		case param >= 40 && param <= 47:
			p.out = append(p.out, SetBackgroundCmd(IndexedColor(uint8(param-40))))
		case param == 48:
			if c, consumed, ok := parseExtendedColor(groups, i); ok {
				p.out = append(p.out, SetBackgroundCmd(c))
				i += consumed
			}
		case param == 49:
			p.out = append(p.out, SetBackgroundCmd(DefaultColor()))
		case param >= 90 && param <= 97:
			p.out = append(p.out, SetForegroundCmd(IndexedColor(uint8(param-90+8))))
		case param >= 100 && param <= 107:
			p.out = append(p.out, SetBackgroundCmd(IndexedColor(uint8(param-100+8))))
		}
	}
}

// parseExtendedColor implements the 38/48 extended-color grammar, both
// forms spec.md §4.1 requires:
//
//   - colon form: sub-parameters packed into a single parameter group,
//     e.g. `38:5:N` or `38:2:[CS]:R:G:B`. consumed is always 0 because the
//     whole thing is one group.
//   - semicolon form: separate parameter groups, e.g. `38;5;N` or
//     `38;2;R;G;B`. consumed is 2 or 4, the count of extra groups used.
func parseExtendedColor(groups [][]uint16, i int) (Color, int, bool) {
	cur := groups[i]
	if len(cur) >= 2 {
		mode := cur[1]
		switch mode {
		case 5:
			if len(cur) >= 3 {
				return IndexedColor(uint8(cur[2])), 0, true
			}
			return Color{}, 0, false
		case 2:
			if rgb, ok := parseRgbTail(cur[2:]); ok {
				return RGBColor(rgb.R, rgb.G, rgb.B), 0, true
			}
			return Color{}, 0, false
		default:
			return Color{}, 0, false
		}
	}

	// Semicolon form: mode lives in the next group.
	if i+1 >= len(groups) {
		return Color{}, 0, false
	}
	mode := paramAt(groups, i+1)
	switch mode {
	case 5:
		if i+2 >= len(groups) {
			return Color{}, 0, false
		}
		return IndexedColor(uint8(paramAt(groups, i+2))), 2, true
	case 2:
		if i+4 >= len(groups) {
			return Color{}, 0, false
		}
		r := uint8(paramAt(groups, i+2))
		g := uint8(paramAt(groups, i+3))
		b := uint8(paramAt(groups, i+4))
		return RGBColor(r, g, b), 4, true
	default:
		return Color{}, 0, false
	}
}

// parseRgbTail handles the colon form's trailing sub-parameters after
// `38:2` / `48:2`: either a canonical 3-tuple (R:G:B) or, when four or
// more sub-parameters follow, a colorspace-prefixed tuple (CS:R:G:B)
// where the leading id is ignored.
func parseRgbTail(tail []uint16) (Rgb, bool) {
	if len(tail) >= 4 {
		return Rgb{uint8(tail[1]), uint8(tail[2]), uint8(tail[3])}, true
	}
	if len(tail) >= 3 {
		return Rgb{uint8(tail[0]), uint8(tail[1]), uint8(tail[2])}, true
	}
	return Rgb{}, false
}
