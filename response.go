package vterm

import (
	"fmt"
	"strings"
)

// EncodeQueryResponse renders the host-bound byte sequence for a
// recognized query (spec.md §4.3's response table), given the terminal
// state needed to answer it. kittyFlags is the current top-of-stack
// kitty-keyboard flag word (0 when the stack is empty).
func EncodeQueryResponse(query TerminalQuery, cursorRow, cursorCol int, fg, bg Rgb, kittyFlags uint16) []byte {
	switch query {
	case QueryCursorPositionReport:
		return []byte(fmt.Sprintf("\x1b[%d;%dR", cursorRow+1, cursorCol+1))
	case QueryPrimaryDeviceAttributes:
		return []byte("\x1b[?62;22c")
	case QuerySecondaryDeviceAttributes:
		return []byte("\x1b[>1;10;0c")
	case QueryKittyKeyboard:
		return []byte(fmt.Sprintf("\x1b[?%du", kittyFlags))
	case QueryForegroundColor:
		return []byte(fmt.Sprintf("\x1b]10;%s\x1b\\", encodeRgbQuery(fg)))
	case QueryBackgroundColor:
		return []byte(fmt.Sprintf("\x1b]11;%s\x1b\\", encodeRgbQuery(bg)))
	case QueryRequestStatusStringSgr:
		return []byte("\x1bP1$r0m\x1b\\")
	default:
		return nil
	}
}

// encodeRgbQuery renders an Rgb in the `rgb:RRRR/GGGG/BBBB` form OSC
// 10/11 responses use, scaling each 8-bit component up to 16 bits by
// byte replication (spec.md §4.3).
func encodeRgbQuery(c Rgb) string {
	var b strings.Builder
	b.WriteString("rgb:")
	fmt.Fprintf(&b, "%02x%02x/", c.R, c.R)
	fmt.Fprintf(&b, "%02x%02x/", c.G, c.G)
	fmt.Fprintf(&b, "%02x%02x", c.B, c.B)
	return b.String()
}
