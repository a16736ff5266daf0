package vterm

import (
	"strconv"
	"strings"
)

// TerminalQuery enumerates the reverse-channel queries the demuxer
// recognizes (spec.md §4.3).
type TerminalQuery uint8

const (
	QueryCursorPositionReport TerminalQuery = iota
	QueryPrimaryDeviceAttributes
	QuerySecondaryDeviceAttributes
	QueryKittyKeyboard
	QueryForegroundColor
	QueryBackgroundColor
	QueryRequestStatusStringSgr
)

// ControlKind tags the variant held by a TerminalControl.
type ControlKind uint8

const (
	ControlQuery ControlKind = iota
	ControlKittyKeyboardPush
	ControlKittyKeyboardPop
	ControlSetDefaultForeground
	ControlSetDefaultBackground
	ControlSyncOutputBegin
	ControlSyncOutputEnd
)

// TerminalControl is one reverse-channel control extracted by the
// demuxer: either a query awaiting a response, a kitty-keyboard stack
// operation, a default-color set, or a synchronized-output gate.
type TerminalControl struct {
	Kind  ControlKind
	Query TerminalQuery
	N     uint16 // kitty keyboard push/pop value
	Color Rgb    // SetDefaultForeground/Background
}

// matchResult is the outcome of attempting to recognize one control
// sequence at the head of a buffer.
type matchResult uint8

const (
	matchNone matchResult = iota
	matchNeedMore
	matchFound
)

// fixedControl is one of the exact, length-known byte patterns spec.md
// §4.3's table names.
type fixedControl struct {
	pattern []byte
	control TerminalControl
}

var fixedControls = []fixedControl{
	{[]byte("\x1b[6n"), TerminalControl{Kind: ControlQuery, Query: QueryCursorPositionReport}},
	{[]byte("\x1b[?2026h"), TerminalControl{Kind: ControlSyncOutputBegin}},
	{[]byte("\x1b[?2026l"), TerminalControl{Kind: ControlSyncOutputEnd}},
	{[]byte("\x1b[?u"), TerminalControl{Kind: ControlQuery, Query: QueryKittyKeyboard}},
	{[]byte("\x1b[c"), TerminalControl{Kind: ControlQuery, Query: QueryPrimaryDeviceAttributes}},
	{[]byte("\x1b[>c"), TerminalControl{Kind: ControlQuery, Query: QuerySecondaryDeviceAttributes}},
	{[]byte("\x1b[>0c"), TerminalControl{Kind: ControlQuery, Query: QuerySecondaryDeviceAttributes}},
	{[]byte("\x1b]10;?\x1b\\"), TerminalControl{Kind: ControlQuery, Query: QueryForegroundColor}},
	{[]byte("\x1b]10;?\x07"), TerminalControl{Kind: ControlQuery, Query: QueryForegroundColor}},
	{[]byte("\x1b]11;?\x1b\\"), TerminalControl{Kind: ControlQuery, Query: QueryBackgroundColor}},
	{[]byte("\x1b]11;?\x07"), TerminalControl{Kind: ControlQuery, Query: QueryBackgroundColor}},
	{[]byte("\x1bP$qm\x1b\\"), TerminalControl{Kind: ControlQuery, Query: QueryRequestStatusStringSgr}},
}

// ExtractControls scans pending for recognized reverse-channel control
// sequences (spec.md §4.3) and returns them in order. Bytes belonging to a
// recognized-but-incomplete sequence at the tail of pending are retained
// in *pending for the next call; everything else is consumed.
func ExtractControls(pending *[]byte) []TerminalControl {
	buf := *pending
	var out []TerminalControl
	i := 0
	keepFrom := -1

outer:
	for i < len(buf) {
		if buf[i] != 0x1b {
			i++
			continue
		}
		rest := buf[i:]

		for _, fc := range fixedControls {
			if len(rest) >= len(fc.pattern) && string(rest[:len(fc.pattern)]) == string(fc.pattern) {
				out = append(out, fc.control)
				i += len(fc.pattern)
				continue outer
			}
		}

		if hasPrefix(rest, "\x1b]10;") || hasPrefix(rest, "\x1b]11;") {
			ctrl, consumed, result := parseOSCDefaultColor(rest)
			switch result {
			case matchFound:
				if ctrl != nil {
					out = append(out, *ctrl)
				}
				i += consumed
				continue outer
			case matchNeedMore:
				keepFrom = i
				break outer
			case matchNone:
				i += consumed // skip the whole malformed OSC
				continue outer
			}
		}

		if ctrl, consumed, result := parseKittyKeyboardControl(rest); result != matchNone {
			if result == matchNeedMore {
				keepFrom = i
				break outer
			}
			out = append(out, ctrl)
			i += consumed
			continue outer
		}

		if isKnownControlPrefix(rest) {
			keepFrom = i
			break outer
		}
		i++
	}

	if keepFrom >= 0 {
		*pending = append([]byte(nil), buf[keepFrom:]...)
	} else {
		*pending = (*pending)[:0]
	}
	return out
}

func hasPrefix(b []byte, s string) bool {
	return len(b) >= len(s) && string(b[:len(s)]) == s
}

// isKnownControlPrefix reports whether rest is an incomplete-but-possible
// prefix of some recognized sequence: either it's a prefix of one of the
// fixed patterns, a prefix of an OSC 10/11 opener, or a possible kitty
// keyboard prefix.
func isKnownControlPrefix(rest []byte) bool {
	for _, fc := range fixedControls {
		if bytesIsPrefixOf(rest, fc.pattern) {
			return true
		}
	}
	if bytesIsPrefixOf(rest, []byte("\x1b]10;")) || bytesIsPrefixOf(rest, []byte("\x1b]11;")) {
		return true
	}
	return isKittyKeyboardControlPrefix(rest)
}

// bytesIsPrefixOf reports whether rest is a prefix of pattern (the
// reverse of the usual containment check — rest may be shorter).
func bytesIsPrefixOf(rest, pattern []byte) bool {
	if len(rest) > len(pattern) {
		return false
	}
	return string(pattern[:len(rest)]) == string(rest)
}

// parseKittyKeyboardControl recognizes `ESC[>Nu` (push) and `ESC[<Nu`
// (pop, N defaulting to 1).
func parseKittyKeyboardControl(rest []byte) (TerminalControl, int, matchResult) {
	if !hasPrefix(rest, "\x1b[") {
		return TerminalControl{}, 0, matchNone
	}
	if len(rest) < 3 {
		return TerminalControl{}, 0, matchNeedMore
	}
	mode := rest[2]
	if mode != '>' && mode != '<' {
		return TerminalControl{}, 0, matchNone
	}
	if len(rest) == 3 {
		return TerminalControl{}, 0, matchNeedMore
	}
	idx := 3
	for idx < len(rest) && rest[idx] >= '0' && rest[idx] <= '9' {
		idx++
	}
	if idx == len(rest) {
		return TerminalControl{}, 0, matchNeedMore
	}
	if rest[idx] != 'u' {
		return TerminalControl{}, 0, matchNone
	}
	digits := rest[3:idx]
	if mode == '>' && len(digits) == 0 {
		return TerminalControl{}, 0, matchNone
	}
	value := uint16(1)
	if len(digits) > 0 {
		value = parseU16Saturating(digits)
	}
	kind := ControlKittyKeyboardPush
	if mode == '<' {
		kind = ControlKittyKeyboardPop
	}
	return TerminalControl{Kind: kind, N: value}, idx + 1, matchFound
}

func isKittyKeyboardControlPrefix(rest []byte) bool {
	if bytesIsPrefixOf(rest, []byte("\x1b[")) {
		return true
	}
	if len(rest) < 3 {
		return false
	}
	if rest[2] != '>' && rest[2] != '<' {
		return false
	}
	for _, b := range rest[3:] {
		if !(b >= '0' && b <= '9') && b != 'u' {
			return false
		}
	}
	return true
}

// parseOSCDefaultColor recognizes `ESC]10;...` / `ESC]11;...` default
// foreground/background color queries and sets.
func parseOSCDefaultColor(rest []byte) (*TerminalControl, int, matchResult) {
	isFg := hasPrefix(rest, "\x1b]10;")
	payloadStart := 5

	if len(rest) <= payloadStart {
		return nil, 0, matchNeedMore
	}

	termIdx, termLen, found := findOSCTerminator(rest[payloadStart:])
	if !found {
		return nil, 0, matchNeedMore
	}
	payload := rest[payloadStart : payloadStart+termIdx]
	consumed := payloadStart + termIdx + termLen

	if string(payload) == "?" {
		q := QueryForegroundColor
		if !isFg {
			q = QueryBackgroundColor
		}
		return &TerminalControl{Kind: ControlQuery, Query: q}, consumed, matchFound
	}

	rgb, ok := parseOSCColor(string(payload))
	if !ok {
		return nil, consumed, matchNone
	}
	kind := ControlSetDefaultForeground
	if !isFg {
		kind = ControlSetDefaultBackground
	}
	return &TerminalControl{Kind: kind, Color: rgb}, consumed, matchFound
}

// findOSCTerminator locates the BEL or ESC-backslash terminator within
// payload. If payload ends in a lone ESC with nothing after it, the
// terminator cannot yet be determined (need more bytes).
func findOSCTerminator(payload []byte) (idx, length int, found bool) {
	for i := 0; i < len(payload); i++ {
		switch payload[i] {
		case 0x07:
			return i, 1, true
		case 0x1b:
			if i+1 >= len(payload) {
				return 0, 0, false
			}
			if payload[i+1] == '\\' {
				return i, 2, true
			}
		}
	}
	return 0, 0, false
}

func parseOSCColor(payload string) (Rgb, bool) {
	payload = strings.TrimSpace(payload)
	if rest, ok := strings.CutPrefix(payload, "rgb:"); ok {
		parts := strings.Split(rest, "/")
		if len(parts) != 3 {
			return Rgb{}, false
		}
		r, ok1 := parseScaledHex(parts[0])
		g, ok2 := parseScaledHex(parts[1])
		b, ok3 := parseScaledHex(parts[2])
		if !ok1 || !ok2 || !ok3 {
			return Rgb{}, false
		}
		return Rgb{r, g, b}, true
	}
	if rest, ok := strings.CutPrefix(payload, "#"); ok {
		if len(rest) == 0 || len(rest)%3 != 0 {
			return Rgb{}, false
		}
		compLen := len(rest) / 3
		if compLen < 1 || compLen > 4 {
			return Rgb{}, false
		}
		r, ok1 := parseScaledHex(rest[0:compLen])
		g, ok2 := parseScaledHex(rest[compLen : 2*compLen])
		b, ok3 := parseScaledHex(rest[2*compLen : 3*compLen])
		if !ok1 || !ok2 || !ok3 {
			return Rgb{}, false
		}
		return Rgb{r, g, b}, true
	}
	return Rgb{}, false
}

// parseScaledHex parses a 1-4 digit hex string and scales it to 0-255,
// half-up rounded (spec.md §4.3).
func parseScaledHex(hex string) (uint8, bool) {
	if len(hex) < 1 || len(hex) > 4 {
		return 0, false
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	max := uint64(1)<<(uint(len(hex))*4) - 1
	scaled := (value*255 + max/2) / max
	return uint8(scaled), true
}

func parseU16Saturating(b []byte) uint16 {
	v, err := strconv.ParseUint(string(b), 10, 32)
	if err != nil {
		return 0
	}
	if v > 0xffff {
		return 0xffff
	}
	return uint16(v)
}

