package vterm

import "testing"

func extract(t *testing.T, chunks ...string) []TerminalControl {
	t.Helper()
	var pending []byte
	var out []TerminalControl
	for _, c := range chunks {
		pending = append(pending, []byte(c)...)
		out = append(out, ExtractControls(&pending)...)
	}
	return out
}

func TestExtractControlsCursorPositionReport(t *testing.T) {
	got := extract(t, "\x1b[6n")
	if len(got) != 1 || got[0].Kind != ControlQuery || got[0].Query != QueryCursorPositionReport {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractControlsSyncOutput(t *testing.T) {
	got := extract(t, "\x1b[?2026h\x1b[?2026l")
	want := []TerminalControl{{Kind: ControlSyncOutputBegin}, {Kind: ControlSyncOutputEnd}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestExtractControlsDeviceAttributes(t *testing.T) {
	got := extract(t, "\x1b[c\x1b[>c\x1b[>0c")
	if len(got) != 3 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Query != QueryPrimaryDeviceAttributes {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[1].Query != QuerySecondaryDeviceAttributes || got[2].Query != QuerySecondaryDeviceAttributes {
		t.Fatalf("got[1:] = %+v", got[1:])
	}
}

func TestExtractControlsKittyKeyboardQuery(t *testing.T) {
	got := extract(t, "\x1b[?u")
	if len(got) != 1 || got[0].Query != QueryKittyKeyboard {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractControlsKittyKeyboardPushPop(t *testing.T) {
	got := extract(t, "\x1b[>5u\x1b[<u\x1b[<3u")
	if len(got) != 3 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Kind != ControlKittyKeyboardPush || got[0].N != 5 {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[1].Kind != ControlKittyKeyboardPop || got[1].N != 1 {
		t.Fatalf("got[1] = %+v, want pop N=1 (default)", got[1])
	}
	if got[2].Kind != ControlKittyKeyboardPop || got[2].N != 3 {
		t.Fatalf("got[2] = %+v", got[2])
	}
}

func TestExtractControlsRequestStatusStringSgr(t *testing.T) {
	got := extract(t, "\x1bP$qm\x1b\\")
	if len(got) != 1 || got[0].Query != QueryRequestStatusStringSgr {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractControlsOSCColorQuery(t *testing.T) {
	got := extract(t, "\x1b]10;?\x07\x1b]11;?\x1b\\")
	if len(got) != 2 || got[0].Query != QueryForegroundColor || got[1].Query != QueryBackgroundColor {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractControlsOSCSetDefaultColorRGBHash(t *testing.T) {
	got := extract(t, "\x1b]11;#ff0080\x07")
	if len(got) != 1 || got[0].Kind != ControlSetDefaultBackground {
		t.Fatalf("got %+v", got)
	}
	if got[0].Color != (Rgb{0xff, 0x00, 0x80}) {
		t.Fatalf("color = %+v", got[0].Color)
	}
}

func TestExtractControlsOSCSetDefaultColorRgbColon(t *testing.T) {
	got := extract(t, "\x1b]10;rgb:ffff/0000/8080\x07")
	if len(got) != 1 || got[0].Kind != ControlSetDefaultForeground {
		t.Fatalf("got %+v", got)
	}
	if got[0].Color != (Rgb{255, 0, 128}) {
		t.Fatalf("color = %+v", got[0].Color)
	}
}

func TestExtractControlsPartialSplitAcrossCalls(t *testing.T) {
	got := extract(t, "\x1b[", "6n")
	if len(got) != 1 || got[0].Query != QueryCursorPositionReport {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractControlsPartialOSCSplit(t *testing.T) {
	got := extract(t, "\x1b]10;", "?", "\x1b\\")
	if len(got) != 1 || got[0].Query != QueryForegroundColor {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractControlsUnknownSequenceIgnored(t *testing.T) {
	got := extract(t, "\x1b[99x")
	if len(got) != 0 {
		t.Fatalf("got %+v, want none", got)
	}
}

func TestExtractControlsMixedWithPlainText(t *testing.T) {
	var pending []byte
	pending = append(pending, []byte("hello\x1b[6nworld")...)
	got := ExtractControls(&pending)
	if len(got) != 1 || got[0].Query != QueryCursorPositionReport {
		t.Fatalf("got %+v", got)
	}
}

func TestParseScaledHexRounding(t *testing.T) {
	cases := []struct {
		hex  string
		want uint8
	}{
		{"f", 255},
		{"0", 0},
		{"8", 136},
		{"ff", 255},
		{"80", 128},
		{"ffff", 255},
		{"8000", 128},
	}
	for _, c := range cases {
		got, ok := parseScaledHex(c.hex)
		if !ok || got != c.want {
			t.Errorf("parseScaledHex(%q) = %d,%v want %d", c.hex, got, ok, c.want)
		}
	}
}
