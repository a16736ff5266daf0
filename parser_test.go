package vterm

import (
	"reflect"
	"testing"
)

func parseAll(t *testing.T, chunks ...string) []TerminalCommand {
	t.Helper()
	p := NewParser()
	var got []TerminalCommand
	for _, chunk := range chunks {
		got = append(got, p.Parse([]byte(chunk))...)
	}
	return got
}

func assertCmds(t *testing.T, got, want []TerminalCommand) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParserPlainText(t *testing.T) {
	got := parseAll(t, "AB")
	want := []TerminalCommand{PrintCmd('A'), PrintCmd('B')}
	assertCmds(t, got, want)
}

func TestParserEmptyInput(t *testing.T) {
	got := parseAll(t, "")
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestParserC0Controls(t *testing.T) {
	cases := []struct {
		b    byte
		want TerminalCommand
	}{
		{0x07, BellCmd},
		{0x08, BackspaceCmd},
		{0x09, TabCmd},
		{0x0A, NewlineCmd},
		{0x0D, CarriageReturnCmd},
	}
	for _, c := range cases {
		got := parseAll(t, string(rune(c.b)))
		assertCmds(t, got, []TerminalCommand{c.want})
	}
}

func TestParserCursorMovements(t *testing.T) {
	got := parseAll(t, "\x1b[A\x1b[3B\x1b[C\x1b[4D")
	want := []TerminalCommand{
		CursorUpCmd(1),
		CursorDownCmd(3),
		CursorForwardCmd(1),
		CursorBackCmd(4),
	}
	assertCmds(t, got, want)
}

func TestParserCursorPositionDefaultsToOne(t *testing.T) {
	got := parseAll(t, "\x1b[H")
	assertCmds(t, got, []TerminalCommand{CursorPositionCmd(1, 1)})
}

func TestParserCursorPositionWithParams(t *testing.T) {
	got := parseAll(t, "\x1b[5;10H")
	assertCmds(t, got, []TerminalCommand{CursorPositionCmd(5, 10)})

	got = parseAll(t, "\x1b[5;10f")
	assertCmds(t, got, []TerminalCommand{CursorPositionCmd(5, 10)})
}

func TestParserEraseAndDeleteChars(t *testing.T) {
	got := parseAll(t, "\x1b[K\x1b[1K\x1b[2J\x1b[3P")
	want := []TerminalCommand{
		EraseInLineCmd(0),
		EraseInLineCmd(1),
		EraseInDisplayCmd(2),
		DeleteCharsCmd(3),
	}
	assertCmds(t, got, want)
}

func TestParserSGRBasicAttributes(t *testing.T) {
	got := parseAll(t, "\x1b[1;2;3;4;7;8;9m")
	want := []TerminalCommand{
		SetBoldCmd, SetDimCmd, SetItalicCmd, SetUnderlineCmd,
		SetInverseCmd, SetHiddenCmd, SetStrikethroughCmd,
	}
	assertCmds(t, got, want)
}

func TestParserSGRResets(t *testing.T) {
	got := parseAll(t, "\x1b[22;23;24;27;28;29m")
	want := []TerminalCommand{
		ResetBoldCmd, ResetItalicCmd, ResetUnderlineCmd,
		ResetInverseCmd, ResetHiddenCmd, ResetStrikethroughCmd,
	}
	assertCmds(t, got, want)
}

func TestParserSGRResetAttributes(t *testing.T) {
	got := parseAll(t, "\x1b[m")
	assertCmds(t, got, []TerminalCommand{ResetAttributesCmd})

	got = parseAll(t, "\x1b[0m")
	assertCmds(t, got, []TerminalCommand{ResetAttributesCmd})
}

func TestParserSGRStandardColors(t *testing.T) {
	got := parseAll(t, "\x1b[31m\x1b[44m")
	want := []TerminalCommand{
		SetForegroundCmd(IndexedColor(1)),
		SetBackgroundCmd(IndexedColor(4)),
	}
	assertCmds(t, got, want)
}

func TestParserSGRBrightColors(t *testing.T) {
	got := parseAll(t, "\x1b[91m\x1b[104m")
	want := []TerminalCommand{
		SetForegroundCmd(IndexedColor(9)),
		SetBackgroundCmd(IndexedColor(12)),
	}
	assertCmds(t, got, want)
}

func TestParserSGRDefaultColors(t *testing.T) {
	got := parseAll(t, "\x1b[39;49m")
	want := []TerminalCommand{
		SetForegroundCmd(DefaultColor()),
		SetBackgroundCmd(DefaultColor()),
	}
	assertCmds(t, got, want)
}

func TestParserSGR256ColorSemicolon(t *testing.T) {
	got := parseAll(t, "\x1b[38;5;196m")
	assertCmds(t, got, []TerminalCommand{SetForegroundCmd(IndexedColor(196))})

	got = parseAll(t, "\x1b[48;5;22m")
	assertCmds(t, got, []TerminalCommand{SetBackgroundCmd(IndexedColor(22))})
}

func TestParserSGR256ColorColon(t *testing.T) {
	got := parseAll(t, "\x1b[38:5:196m")
	assertCmds(t, got, []TerminalCommand{SetForegroundCmd(IndexedColor(196))})
}

func TestParserSGRRGBSemicolon(t *testing.T) {
	got := parseAll(t, "\x1b[38;2;10;20;30m")
	assertCmds(t, got, []TerminalCommand{SetForegroundCmd(RGBColor(10, 20, 30))})

	got = parseAll(t, "\x1b[48;2;0;0;0m")
	assertCmds(t, got, []TerminalCommand{SetBackgroundCmd(RGBColor(0, 0, 0))})
}

func TestParserSGRRGBColonWithColorspace(t *testing.T) {
	got := parseAll(t, "\x1b[48:2::10:20:30m")
	assertCmds(t, got, []TerminalCommand{SetBackgroundCmd(RGBColor(10, 20, 30))})
}

func TestParserSGRRGBColonAllZero(t *testing.T) {
	got := parseAll(t, "\x1b[38:2:0:0:0m")
	assertCmds(t, got, []TerminalCommand{SetForegroundCmd(RGBColor(0, 0, 0))})
}

func TestParserMixedContent(t *testing.T) {
	got := parseAll(t, "\x1b[31mRED\x1b[0m ok")
	want := []TerminalCommand{
		SetForegroundCmd(IndexedColor(1)),
		PrintCmd('R'), PrintCmd('E'), PrintCmd('D'),
		ResetAttributesCmd,
		PrintCmd(' '), PrintCmd('o'), PrintCmd('k'),
	}
	assertCmds(t, got, want)
}

func TestParserSplitAcrossCalls(t *testing.T) {
	got := parseAll(t, "\x1b[3", "1m")
	assertCmds(t, got, []TerminalCommand{SetForegroundCmd(IndexedColor(1))})
}

func TestParserSplitAtEscapeByte(t *testing.T) {
	got := parseAll(t, "\x1b", "[31m")
	assertCmds(t, got, []TerminalCommand{SetForegroundCmd(IndexedColor(1))})
}

func TestParserKoreanText(t *testing.T) {
	got := parseAll(t, "한")
	assertCmds(t, got, []TerminalCommand{PrintCmd('한')})
}

func TestParserUnicodeSplitBytes(t *testing.T) {
	b := []byte(string('한'))
	if len(b) != 3 {
		t.Fatalf("expected a 3-byte UTF-8 encoding, got %d", len(b))
	}
	p := NewParser()
	var got []TerminalCommand
	for _, by := range b {
		got = append(got, p.Parse([]byte{by})...)
	}
	assertCmds(t, got, []TerminalCommand{PrintCmd('한')})
}

func TestParserUnknownCSIIgnored(t *testing.T) {
	got := parseAll(t, "\x1b[9999zX")
	assertCmds(t, got, []TerminalCommand{PrintCmd('X')})
}

func TestParserCursorVisibilityToggle(t *testing.T) {
	got := parseAll(t, "\x1b[?25l\x1b[?25h")
	assertCmds(t, got, []TerminalCommand{HideCursorCmd, ShowCursorCmd})
}

func TestParserCursorVisibilityIgnoresNonPrivateMarker(t *testing.T) {
	got := parseAll(t, "\x1b[25h\x1b[25l")
	assertCmds(t, got, nil)
}
