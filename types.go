package vterm

// Rgb is a plain 8-bit-per-channel color triple.
type Rgb struct {
	R, G, B uint8
}

// ColorKind tags the variant held by a Color.
type ColorKind uint8

const (
	// ColorDefaultKind is the late-bound sentinel resolved by the projector
	// from an injected Palette.
	ColorDefaultKind ColorKind = iota
	ColorIndexedKind
	ColorRGBKind
)

// Color is a tagged union over {Default, Indexed(0..=255), Rgb}. The zero
// value is ColorDefaultKind, matching the "Default" default in the source
// this module is modeled on.
type Color struct {
	Kind  ColorKind
	Index uint8
	RGB   Rgb
}

// DefaultColor returns the Default color variant.
func DefaultColor() Color { return Color{Kind: ColorDefaultKind} }

// IndexedColor returns the Indexed(idx) color variant.
func IndexedColor(idx uint8) Color { return Color{Kind: ColorIndexedKind, Index: idx} }

// RGBColor returns the Rgb(r,g,b) color variant.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGBKind, RGB: Rgb{R: r, G: g, B: b}}
}

// CellFlags is an independent bit set of cell attributes.
type CellFlags uint8

const (
	FlagBold CellFlags = 1 << iota
	FlagDim
	FlagItalic
	FlagUnderline
	FlagInverse
	FlagHidden
	FlagStrikethrough
	FlagWideChar
)

// Has reports whether all bits of mask are set.
func (f CellFlags) Has(mask CellFlags) bool { return f&mask == mask }

// Cell is one column of one row: a character plus the attributes active
// when it was printed. The zero value is NOT the default cell; use
// DefaultCell for the space/Default/Default/empty default.
type Cell struct {
	Char  rune
	Fg    Color
	Bg    Color
	Flags CellFlags
}

// DefaultCell returns Cell{' ', Default, Default, empty}.
func DefaultCell() Cell {
	return Cell{Char: ' ', Fg: DefaultColor(), Bg: DefaultColor(), Flags: 0}
}

// RenderCommand is one draw primitive consumed verbatim by an external
// rasterizer: a resolved cell at an absolute screen position.
type RenderCommand struct {
	Col, Row  uint16
	Char      rune
	Fg, Bg    Rgb
	Flags     CellFlags
}

// CommandKind tags the variant held by a TerminalCommand.
type CommandKind uint8

const (
	CmdPrint CommandKind = iota
	CmdCursorUp
	CmdCursorDown
	CmdCursorForward
	CmdCursorBack
	CmdCursorPosition
	CmdSetForeground
	CmdSetBackground
	CmdSetBold
	CmdSetDim
	CmdSetItalic
	CmdSetUnderline
	CmdSetInverse
	CmdSetHidden
	CmdSetStrikethrough
	CmdResetBold
	CmdResetItalic
	CmdResetUnderline
	CmdResetInverse
	CmdResetHidden
	CmdResetStrikethrough
	CmdResetAttributes
	CmdEraseInLine
	CmdEraseInDisplay
	CmdNewline
	CmdCarriageReturn
	CmdBackspace
	CmdTab
	CmdBell
	CmdDeleteChars
	CmdShowCursor
	CmdHideCursor
)

// TerminalCommand is the semantic alphabet the parser emits and the grid
// consumes. It is a tagged union: only the fields relevant to Kind are
// meaningful. Variants that carry no payload (Newline, Bell, ...) use only
// Kind.
type TerminalCommand struct {
	Kind     CommandKind
	Char     rune
	N        uint16 // CursorUp/Down/Forward/Back count, DeleteChars count
	Row, Col uint16 // CursorPosition (1-based, as received)
	Mode     uint16 // EraseInLine/EraseInDisplay mode
	Color    Color  // SetForeground/SetBackground
}

func PrintCmd(c rune) TerminalCommand            { return TerminalCommand{Kind: CmdPrint, Char: c} }
func CursorUpCmd(n uint16) TerminalCommand        { return TerminalCommand{Kind: CmdCursorUp, N: n} }
func CursorDownCmd(n uint16) TerminalCommand      { return TerminalCommand{Kind: CmdCursorDown, N: n} }
func CursorForwardCmd(n uint16) TerminalCommand   { return TerminalCommand{Kind: CmdCursorForward, N: n} }
func CursorBackCmd(n uint16) TerminalCommand      { return TerminalCommand{Kind: CmdCursorBack, N: n} }
func CursorPositionCmd(row, col uint16) TerminalCommand {
	return TerminalCommand{Kind: CmdCursorPosition, Row: row, Col: col}
}
func SetForegroundCmd(c Color) TerminalCommand { return TerminalCommand{Kind: CmdSetForeground, Color: c} }
func SetBackgroundCmd(c Color) TerminalCommand { return TerminalCommand{Kind: CmdSetBackground, Color: c} }
func EraseInLineCmd(mode uint16) TerminalCommand {
	return TerminalCommand{Kind: CmdEraseInLine, Mode: mode}
}
func EraseInDisplayCmd(mode uint16) TerminalCommand {
	return TerminalCommand{Kind: CmdEraseInDisplay, Mode: mode}
}
func DeleteCharsCmd(n uint16) TerminalCommand { return TerminalCommand{Kind: CmdDeleteChars, N: n} }

var (
	SetBoldCmd          = TerminalCommand{Kind: CmdSetBold}
	SetDimCmd            = TerminalCommand{Kind: CmdSetDim}
	SetItalicCmd          = TerminalCommand{Kind: CmdSetItalic}
	SetUnderlineCmd       = TerminalCommand{Kind: CmdSetUnderline}
	SetInverseCmd         = TerminalCommand{Kind: CmdSetInverse}
	SetHiddenCmd          = TerminalCommand{Kind: CmdSetHidden}
	SetStrikethroughCmd   = TerminalCommand{Kind: CmdSetStrikethrough}
	ResetBoldCmd          = TerminalCommand{Kind: CmdResetBold}
	ResetItalicCmd        = TerminalCommand{Kind: CmdResetItalic}
	ResetUnderlineCmd     = TerminalCommand{Kind: CmdResetUnderline}
	ResetInverseCmd       = TerminalCommand{Kind: CmdResetInverse}
	ResetHiddenCmd        = TerminalCommand{Kind: CmdResetHidden}
	ResetStrikethroughCmd = TerminalCommand{Kind: CmdResetStrikethrough}
	ResetAttributesCmd    = TerminalCommand{Kind: CmdResetAttributes}
	NewlineCmd            = TerminalCommand{Kind: CmdNewline}
	CarriageReturnCmd     = TerminalCommand{Kind: CmdCarriageReturn}
	BackspaceCmd          = TerminalCommand{Kind: CmdBackspace}
	TabCmd                = TerminalCommand{Kind: CmdTab}
	BellCmd               = TerminalCommand{Kind: CmdBell}
	ShowCursorCmd         = TerminalCommand{Kind: CmdShowCursor}
	HideCursorCmd         = TerminalCommand{Kind: CmdHideCursor}
)

// --- Key input alphabet ---
// Carried from the original source's input vocabulary; no host key-capture
// code lives here (that integration is explicitly out of scope per
// SPEC_FULL.md §E), only the typed event shape a host would construct.

type Key uint8

const (
	KeyChar Key = iota
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
)

type KeyEvent struct {
	Key       Key
	Char      rune // meaningful only when Key == KeyChar
	Modifiers Modifiers
}
