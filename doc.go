// Package vterm implements the core of a terminal emulator: a DEC/ANSI
// byte-stream parser, a character-cell grid with scrollback, a
// reverse-channel control demultiplexer, and a render-command projector
// for driving an external rasterizer.
//
// The package has no host-integration layer of its own — no PTY, no
// window system, no input loop. Terminal wires the pieces together and
// exposes the surface a host (a GPU-backed terminal window, a headless
// test harness, a recorder) drives directly.
//
// # Quick start
//
//	term := vterm.NewTerminal(80, 24)
//	term.Write([]byte("\x1b[31mHello\x1b[0m"))
//	cmds := term.Render("")
//
// # Pipeline
//
// Bytes written to a Terminal flow through four stages:
//
//	Parser (parser.go)     — bytes -> []TerminalCommand
//	Grid (grid.go)          — []TerminalCommand -> cell state + scrollback
//	demux (demux.go)        — independent scan of the same bytes for
//	                          reverse-channel controls (queries, kitty
//	                          keyboard stack, default-color sets, sync
//	                          output gating)
//	render (render.go)      — cell state + cursor + selection + preedit
//	                          -> []RenderCommand for the rasterizer
//
// Parser and demux run over the identical input independently; nothing
// the parser absorbs is hidden from the demuxer, and vice versa.
//
// # Concurrency
//
// Terminal serializes all grid, parser, and palette access behind one
// mutex (terminal.go). A reader goroutine feeds bytes in from the
// host's I/O source; Render is safe to call concurrently from a
// separate render thread. A CAS-guarded dirty flag lets a render loop
// skip work when nothing changed, and synchronized-output mode
// (`CSI ?2026h`/`l`) gates redraws until the child signals a frame is
// complete.
//
// # Colors
//
// Color is a tagged union over {Default, Indexed(0-255), Rgb}. Default
// resolves against a live Palette the demuxer updates in place when the
// child issues OSC 10/11 *set* sequences. See colors.go for the
// indexed-color table (ANSI 16, 6x6x6 cube, grayscale ramp).
//
// # Selection and rendering
//
// Selection tracks a drag-to-select span in absolute row/col space
// (selection.go), independent of scrollback scroll position. The
// projector (render.go) applies selection, cursor, and preedit overlays
// on top of resolved cell colors before emitting RenderCommand values.
package vterm
