package vterm

import "io"

// Source is the terminal's input side: typically the read end of a PTY
// master. Terminal's reader goroutine (terminal.go) loops Read calls and
// feeds the bytes to the parser and demuxer.
type Source = io.Reader

// Sink is the terminal's reverse-channel output side: where encoded
// query responses (CPR, DA1/DA2, kitty-keyboard state, OSC color
// replies, DECRQSS) are written back, typically the write end of the
// same PTY master.
type Sink = io.Writer

// NoopSink discards all response data, for callers that never need to
// answer reverse-channel queries (e.g. a headless test harness that
// only inspects grid state).
type NoopSink struct{}

func (NoopSink) Write(p []byte) (n int, err error) {
	return len(p), nil
}

var _ Sink = NoopSink{}
