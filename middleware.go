package vterm

// Middleware intercepts terminal processing at the three points spec.md
// §4.1 names as actions (print, execute, csi_dispatch) plus recognized
// reverse-channel controls, mirroring the teacher's wrap-with-next
// middleware shape but narrowed to this parser's thin action alphabet.
// Each field wraps one stage: receive the original value and a next
// function that invokes the default handling. A nil field means no
// interception for that stage.
type Middleware struct {
	// Command wraps dispatch of one parsed TerminalCommand into the grid.
	Command func(cmd TerminalCommand, next func(TerminalCommand))

	// Control wraps dispatch of one recognized reverse-channel control.
	Control func(ctrl TerminalControl, next func(TerminalControl))
}

// Merge copies non-nil middleware functions from other into this,
// overwriting existing values.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if other.Command != nil {
		m.Command = other.Command
	}
	if other.Control != nil {
		m.Control = other.Control
	}
}

func (m *Middleware) dispatchCommand(cmd TerminalCommand, apply func(TerminalCommand)) {
	if m != nil && m.Command != nil {
		m.Command(cmd, apply)
		return
	}
	apply(cmd)
}

func (m *Middleware) dispatchControl(ctrl TerminalControl, handle func(TerminalControl)) {
	if m != nil && m.Control != nil {
		m.Control(ctrl, handle)
		return
	}
	handle(ctrl)
}
