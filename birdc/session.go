// =============================================================================
// session.go - Session State Machine
// =============================================================================
//
// The session decides what happens with every line from the daemon and
// every line typed by the user. Only one command may be in flight: while
// the session is busy, no input is accepted.
//
// Phases:
//
//	Starting ──greeting──┬─> AwaitingRestrictAck ──reply──┐
//	                     │                               │
//	                     ├─> AwaitingInitAck ──reply─────┤ (startup again)
//	                     │                               │
//	                     ├─> BatchDone (exit 0/1)  <─────┘
//	                     │
//	                     └─> Idle <──final reply── Busy
//	                          │                     ^
//	                          └────── command ──────┘
//
// exit/quit and end of input end the session from Idle (Terminated).
//
// =============================================================================

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/nkmideb/birdc/birdprotocol"
	"pkt.systems/pslog"
)

// Phase is the position of the session in its lifecycle.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseAwaitingRestrictAck
	PhaseAwaitingInitAck
	PhaseIdle
	PhaseBusy
	PhaseBatchDone
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseAwaitingRestrictAck:
		return "awaiting-restrict-ack"
	case PhaseAwaitingInitAck:
		return "awaiting-init-ack"
	case PhaseIdle:
		return "idle"
	case PhaseBusy:
		return "busy"
	case PhaseBatchDone:
		return "batch-done"
	case PhaseTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// helpHint is printed for the local "help" command.
const helpHint = "Press `?' for context sensitive help."

// ExitError asks main to end the process with the given status. It is
// how the session terminates without calling os.Exit itself.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the process exit status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// CommandWriter sends one command to the daemon.
type CommandWriter interface {
	WriteCommand(cmd string) error
}

// Expander turns typed input into a full command and provides context
// help for it.
type Expander interface {
	Expand(line string) (string, error)
	Help(w io.Writer, line string)
}

// InputSource is the interactive side of the terminal, brought up once
// the startup sequence is over.
type InputSource interface {
	Init() error
	Geometry() (rows, cols int)
}

// SessionOptions carries the launch-time settings of a session.
type SessionOptions struct {
	// Interactive is true when input comes from a terminal.
	Interactive bool

	// Restricted sends "restrict" before anything else.
	Restricted bool

	// Verbose prints reply codes and indents continuation lines.
	Verbose bool

	// InitCommand is run once after the greeting. Empty means none.
	InitCommand string

	// Once exits after the init command with a status derived from its
	// last reply code.
	Once bool
}

// SessionState holds the mutable state of a session.
type SessionState struct {
	initializing bool
	busy         bool
	interactive  bool
	lastCode     int

	pendingInitCommand *string

	once       bool
	restricted bool
	verbose    bool
}

// Session drives the client side of the control protocol.
type Session struct {
	state SessionState
	phase Phase

	conn     CommandWriter
	expander Expander
	input    InputSource
	pager    *Pager
	render   *renderer
	log      pslog.Logger
}

// NewSession creates a session waiting for the daemon's greeting.
func NewSession(opts SessionOptions, conn CommandWriter, expander Expander, input InputSource, pager *Pager, render *renderer, log pslog.Logger) *Session {
	s := &Session{
		state: SessionState{
			initializing: true,
			busy:         true,
			interactive:  opts.Interactive,
			once:         opts.Once,
			restricted:   opts.Restricted,
			verbose:      opts.Verbose,
		},
		phase:    PhaseStarting,
		conn:     conn,
		expander: expander,
		input:    input,
		pager:    pager,
		render:   render,
		log:      log,
	}
	if opts.InitCommand != "" {
		cmd := opts.InitCommand
		s.state.pendingInitCommand = &cmd
	}
	return s
}

// Busy reports whether a command is in flight.
func (s *Session) Busy() bool { return s.state.busy }

// Initializing reports whether the startup sequence is still running.
func (s *Session) Initializing() bool { return s.state.initializing }

// Idle reports whether the session accepts a new command.
func (s *Session) Idle() bool { return !s.state.initializing && !s.state.busy }

// LastCode returns the most recent reply code.
func (s *Session) LastCode() int { return s.state.lastCode }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

func (s *Session) setPhase(p Phase) {
	if s.phase != p {
		s.log.Debug("session phase", "from", s.phase.String(), "to", p.String())
		s.phase = p
	}
}

// =============================================================================
// Daemon Replies
// =============================================================================

// HandleReply processes one line received from the daemon.
func (s *Session) HandleReply(line string) {
	reply := birdprotocol.Classify(line)
	width := 0

	switch reply.Kind {
	case birdprotocol.KindAsync:
		width = s.print(func() int { return s.render.async(reply.Text) })

	case birdprotocol.KindContinuation:
		text := reply.Text
		if s.state.verbose {
			text = "     " + text
		}
		width = s.print(func() int { return s.render.plain(text) })

	case birdprotocol.KindCoded:
		if reply.Code != birdprotocol.CodeOK {
			text := reply.Text
			if s.state.verbose {
				text = reply.Raw
			}
			if reply.IsFailure() {
				width = s.print(func() int { return s.render.failure(text) })
			} else {
				width = s.print(func() int { return s.render.plain(text) })
			}
		}

		s.state.lastCode = reply.Code
		if reply.Final {
			s.log.Debug("reply complete", "code", reply.Code)
			s.state.busy = false
			s.pager.EndReply()
			if s.phase == PhaseBusy {
				s.setPhase(PhaseIdle)
			}
			return
		}

	default:
		width = s.print(func() int { return s.render.malformed(line) })
	}

	if s.state.interactive && s.state.busy && !s.pager.Skipping() && !s.state.initializing && width > 0 {
		s.pager.Count(width)
	}
}

// print runs fn unless the rest of the reply is being skipped, and
// returns the printed width.
func (s *Session) print(fn func() int) int {
	if s.pager.Skipping() {
		return 0
	}
	return fn()
}

// =============================================================================
// Startup Sequence
// =============================================================================

// Startup performs the next step of the startup sequence. The event loop
// calls it while the session is initializing and not busy.
func (s *Session) Startup() error {
	if s.state.restricted {
		s.state.restricted = false
		s.log.Debug("startup: restricting session")
		if err := s.submit(birdprotocol.RestrictCommand); err != nil {
			return err
		}
		s.setPhase(PhaseAwaitingRestrictAck)
		return nil
	}

	if s.state.pendingInitCommand != nil {
		raw := *s.state.pendingInitCommand
		s.state.pendingInitCommand = nil

		cmd, err := s.expander.Expand(raw)
		if err != nil {
			s.render.notice(err.Error())
			s.log.Debug("startup: init command did not expand", "command", raw)
			return s.terminate(0)
		}
		if cmd == "" {
			return s.terminate(0)
		}
		s.log.Debug("startup: running init command", "command", cmd)
		if err := s.submit(cmd); err != nil {
			return err
		}
		s.setPhase(PhaseAwaitingInitAck)
		return nil
	}

	if s.state.once {
		code := birdprotocol.ExitStatus(s.state.lastCode)
		s.log.Debug("startup: batch done", "last_code", s.state.lastCode, "status", code)
		s.setPhase(PhaseBatchDone)
		return &ExitError{Code: code}
	}

	if s.input != nil {
		if err := s.input.Init(); err != nil {
			return err
		}
		s.refreshGeometry()
	}
	s.state.initializing = false
	s.setPhase(PhaseIdle)
	return nil
}

// =============================================================================
// User Input
// =============================================================================

// SubmitInput handles one line typed by the user while idle.
func (s *Session) SubmitInput(line string) error {
	trimmed := strings.TrimRight(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return nil
	}

	if strings.HasSuffix(trimmed, "?") {
		s.expander.Help(s.render.w, strings.TrimSuffix(trimmed, "?"))
		return nil
	}

	cmd, err := s.expander.Expand(line)
	if err != nil {
		s.render.notice(err.Error())
		return nil
	}
	if cmd == "" {
		return s.terminate(0)
	}

	switch {
	case strings.HasPrefix(cmd, "exit"), strings.HasPrefix(cmd, "quit"):
		return s.terminate(0)
	case strings.HasPrefix(cmd, "help"):
		s.render.notice(helpHint)
		return nil
	}

	if s.state.interactive {
		s.refreshGeometry()
	}
	if err := s.submit(cmd); err != nil {
		return err
	}
	s.setPhase(PhaseBusy)
	return nil
}

// InputClosed handles end of input, which behaves like "quit".
func (s *Session) InputClosed() error {
	s.log.Debug("input closed")
	return s.terminate(0)
}

// submit sends cmd and marks the session busy.
func (s *Session) submit(cmd string) error {
	s.state.busy = true
	s.pager.Reset()
	s.log.Debug("submit", "command", cmd)
	return s.conn.WriteCommand(cmd)
}

func (s *Session) refreshGeometry() {
	if s.input == nil {
		return
	}
	rows, cols := s.input.Geometry()
	s.pager.SetGeometry(rows, cols)
}

func (s *Session) terminate(code int) error {
	s.setPhase(PhaseTerminated)
	return &ExitError{Code: code}
}
