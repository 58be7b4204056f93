// =============================================================================
// eventloop.go - Readiness Loop over Socket and Terminal
// =============================================================================
//
// The loop waits on two sources with a single poll(2) call:
//
//	socket    always watched; replies are read and handed to the session
//	input     watched only while the session is idle
//
// Excluding input while a command is in flight is what keeps exactly one
// command outstanding at the daemon.
//
// The line editor is blocking, so it runs on a helper goroutine (the input
// pump) that reads one line per request. When a line is ready the pump
// writes a byte to a pipe, and the read end of that pipe is what the loop
// polls as "input". All session, pager and buffer state stays on the loop
// goroutine.
//
// =============================================================================

package main

import (
	"errors"
	"io"

	"golang.org/x/sys/unix"
	"pkt.systems/pslog"
)

// Transport is the daemon connection as seen by the loop.
type Transport interface {
	Fd() int
	ReadLines() ([]string, error)
	WriteCommand(cmd string) error
}

// LineReader reads one line of user input, blocking until it is complete.
type LineReader interface {
	GetLine(prompt string) (string, error)
}

// inputResult is one line (or error) produced by the input pump.
type inputResult struct {
	line string
	err  error
}

// GO CONCEPT: The Self-Pipe Trick
// -------------------------------
// poll(2) only understands file descriptors, but the line editor delivers
// its result on a Go channel. Bridging the two: the goroutine that
// produced the result also writes one byte into a pipe. The loop polls the
// pipe's read end; when it becomes readable, the result is already waiting
// in the channel.
//
// Compare with Python: asyncio's loop.add_reader() combined with
// os.pipe() is the same construction.

// inputPump runs a LineReader on its own goroutine.
type inputPump struct {
	reader   LineReader
	requests chan string
	results  chan inputResult

	wakeR, wakeW int

	// pending is true from request() until the result is taken.
	pending bool
}

// newInputPump starts the pump goroutine.
func newInputPump(reader LineReader) (*inputPump, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return nil, err
	}
	for _, fd := range fds {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(fds[0])
			unix.Close(fds[1])
			return nil, err
		}
	}

	p := &inputPump{
		reader:   reader,
		requests: make(chan string, 1),
		results:  make(chan inputResult, 1),
		wakeR:    fds[0],
		wakeW:    fds[1],
	}
	go p.run()
	return p, nil
}

func (p *inputPump) run() {
	for prompt := range p.requests {
		line, err := p.reader.GetLine(prompt)
		p.results <- inputResult{line: line, err: err}
		for {
			_, err := unix.Write(p.wakeW, []byte{1})
			if err != unix.EINTR {
				break
			}
		}
	}
}

// request asks for one line unless a request is already outstanding.
func (p *inputPump) request(prompt string) {
	if p.pending {
		return
	}
	p.pending = true
	p.requests <- prompt
}

// fd returns the descriptor that becomes readable when a line is ready.
func (p *inputPump) fd() int {
	return p.wakeR
}

// take drains the wake pipe and returns the finished result, if any.
func (p *inputPump) take() (inputResult, bool) {
	var buf [16]byte
	for {
		_, err := unix.Read(p.wakeR, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			break
		}
	}

	select {
	case r := <-p.results:
		p.pending = false
		return r, true
	default:
		return inputResult{}, false
	}
}

// close stops the pump. A goroutine still blocked in GetLine keeps the
// write end of the pipe; it is released when the process exits.
func (p *inputPump) close() {
	close(p.requests)
	unix.Close(p.wakeR)
	if !p.pending {
		unix.Close(p.wakeW)
	}
}

// EventLoop drives a Session from socket and terminal readiness.
type EventLoop struct {
	session *Session
	conn    Transport
	input   LineReader
	prompt  string
	log     pslog.Logger
}

// NewEventLoop creates a loop for session over conn, reading user input
// from input.
func NewEventLoop(session *Session, conn Transport, input LineReader, log pslog.Logger) *EventLoop {
	return &EventLoop{
		session: session,
		conn:    conn,
		input:   input,
		prompt:  prompt,
		log:     log,
	}
}

// Run processes events until the session terminates or a fatal error
// occurs. Termination is reported as *ExitError.
func (l *EventLoop) Run() error {
	pump, err := newInputPump(l.input)
	if err != nil {
		return err
	}
	defer pump.close()

	for {
		for l.session.Initializing() && !l.session.Busy() {
			if err := l.session.Startup(); err != nil {
				return err
			}
		}

		idle := l.session.Idle()
		if idle {
			pump.request(l.prompt)
		}

		inputReady, socketReady, err := l.wait(pump, idle)
		if err != nil {
			return err
		}

		if inputReady {
			if r, ok := pump.take(); ok {
				if err := l.handleInput(r); err != nil {
					return err
				}
			}
			continue
		}

		if socketReady {
			if err := l.handleSocket(); err != nil {
				return err
			}
		}
	}
}

// wait blocks until the socket or, when idle, the input pump is ready.
func (l *EventLoop) wait(pump *inputPump, idle bool) (inputReady, socketReady bool, err error) {
	fds := []unix.PollFd{{Fd: int32(l.conn.Fd()), Events: unix.POLLIN}}
	if idle {
		fds = append(fds, unix.PollFd{Fd: int32(pump.fd()), Events: unix.POLLIN})
	}

	for {
		_, err = unix.Poll(fds, -1)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return false, false, err
	}

	socketReady = fds[0].Revents != 0
	inputReady = idle && fds[1].Revents != 0
	return inputReady, socketReady, nil
}

func (l *EventLoop) handleInput(r inputResult) error {
	if r.err != nil {
		if errors.Is(r.err, io.EOF) {
			return l.session.InputClosed()
		}
		return r.err
	}
	return l.session.SubmitInput(r.line)
}

func (l *EventLoop) handleSocket() error {
	lines, err := l.conn.ReadLines()
	if err != nil {
		l.log.Debug("socket read failed", "error", err)
		return err
	}
	for _, line := range lines {
		l.session.HandleReply(line)
	}
	return nil
}
