package birdprotocol

import (
	"errors"
	"fmt"
)

// Sentinel errors for the control socket protocol.
var (
	// ErrConnectionClosed indicates the daemon closed its end of the socket.
	ErrConnectionClosed = errors.New("connection closed by server")

	// ErrPathTooLong indicates the socket path does not fit in sun_path.
	ErrPathTooLong = errors.New("socket path too long")

	// ErrClosed indicates an operation on a Conn that was already closed.
	ErrClosed = errors.New("use of closed connection")
)

// ConnectError represents a failure to open the control socket.
type ConnectError struct {
	Path  string
	Op    string // "socket", "connect", "nonblock"
	Cause error
}

// Error implements the error interface.
func (e *ConnectError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("cannot %s %s", e.Op, e.Path)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConnectError) Unwrap() error {
	return e.Cause
}

// ReadError represents a failed read from the daemon.
type ReadError struct {
	Cause error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("server read failed: %v", e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ReadError) Unwrap() error {
	return e.Cause
}

// WriteError represents a failed write to the daemon.
type WriteError struct {
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("server write failed: %v", e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

func newConnectError(op, path string, cause error) error {
	return &ConnectError{Path: path, Op: op, Cause: cause}
}
