package birdprotocol

import (
	"path/filepath"
)

// Protocol constants shared by the daemon and its clients.
const (
	// DefaultSocketPath is where the daemon listens unless configured
	// otherwise.
	DefaultSocketPath = "/run/bird/bird.ctl"

	// ReadBufferSize is the capacity of the reply accumulation buffer.
	// A reply line that does not fit is replaced by TooLongLine.
	ReadBufferSize = 4096

	// AsyncPrefix starts an asynchronous notification line.
	AsyncPrefix = '+'

	// ContinuationPrefix starts a continuation line of the current reply.
	ContinuationPrefix = ' '

	// CodeWidth is the number of decimal digits in a reply code.
	CodeWidth = 4

	// MaxCode is the largest reply code representable in CodeWidth digits.
	MaxCode = 9999

	// FinalMarker follows the code on the last line of a reply.
	FinalMarker = ' '

	// MoreMarker follows the code on a line that is not the last one.
	MoreMarker = '-'

	// TooLongLine replaces a reply line that overflowed the read buffer.
	TooLongLine = "?<too-long>"

	// FailureCode is the lowest reply code that reports a failure.
	// Runtime errors use 8000-8999 and parse errors 9000-9999.
	FailureCode = 8000

	// CodeWelcome is the code of the greeting sent on connect.
	CodeWelcome = 1

	// CodeOK is the generic success code.
	CodeOK = 0
)

// IsFailureCode reports whether a reply code signals an error.
func IsFailureCode(code int) bool {
	return code >= FailureCode
}

// ExitStatus maps the last reply code of a batch command to a process
// exit status: 0 for success, 1 for failure.
func ExitStatus(lastCode int) int {
	if IsFailureCode(lastCode) {
		return 1
	}
	return 0
}

// LocalSocketPath returns the socket path used in light mode: the base
// name of path, resolved against the current working directory.
func LocalSocketPath(path string) string {
	if path == "" {
		path = DefaultSocketPath
	}
	return filepath.Base(path)
}
