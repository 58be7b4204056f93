// =============================================================================
// terminal.go - Raw Key Input and Terminal Size
// =============================================================================
//
// The pager needs a single keypress without waiting for Enter. On a
// terminal that means switching the line discipline to raw mode for the
// duration of one read, then restoring it. When input is not a terminal
// (a pipe in tests), bytes are read as they are.
//
// =============================================================================

package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// termKeys reads single keys from a file, usually stdin.
type termKeys struct {
	f *os.File
}

// ReadKey implements KeyReader.
func (k termKeys) ReadKey() (byte, error) {
	fd := int(k.f.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return 0, err
		}
		defer term.Restore(fd, state)
	}

	var buf [1]byte
	for {
		n, err := k.f.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
	}
}

// terminalSize returns the size of the terminal behind f, or 0, 0 when f
// is not a terminal.
func terminalSize(f *os.File) (rows, cols int) {
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}
	return rows, cols
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
