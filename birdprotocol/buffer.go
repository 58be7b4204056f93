package birdprotocol

import (
	"bytes"
)

// LineBuffer accumulates bytes read from the daemon and splits them into
// complete lines.
//
// The buffer has a fixed capacity. When it fills up without containing a
// newline, the partial line is dropped, TooLongLine is emitted in its
// place and the rest of that line is discarded as it arrives.
//
// Usage:
//
//	buf := NewLineBuffer(ReadBufferSize)
//	n, _ := read(fd, buf.Free())
//	buf.Commit(n)
//	for _, line := range buf.Lines() { ... }
type LineBuffer struct {
	buf []byte
	n   int

	// discarding is set after an overflow, until the end of the
	// oversized line has been seen.
	discarding bool
}

// NewLineBuffer creates an empty buffer that holds at most capacity bytes
// of unterminated data. A capacity below 2 is raised to 2.
func NewLineBuffer(capacity int) *LineBuffer {
	if capacity < 2 {
		capacity = 2
	}
	return &LineBuffer{buf: make([]byte, capacity)}
}

// Free returns the writable tail of the buffer. It is never empty: a full
// buffer is flushed by Commit before control returns to the caller.
func (b *LineBuffer) Free() []byte {
	return b.buf[b.n:]
}

// Commit marks n bytes of Free() as filled.
func (b *LineBuffer) Commit(n int) {
	if n < 0 {
		n = 0
	}
	if b.n+n > len(b.buf) {
		n = len(b.buf) - b.n
	}
	b.n += n
}

// Append copies as much of p as fits into the buffer and returns the
// number of bytes taken. Callers feeding arbitrary chunks must drain
// Lines() and call Append again with the remainder.
func (b *LineBuffer) Append(p []byte) int {
	n := copy(b.Free(), p)
	b.Commit(n)
	return n
}

// Len returns the number of buffered bytes not yet returned as lines.
func (b *LineBuffer) Len() int {
	return b.n
}

// Cap returns the buffer capacity.
func (b *LineBuffer) Cap() int {
	return len(b.buf)
}

// Lines extracts every complete line from the buffer, in arrival order and
// without the terminating newline. A trailing partial line is kept for the
// next call. If the buffer is full and holds no newline, the buffered
// bytes are dropped and TooLongLine is returned in their place.
func (b *LineBuffer) Lines() []string {
	var lines []string
	start := 0

	for {
		i := bytes.IndexByte(b.buf[start:b.n], '\n')
		if i < 0 {
			break
		}
		end := start + i
		if b.discarding {
			b.discarding = false
		} else {
			lines = append(lines, string(b.buf[start:end]))
		}
		start = end + 1
	}

	// Move the partial line to the front.
	if start > 0 {
		b.n = copy(b.buf, b.buf[start:b.n])
	}

	if b.n == len(b.buf) {
		if !b.discarding {
			lines = append(lines, TooLongLine)
			b.discarding = true
		}
		b.n = 0
	} else if b.discarding {
		b.n = 0
	}

	return lines
}
