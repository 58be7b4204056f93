// =============================================================================
// pager.go - Screen Pagination
// =============================================================================
//
// The pager stops output after a screenful and waits for a key:
//
//	--More--
//
//	space   show another screen
//	enter   show one more line
//	q       drop the rest of the current reply
//
// It only gates printing. Reply lines are still read from the socket and
// processed while the rest of a reply is being skipped.
//
// =============================================================================

package main

import (
	"fmt"
	"io"

	"pkt.systems/pslog"
)

const (
	// defaultRows and defaultCols are used until the terminal reports
	// its real size.
	defaultRows = 25
	defaultCols = 80

	// pagerBaseline is the line count right after a command is submitted;
	// the prompt and the echoed command already occupy the screen.
	pagerBaseline = 2

	morePrompt = "--More--\r"
	moreClear  = "        \r"
)

// KeyReader reads a single keypress without waiting for a newline.
type KeyReader interface {
	ReadKey() (byte, error)
}

// Pager counts printed screen rows and pauses when a screen is full.
type Pager struct {
	rows, cols int

	// lines is the number of rows printed since the last pause or reset.
	lines int

	// skip is set by 'q' and cleared when the current reply ends.
	skip bool

	keys KeyReader
	out  io.Writer
	log  pslog.Logger
}

// NewPager creates a pager with the default 25x80 geometry.
func NewPager(keys KeyReader, out io.Writer, log pslog.Logger) *Pager {
	return &Pager{
		rows:  defaultRows,
		cols:  defaultCols,
		lines: pagerBaseline,
		keys:  keys,
		out:   out,
		log:   log,
	}
}

// SetGeometry updates the terminal size. Non-positive values are ignored.
func (p *Pager) SetGeometry(rows, cols int) {
	if rows > 0 {
		p.rows = rows
	}
	if cols > 0 {
		p.cols = cols
	}
}

// Geometry returns the terminal size the pager counts against.
func (p *Pager) Geometry() (rows, cols int) {
	return p.rows, p.cols
}

// Reset restores the baseline count for a newly submitted command.
func (p *Pager) Reset() {
	p.lines = pagerBaseline
}

// Lines returns the number of rows counted since the last reset or pause.
func (p *Pager) Lines() int {
	return p.lines
}

// Skipping reports whether the rest of the current reply is suppressed.
func (p *Pager) Skipping() bool {
	return p.skip
}

// EndReply clears the skip state once the reply is complete.
func (p *Pager) EndReply() {
	p.skip = false
}

// Count records a printed line of the given width (including the newline)
// and pauses if the screen is full.
func (p *Pager) Count(width int) {
	if width <= 0 {
		return
	}
	p.lines += (width + p.cols - 1) / p.cols
	if p.lines >= p.rows {
		p.pause()
	}
}

// pause shows the --More-- marker and waits for a recognised key.
func (p *Pager) pause() {
	fmt.Fprint(p.out, morePrompt)
	p.log.Debug("pager paused", "lines", p.lines, "rows", p.rows)

	for done := false; !done; {
		key, err := p.keys.ReadKey()
		if err != nil {
			p.log.Debug("pager key read failed", "error", err)
			key = 'q'
		}
		switch key {
		case ' ':
			p.lines = pagerBaseline
			done = true
		case '\n', '\r':
			p.lines--
			done = true
		case 'q':
			p.skip = true
			done = true
		}
	}

	fmt.Fprint(p.out, moreClear)
}
