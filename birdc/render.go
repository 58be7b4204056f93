// =============================================================================
// render.go - Reply Output
// =============================================================================
//
// Formats daemon replies for the terminal. Every write returns the printed
// width of the line (including its newline) so the pager can count how many
// screen rows it occupied.
//
// Styling is optional and controlled by the "color" setting:
//   - auto:   colors only when stdout is a terminal and NO_COLOR is unset
//   - always: ANSI colors even when piped
//   - never:  plain text
//
// =============================================================================

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Color modes accepted in the configuration.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// renderer writes reply lines to the terminal.
type renderer struct {
	w   io.Writer
	out *termenv.Output
}

// GO CONCEPT: Functional Options
// ------------------------------
// termenv.NewOutput takes a variadic list of "option" functions, each of
// which tweaks the Output before it is returned. WithProfile pins the
// color profile instead of letting termenv probe the terminal, which keeps
// output deterministic when we already know what we want.
//
// Compare with Python: keyword arguments with defaults play the same role:
// `Output(w, profile=ASCII)`.

// newRenderer creates a renderer for w. isTTY tells whether w is a terminal.
func newRenderer(w io.Writer, colorMode string, isTTY bool) *renderer {
	profile := termenv.Ascii
	switch colorMode {
	case colorAlways:
		profile = termenv.ANSI
	case colorAuto, "":
		if isTTY && !termenv.EnvNoColor() {
			profile = termenv.ANSI
		}
	}
	return &renderer{
		w:   w,
		out: termenv.NewOutput(w, termenv.WithProfile(profile)),
	}
}

// validColorMode reports whether mode is a known color setting.
func validColorMode(mode string) bool {
	switch mode {
	case colorAuto, colorAlways, colorNever:
		return true
	}
	return false
}

// write prints s followed by a newline and returns the printed width.
func (r *renderer) write(s string) int {
	fmt.Fprintln(r.w, s)
	return ansi.StringWidth(s) + 1
}

// async prints an asynchronous notification.
func (r *renderer) async(text string) int {
	return r.write(r.out.String(">>>").Bold().String() + " " + text)
}

// plain prints reply text unchanged.
func (r *renderer) plain(text string) int {
	return r.write(text)
}

// failure prints the text of an error reply (code 8000 and above).
func (r *renderer) failure(text string) int {
	return r.write(r.out.String(text).Foreground(r.out.Color("1")).String())
}

// malformed prints a line that does not follow the protocol.
func (r *renderer) malformed(line string) int {
	return r.write(r.out.String("???").Foreground(r.out.Color("3")).String() + " <" + line + ">")
}

// notice prints a local message that did not come from the daemon.
func (r *renderer) notice(text string) {
	fmt.Fprintln(r.w, text)
}
