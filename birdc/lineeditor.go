// =============================================================================
// lineeditor.go - Line Editing with History and Completion
// =============================================================================
//
// Provides line editing for the interactive client using the ergochat/readline
// library, which supports:
//   - Arrow key navigation (left/right to move cursor, up/down for history)
//   - Persistent command history saved to ~/.birdc_history
//   - Tab completion of command words from the command tree
//   - Standard Emacs keybindings (Ctrl-A, Ctrl-E, Ctrl-K, etc.)
//
// When stdin is not a terminal, or the client runs inside an Emacs comint
// buffer (INSIDE_EMACS is set), the editor falls back to plain line reads
// with no escape sequences.
//
// =============================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
)

const (
	// prompt is shown before each interactive command.
	prompt = "bird> "

	// defaultHistoryFile is relative to the home directory.
	defaultHistoryFile = ".birdc_history"

	// defaultHistoryLimit is the maximum number of history entries kept.
	defaultHistoryLimit = 500
)

// HistoryOptions configures persistent history.
type HistoryOptions struct {
	File  string
	Limit int
}

// LineEditor reads command lines from the user.
type LineEditor struct {
	// interactive is true when readline drives the terminal.
	interactive bool

	// showPrompt prints the prompt in non-interactive mode (comint).
	showPrompt bool

	rl      *readline.Instance
	scanner *bufio.Scanner
	out     io.Writer
}

// GO CONCEPT: Interfaces as Parameters
// ------------------------------------
// completer is typed as readline.AutoCompleter, an interface. Anything with
// a matching Do method can be passed, so tests can hand in nil or a fake
// while the client passes its command tree.
//
// Compare with Python: a protocol class (typing.Protocol) describes the
// same kind of structural contract.

// NewLineEditor creates a line editor for stdin. When stdin is not a
// terminal, or INSIDE_EMACS is set, it falls back to a plain scanner.
func NewLineEditor(history HistoryOptions, completer readline.AutoCompleter) *LineEditor {
	insideEmacs := os.Getenv("INSIDE_EMACS") != ""
	if !isTerminal(os.Stdin) || insideEmacs {
		return newScannerEditor(os.Stdin, os.Stdout, insideEmacs)
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:                 prompt,
		HistoryFile:            history.File,
		HistoryLimit:           history.Limit,
		DisableAutoSaveHistory: true,
		AutoComplete:           completer,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return newScannerEditor(os.Stdin, os.Stdout, false)
	}

	return &LineEditor{
		interactive: true,
		rl:          rl,
		out:         os.Stdout,
	}
}

// newScannerEditor creates a non-interactive editor reading from r.
func newScannerEditor(r io.Reader, out io.Writer, showPrompt bool) *LineEditor {
	return &LineEditor{
		scanner:    bufio.NewScanner(r),
		out:        out,
		showPrompt: showPrompt,
	}
}

// GetLine reads one line. It returns io.EOF at end of input; Ctrl-C at
// the interactive prompt is treated the same way.
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if le.interactive {
		return le.getInteractiveLine(prompt)
	}
	return le.getNonInteractiveLine(prompt)
}

func (le *LineEditor) getInteractiveLine(prompt string) (string, error) {
	le.rl.SetPrompt(prompt)

	line, err := le.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}

	if trimmed := strings.TrimSpace(line); trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}
	return line, nil
}

func (le *LineEditor) getNonInteractiveLine(prompt string) (string, error) {
	if le.showPrompt {
		fmt.Fprint(le.out, prompt)
	}

	if !le.scanner.Scan() {
		if err := le.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return le.scanner.Text(), nil
}

// Close releases the terminal and flushes history.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}

// IsInteractive reports whether readline drives the terminal.
func (le *LineEditor) IsInteractive() bool {
	return le.interactive
}

// expandHome resolves a leading "~/" against the home directory.
func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// homeDir returns the user's home directory, or "" if it is unknown.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// =============================================================================
// Terminal Input
// =============================================================================

// terminalInput is the session's view of the terminal. The line editor is
// created lazily by Init, after the startup sequence, so a batch run never
// touches the terminal state.
type terminalInput struct {
	history   HistoryOptions
	completer readline.AutoCompleter
	editor    *LineEditor
	size      *os.File
}

func newTerminalInput(history HistoryOptions, completer readline.AutoCompleter) *terminalInput {
	return &terminalInput{
		history:   history,
		completer: completer,
		size:      os.Stdout,
	}
}

// Init implements InputSource.
func (t *terminalInput) Init() error {
	if t.editor == nil {
		t.editor = NewLineEditor(t.history, t.completer)
	}
	return nil
}

// Geometry implements InputSource. Zero values keep the pager defaults.
func (t *terminalInput) Geometry() (rows, cols int) {
	return terminalSize(t.size)
}

// GetLine implements LineReader.
func (t *terminalInput) GetLine(prompt string) (string, error) {
	if t.editor == nil {
		return "", io.EOF
	}
	return t.editor.GetLine(prompt)
}

// Close releases the editor.
func (t *terminalInput) Close() {
	if t.editor != nil {
		t.editor.Close()
	}
}
