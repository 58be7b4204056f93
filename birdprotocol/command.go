package birdprotocol

import (
	"strings"
)

// Commands the client itself sends, independent of user input.
const (
	// RestrictCommand asks the daemon to limit the session to read-only
	// commands. It is sent once, before any other command.
	RestrictCommand = "restrict"
)

// lineBreaks replaces embedded line terminators so that one command always
// occupies exactly one protocol line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// FormatCommand returns the wire form of a command: the text followed by a
// single newline. Embedded CR and LF characters are replaced by spaces.
func FormatCommand(cmd string) []byte {
	cmd = lineBreaks.Replace(cmd)
	b := make([]byte, 0, len(cmd)+1)
	b = append(b, cmd...)
	return append(b, '\n')
}
