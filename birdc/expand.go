// =============================================================================
// expand.go - Command Abbreviation Expansion
// =============================================================================
//
// Before a command is sent, each leading word is matched against the
// command tree and replaced by its full spelling:
//
//	sh pro all        ->  show protocols all
//	sh ro for 10.0.0.1 ->  show route for 10.0.0.1
//	conf soft         ->  configure soft
//
// Expansion stops at the first word that is not a known keyword; that word
// and everything after it are passed through unchanged as arguments.
//
// =============================================================================

package main

import (
	"errors"
	"strings"
)

// errNoSuchCommand is returned when the words do not lead to a command.
var errNoSuchCommand = errors.New("No such command. Press `?' for help.")

// AmbiguousError is returned when an abbreviation matches several
// commands.
type AmbiguousError struct {
	Word       string
	Candidates []string // help lines of the matching commands
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	var b strings.Builder
	b.WriteString("Ambiguous command, possible expansions are:")
	for _, c := range e.Candidates {
		b.WriteString("\n")
		b.WriteString(c)
	}
	return b.String()
}

// isBlank matches the word separators of command input.
func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// Expand rewrites an abbreviated command to its full form. The returned
// command consists of the full command name followed by the unexpanded
// remainder of the input.
func (t *commandTree) Expand(line string) (string, error) {
	n := t.root
	rest := line

	for {
		i := 0
		for i < len(rest) && isBlank(rest[i]) {
			i++
		}
		if i == len(rest) {
			rest = ""
			break
		}
		j := i
		for j < len(rest) && !isBlank(rest[j]) {
			j++
		}

		m, ambiguous := n.findAbbrev(rest[i:j])
		if ambiguous != nil {
			err := &AmbiguousError{Word: rest[i:j]}
			for _, c := range ambiguous {
				if c.entry != nil {
					err.Candidates = append(err.Candidates, helpLine(c.entry))
				}
			}
			return "", err
		}
		if m == nil {
			break
		}
		n = m
		rest = rest[j:]
	}

	if !n.runnable() {
		return "", errNoSuchCommand
	}
	return n.entry.name + rest, nil
}
