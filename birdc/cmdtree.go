// =============================================================================
// cmdtree.go - Command Tree and Context Help
// =============================================================================
//
// The daemon's commands form a tree of words: "show" -> "protocols" ->
// "all". Each word of user input may be abbreviated to any unique prefix,
// so "sh pro a" means "show protocols all". The tree is used for three
// things:
//
//   - expanding abbreviated input before it is sent (expand.go)
//   - context help when a line ends with '?'
//   - tab completion in the line editor
//
// =============================================================================

package main

import (
	"fmt"
	"io"
	"strings"
)

// command describes one entry of the command table.
type command struct {
	// name is the full, unabbreviated command ("show route").
	name string

	// args documents the arguments the daemon accepts after name.
	args string

	// help is the one-line description shown by '?'.
	help string

	// real is false for help-only entries that describe a group of
	// commands ("show") but cannot be sent on their own.
	real bool
}

// GO CONCEPT: Package-Level Slice Literals
// ----------------------------------------
// A slice literal at package level is initialized once, before main()
// runs. Here it acts as a static table; newCommandTree turns it into a
// tree at startup.
//
// Compare with Python: a module-level list of tuples, e.g.
// `COMMANDS = [("show status", "", "Show router status"), ...]`.

// birdCommands is the table of commands understood by the daemon.
var birdCommands = []command{
	{"show", "...", "Show status information", false},
	{"show status", "", "Show router status", true},
	{"show memory", "", "Show memory usage", true},
	{"show protocols", "[<protocol> | \"<pattern>\"]", "Show routing protocols", true},
	{"show protocols all", "[<protocol> | \"<pattern>\"]", "Show routing protocol details", true},
	{"show interfaces", "", "Show network interfaces", true},
	{"show interfaces summary", "", "Show summary of network interfaces", true},
	{"show route", "[<prefix>|for <prefix>|for <ip>] [table <t>] [filter <f>|where <cond>] [all] [primary] [filtered] [(export|preexport|noexport) <p>] [protocol <p>] [stats|count]", "Show routing table", true},
	{"show symbols", "[table|filter|function|protocol|template|roa|<symbol>]", "Show all known symbolic names", true},
	{"show static", "[<name>]", "Show details of static protocol", true},
	{"show ospf", "[<name>]", "Show information about OSPF protocol", true},
	{"show ospf interface", "[<name>] [\"<interface>\"]", "Show information about interface", true},
	{"show ospf neighbors", "[<name>] [\"<interface>\"]", "Show information about OSPF neighbors", true},
	{"show ospf topology", "[all] [<name>]", "Show information about OSPF network topology", true},
	{"show ospf state", "[all] [<name>]", "Show information about OSPF network state", true},
	{"show ospf lsadb", "[global | area <id> | link] [type <num>] [lsid <id>] [self | router <id>] [<proto>]", "Show content of OSPF LSA database", true},
	{"show rip", "...", "Show information about RIP protocol", false},
	{"show rip interfaces", "[<name>] [\"<interface>\"]", "Show information about RIP interfaces", true},
	{"show rip neighbors", "[<name>] [\"<interface>\"]", "Show information about RIP neighbors", true},
	{"show babel", "...", "Show information about Babel protocol", false},
	{"show babel interfaces", "[<name>] [\"<interface>\"]", "Show information about Babel interfaces", true},
	{"show babel neighbors", "[<name>] [\"<interface>\"]", "Show information about Babel neighbors", true},
	{"show babel entries", "[<name>]", "Show information about Babel prefix entries", true},
	{"show babel routes", "[<name>]", "Show information about Babel route entries", true},
	{"show bfd", "...", "Show information about BFD protocol", false},
	{"show bfd sessions", "[<name>]", "Show information about BFD sessions", true},
	{"configure", "[soft] [\"<file>\"] [timeout [<sec>]]", "Reload configuration", true},
	{"configure confirm", "", "Confirm last configuration change - deactivate undo timeout", true},
	{"configure undo", "", "Undo last configuration change", true},
	{"configure check", "[\"<file>\"]", "Parse configuration and check its validity", true},
	{"down", "", "Shut the daemon down", true},
	{"graceful", "...", "Graceful restart control", false},
	{"graceful restart", "", "Shut the daemon down for graceful restart", true},
	{"disable", "(<protocol> | \"<pattern>\" | all) [message]", "Disable protocol", true},
	{"enable", "(<protocol> | \"<pattern>\" | all) [message]", "Enable protocol", true},
	{"restart", "(<protocol> | \"<pattern>\" | all) [message]", "Restart protocol", true},
	{"reload", "<protocol> | \"<pattern>\" | all", "Reload protocol", true},
	{"reload in", "<protocol> | \"<pattern>\" | all", "Reload protocol (just imported routes)", true},
	{"reload out", "<protocol> | \"<pattern>\" | all", "Reload protocol (just exported routes)", true},
	{"debug", "(<protocol> | \"<pattern>\" | all) (all | off | { states|routes|filters|interfaces|events|packets })", "Control protocol debugging via log", true},
	{"mrtdump", "(<protocol> | \"<pattern>\" | all) (all | off | { states|messages })", "Control protocol debugging via MRTdump files", true},
	{"dump", "...", "Dump debugging information", false},
	{"dump resources", "", "Dump all allocated resource", true},
	{"dump sockets", "", "Dump open sockets", true},
	{"dump events", "", "Dump event log", true},
	{"dump interfaces", "", "Dump interface information", true},
	{"dump neighbors", "", "Dump neighbor cache", true},
	{"dump attributes", "", "Dump attribute cache", true},
	{"dump routes", "", "Dump routing table", true},
	{"dump protocols", "", "Dump protocol information", true},
	{"echo", "[all | off | { debug|trace|info|remote|warning|error|auth }] [<buffer-size>]", "Control echoing of log messages", true},
	{"eval", "<expr>", "Evaluate an expression", true},
	{"restrict", "", "Restrict current CLI session to safe commands", true},
	{"help", "", "Description of the help system", true},
	{"exit", "", "Exit the client", true},
	{"quit", "", "Quit the client", true},
}

// cmdNode is one word in the command tree.
type cmdNode struct {
	token    string
	entry    *command
	children []*cmdNode
}

// commandTree indexes a command table by words.
type commandTree struct {
	root *cmdNode
}

// newCommandTree builds a tree from cmds. Children keep table order so
// help and completion output is stable.
func newCommandTree(cmds []command) *commandTree {
	t := &commandTree{root: &cmdNode{}}
	for i := range cmds {
		t.insert(&cmds[i])
	}
	return t
}

func (t *commandTree) insert(c *command) {
	n := t.root
	for _, word := range strings.Fields(c.name) {
		next := n.child(word)
		if next == nil {
			next = &cmdNode{token: word}
			n.children = append(n.children, next)
		}
		n = next
	}
	n.entry = c
}

// child returns the child with exactly this token.
func (n *cmdNode) child(token string) *cmdNode {
	for _, c := range n.children {
		if c.token == token {
			return c
		}
	}
	return nil
}

// findAbbrev resolves word against the children of n. An exact match
// wins; otherwise a unique prefix match is returned. When several
// children share the prefix, the candidates are returned instead.
func (n *cmdNode) findAbbrev(word string) (match *cmdNode, ambiguous []*cmdNode) {
	var candidates []*cmdNode
	for _, c := range n.children {
		if c.token == word {
			return c, nil
		}
		if strings.HasPrefix(c.token, word) {
			candidates = append(candidates, c)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		return candidates[0], nil
	default:
		return nil, candidates
	}
}

// runnable reports whether the node ends a command that can be sent.
func (n *cmdNode) runnable() bool {
	return n.entry != nil && n.entry.real
}

// helpLine formats one command for the help listing.
func helpLine(c *command) string {
	usage := c.name
	if c.args != "" {
		usage += " " + c.args
	}
	return fmt.Sprintf("%-45s  %s", usage, c.help)
}

// writeNodeHelp lists the help lines of the given nodes.
func writeNodeHelp(w io.Writer, nodes []*cmdNode) {
	for _, n := range nodes {
		if n.entry != nil {
			fmt.Fprintln(w, helpLine(n.entry))
		}
	}
}

// Help writes context help for a partially typed command: the command
// reached by the complete words, followed by everything that may come
// next. An ambiguous word lists its possible expansions instead.
func (t *commandTree) Help(w io.Writer, line string) {
	n := t.root
	for _, word := range strings.Fields(line) {
		m, ambiguous := n.findAbbrev(word)
		if ambiguous != nil {
			writeNodeHelp(w, ambiguous)
			return
		}
		if m == nil {
			break
		}
		n = m
	}

	if n.entry != nil {
		fmt.Fprintln(w, helpLine(n.entry))
	}
	writeNodeHelp(w, n.children)
}

// GO CONCEPT: Implicit Interface Satisfaction
// -------------------------------------------
// readline.Config.AutoComplete accepts any value with a method
//
//	Do(line []rune, pos int) (newLine [][]rune, length int)
//
// commandTree never mentions the readline interface by name; having the
// method is enough.
//
// Compare with Python: duck typing, but checked at compile time.

// Do implements readline's AutoCompleter. It returns the possible
// suffixes of the word under the cursor and the length of that word.
func (t *commandTree) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	words := strings.Fields(text)

	partial := ""
	if len(words) > 0 && !strings.HasSuffix(text, " ") && !strings.HasSuffix(text, "\t") {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	n := t.root
	for _, word := range words {
		m, _ := n.findAbbrev(word)
		if m == nil {
			return nil, 0
		}
		n = m
	}

	var suffixes [][]rune
	for _, c := range n.children {
		if strings.HasPrefix(c.token, partial) {
			suffixes = append(suffixes, []rune(c.token[len(partial):]+" "))
		}
	}
	return suffixes, len([]rune(partial))
}
