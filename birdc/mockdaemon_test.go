// =============================================================================
// mockdaemon_test.go - Mock BIRD Daemon for Testing
// =============================================================================
//
// GO CONCEPT: Test Helpers (Shared Test Infrastructure)
// -----------------------------------------------------
// Files ending in _test.go are only compiled for tests, and every test file
// in the package can use the helpers they define. This one provides a fake
// daemon that listens on a Unix socket, sends the greeting and answers each
// command with lines chosen by the test.
//
// Compare with Python: a fixture in conftest.py.
//
// =============================================================================

package main

import (
	"bufio"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// mockGreeting is the first line a daemon sends to a new client.
const mockGreeting = "0001 BIRD 2.15 ready."

// mockDaemon is a lightweight stand-in for the daemon's control socket.
type mockDaemon struct {
	listener   net.Listener
	socketPath string

	// handler returns the reply lines for one command, without newlines.
	// A nil reply closes the connection.
	handler func(cmd string) []string

	mu       sync.Mutex
	commands []string
	wg       sync.WaitGroup
}

// startMockDaemon starts a daemon answering commands with handler. It is
// stopped automatically when the test ends.
func startMockDaemon(t *testing.T, handler func(cmd string) []string) *mockDaemon {
	t.Helper()

	// Unix socket paths are short; t.TempDir() can exceed the limit.
	dir, err := os.MkdirTemp("/tmp", "birdc-test-")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	socketPath := filepath.Join(dir, "bird.ctl")

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("failed to listen on %s: %v", socketPath, err)
	}

	d := &mockDaemon{
		listener:   listener,
		socketPath: socketPath,
		handler:    handler,
	}

	d.wg.Add(1)
	go d.acceptLoop()

	t.Cleanup(func() {
		listener.Close()
		d.wg.Wait()
		os.RemoveAll(dir)
	})
	return d
}

func (d *mockDaemon) acceptLoop() {
	defer d.wg.Done()
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		d.wg.Add(1)
		go d.serve(conn)
	}
}

func (d *mockDaemon) serve(conn net.Conn) {
	defer d.wg.Done()
	defer conn.Close()

	w := bufio.NewWriter(conn)
	w.WriteString(mockGreeting + "\n")
	if w.Flush() != nil {
		return
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		cmd := scanner.Text()
		d.mu.Lock()
		d.commands = append(d.commands, cmd)
		d.mu.Unlock()

		lines := d.handler(cmd)
		if lines == nil {
			return
		}
		for _, line := range lines {
			w.WriteString(line + "\n")
		}
		if w.Flush() != nil {
			return
		}
	}
}

// received returns the commands the daemon has seen so far.
func (d *mockDaemon) received() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.commands...)
}

// statusHandler answers every command the way "show status" is answered.
func statusHandler(cmd string) []string {
	switch cmd {
	case "restrict":
		return []string{"0016 Access restricted"}
	case "show status":
		return []string{
			"1000-BIRD 2.15",
			"1011-Router ID is 192.0.2.1",
			" Current server time is 2026-10-17 10:00:00.000",
			"0013 Daemon is up and running",
		}
	case "disable all":
		return []string{"8007 Access denied"}
	case "down":
		return nil
	}
	return []string{"9001 syntax error, unexpected CF_SYM_UNDEFINED"}
}
