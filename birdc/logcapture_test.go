package main

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"pkt.systems/pslog"
)

// logEntry is one parsed structured log line.
type logEntry struct {
	Level   string
	Message string
	Fields  map[string]any
	Raw     string
}

// logCapture collects structured log lines written by pslog.
type logCapture struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	lines []string
}

func (c *logCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.buf.Write(p)
	for {
		data := c.buf.Bytes()
		idx := bytes.IndexByte(data, '\n')
		if idx == -1 {
			break
		}
		c.lines = append(c.lines, string(data[:idx]))
		c.buf.Next(idx + 1)
	}
	return len(p), nil
}

func (c *logCapture) entries() []logEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]logEntry, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, parseLogEntry(line))
	}
	return out
}

// find returns the first entry with the given message.
func (c *logCapture) find(t *testing.T, message string) logEntry {
	t.Helper()
	for _, e := range c.entries() {
		if e.Message == message {
			return e
		}
	}
	t.Fatalf("no log entry %q in %d entries", message, len(c.entries()))
	return logEntry{}
}

func parseLogEntry(line string) logEntry {
	payload := map[string]any{}
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		return logEntry{Raw: line}
	}
	level := ""
	if value, ok := payload["level"].(string); ok {
		level = value
	} else if value, ok := payload["lvl"].(string); ok {
		level = value
	}
	message := ""
	if value, ok := payload["message"].(string); ok {
		message = value
	} else if value, ok := payload["msg"].(string); ok {
		message = value
	}
	return logEntry{Level: level, Message: message, Fields: payload, Raw: line}
}

// newTestLogger returns a structured debug logger writing to w.
func newTestLogger(w io.Writer) pslog.Logger {
	return pslog.NewWithOptions(w, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
		MinLevel:      pslog.DebugLevel,
	})
}
