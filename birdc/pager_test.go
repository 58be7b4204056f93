package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// failingKeys fails every key read.
type failingKeys struct{}

func (failingKeys) ReadKey() (byte, error) {
	return 0, errors.New("terminal gone")
}

func newTestPager(keys KeyReader, rows, cols int) (*Pager, *bytes.Buffer) {
	var out bytes.Buffer
	p := NewPager(keys, &out, newTestLogger(io.Discard))
	p.SetGeometry(rows, cols)
	return p, &out
}

func TestPagerDefaults(t *testing.T) {
	p, _ := newTestPager(&scriptedKeys{}, 0, -1)

	if rows, cols := p.Geometry(); rows != defaultRows || cols != defaultCols {
		t.Errorf("Geometry() = %dx%d, want %dx%d", rows, cols, defaultRows, defaultCols)
	}
	if p.Lines() != pagerBaseline {
		t.Errorf("Lines() = %d, want %d", p.Lines(), pagerBaseline)
	}
}

func TestPagerCountWrapsLongLines(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, pagerBaseline},
		{1, pagerBaseline + 1},
		{10, pagerBaseline + 1},
		{11, pagerBaseline + 2},
		{25, pagerBaseline + 3},
	}

	for _, tt := range tests {
		p, _ := newTestPager(&scriptedKeys{}, 100, 10)
		p.Count(tt.width)
		if p.Lines() != tt.want {
			t.Errorf("Count(%d): Lines() = %d, want %d", tt.width, p.Lines(), tt.want)
		}
	}
}

func TestPagerKeys(t *testing.T) {
	tests := []struct {
		name      string
		keys      string
		wantLines int
		wantSkip  bool
		wantReads int
	}{
		{"space", " ", pagerBaseline, false, 1},
		{"enter", "\n", 4, false, 1},
		{"return", "\r", 4, false, 1},
		{"quit", "q", 5, true, 1},
		{"other keys ignored", "xy ", pagerBaseline, false, 3},
		{"end of input", "", 5, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := &scriptedKeys{keys: []byte(tt.keys)}
			p, out := newTestPager(keys, 5, 80)

			for i := 0; i < 3; i++ {
				p.Count(10)
			}

			if got := out.String(); got != morePrompt+moreClear {
				t.Errorf("output = %q, want %q", got, morePrompt+moreClear)
			}
			if p.Lines() != tt.wantLines {
				t.Errorf("Lines() = %d, want %d", p.Lines(), tt.wantLines)
			}
			if p.Skipping() != tt.wantSkip {
				t.Errorf("Skipping() = %v, want %v", p.Skipping(), tt.wantSkip)
			}
			if keys.read != tt.wantReads {
				t.Errorf("read %d keys, want %d", keys.read, tt.wantReads)
			}
		})
	}
}

func TestPagerPausesAgainAfterSpace(t *testing.T) {
	keys := &scriptedKeys{keys: []byte("  ")}
	p, out := newTestPager(keys, 5, 80)

	// 2 + 3 lines fill the screen; after the space the count is back to
	// 2, so two more lines fit and the third pauses again.
	for i := 0; i < 3; i++ {
		p.Count(10)
	}
	p.Count(10)
	p.Count(10)
	if got := strings.Count(out.String(), morePrompt); got != 1 {
		t.Fatalf("paused %d times, want 1", got)
	}
	p.Count(10)
	if got := strings.Count(out.String(), morePrompt); got != 2 {
		t.Errorf("paused %d times, want 2", got)
	}
}

func TestPagerEnterAdvancesOneLine(t *testing.T) {
	keys := &scriptedKeys{keys: []byte("\n\n")}
	p, out := newTestPager(keys, 5, 80)

	for i := 0; i < 3; i++ {
		p.Count(10)
	}
	p.Count(10)
	if got := strings.Count(out.String(), morePrompt); got != 2 {
		t.Errorf("paused %d times, want 2", got)
	}
}

func TestPagerKeyErrorSkips(t *testing.T) {
	p, _ := newTestPager(failingKeys{}, 3, 80)
	p.Count(10)

	if !p.Skipping() {
		t.Error("a failed key read should skip the rest of the reply")
	}
}

func TestPagerResetAndEndReply(t *testing.T) {
	p, _ := newTestPager(&scriptedKeys{keys: []byte("q")}, 3, 80)
	p.Count(10)
	if !p.Skipping() {
		t.Fatal("expected skipping after 'q'")
	}

	p.EndReply()
	if p.Skipping() {
		t.Error("EndReply() should clear skipping")
	}
	p.Reset()
	if p.Lines() != pagerBaseline {
		t.Errorf("Lines() after Reset = %d, want %d", p.Lines(), pagerBaseline)
	}
}
