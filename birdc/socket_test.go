package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nkmideb/birdc/birdprotocol"
	"golang.org/x/sys/unix"
)

func TestResolveSocketPath(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		explicit   bool
		local      bool
		want       string
	}{
		{"default", "", false, false, birdprotocol.DefaultSocketPath},
		{"configured", "/run/bird6.ctl", false, false, "/run/bird6.ctl"},
		{"local default", "", false, true, "bird.ctl"},
		{"local configured", "/var/run/bird/custom.ctl", false, true, "custom.ctl"},
		{"explicit beats local", "/tmp/bird.ctl", true, true, "/tmp/bird.ctl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSocketPath(tt.configured, tt.explicit, tt.local); got != tt.want {
				t.Errorf("resolveSocketPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnect(t *testing.T) {
	d := startMockDaemon(t, statusHandler)

	conn, err := connect(d.socketPath, newTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("connect() error = %v", err)
	}
	defer conn.Close()

	if conn.Path() != d.socketPath {
		t.Errorf("Path() = %q, want %q", conn.Path(), d.socketPath)
	}
}

func TestConnectHint(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "bird.ctl")

	tests := []struct {
		name string
		path string
		err  error
		want string
	}{
		{"too long", "x", fmt.Errorf("connect: %w", birdprotocol.ErrPathTooLong), "shorter path"},
		{"missing", missing, fmt.Errorf("connect: %w", unix.ENOENT), "Is the daemon running?"},
		{"refused", missing, fmt.Errorf("connect: %w", unix.ECONNREFUSED), "nobody is listening"},
		{"permission", missing, fmt.Errorf("connect: %w", unix.EACCES), "Permission denied"},
		{"other", missing, fmt.Errorf("connect: %w", unix.EIO), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := connectHint(tt.path, tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("connectHint() = %q, want no hint", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("connectHint() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
