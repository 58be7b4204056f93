package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRendererPlainOutput(t *testing.T) {
	var out bytes.Buffer
	r := newRenderer(&out, colorNever, true)

	tests := []struct {
		name      string
		write     func() int
		want      string
		wantWidth int
	}{
		{"plain", func() int { return r.plain("BIRD 2.15") }, "BIRD 2.15\n", 10},
		{"async", func() int { return r.async("Reconfigured") }, ">>> Reconfigured\n", 17},
		{"failure", func() int { return r.failure("Access denied") }, "Access denied\n", 14},
		{"malformed", func() int { return r.malformed("xyz") }, "??? <xyz>\n", 10},
		{"empty", func() int { return r.plain("") }, "\n", 1},
		{"wide", func() int { return r.plain("ルート") }, "ルート\n", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			width := tt.write()
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
			if width != tt.wantWidth {
				t.Errorf("width = %d, want %d", width, tt.wantWidth)
			}
		})
	}
}

func TestRendererColor(t *testing.T) {
	var out bytes.Buffer
	r := newRenderer(&out, colorAlways, false)

	width := r.failure("Access denied")
	if !strings.Contains(out.String(), "\x1b[") {
		t.Errorf("output = %q, want ANSI escapes", out.String())
	}
	if !strings.Contains(out.String(), "Access denied") {
		t.Errorf("output = %q, want the text", out.String())
	}
	if width != len("Access denied")+1 {
		t.Errorf("width = %d, escape sequences must not count", width)
	}
}

func TestRendererAutoColor(t *testing.T) {
	tests := []struct {
		name    string
		isTTY   bool
		noColor string
		want    bool
	}{
		{"terminal", true, "", true},
		{"pipe", false, "", false},
		{"NO_COLOR", true, "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("CLICOLOR", "")
			var out bytes.Buffer
			r := newRenderer(&out, colorAuto, tt.isTTY)
			r.async("x")
			if got := strings.Contains(out.String(), "\x1b["); got != tt.want {
				t.Errorf("colored = %v, want %v (output %q)", got, tt.want, out.String())
			}
		})
	}
}

func TestRendererNotice(t *testing.T) {
	var out bytes.Buffer
	r := newRenderer(&out, colorAlways, true)
	r.notice(helpHint)
	if out.String() != helpHint+"\n" {
		t.Errorf("output = %q, want %q", out.String(), helpHint+"\n")
	}
}

func TestValidColorMode(t *testing.T) {
	for _, mode := range []string{colorAuto, colorAlways, colorNever} {
		if !validColorMode(mode) {
			t.Errorf("validColorMode(%q) = false", mode)
		}
	}
	for _, mode := range []string{"", "yes", "Always"} {
		if validColorMode(mode) {
			t.Errorf("validColorMode(%q) = true", mode)
		}
	}
}
