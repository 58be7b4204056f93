package birdprotocol

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line  string
		kind  ReplyKind
		code  int
		final bool
		text  string
	}{
		{"0001 BIRD 2.15 ready.", KindCoded, 1, true, "BIRD 2.15 ready."},
		{"0013 Daemon is up and running", KindCoded, 13, true, "Daemon is up and running"},
		{"1000-BIRD 2.15", KindCoded, 1000, false, "BIRD 2.15"},
		{"8001 fail", KindCoded, 8001, true, "fail"},
		{"9001 syntax error", KindCoded, 9001, true, "syntax error"},
		{"0000 ", KindCoded, 0, true, ""},
		{"+reconfigured", KindAsync, 0, false, "reconfigured"},
		{"+", KindAsync, 0, false, ""},
		{" continuation text", KindContinuation, 0, false, "continuation text"},
		{" ", KindContinuation, 0, false, ""},
		{"", KindMalformed, 0, false, ""},
		{"0013", KindMalformed, 0, false, "0013"},
		{"0013x", KindMalformed, 0, false, "0013x"},
		{"13 ok", KindMalformed, 0, false, "13 ok"},
		{"12a4 ok", KindMalformed, 0, false, "12a4 ok"},
		{"-123 ok", KindMalformed, 0, false, "-123 ok"},
		{"garbage", KindMalformed, 0, false, "garbage"},
		{TooLongLine, KindMalformed, 0, false, TooLongLine},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r := Classify(tt.line)
			if r.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", r.Kind, tt.kind)
			}
			if r.Code != tt.code {
				t.Errorf("code = %d, want %d", r.Code, tt.code)
			}
			if r.Final != tt.final {
				t.Errorf("final = %v, want %v", r.Final, tt.final)
			}
			if r.Text != tt.text {
				t.Errorf("text = %q, want %q", r.Text, tt.text)
			}
			if r.Raw != tt.line {
				t.Errorf("raw = %q, want %q", r.Raw, tt.line)
			}
		})
	}
}

func TestClassifyFormatRoundTrip(t *testing.T) {
	for _, line := range []string{"0013 ok", "1002-partial", "+async", " cont"} {
		if got := Classify(line).Format(); got != line {
			t.Errorf("Classify(%q).Format() = %q", line, got)
		}
	}
}

func FuzzClassify(f *testing.F) {
	for _, seed := range []string{"0001 BIRD ready.", "1000-x", "+a", " b", "", "0013", "99999 x"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, line string) {
		r := Classify(line)
		if r.Raw != line {
			t.Fatalf("raw mismatch: %q vs %q", r.Raw, line)
		}
		switch r.Kind {
		case KindCoded:
			if r.Code < 0 || r.Code > MaxCode {
				t.Fatalf("code out of range: %d", r.Code)
			}
			if r.Format() != line {
				t.Fatalf("coded line does not round-trip: %q", line)
			}
		case KindAsync, KindContinuation, KindMalformed:
		default:
			t.Fatalf("unknown kind %d", r.Kind)
		}
	})
}
