package birdprotocol

import (
	"fmt"
)

// ReplyKind represents the kind of a line received from the daemon.
type ReplyKind int

const (
	// KindMalformed is a line that matches none of the other kinds.
	KindMalformed ReplyKind = iota
	// KindAsync is an asynchronous notification ("+text").
	KindAsync
	// KindContinuation continues the current reply (" text").
	KindContinuation
	// KindCoded carries a 4-digit reply code ("DDDD text" or "DDDD-text").
	KindCoded
)

// String returns a short name for the kind.
func (k ReplyKind) String() string {
	switch k {
	case KindAsync:
		return "async"
	case KindContinuation:
		return "continuation"
	case KindCoded:
		return "coded"
	case KindMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Reply is one classified line from the daemon.
type Reply struct {
	Kind ReplyKind

	// Code is the reply code. Only meaningful for KindCoded.
	Code int

	// Final is true on the last line of a reply (code followed by a space).
	// Only meaningful for KindCoded.
	Final bool

	// Text is the payload: the line without its prefix or code. For
	// KindMalformed it is the whole line.
	Text string

	// Raw is the line exactly as received, without the newline.
	Raw string
}

// NewCodedReply creates a coded reply line.
func NewCodedReply(code int, final bool, text string) Reply {
	r := Reply{Kind: KindCoded, Code: code, Final: final, Text: text}
	r.Raw = r.Format()
	return r
}

// NewAsyncReply creates an asynchronous notification line.
func NewAsyncReply(text string) Reply {
	return Reply{Kind: KindAsync, Text: text, Raw: string(AsyncPrefix) + text}
}

// NewContinuationReply creates a continuation line.
func NewContinuationReply(text string) Reply {
	return Reply{Kind: KindContinuation, Text: text, Raw: string(ContinuationPrefix) + text}
}

// IsFinal returns true if this line completes a reply.
func (r Reply) IsFinal() bool {
	return r.Kind == KindCoded && r.Final
}

// IsFailure returns true for coded lines that report an error.
func (r Reply) IsFailure() bool {
	return r.Kind == KindCoded && IsFailureCode(r.Code)
}

// Format returns the reply formatted for transmission, without the
// trailing newline.
func (r Reply) Format() string {
	switch r.Kind {
	case KindAsync:
		return string(AsyncPrefix) + r.Text
	case KindContinuation:
		return string(ContinuationPrefix) + r.Text
	case KindCoded:
		marker := MoreMarker
		if r.Final {
			marker = FinalMarker
		}
		return fmt.Sprintf("%04d%c%s", r.Code, marker, r.Text)
	default:
		return r.Raw
	}
}
