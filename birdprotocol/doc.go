// Package birdprotocol implements the client side of the BIRD control
// socket protocol: framing of the daemon's byte stream into reply lines,
// classification of those lines, and a non-blocking Unix domain socket
// transport that the birdc event loop multiplexes with terminal input.
//
// # Protocol Overview
//
// The protocol is line-oriented ASCII over a stream socket. The client
// sends one command per line and the daemon answers with one or more
// reply lines:
//
//	Command (client -> daemon):   <command text>\n
//	Final reply line:             DDDD <text>\n   (4-digit code, space)
//	Non-final reply line:         DDDD-<text>\n   (4-digit code, hyphen)
//	Continuation line:            ' '<text>\n     (leading space)
//	Asynchronous notification:    +<text>\n
//
// A reply is complete when its final coded line arrives; only then may
// the next command be sent. Codes below 8000 report success, 8000-8999
// are runtime errors and 9000-9999 are parse errors. The daemon greets
// every new connection with a final coded line, for example
// "0001 BIRD 2.15 ready.".
//
// Example Session:
//
//	SRV: 0001 BIRD 2.15 ready.
//	CLI: show status
//	SRV: 1000-BIRD 2.15
//	SRV: 1011-Router ID is 192.0.2.1
//	SRV:  Current server time is 2026-10-17 10:00:00.000
//	SRV: 0013 Daemon is up and running
//
// # Basic Usage
//
//	conn, err := birdprotocol.Dial("/run/bird/bird.ctl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	if err := conn.WriteCommand("show status"); err != nil {
//	    log.Fatal(err)
//	}
//	lines, err := conn.ReadLines()
//	for _, line := range lines {
//	    reply := birdprotocol.Classify(line)
//	    ...
//	}
//
// Conn is non-blocking: ReadLines performs a single read and may return
// no lines at all. Callers are expected to wait for readiness on Fd()
// (poll(2), select(2)) before calling it.
//
// # Thread Safety
//
// Conn and LineBuffer are not safe for concurrent use. The client owns
// them from a single event-loop goroutine.
package birdprotocol
