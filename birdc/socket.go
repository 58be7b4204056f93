// =============================================================================
// socket.go - Control Socket Selection and Connection
// =============================================================================
//
// Chooses which control socket to connect to:
//
//  1. -s/--socket on the command line
//  2. -l/--local: the socket's base name in the current directory
//  3. "socket" from the config file or BIRDC_SOCKET
//  4. /run/bird/bird.ctl
//
// When the connection fails, a short hint explains the most common causes.
//
// =============================================================================

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nkmideb/birdc/birdprotocol"
	"golang.org/x/sys/unix"
	"pkt.systems/pslog"
)

// resolveSocketPath picks the socket path. explicit is true when the path
// came from -s on the command line.
func resolveSocketPath(configured string, explicit, local bool) string {
	if configured == "" {
		configured = birdprotocol.DefaultSocketPath
	}
	if explicit {
		return configured
	}
	if local {
		return birdprotocol.LocalSocketPath(configured)
	}
	return configured
}

// connect opens the control socket and attaches the logger to it.
func connect(path string, log pslog.Logger) (*birdprotocol.Conn, error) {
	log.Debug("connecting", "socket", path)
	conn, err := birdprotocol.Dial(path)
	if err != nil {
		return nil, err
	}
	conn.SetLogger(log)
	return conn, nil
}

// connectHint returns an extra line of advice for a connection error, or
// "" when there is nothing useful to add.
func connectHint(path string, err error) string {
	switch {
	case errors.Is(err, birdprotocol.ErrPathTooLong):
		return "Use a shorter path or start the client from the socket's directory with -l."
	case errors.Is(err, unix.ENOENT):
		if _, statErr := os.Stat(path); statErr != nil {
			return fmt.Sprintf("Is the daemon running? No socket at %s.", path)
		}
	case errors.Is(err, unix.ECONNREFUSED):
		return "The socket exists but nobody is listening. Is the daemon running?"
	case errors.Is(err, unix.EACCES):
		return "Permission denied. The control socket is usually restricted to its owner group."
	}
	return ""
}
