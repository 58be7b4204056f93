package birdprotocol

import (
	"errors"

	"golang.org/x/sys/unix"
	"pkt.systems/pslog"
)

// Conn is a non-blocking connection to the daemon's control socket.
//
// Unlike a net.Conn, Conn exposes its raw file descriptor so that the
// caller can wait for readiness together with other descriptors (the
// terminal, a wake-up pipe) in a single poll(2) call. All I/O is done
// through golang.org/x/sys/unix on that descriptor.
//
// Conn is not safe for concurrent use.
type Conn struct {
	fd   int
	path string
	buf  *LineBuffer
	log  pslog.Logger
}

// Dial connects to the control socket at path and switches the
// connection to non-blocking mode.
func Dial(path string) (*Conn, error) {
	var raw unix.RawSockaddrUnix
	if len(path) >= len(raw.Path) {
		return nil, newConnectError("connect", path, ErrPathTooLong)
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, newConnectError("create socket for", path, err)
	}
	unix.CloseOnExec(fd)

	for {
		err = unix.Connect(fd, &unix.SockaddrUnix{Name: path})
		if err != unix.EINTR {
			break
		}
	}
	// An interrupted connect keeps going in the background; EISCONN
	// from the retry means it already succeeded.
	if err != nil && err != unix.EISCONN {
		unix.Close(fd)
		return nil, newConnectError("connect to", path, err)
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, newConnectError("configure", path, err)
	}

	return &Conn{
		fd:   fd,
		path: path,
		buf:  NewLineBuffer(ReadBufferSize),
	}, nil
}

// SetLogger attaches a logger for wire-level debug output.
func (c *Conn) SetLogger(log pslog.Logger) {
	if log != nil {
		c.log = log.With("socket", c.path)
	}
}

// Path returns the socket path the connection was opened with.
func (c *Conn) Path() string {
	return c.path
}

// Fd returns the socket file descriptor, or -1 after Close.
func (c *Conn) Fd() int {
	return c.fd
}

// ReadLines performs one read from the socket and returns the complete
// lines it produced. It returns no lines and no error when the read would
// block or when only a partial line has arrived. An orderly shutdown by
// the daemon is reported as ErrConnectionClosed.
func (c *Conn) ReadLines() ([]string, error) {
	if c.fd < 0 {
		return nil, ErrClosed
	}

	var n int
	var err error
	for {
		n, err = unix.Read(c.fd, c.buf.Free())
		if err != unix.EINTR {
			break
		}
	}

	switch {
	case err == unix.EAGAIN:
		return nil, nil
	case err != nil:
		return nil, &ReadError{Cause: err}
	case n == 0:
		return nil, ErrConnectionClosed
	}

	c.buf.Commit(n)
	lines := c.buf.Lines()
	if c.log != nil {
		for _, line := range lines {
			c.log.Debug("recv", "line", line)
		}
	}
	return lines, nil
}

// WriteCommand sends cmd as a single protocol line. It loops until every
// byte is written, waiting for the socket to become writable whenever the
// kernel buffer is full.
func (c *Conn) WriteCommand(cmd string) error {
	if c.fd < 0 {
		return ErrClosed
	}

	data := FormatCommand(cmd)
	if c.log != nil {
		c.log.Debug("send", "command", cmd)
	}

	for off := 0; off < len(data); {
		n, err := unix.Write(c.fd, data[off:])
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			if err := c.WaitWritable(); err != nil {
				return err
			}
			continue
		case err != nil:
			return &WriteError{Cause: err}
		}
		off += n
	}
	return nil
}

// WaitWritable blocks until the socket can accept more data.
func (c *Conn) WaitWritable() error {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLOUT}}
	for {
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return &WriteError{Cause: err}
		}
		if fds[0].Revents&(unix.POLLERR|unix.POLLHUP) != 0 && fds[0].Revents&unix.POLLOUT == 0 {
			return &WriteError{Cause: unix.EPIPE}
		}
		return nil
	}
}

// Close closes the socket. Closing an already closed Conn is a no-op.
func (c *Conn) Close() error {
	if c.fd < 0 {
		return nil
	}
	fd := c.fd
	c.fd = -1
	if err := unix.Close(fd); err != nil && !errors.Is(err, unix.EBADF) {
		return err
	}
	return nil
}
