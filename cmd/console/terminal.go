//go:build linux || darwin

package main

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// terminal switches the controlling terminal between canonical mode and
// raw mode, in which key strokes arrive unbuffered and unechoed.
type terminal struct {
	in      *os.File
	out     *os.File
	canAttr unix.Termios
	rawAttr unix.Termios
}

func newTerminal(in, out *os.File) (*terminal, error) {
	t := &terminal{in: in, out: out}
	if err := termios.Tcgetattr(in.Fd(), &t.canAttr); err != nil {
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}
	t.rawAttr = t.canAttr
	termios.Cfmakeraw(&t.rawAttr)
	return t, nil
}

func (t *terminal) raw() error {
	if err := termios.Tcsetattr(t.in.Fd(), termios.TCIFLUSH, &t.rawAttr); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	_, err := t.out.WriteString(hideCursor + clearScreen)
	return err
}

func (t *terminal) restore() error {
	_, _ = t.out.WriteString(showCursor + resetColors + "\r\n")
	if err := termios.Tcsetattr(t.in.Fd(), termios.TCIFLUSH, &t.canAttr); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// size returns the terminal geometry in character cells.
func (t *terminal) size() (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("reading terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// poll waits up to timeoutMs for input and returns what is available.
func (t *terminal) poll(buf []byte, timeoutMs int) (int, error) {
	fds := []unix.PollFd{{Fd: int32(t.in.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("polling input: %w", err)
	}
	if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
		return 0, nil
	}
	return unix.Read(int(t.in.Fd()), buf)
}
