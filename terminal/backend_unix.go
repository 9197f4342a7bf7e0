//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	in    *os.File
	out   *os.File
	inFd  int
	saved *unix.Termios

	// Self-pipe polled alongside input, -1 until Setup creates it
	wakeR int
	wakeW int
}

// NewBackend creates a backend reading from in and writing to out
func NewBackend(in, out *os.File) Backend {
	return &unixBackend{
		in:   in,
		out:  out,
		inFd:  int(in.Fd()),
		wakeR: -1,
		wakeW: -1,
	}
}

func (b *unixBackend) Setup() error {
	if !term.IsTerminal(b.inFd) {
		return ErrNotTerminal
	}

	attrs, err := unix.IoctlGetTermios(b.inFd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get terminal attributes: %w", err)
	}
	saved := *attrs

	attrs.Lflag &^= unix.ECHO | unix.ICANON
	attrs.Cc[unix.VMIN] = 1
	attrs.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(b.inFd, ioctlWriteTermios, attrs); err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}

	b.saved = &saved

	if b.wakeR < 0 {
		if err := b.openWakePipe(); err != nil {
			return err
		}
	}
	return nil
}

// openWakePipe creates the non-blocking self-pipe; it lives for the process since Setup repeats on resume
func (b *unixBackend) openWakePipe() error {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return fmt.Errorf("create wake pipe: %w", err)
	}
	for _, fd := range p {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return fmt.Errorf("create wake pipe: %w", err)
		}
	}
	b.wakeR, b.wakeW = p[0], p[1]
	return nil
}

func (b *unixBackend) Wake() error {
	if b.wakeW < 0 {
		return nil
	}
	_, err := unix.Write(b.wakeW, []byte{0})
	if err == unix.EAGAIN {
		return nil // Pipe full, a wake is already pending
	}
	return err
}

func (b *unixBackend) Restore() error {
	if b.saved == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(b.inFd, ioctlWriteTermios, b.saved); err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}
	return nil
}

func (b *unixBackend) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(b.inFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("query window size: %w", err)
	}
	return int(ws.Row), int(ws.Col), nil
}

func (b *unixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read polls with timeout so the caller can service queued requests between reads
func (b *unixBackend) Read(buf []byte, timeout time.Duration) (int, error) {
	fds := []unix.PollFd{
		{Fd: int32(b.inFd), Events: unix.POLLIN},
	}
	if b.wakeR >= 0 {
		fds = append(fds, unix.PollFd{Fd: int32(b.wakeR), Events: unix.POLLIN})
	}

	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("poll input: %w", err)
	}
	if n == 0 {
		return 0, nil // Timeout
	}
	if len(fds) > 1 && fds[1].Revents&unix.POLLIN != 0 {
		b.drainWake()
		if fds[0].Revents == 0 {
			return 0, nil
		}
	}
	if fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 && fds[0].Revents&unix.POLLIN == 0 {
		return 0, io.EOF
	}

	rn, err := unix.Read(b.inFd, buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return 0, nil
		}
		return 0, fmt.Errorf("read input: %w", err)
	}
	if rn == 0 {
		return 0, io.EOF
	}
	return rn, nil
}

func (b *unixBackend) drainWake() {
	var scratch [64]byte
	for {
		n, err := unix.Read(b.wakeR, scratch[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// resetTerminalMode restores cooked mode via /dev/tty (works even if stdin is redirected)
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if attrs, err := unix.IoctlGetTermios(fd, ioctlReadTermios); err == nil {
		attrs.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		attrs.Iflag |= unix.ICRNL
		unix.IoctlSetTermios(fd, ioctlWriteTermios, attrs)
	}
}
