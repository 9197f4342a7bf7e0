//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import (
	"errors"
	"os"
	"time"
)

var errUnsupported = errors.New("terminal backend not supported on this platform")

type unsupportedBackend struct{}

// NewBackend returns a backend that fails Setup on platforms without termios
func NewBackend(in, out *os.File) Backend {
	return unsupportedBackend{}
}

func (unsupportedBackend) Setup() error                             { return errUnsupported }
func (unsupportedBackend) Restore() error                           { return nil }
func (unsupportedBackend) Size() (int, int, error)                  { return 0, 0, errUnsupported }
func (unsupportedBackend) Write(p []byte) error                     { return errUnsupported }
func (unsupportedBackend) Read([]byte, time.Duration) (int, error) { return 0, errUnsupported }
func (unsupportedBackend) Wake() error                              { return nil }

func resetTerminalMode() {}
