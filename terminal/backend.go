package terminal

import (
	"errors"
	"time"
)

// ErrNotTerminal is returned by Setup when input is not a terminal
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Backend abstracts the platform terminal: attribute save/restore, size query and raw I/O
type Backend interface {
	// Setup captures current attributes and enters raw mode (no echo, no line buffering, 1-byte reads)
	Setup() error

	// Restore reapplies the attributes captured by the last Setup
	// No-op when nothing was captured
	Restore() error

	// Size returns the window size in rows and columns
	Size() (rows, cols int, err error)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, timeout elapses or Wake is called
	// Returns 0, nil on timeout or interrupted wait; io.EOF when input is closed
	Read(buf []byte, timeout time.Duration) (int, error)

	// Wake cuts a pending or the next Read short; safe from any goroutine
	Wake() error
}
