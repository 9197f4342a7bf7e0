package terminal

import (
	"io"
	"os"
)

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if the session cannot clean up normally
func EmergencyReset(w io.Writer) {
	io.WriteString(w, MouseOff)
	io.WriteString(w, CursorShow)
	io.WriteString(w, SGRReset)
	io.WriteString(w, autoWrapOn)
	io.WriteString(w, resetInitialState)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
