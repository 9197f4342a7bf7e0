// @focus: #terminal { ansi }
package terminal

// ANSI/VT100 sequences, byte-exact
const (
	CSI = "\x1b["

	SGRReset    = "\x1b[0m"
	ClearScreen = "\x1b[2J"
	CursorHome  = "\x1b[1;1H"
	CursorHide  = "\x1b[?25l"
	CursorShow  = "\x1b[?25h"

	// RIS: Reset to Initial State (emergency only)
	resetInitialState = "\x1bc"

	// DECAWM: Auto-Wrap Mode
	autoWrapOn = "\x1b[?7h"

	// Click tracking (1000) with SGR extended reports (1006)
	MouseOn  = "\x1b[?1000h\x1b[?1006h"
	MouseOff = "\x1b[?1000l\x1b[?1006l"
)

// AppendInt appends a non-negative decimal without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func AppendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	if n < 100 {
		return append(dst, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(dst, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(dst, buf[i:]...)
}

// AppendCursorPos appends an absolute cursor position sequence
// row and col are 0-indexed; the sequence is 1-indexed "ESC [ row ; col H"
func AppendCursorPos(dst []byte, row, col int) []byte {
	dst = append(dst, CSI...)
	dst = AppendInt(dst, row+1)
	dst = append(dst, ';')
	dst = AppendInt(dst, col+1)
	return append(dst, 'H')
}

// CursorPos returns the absolute cursor position sequence for 0-indexed row, col
func CursorPos(row, col int) string {
	var buf [16]byte
	return string(AppendCursorPos(buf[:0], row, col))
}
