// @focus: #sys { term }
// Package terminal provides direct ANSI terminal control without terminfo.
//
// Features:
//   - Byte-exact VT100/ANSI sequences for clear, cursor and SGR color
//   - Color names resolved to basic, 256-color or true color SGR codes
//   - Incremental raw input parser dispatching structured events
//   - termios raw mode with save/restore, window size query
//   - Signal watcher that defers resize/resume work to the caller's loop
//   - Clean terminal restoration on panic
//
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
