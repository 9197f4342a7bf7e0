// Package session controls the terminal for a document: raw mode, blank canvas,
// resize and resume handling, and the input loop.
//
// Signal handlers never touch the terminal. They post requests to the
// session's queue and Run services them between reads, so rendering and
// attribute changes all happen on one goroutine.
package session
