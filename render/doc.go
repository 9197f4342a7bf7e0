// Package render lays out a document tree into terminal escape sequences.
//
// Every call redraws the whole screen: clear, then one absolute cursor move
// per text fragment. Blocks open nested boxes with their own cursor, Style
// nodes bracket fragments with SGR codes, and text that does not fit its box
// is clipped.
package render
