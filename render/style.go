package render

import (
	"github.com/lixenwraith/boxterm/document"
	"github.com/lixenwraith/boxterm/terminal"
)

// scope is the (prefix, suffix) pair bracketing every text fragment written under a Style
type scope struct {
	prefix string
	suffix string
}

// rootScope applies no styling
var rootScope = scope{}

// push derives the scope for s nested in outer
// Suffix resets, then re-asserts the outer prefix so leaving s restores the enclosing colors
func (outer scope) push(s *document.Style, mode terminal.ColorMode) scope {
	var prefix string
	if s.Fg != "" {
		prefix += terminal.FgSGR(s.Fg, s.FgBright, mode)
	}
	if s.Bg != "" {
		prefix += terminal.BgSGR(s.Bg, s.BgBright, mode)
	}

	if outer.prefix == "" {
		return scope{prefix: prefix, suffix: terminal.SGRReset}
	}
	return scope{prefix: prefix, suffix: terminal.SGRReset + outer.prefix}
}
