package render

import (
	"github.com/lixenwraith/boxterm/document"
	"github.com/lixenwraith/boxterm/terminal"
)

// DefaultTabStop is the tab width used when none is configured
const DefaultTabStop = 4

// Option adjusts a render call
type Option func(*layout)

// WithTabStop sets the tab width; n <= 0 keeps the default
func WithTabStop(n int) Option {
	return func(l *layout) {
		if n > 0 {
			l.tabStop = n
		}
	}
}

// WithColorMode selects how RGB colors are encoded
func WithColorMode(mode terminal.ColorMode) Option {
	return func(l *layout) {
		l.mode = mode
	}
}

// Render produces the full-screen escape stream for root within height x width cells
// Output starts with a screen clear and is identical for identical input
func Render(height, width int, root document.Node, opts ...Option) []byte {
	return renderInto(nil, height, width, root, opts)
}

func renderInto(dst []byte, height, width int, root document.Node, opts []Option) []byte {
	l := layout{
		out:     append(dst, terminal.ClearScreen...),
		tabStop: DefaultTabStop,
		mode:    terminal.ColorMode256,
	}
	for _, opt := range opts {
		opt(&l)
	}

	box := constraint{height: height, width: width}
	l.place(root, box, cursor{}, rootScope)
	return l.out
}

// Renderer renders a document's body, reusing its output buffer between frames
// Not safe for concurrent use
type Renderer struct {
	doc  *document.Document
	opts []Option
	buf  []byte
}

// NewRenderer creates a renderer for doc
func NewRenderer(doc *document.Document, opts ...Option) *Renderer {
	return &Renderer{
		doc:  doc,
		opts: opts,
		buf:  make([]byte, 0, 4096),
	}
}

// Render renders the whole body at the document's dimensions
// Returns nil when the document has no body
// The returned slice is valid until the next call
func (r *Renderer) Render() []byte {
	if r.doc.Body == nil {
		return nil
	}
	r.buf = renderInto(r.buf[:0], r.doc.Height, r.doc.Width, r.doc.Body, r.opts)
	return r.buf
}
