package session

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lixenwraith/boxterm/document"
	"github.com/lixenwraith/boxterm/event"
	"github.com/lixenwraith/boxterm/render"
	"github.com/lixenwraith/boxterm/terminal"
)

// State is the terminal mode the session believes it is in
type State uint8

const (
	StateUninitialized State = iota
	StateRaw
	StateCleaned
)

// String returns the state name for logging
func (s State) String() string {
	switch s {
	case StateRaw:
		return "raw"
	case StateCleaned:
		return "cleaned"
	default:
		return "uninitialized"
	}
}

// Fallback dimensions when the window size cannot be queried
const (
	fallbackRows = 24
	fallbackCols = 80
)

// Filter inspects each input event before the document sees it
// Returning terminal.Hold keeps the unit's bytes for the next event
type Filter func(ev event.Event) terminal.Action

// Session owns the terminal for the lifetime of the program
// All methods run on the loop goroutine; other goroutines only post to Queue
type Session struct {
	backend  terminal.Backend
	doc      *document.Document
	renderer *render.Renderer
	parser   *terminal.Parser
	queue    *event.Queue
	filter   Filter

	escapeDelay time.Duration
	idlePoll    time.Duration
	renderOpts  []render.Option
	mouse       bool

	state State
}

// Option configures a Session
type Option func(*Session)

// WithEscapeDelay sets how long a lone ESC waits for a following byte
func WithEscapeDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.escapeDelay = d
		}
	}
}

// WithRenderOptions passes options to every frame render
func WithRenderOptions(opts ...render.Option) Option {
	return func(s *Session) {
		s.renderOpts = append(s.renderOpts, opts...)
	}
}

// WithFilter installs an input filter ahead of the document's event sink
func WithFilter(f Filter) Option {
	return func(s *Session) {
		s.filter = f
	}
}

// WithMouse enables click reporting while in raw mode
func WithMouse() Option {
	return func(s *Session) {
		s.mouse = true
	}
}

// New creates a session driving doc through backend and registers the document update hook
func New(backend terminal.Backend, doc *document.Document, opts ...Option) *Session {
	s := &Session{
		backend:     backend,
		doc:         doc,
		queue:       event.NewQueue(),
		escapeDelay: 50 * time.Millisecond,
		idlePoll:    100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.renderer = render.NewRenderer(doc, s.renderOpts...)
	s.parser = terminal.NewParser(s.input)
	doc.SetUpdateHook(s.Render)
	return s
}

// Queue returns the request queue drained by Run
func (s *Session) Queue() *event.Queue {
	return s.queue
}

// State returns the current terminal mode
func (s *Session) State() State {
	return s.state
}

// Start sizes the document, enters raw mode and paints a blank canvas
func (s *Session) Start() error {
	rows, cols := s.QueryDimensions()
	s.doc.SetDimensions(rows, cols)
	if err := s.Setup(); err != nil {
		return err
	}
	s.NewScreen()
	return nil
}

// Setup captures terminal attributes and enters raw mode
func (s *Session) Setup() error {
	if err := s.backend.Setup(); err != nil {
		return fmt.Errorf("setup terminal: %w", err)
	}
	s.state = StateRaw
	if s.mouse {
		s.write([]byte(terminal.MouseOn))
	}
	return nil
}

// QueryDimensions returns the window size in rows and columns
// Falls back to the last known size, then 24x80, when the query fails
func (s *Session) QueryDimensions() (int, int) {
	rows, cols, err := s.backend.Size()
	if err == nil && rows > 0 && cols > 0 {
		return rows, cols
	}
	if err != nil {
		log.Printf("session: %v", err)
	}
	if s.doc.Height > 0 && s.doc.Width > 0 {
		return s.doc.Height, s.doc.Width
	}
	return fallbackRows, fallbackCols
}

// NewScreen paints a blank canvas of the document's size with the cursor hidden at home
func (s *Session) NewScreen() {
	var b strings.Builder
	b.WriteString(terminal.SGRReset)
	b.WriteString(terminal.CursorHide)
	b.WriteString(terminal.CursorHome)
	blank := strings.Repeat(" ", max(s.doc.Width, 0))
	for i := 0; i < s.doc.Height; i++ {
		if i > 0 {
			b.WriteString("\n\r")
		}
		b.WriteString(blank)
	}
	b.WriteString(terminal.CursorHome)
	s.write([]byte(b.String()))
}

// Rescale re-reads the window size, tells the document and redraws
func (s *Session) Rescale() {
	rows, cols := s.QueryDimensions()
	s.doc.SetDimensions(rows, cols)
	s.doc.Event(event.New(event.KindResize))
	s.Render(nil)
}

// Restore recovers from a suspend: cleanup, raw mode again, rescale, blank canvas, redraw
func (s *Session) Restore() error {
	s.Cleanup()
	if err := s.Setup(); err != nil {
		return err
	}
	s.Rescale()
	s.NewScreen()
	s.Render(nil)
	return nil
}

// Cleanup blanks the screen, restores saved attributes and shows the cursor
// Safe without a prior Setup and idempotent; failures are logged only
func (s *Session) Cleanup() {
	if s.state == StateCleaned {
		return
	}
	s.NewScreen()
	if s.mouse && s.state == StateRaw {
		s.write([]byte(terminal.MouseOff))
	}
	if err := s.backend.Restore(); err != nil {
		log.Printf("session: %v", err)
	}
	s.write([]byte(terminal.CursorShow))
	s.state = StateCleaned
}

// Render redraws the whole document; n names the changed node and is informational
// Frames are only written in raw mode
func (s *Session) Render(n document.Node) {
	if s.state != StateRaw {
		return
	}
	frame := s.renderer.Render()
	if frame == nil {
		return
	}
	s.write(frame)
}

// write sends bytes to the terminal; failures are dropped so a lost terminal does not end the session
func (s *Session) write(p []byte) {
	if err := s.backend.Write(p); err != nil {
		log.Printf("session: write: %v", err)
	}
}

// input is the parser sink
func (s *Session) input(ev event.Event) terminal.Action {
	action := terminal.Reset
	if s.filter != nil {
		action = s.filter(ev)
	}
	s.doc.Event(ev)
	return action
}
