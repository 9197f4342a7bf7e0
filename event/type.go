package event

// Kind tags for events produced by the input parser and the session
const (
	// KindDraw is a printable unit; Args[0] is the text (one character)
	KindDraw = "draw"

	// KindKey is a named key or control code; Args[0] is the key name
	// Kwargs may carry "alt", "ctrl", "shift" set to true
	KindKey = "key"

	// KindMouse is an SGR mouse report; Args are 0-indexed x, y
	// Kwargs: "button" (string), "action" (string)
	KindMouse = "mouse"

	// KindUnknown is any unrecognized or malformed input; Args[0] is the raw bytes as string
	KindUnknown = "unknown"

	// KindResize is synthesized by the session after a window size change, carries no payload
	KindResize = "resize"
)

// Kwarg keys set by the parser
const (
	KwAlt    = "alt"
	KwCtrl   = "ctrl"
	KwShift  = "shift"
	KwButton = "button"
	KwAction = "action"

	// KwHeld carries raw bytes of earlier units the sink asked the parser to hold
	KwHeld = "held"
)

// Event is one structured unit of input
// Treat as immutable once dispatched
type Event struct {
	Kind   string
	Args   []any
	Kwargs map[string]any
}

// New creates an event with positional arguments and no keyword arguments
func New(kind string, args ...any) Event {
	if len(args) == 0 {
		return Event{Kind: kind}
	}
	return Event{Kind: kind, Args: args}
}

// With returns a copy of e with key set in Kwargs
// The original map is not modified
func (e Event) With(key string, value any) Event {
	kw := make(map[string]any, len(e.Kwargs)+1)
	for k, v := range e.Kwargs {
		kw[k] = v
	}
	kw[key] = value
	e.Kwargs = kw
	return e
}

// Arg returns the positional argument at i, or nil if out of range
func (e Event) Arg(i int) any {
	if i < 0 || i >= len(e.Args) {
		return nil
	}
	return e.Args[i]
}

// Text returns Args[0] as a string, empty if absent or not a string
func (e Event) Text() string {
	s, _ := e.Arg(0).(string)
	return s
}

// Flag reports whether the boolean keyword argument key is set to true
func (e Event) Flag(key string) bool {
	v, _ := e.Kwargs[key].(bool)
	return v
}
