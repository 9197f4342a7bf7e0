package document

import (
	"log"
	"sync"

	"github.com/lixenwraith/boxterm/event"
)

// Any registers a handler receiving every event kind
const Any = "*"

// Handler reacts to an event, typically by mutating the tree and calling Update
type Handler func(d *Document, ev event.Event)

// Document owns the tree, the screen dimensions, and the event/update wiring
// Not safe for concurrent mutation; the session loop is the only writer
type Document struct {
	Body   Node
	Height int
	Width  int

	mu         sync.Mutex
	handlers   map[string][]Handler
	updateHook func(Node)
}

// New creates an empty document
func New() *Document {
	return &Document{handlers: make(map[string][]Handler)}
}

// SetDimensions stores the screen size in rows and columns
func (d *Document) SetDimensions(rows, cols int) {
	d.Height = rows
	d.Width = cols
}

// SetBody replaces the tree and notifies the update hook
// A tree that shares nodes still renders; the violation is logged
func (d *Document) SetBody(n Node) {
	if n != nil {
		if err := Validate(n); err != nil {
			log.Printf("document: invalid body: %v", err)
		}
	}
	d.Body = n
	d.Update(n)
}

// Handle registers fn for events of kind, or Any for all kinds
func (d *Document) Handle(kind string, fn Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = append(d.handlers[kind], fn)
}

// Event is the event sink: dispatches ev to handlers for its kind, then Any handlers
func (d *Document) Event(ev event.Event) {
	d.mu.Lock()
	specific := d.handlers[ev.Kind]
	all := d.handlers[Any]
	d.mu.Unlock()

	if len(specific) == 0 && len(all) == 0 {
		log.Printf("document: unhandled event %q", ev.Kind)
		return
	}
	for _, h := range specific {
		h(d, ev)
	}
	for _, h := range all {
		h(d, ev)
	}
}

// SetUpdateHook registers the callback invoked after any mutation
func (d *Document) SetUpdateHook(fn func(Node)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updateHook = fn
}

// Update notifies the hook that n (nil for the whole tree) changed
func (d *Document) Update(n Node) {
	d.mu.Lock()
	hook := d.updateHook
	d.mu.Unlock()
	if hook != nil {
		hook(n)
	}
}
