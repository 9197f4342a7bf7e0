package terminal

import (
	"unicode/utf8"

	"github.com/lixenwraith/boxterm/event"
)

// Action is returned by a Sink to steer parser state after a dispatch
type Action uint8

const (
	// Reset clears accumulation state; the next unit starts fresh
	Reset Action = iota

	// Hold keeps the dispatched unit's raw bytes; they are reported on the
	// next dispatched event under event.KwHeld, and accumulate until a Reset.
	// Used by sinks assembling composite multi-unit input (chords, dead keys).
	Hold
)

// Sink receives one event per completed input unit
type Sink func(ev event.Event) Action

// maxCSI bounds a CSI sequence; longer input without a final byte is dispatched as unknown
const maxCSI = 32

// maxMouse bounds an SGR mouse report
const maxMouse = 32

// Parser turns a raw terminal byte stream into events
// Incomplete sequences are kept until more bytes arrive or Flush is called
// Not safe for concurrent use; the sink must not call Feed
type Parser struct {
	sink Sink
	buf  []byte // Bytes of the unit being assembled
	held []byte // Raw bytes retained by Hold
}

// NewParser creates a parser dispatching to sink
func NewParser(sink Sink) *Parser {
	return &Parser{
		sink: sink,
		buf:  make([]byte, 0, 64),
	}
}

// Feed consumes input incrementally, dispatching every completed unit
func (p *Parser) Feed(data []byte) {
	p.buf = append(p.buf, data...)
	consumed := p.parse(p.buf)

	if consumed > 0 {
		if consumed >= len(p.buf) {
			p.buf = p.buf[:0]
		} else {
			n := copy(p.buf, p.buf[consumed:])
			p.buf = p.buf[:n]
		}
	}
}

// Flush dispatches whatever is pending: a lone ESC as the escape key, anything else as unknown
// Called when input goes idle, since a standalone ESC cannot be told apart from a sequence start otherwise
func (p *Parser) Flush() {
	if len(p.buf) == 0 {
		return
	}
	raw := p.buf
	if len(raw) == 1 && raw[0] == 0x1b {
		p.dispatch(keyEvent(KeyEscape, ModNone), raw)
	} else {
		p.dispatch(unknownEvent(raw), raw)
	}
	p.buf = p.buf[:0]
}

// Pending returns the number of buffered bytes of an incomplete unit
func (p *Parser) Pending() int {
	return len(p.buf)
}

// Reset drops pending and held state
func (p *Parser) Reset() {
	p.buf = p.buf[:0]
	p.held = p.held[:0]
}

// dispatch hands ev to the sink and applies the returned action
func (p *Parser) dispatch(ev event.Event, raw []byte) {
	if len(p.held) > 0 {
		ev = ev.With(event.KwHeld, string(p.held))
	}
	action := Reset
	if p.sink != nil {
		action = p.sink(ev)
	}
	if action == Hold {
		p.held = append(p.held, raw...)
	} else {
		p.held = p.held[:0]
	}
}

// parse dispatches complete units from data and returns bytes consumed (stops on incomplete unit)
func (p *Parser) parse(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			p.dispatch(event.New(event.KindDraw, string(rune(b))), data[i:i+1])
			i++
			continue
		}

		if b == 0x1b {
			if i+1 >= n {
				return i // Wait for more data or Flush
			}
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			p.dispatch(ev, data[i:i+consumed])
			i += consumed
			continue
		}

		// C0 controls and DEL
		if b < 0x20 || b == 0x7f {
			p.dispatch(keyEvent(controlKey(b), ModNone), data[i:i+1])
			i++
			continue
		}

		// UTF-8 multibyte
		consumed := p.parseUTF8(data[i:])
		if consumed == 0 {
			return i
		}
		i += consumed
	}
	return i
}

// parseUTF8 dispatches one multibyte rune or an unknown byte, returns 0 on incomplete rune
func (p *Parser) parseUTF8(data []byte) int {
	seqLen := utf8SeqLen(data[0])
	if seqLen == 0 {
		p.dispatch(unknownEvent(data[:1]), data[:1])
		return 1
	}
	if len(data) < seqLen {
		// Wait only while the continuation bytes so far are valid
		for _, c := range data[1:] {
			if c&0xc0 != 0x80 {
				p.dispatch(unknownEvent(data[:1]), data[:1])
				return 1
			}
		}
		return 0
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size <= 1 {
		p.dispatch(unknownEvent(data[:1]), data[:1])
		return 1
	}
	p.dispatch(event.New(event.KindDraw, string(r)), data[:size])
	return size
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

// parseEscape parses a sequence starting with ESC, returns 0 on incomplete
func parseEscape(data []byte) (int, event.Event) {
	if len(data) < 2 {
		return 0, event.Event{}
	}

	switch b := data[1]; {
	case b == 0x1b:
		// ESC ESC -> Alt+Escape
		return 2, keyEvent(KeyEscape, ModAlt)
	case b == '[':
		return parseCSI(data)
	case b == 'O':
		return parseSS3(data)
	case b < 0x20 || b == 0x7f:
		return 2, keyEvent(controlKey(b), ModAlt)
	case b < 0x7f:
		return 2, event.New(event.KindDraw, string(rune(b))).With(event.KwAlt, true)
	default:
		// ESC before a non-ASCII byte: report the ESC alone, the rest parses on its own
		return 1, keyEvent(KeyEscape, ModNone)
	}
}

// parseCSI parses ESC [ params intermediates final
// Params 0x30-0x3F, intermediates 0x20-0x2F, final 0x40-0x7E
func parseCSI(data []byte) (int, event.Event) {
	end := 2
	for end < len(data) && end < maxCSI {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			return finishCSI(data[:end+1])
		}
		if b < 0x20 || b > 0x3f {
			// Malformed: report what was gathered, the offending byte parses on its own
			return end, unknownEvent(data[:end])
		}
		end++
	}
	if end >= maxCSI {
		return end, unknownEvent(data[:end])
	}
	return 0, event.Event{} // Incomplete
}

// finishCSI maps a complete CSI sequence to an event
func finishCSI(seq []byte) (int, event.Event) {
	final := seq[len(seq)-1]
	params := seq[2 : len(seq)-1]

	if len(params) > 0 && params[0] == '<' && (final == 'M' || final == 'm') {
		if ev, ok := parseSGRMouse(params[1:], final == 'm'); ok {
			return len(seq), ev
		}
		return len(seq), unknownEvent(seq)
	}

	if key, mod, ok := lookupCSI(params, final); ok {
		return len(seq), keyEvent(key, mod)
	}
	return len(seq), unknownEvent(seq)
}

// parseSS3 parses ESC O X, unknown finals are consumed as unknown
func parseSS3(data []byte) (int, event.Event) {
	if len(data) < 3 {
		return 0, event.Event{}
	}
	if key, ok := ss3Keys[data[2]]; ok {
		return 3, keyEvent(key, ModNone)
	}
	return 3, unknownEvent(data[:3])
}

// parseSGRMouse decodes "Btn;X;Y" from an SGR mouse report
func parseSGRMouse(params []byte, release bool) (event.Event, bool) {
	if len(params) > maxMouse {
		return event.Event{}, false
	}
	nums, ok := parseParams(params)
	if !ok || len(nums) != 3 || nums[1] < 1 || nums[2] < 1 {
		return event.Event{}, false
	}

	button, action, mod := decodeMouseButton(nums[0], release)
	ev := event.New(event.KindMouse, nums[1]-1, nums[2]-1) // 0-indexed
	ev = ev.With(event.KwButton, button.String())
	ev = ev.With(event.KwAction, action.String())
	return withModifiers(ev, mod), true
}

func keyEvent(k Key, mod Modifier) event.Event {
	return withModifiers(event.New(event.KindKey, k.String()), mod)
}

func unknownEvent(raw []byte) event.Event {
	return event.New(event.KindUnknown, string(raw))
}

func withModifiers(ev event.Event, mod Modifier) event.Event {
	if mod&ModAlt != 0 {
		ev = ev.With(event.KwAlt, true)
	}
	if mod&ModCtrl != 0 {
		ev = ev.With(event.KwCtrl, true)
	}
	if mod&ModShift != 0 {
		ev = ev.With(event.KwShift, true)
	}
	return ev
}
