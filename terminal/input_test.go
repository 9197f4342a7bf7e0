package terminal

import (
	"strings"
	"testing"

	"github.com/lixenwraith/boxterm/event"
)

// recorder collects dispatched events
type recorder struct {
	events []event.Event
}

func (r *recorder) sink(ev event.Event) Action {
	r.events = append(r.events, ev)
	return Reset
}

func parseAll(input string) []event.Event {
	r := &recorder{}
	p := NewParser(r.sink)
	p.Feed([]byte(input))
	return r.events
}

// TestParserPrintable verifies N printable characters produce N draw events in order
func TestParserPrintable(t *testing.T) {
	events := parseAll("Hello")
	if len(events) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(events))
	}
	for i, want := range []string{"H", "e", "l", "l", "o"} {
		if events[i].Kind != event.KindDraw {
			t.Errorf("Event %d: expected kind draw, got %q", i, events[i].Kind)
		}
		if events[i].Text() != want {
			t.Errorf("Event %d: expected %q, got %q", i, want, events[i].Text())
		}
	}
}

// TestParserKeys verifies control codes and escape sequences map to named keys
func TestParserKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		alt   bool
		ctrl  bool
		shift bool
	}{
		{name: "Ctrl-C", input: "\x03", key: "ctrl_c"},
		{name: "Carriage return", input: "\r", key: "enter"},
		{name: "Line feed", input: "\n", key: "enter"},
		{name: "Tab", input: "\t", key: "tab"},
		{name: "DEL", input: "\x7f", key: "backspace"},
		{name: "NUL", input: "\x00", key: "ctrl_space"},
		{name: "Arrow up", input: "\x1b[A", key: "up"},
		{name: "Arrow left", input: "\x1b[D", key: "left"},
		{name: "Ctrl arrow", input: "\x1b[1;5A", key: "up", ctrl: true},
		{name: "Shift-Alt arrow", input: "\x1b[1;4C", key: "right", alt: true, shift: true},
		{name: "Delete", input: "\x1b[3~", key: "delete"},
		{name: "Page down", input: "\x1b[6~", key: "page_down"},
		{name: "Ctrl delete", input: "\x1b[3;5~", key: "delete", ctrl: true},
		{name: "F5", input: "\x1b[15~", key: "f5"},
		{name: "Backtab", input: "\x1b[Z", key: "backtab", shift: true},
		{name: "SS3 F1", input: "\x1bOP", key: "f1"},
		{name: "SS3 home", input: "\x1bOH", key: "home"},
		{name: "Alt-Escape", input: "\x1b\x1b", key: "escape", alt: true},
		{name: "Alt-Ctrl-A", input: "\x1b\x01", key: "ctrl_a", alt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := parseAll(tt.input)
			if len(events) != 1 {
				t.Fatalf("Expected 1 event, got %d: %v", len(events), events)
			}
			ev := events[0]
			if ev.Kind != event.KindKey {
				t.Fatalf("Expected kind key, got %q", ev.Kind)
			}
			if ev.Text() != tt.key {
				t.Errorf("Expected key %q, got %q", tt.key, ev.Text())
			}
			if ev.Flag(event.KwAlt) != tt.alt {
				t.Errorf("Expected alt=%v, got %v", tt.alt, ev.Flag(event.KwAlt))
			}
			if ev.Flag(event.KwCtrl) != tt.ctrl {
				t.Errorf("Expected ctrl=%v, got %v", tt.ctrl, ev.Flag(event.KwCtrl))
			}
			if ev.Flag(event.KwShift) != tt.shift {
				t.Errorf("Expected shift=%v, got %v", tt.shift, ev.Flag(event.KwShift))
			}
		})
	}
}

// TestParserAltPrintable verifies ESC followed by a printable byte is an alt-modified draw
func TestParserAltPrintable(t *testing.T) {
	events := parseAll("\x1bx")
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Kind != event.KindDraw || events[0].Text() != "x" {
		t.Errorf("Expected draw x, got %s %q", events[0].Kind, events[0].Text())
	}
	if !events[0].Flag(event.KwAlt) {
		t.Error("Expected alt flag set")
	}
}

// TestParserMouse verifies SGR mouse reports decode to 0-indexed coordinates
func TestParserMouse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		x, y   int
		button string
		action string
	}{
		{name: "Left press", input: "\x1b[<0;10;5M", x: 9, y: 4, button: "left", action: "press"},
		{name: "Left release", input: "\x1b[<0;10;5m", x: 9, y: 4, button: "left", action: "release"},
		{name: "Right press", input: "\x1b[<2;1;1M", x: 0, y: 0, button: "right", action: "press"},
		{name: "Left drag", input: "\x1b[<32;3;7M", x: 2, y: 6, button: "left", action: "drag"},
		{name: "Motion", input: "\x1b[<35;3;7M", x: 2, y: 6, button: "none", action: "move"},
		{name: "Wheel up", input: "\x1b[<64;1;2M", x: 0, y: 1, button: "wheel_up", action: "press"},
		{name: "Wheel down", input: "\x1b[<65;1;2M", x: 0, y: 1, button: "wheel_down", action: "press"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := parseAll(tt.input)
			if len(events) != 1 {
				t.Fatalf("Expected 1 event, got %d", len(events))
			}
			ev := events[0]
			if ev.Kind != event.KindMouse {
				t.Fatalf("Expected kind mouse, got %q", ev.Kind)
			}
			if ev.Arg(0) != tt.x || ev.Arg(1) != tt.y {
				t.Errorf("Expected (%d,%d), got (%v,%v)", tt.x, tt.y, ev.Arg(0), ev.Arg(1))
			}
			if ev.Kwargs[event.KwButton] != tt.button {
				t.Errorf("Expected button %q, got %v", tt.button, ev.Kwargs[event.KwButton])
			}
			if ev.Kwargs[event.KwAction] != tt.action {
				t.Errorf("Expected action %q, got %v", tt.action, ev.Kwargs[event.KwAction])
			}
		})
	}
}

// TestParserMouseModifiers verifies modifier bits in the button code
func TestParserMouseModifiers(t *testing.T) {
	events := parseAll("\x1b[<20;1;1M") // 4 shift + 16 ctrl
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if !events[0].Flag(event.KwShift) || !events[0].Flag(event.KwCtrl) || events[0].Flag(event.KwAlt) {
		t.Errorf("Unexpected modifiers: %v", events[0].Kwargs)
	}
}

// TestParserUnknown verifies unrecognized and malformed input never aborts parsing
func TestParserUnknown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []string
		first string // Args[0] of the first event
	}{
		{
			name:  "Unknown CSI final",
			input: "\x1b[99x",
			kinds: []string{event.KindUnknown},
			first: "\x1b[99x",
		},
		{
			name:  "Malformed CSI byte",
			input: "\x1b[1\x01",
			kinds: []string{event.KindUnknown, event.KindKey},
			first: "\x1b[1",
		},
		{
			name:  "CSI interrupted by ESC",
			input: "\x1b[2\x1b[A",
			kinds: []string{event.KindUnknown, event.KindKey},
			first: "\x1b[2",
		},
		{
			name:  "Unknown SS3",
			input: "\x1bOz",
			kinds: []string{event.KindUnknown},
			first: "\x1bOz",
		},
		{
			name:  "Bad mouse report",
			input: "\x1b[<0;0;5M",
			kinds: []string{event.KindUnknown},
			first: "\x1b[<0;0;5M",
		},
		{
			name:  "Invalid UTF-8 start",
			input: "\xffa",
			kinds: []string{event.KindUnknown, event.KindDraw},
			first: "\xff",
		},
		{
			name:  "Truncated UTF-8",
			input: "\xc3x",
			kinds: []string{event.KindUnknown, event.KindDraw},
			first: "\xc3",
		},
		{
			name:  "Text after unknown",
			input: "\x1b[99xok",
			kinds: []string{event.KindUnknown, event.KindDraw, event.KindDraw},
			first: "\x1b[99x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := parseAll(tt.input)
			if len(events) != len(tt.kinds) {
				t.Fatalf("Expected %d events, got %d: %v", len(tt.kinds), len(events), events)
			}
			for i, kind := range tt.kinds {
				if events[i].Kind != kind {
					t.Errorf("Event %d: expected kind %q, got %q", i, kind, events[i].Kind)
				}
			}
			if events[0].Text() != tt.first {
				t.Errorf("Expected first payload %q, got %q", tt.first, events[0].Text())
			}
		})
	}
}

// TestParserOverlongCSI verifies a CSI without final byte is cut at the length limit
func TestParserOverlongCSI(t *testing.T) {
	input := "\x1b[" + strings.Repeat("1", 40)
	events := parseAll(input)

	if len(events) == 0 || events[0].Kind != event.KindUnknown {
		t.Fatalf("Expected leading unknown event, got %v", events)
	}
	if len(events[0].Text()) != maxCSI {
		t.Errorf("Expected unknown payload of %d bytes, got %d", maxCSI, len(events[0].Text()))
	}
	// Remaining digits are plain text
	if len(events) != 1+len(input)-maxCSI {
		t.Errorf("Expected %d events, got %d", 1+len(input)-maxCSI, len(events))
	}
}

// TestParserIncremental verifies sequences split across reads assemble correctly
func TestParserIncremental(t *testing.T) {
	r := &recorder{}
	p := NewParser(r.sink)

	input := "\x1b[1;5A\x1b[<0;3;4Mé日"
	for i := 0; i < len(input); i++ {
		p.Feed([]byte{input[i]})
	}

	if len(r.events) != 4 {
		t.Fatalf("Expected 4 events, got %d: %v", len(r.events), r.events)
	}
	if r.events[0].Text() != "up" || !r.events[0].Flag(event.KwCtrl) {
		t.Errorf("Expected ctrl+up, got %v", r.events[0])
	}
	if r.events[1].Kind != event.KindMouse {
		t.Errorf("Expected mouse, got %q", r.events[1].Kind)
	}
	if r.events[2].Text() != "é" {
		t.Errorf("Expected é, got %q", r.events[2].Text())
	}
	if r.events[3].Text() != "日" {
		t.Errorf("Expected 日, got %q", r.events[3].Text())
	}
	if p.Pending() != 0 {
		t.Errorf("Expected no pending bytes, got %d", p.Pending())
	}
}

// TestParserFlush verifies idle flush resolves a lone ESC and dangling sequences
func TestParserFlush(t *testing.T) {
	t.Run("Lone ESC", func(t *testing.T) {
		r := &recorder{}
		p := NewParser(r.sink)
		p.Feed([]byte{0x1b})

		if len(r.events) != 0 {
			t.Fatalf("Expected ESC to wait, got %v", r.events)
		}
		if p.Pending() != 1 {
			t.Errorf("Expected 1 pending byte, got %d", p.Pending())
		}

		p.Flush()
		if len(r.events) != 1 || r.events[0].Text() != "escape" {
			t.Fatalf("Expected escape key, got %v", r.events)
		}
		if r.events[0].Flag(event.KwAlt) {
			t.Error("Lone ESC should not carry alt")
		}
	})

	t.Run("Dangling CSI", func(t *testing.T) {
		r := &recorder{}
		p := NewParser(r.sink)
		p.Feed([]byte("\x1b[1;"))
		p.Flush()

		if len(r.events) != 1 || r.events[0].Kind != event.KindUnknown {
			t.Fatalf("Expected one unknown event, got %v", r.events)
		}
		if r.events[0].Text() != "\x1b[1;" {
			t.Errorf("Expected raw payload, got %q", r.events[0].Text())
		}
	})

	t.Run("Empty", func(t *testing.T) {
		r := &recorder{}
		p := NewParser(r.sink)
		p.Flush()
		if len(r.events) != 0 {
			t.Errorf("Expected no events, got %v", r.events)
		}
	})
}

// TestParserHold verifies held units are reported on the next event until reset
func TestParserHold(t *testing.T) {
	var events []event.Event
	p := NewParser(func(ev event.Event) Action {
		events = append(events, ev)
		if ev.Text() == "a" || ev.Text() == "b" {
			return Hold
		}
		return Reset
	})

	p.Feed([]byte("abcd"))

	if len(events) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(events))
	}
	if _, ok := events[0].Kwargs[event.KwHeld]; ok {
		t.Error("First event should carry no held bytes")
	}
	if got := events[1].Kwargs[event.KwHeld]; got != "a" {
		t.Errorf("Expected held \"a\", got %v", got)
	}
	if got := events[2].Kwargs[event.KwHeld]; got != "ab" {
		t.Errorf("Expected held \"ab\", got %v", got)
	}
	if _, ok := events[3].Kwargs[event.KwHeld]; ok {
		t.Error("Held bytes should clear after reset")
	}
}

// TestParserReset verifies Reset drops pending bytes
func TestParserReset(t *testing.T) {
	r := &recorder{}
	p := NewParser(r.sink)
	p.Feed([]byte("\x1b[1"))
	p.Reset()
	p.Feed([]byte("A"))

	if len(r.events) != 1 || r.events[0].Kind != event.KindDraw || r.events[0].Text() != "A" {
		t.Errorf("Expected plain draw A after reset, got %v", r.events)
	}
}

// TestKeyByName verifies name lookup round-trips through String
func TestKeyByName(t *testing.T) {
	for _, name := range []string{"escape", "up", "page_up", "f12", "ctrl_c"} {
		k, ok := KeyByName(name)
		if !ok {
			t.Errorf("Expected %q to resolve", name)
			continue
		}
		if k.String() != name {
			t.Errorf("Expected %q, got %q", name, k.String())
		}
	}
	if k, ok := KeyByName("shift_tab"); !ok || k != KeyBacktab {
		t.Errorf("Expected shift_tab alias for backtab, got %v %v", k, ok)
	}
	if _, ok := KeyByName("hyper_q"); ok {
		t.Error("Unexpected resolution of unknown name")
	}
}
