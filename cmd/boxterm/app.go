package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lixenwraith/boxterm/document"
	"github.com/lixenwraith/boxterm/event"
	"github.com/lixenwraith/boxterm/terminal"
)

const maxLog = 16

// viewer is the demo document: an event log with a title and status bar
type viewer struct {
	doc     *document.Document
	entries []string
	count   int
	quit    func()
}

func newViewer(doc *document.Document) *viewer {
	v := &viewer{doc: doc}
	doc.Handle(document.Any, v.onEvent)
	return v
}

// filter holds ctrl_x so the following key arrives as a chord
func (v *viewer) filter(ev event.Event) terminal.Action {
	if ev.Kind == event.KindKey && ev.Text() == "ctrl_x" {
		return terminal.Hold
	}
	return terminal.Reset
}

func (v *viewer) onEvent(d *document.Document, ev event.Event) {
	if ev.Kind == event.KindKey && ev.Text() == "ctrl_c" {
		if v.quit != nil {
			v.quit()
		}
		return
	}

	v.count++
	v.entries = append(v.entries, describe(ev))
	if len(v.entries) > maxLog {
		v.entries = v.entries[len(v.entries)-maxLog:]
	}
	d.SetBody(v.view())
}

// view builds the tree for the current log and dimensions
func (v *viewer) view() document.Node {
	title := &document.Style{
		Fg: "white", FgBright: true, Bg: "blue",
		Children: []document.Node{document.NewText(" boxterm: press keys, click, resize; ctrl+c quits ")},
	}

	lines := document.NewBlock().Margins(1, 2, 2, 2)
	if len(v.entries) == 0 {
		lines.Append(&document.Style{Fg: "gray", Children: []document.Node{document.NewText("waiting for input")}})
	}
	for _, e := range v.entries {
		kind, rest, _ := strings.Cut(e, " ")
		lines.Append(
			document.NewStyle(kindColor(kind), document.NewText(kind)),
			document.Tab{},
			document.NewText(rest),
			document.Newline{},
		)
	}

	status := document.NewBlock(&document.Style{
		Fg: "black", Bg: "cyan",
		Children: []document.Node{
			document.NewText(fmt.Sprintf(" %dx%d", v.doc.Height, v.doc.Width)),
			document.Tab{},
			document.NewText(fmt.Sprintf("events %d ", v.count)),
		},
	}).At(0, max(v.doc.Height-1, 0))

	return document.NewRoot(title, document.Newline{}, lines, status)
}

func kindColor(kind string) string {
	switch kind {
	case event.KindKey:
		return "yellow"
	case event.KindMouse:
		return "green"
	case event.KindUnknown:
		return "red"
	case event.KindResize:
		return "magenta"
	default:
		return "white"
	}
}

// describe formats an event as "kind args key=value..." with sorted keys
func describe(ev event.Event) string {
	var b strings.Builder
	b.WriteString(ev.Kind)
	for _, a := range ev.Args {
		if s, ok := a.(string); ok {
			fmt.Fprintf(&b, " %q", s)
		} else {
			fmt.Fprintf(&b, " %v", a)
		}
	}

	keys := make([]string, 0, len(ev.Kwargs))
	for k := range ev.Kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := ev.Kwargs[k].(string); ok {
			fmt.Fprintf(&b, " %s=%q", k, s)
		} else {
			fmt.Fprintf(&b, " %s=%v", k, ev.Kwargs[k])
		}
	}
	return b.String()
}
