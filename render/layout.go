package render

import (
	"github.com/lixenwraith/boxterm/document"
	"github.com/lixenwraith/boxterm/terminal"
)

// constraint is the box a subtree renders into, origin in absolute screen cells
type constraint struct {
	height int
	width  int
	x      int
	y      int
}

// cursor is the write position relative to the enclosing box
type cursor struct {
	col int
	row int
}

// layout holds per-call output state; box, cursor and scope travel as parameters
type layout struct {
	out     []byte
	tabStop int
	mode    terminal.ColorMode
}

// place renders n and returns the cursor after it
func (l *layout) place(n document.Node, box constraint, cur cursor, sc scope) cursor {
	switch n := n.(type) {
	case *document.Block:
		if n != nil {
			l.block(n, box, cur, sc)
		}
		return cur
	case *document.Text:
		if n == nil {
			return cur
		}
		return l.text(n, box, cur, sc)
	case document.Newline:
		return cursor{col: 0, row: cur.row + 1}
	case document.Tab:
		return l.tab(box, cur)
	case *document.Style:
		if n == nil {
			return cur
		}
		return l.children(n, box, cur, sc.push(n, l.mode))
	case *document.Root:
		if n == nil {
			return cur
		}
		return l.children(n, box, cur, sc)
	case nil:
		return cur
	default:
		if c, ok := n.(document.Container); ok {
			return l.children(c, box, cur, sc)
		}
		return cur
	}
}

// children places each child of c in order, threading the cursor
func (l *layout) children(c document.Container, box constraint, cur cursor, sc scope) cursor {
	c.Enter(func(child document.Node) {
		cur = l.place(child, box, cur, sc)
	})
	return cur
}

// block opens a new box; the parent cursor is not advanced by its content
func (l *layout) block(b *document.Block, parent constraint, cur cursor, sc scope) {
	l.children(b, childBox(b, parent, cur), cursor{}, sc)
}

// childBox resolves the box of b placed at cur inside parent
func childBox(b *document.Block, parent constraint, cur cursor) constraint {
	// Fixed sizes never exceed the enclosing box
	box := parent
	if b.Height != nil {
		box.height = min(*b.Height, parent.height)
	}
	if b.Width != nil {
		box.width = min(*b.Width, parent.width)
	}

	if b.Absolute {
		box.x = b.X
		box.y = b.Y
	} else {
		box.x += cur.col
		box.y += cur.row
	}

	box.x += b.Margin.Left
	box.y += b.Margin.Top
	box.height = max(box.height-b.Margin.Top-b.Margin.Bottom, 0)
	box.width = max(box.width-b.Margin.Left-b.Margin.Right, 0)
	return box
}

// text writes wrapped fragments at absolute positions, dropping whatever falls outside the box
func (l *layout) text(t *document.Text, box constraint, cur cursor, sc scope) cursor {
	for _, frag := range Wrap(t.Content(), box.width, box.width-cur.col) {
		if cur.col >= box.width || cur.row >= box.height {
			break
		}

		l.out = append(l.out, sc.prefix...)
		l.out = terminal.AppendCursorPos(l.out, box.y+cur.row, box.x+cur.col)
		l.out = append(l.out, frag...)
		l.out = append(l.out, sc.suffix...)

		n := Width(frag)
		// One cell is held back before the right edge
		if box.x+cur.col+n+1 >= box.width-1 {
			cur.col = 0
			cur.row++
		} else {
			cur.col += n
		}
	}
	return cur
}

// tab advances to the next multiple of the tab stop, wrapping with the overflow as column
func (l *layout) tab(box constraint, cur cursor) cursor {
	diff := l.tabStop - cur.col%l.tabStop
	if cur.col+diff > box.width {
		return cursor{col: diff, row: cur.row + 1}
	}
	return cursor{col: cur.col + diff, row: cur.row}
}
