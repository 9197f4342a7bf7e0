package document

// Node is one element of the document tree
// The set of implementations is closed: *Block, *Text, Newline, Tab, *Style, *Root
type Node interface {
	node()
}

// Container is implemented by nodes that own children
type Container interface {
	Node
	// Enter calls visit for each child in document order
	Enter(visit func(Node))
}

// Margin is the spacing subtracted from a Block's box on each side
type Margin struct {
	Top, Right, Bottom, Left int
}

// Block is a rectangular box. Nil Height/Width inherit the enclosing box
type Block struct {
	Height   *int
	Width    *int
	Absolute bool
	X, Y     int // Origin when Absolute
	Margin   Margin
	Children []Node
}

// Text is an immutable run of characters
type Text struct {
	content string
}

// Newline moves the cursor to the start of the next row
type Newline struct{}

// Tab advances the cursor to the next tab stop
type Tab struct{}

// Style applies foreground/background colors to its subtree
// Colors are names accepted by terminal.FgSGR; empty means unset
type Style struct {
	Fg       string
	FgBright bool
	Bg       string
	BgBright bool
	Children []Node
}

// Root is a plain container with no visual effect
type Root struct {
	Children []Node
}

func (*Block) node() {}
func (*Text) node() {}
func (Newline) node() {}
func (Tab) node() {}
func (*Style) node() {}
func (*Root) node() {}

// Enter visits children in order
func (b *Block) Enter(visit func(Node)) {
	for _, c := range b.Children {
		visit(c)
	}
}

// Enter visits children in order
func (s *Style) Enter(visit func(Node)) {
	for _, c := range s.Children {
		visit(c)
	}
}

// Enter visits children in order
func (r *Root) Enter(visit func(Node)) {
	for _, c := range r.Children {
		visit(c)
	}
}

// NewText creates a text node
func NewText(content string) *Text {
	return &Text{content: content}
}

// Content returns the text
func (t *Text) Content() string {
	return t.content
}

// NewBlock creates a block inheriting its size from the enclosing box
func NewBlock(children ...Node) *Block {
	return &Block{Children: children}
}

// Sized sets a fixed height and width and returns b
func (b *Block) Sized(height, width int) *Block {
	b.Height = &height
	b.Width = &width
	return b
}

// At marks b absolute at (x, y) and returns b
func (b *Block) At(x, y int) *Block {
	b.Absolute = true
	b.X = x
	b.Y = y
	return b
}

// Margins sets all four margins and returns b
func (b *Block) Margins(top, right, bottom, left int) *Block {
	b.Margin = Margin{Top: top, Right: right, Bottom: bottom, Left: left}
	return b
}

// Append adds children and returns b
func (b *Block) Append(children ...Node) *Block {
	b.Children = append(b.Children, children...)
	return b
}

// NewStyle creates a style with the given foreground color
func NewStyle(fg string, children ...Node) *Style {
	return &Style{Fg: fg, Children: children}
}

// NewRoot creates a root container
func NewRoot(children ...Node) *Root {
	return &Root{Children: children}
}
