package rst

import "strings"

// Node is a block-level element of the document tree.
type Node interface {
	// Pos returns the 1-based source line the node starts on.
	Pos() int
}

// Inline is an inline (phrase-level) element inside a paragraph or title.
type Inline interface {
	inline()
}

// Document is the root of a parsed tree.
type Document struct {
	Meta     Meta
	Children []Node
}

func (d *Document) Pos() int { return 1 }

// Meta holds document metadata promoted from the document title and the
// leading docinfo field list.
type Meta struct {
	Title       string
	Subtitle    string
	Authors     []Author
	Date        string
	Institution string
}

// Author is a document author, optionally with an email address.
type Author struct {
	Name  string
	Email string
}

// Section is a titled division of the document. Level 1 is a top-level
// section; nested sections increase the level by one.
type Section struct {
	Line     int
	Level    int
	Title    []Inline
	Children []Node
}

func (s *Section) Pos() int { return s.Line }

// TitleText returns the section title as plain text.
func (s *Section) TitleText() string { return InlineText(s.Title) }

// Paragraph is a run of body text.
type Paragraph struct {
	Line    int
	Content []Inline
}

func (p *Paragraph) Pos() int { return p.Line }

// BulletList is an unordered list. Each item holds block-level children.
type BulletList struct {
	Line  int
	Items [][]Node
}

func (l *BulletList) Pos() int { return l.Line }

// EnumeratedList is an ordered list.
type EnumeratedList struct {
	Line  int
	Items [][]Node
}

func (l *EnumeratedList) Pos() int { return l.Line }

// LiteralBlock is preformatted text introduced by "::".
type LiteralBlock struct {
	Line int
	Text string
}

func (b *LiteralBlock) Pos() int { return b.Line }

// BlockQuote is an indented block not claimed by any other construct.
type BlockQuote struct {
	Line     int
	Children []Node
}

func (q *BlockQuote) Pos() int { return q.Line }

// Transition is a horizontal divider line.
type Transition struct {
	Line int
}

func (t *Transition) Pos() int { return t.Line }

// Comment is explicit markup that is not a directive. Comments carry no
// presentation semantics but are kept so callers can skip them knowingly.
type Comment struct {
	Line int
	Text string
}

func (c *Comment) Pos() int { return c.Line }

// Directive is an explicit markup block of the form ".. name:: args".
// Raw holds the dedented body lines verbatim; Children holds the body parsed
// as nested blocks. Renderers pick whichever view fits the directive.
type Directive struct {
	Line     int
	Name     string
	Args     []string
	Options  map[string]string
	Raw      []string
	Children []Node
}

func (d *Directive) Pos() int { return d.Line }

// Option returns a directive option value and whether it was set.
func (d *Directive) Option(name string) (string, bool) {
	v, ok := d.Options[name]
	return v, ok
}

// FieldList is a run of ":name: value" fields. A field list at the very top
// of the document is consumed as docinfo metadata.
type FieldList struct {
	Line   int
	Fields []Field
}

func (f *FieldList) Pos() int { return f.Line }

// Field is a single entry of a field list.
type Field struct {
	Name  string
	Value string
}

// Inline node types. Emphasis, Strong and Literal are kept flat (plain text
// content); nesting inline markup is not supported by the grammar subset.

// Text is a run of plain text.
type Text struct{ Value string }

// Emphasis is *emphasized* text.
type Emphasis struct{ Text string }

// Strong is **strong** text.
type Strong struct{ Text string }

// Literal is ``inline literal`` text.
type Literal struct{ Text string }

// Link is a hyperlink reference with inline target: `text <url>`_.
type Link struct {
	Text   string
	Target string
}

// Role is an interpreted text role: :name:`text`.
type Role struct {
	Name string
	Text string
}

func (Text) inline()     {}
func (Emphasis) inline() {}
func (Strong) inline()   {}
func (Literal) inline()  {}
func (Link) inline()     {}
func (Role) inline()     {}

// InlineText flattens inline content to plain text.
func InlineText(content []Inline) string {
	var b strings.Builder
	for _, in := range content {
		switch v := in.(type) {
		case Text:
			b.WriteString(v.Value)
		case Emphasis:
			b.WriteString(v.Text)
		case Strong:
			b.WriteString(v.Text)
		case Literal:
			b.WriteString(v.Text)
		case Link:
			b.WriteString(v.Text)
		case Role:
			b.WriteString(v.Text)
		}
	}
	return b.String()
}
