package pipeline

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/alnah/go-rst2reveal/internal/plot"
	"github.com/alnah/go-rst2reveal/internal/rst"
)

// RenderedSlide is a slide reduced to HTML fragments, ready for assembly.
type RenderedSlide struct {
	Title    string
	Body     string
	Notes    string
	Attrs    map[string]string
	Vertical []RenderedSlide
}

// SlideRenderer turns partitioned slides into HTML fragments. Rendering is
// stateless between invocations: identical input yields identical output.
type SlideRenderer struct {
	highlighter *Highlighter
	plotFormat  plot.Format
}

// NewSlideRenderer creates a renderer using the given highlighter and plot
// output format.
func NewSlideRenderer(h *Highlighter, plotFormat plot.Format) *SlideRenderer {
	return &SlideRenderer{highlighter: h, plotFormat: plotFormat}
}

// RenderSlides renders every slide, preserving order.
func (r *SlideRenderer) RenderSlides(slides []*Slide) ([]RenderedSlide, error) {
	out := make([]RenderedSlide, 0, len(slides))
	for _, s := range slides {
		rs, err := r.renderSlide(s)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, nil
}

func (r *SlideRenderer) renderSlide(s *Slide) (RenderedSlide, error) {
	body, err := r.RenderFragment(s.Nodes)
	if err != nil {
		return RenderedSlide{}, err
	}
	notes, err := r.RenderFragment(s.Notes)
	if err != nil {
		return RenderedSlide{}, err
	}
	rs := RenderedSlide{Title: s.Title, Body: body, Notes: notes, Attrs: s.Attrs}
	for _, v := range s.Vertical {
		child, err := r.renderSlide(v)
		if err != nil {
			return RenderedSlide{}, err
		}
		rs.Vertical = append(rs.Vertical, child)
	}
	return rs, nil
}

// RenderFragment renders a node list to embeddable HTML.
func (r *SlideRenderer) RenderFragment(nodes []rst.Node) (string, error) {
	var b strings.Builder
	if err := r.renderNodes(&b, nodes); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *SlideRenderer) renderNodes(b *strings.Builder, nodes []rst.Node) error {
	for _, n := range nodes {
		if err := r.renderNode(b, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *SlideRenderer) renderNode(b *strings.Builder, n rst.Node) error {
	switch v := n.(type) {
	case *rst.Paragraph:
		b.WriteString("<p>")
		renderInline(b, v.Content)
		b.WriteString("</p>\n")

	case *rst.Section:
		// Headings below the split level stay inside the slide body.
		tag := "h" + strconv.Itoa(min(v.Level+2, 6))
		b.WriteString("<" + tag + ">")
		renderInline(b, v.Title)
		b.WriteString("</" + tag + ">\n")
		return r.renderNodes(b, v.Children)

	case *rst.BulletList:
		return r.renderList(b, "ul", v.Items)

	case *rst.EnumeratedList:
		return r.renderList(b, "ol", v.Items)

	case *rst.LiteralBlock:
		out, err := r.highlighter.Highlight(v.Text, "", false)
		if err != nil {
			return err
		}
		b.WriteString(out)

	case *rst.BlockQuote:
		b.WriteString("<blockquote>\n")
		if err := r.renderNodes(b, v.Children); err != nil {
			return err
		}
		b.WriteString("</blockquote>\n")

	case *rst.Transition:
		b.WriteString("<hr />\n")

	case *rst.FieldList:
		b.WriteString(`<dl class="field-list">` + "\n")
		for _, f := range v.Fields {
			fmt.Fprintf(b, "<dt>%s</dt>\n<dd>%s</dd>\n",
				html.EscapeString(f.Name), html.EscapeString(f.Value))
		}
		b.WriteString("</dl>\n")

	case *rst.Directive:
		return r.renderDirective(b, v)

	case *rst.Comment:
		// dropped

	case *rst.Document:
		return r.renderNodes(b, v.Children)
	}
	return nil
}

func (r *SlideRenderer) renderList(b *strings.Builder, tag string, items [][]rst.Node) error {
	b.WriteString("<" + tag + ">\n")
	for _, item := range items {
		b.WriteString("<li>")
		// A lone paragraph item renders inline, without the <p> wrapper.
		if len(item) == 1 {
			if p, ok := item[0].(*rst.Paragraph); ok {
				renderInline(b, p.Content)
				b.WriteString("</li>\n")
				continue
			}
		}
		if err := r.renderNodes(b, item); err != nil {
			return err
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</" + tag + ">\n")
	return nil
}

// renderInline writes inline content, mapping roles through the role table.
func renderInline(b *strings.Builder, content []rst.Inline) {
	for _, in := range content {
		switch v := in.(type) {
		case rst.Text:
			b.WriteString(html.EscapeString(v.Value))
		case rst.Emphasis:
			b.WriteString("<em>" + html.EscapeString(v.Text) + "</em>")
		case rst.Strong:
			b.WriteString("<strong>" + html.EscapeString(v.Text) + "</strong>")
		case rst.Literal:
			b.WriteString("<code>" + html.EscapeString(v.Text) + "</code>")
		case rst.Link:
			target := v.Target
			if target == "" {
				b.WriteString(html.EscapeString(v.Text))
				continue
			}
			fmt.Fprintf(b, `<a href="%s">%s</a>`,
				html.EscapeString(target), html.EscapeString(v.Text))
		case rst.Role:
			renderRole(b, v)
		}
	}
}

// renderRole maps an interpreted-text role to presentation markup.
func renderRole(b *strings.Builder, role rst.Role) {
	switch role.Name {
	case "small":
		b.WriteString(`<span class="small">` + html.EscapeString(role.Text) + "</span>")
	case "striked", "strike":
		b.WriteString(`<span class="striked">` + html.EscapeString(role.Text) + "</span>")
	case "vspace":
		n, err := strconv.Atoi(strings.TrimSpace(role.Text))
		if err != nil || n < 0 {
			n = 1
		}
		b.WriteString(strings.Repeat("<br>", n))
	case "math":
		b.WriteString(`\(` + html.EscapeString(role.Text) + `\)`)
	case "sub":
		b.WriteString("<sub>" + html.EscapeString(role.Text) + "</sub>")
	case "sup":
		b.WriteString("<sup>" + html.EscapeString(role.Text) + "</sup>")
	case "title-reference":
		b.WriteString("<cite>" + html.EscapeString(role.Text) + "</cite>")
	default:
		// Unknown roles pass through as a classed span.
		fmt.Fprintf(b, `<span class="%s">%s</span>`,
			html.EscapeString(role.Name), html.EscapeString(role.Text))
	}
}
