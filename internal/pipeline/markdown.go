package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrMarkdownConvert indicates goldmark failed to render a fragment.
var ErrMarkdownConvert = errors.New("markdown conversion failed")

// MarkdownFrontend converts Markdown sources into slides using goldmark,
// so .md decks go through the same partitioning rules as .rst ones.
type MarkdownFrontend struct {
	md goldmark.Markdown
}

// NewMarkdownFrontend creates a front-end with GFM extensions and chroma
// highlighting emitting CSS classes, sharing the stylesheet generated for
// RST code blocks.
func NewMarkdownFrontend(codeStyle string) *MarkdownFrontend {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &MarkdownFrontend{md: md}
}

// mdSlide is a slide under construction during the AST walk.
type mdSlide struct {
	title string
	level int
	body  bytes.Buffer
}

// Slides parses and partitions a Markdown document. Headings at or above
// splitLevel begin slides; with splitLevel 2, level-2 headings become
// vertical slides. Goldmark has no native context support, so conversion
// runs in a goroutine guarded by a select.
func (f *MarkdownFrontend) Slides(ctx context.Context, source []byte, splitLevel int) ([]RenderedSlide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		slides []RenderedSlide
		err    error
	}
	done := make(chan result, 1)

	go func() {
		slides, err := f.partition(source, splitLevel)
		done <- result{slides: slides, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.slides, r.err
	}
}

func (f *MarkdownFrontend) partition(source []byte, splitLevel int) ([]RenderedSlide, error) {
	if splitLevel < 1 {
		splitLevel = 1
	}
	doc := f.md.Parser().Parse(text.NewReader(source))

	var flat []*mdSlide
	current := func() *mdSlide {
		if len(flat) == 0 {
			flat = append(flat, &mdSlide{level: 1})
		}
		return flat[len(flat)-1]
	}

	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if h, ok := c.(*ast.Heading); ok && h.Level <= splitLevel {
			flat = append(flat, &mdSlide{title: headingText(h, source), level: h.Level})
			continue
		}
		if err := f.md.Renderer().Render(&current().body, source, c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMarkdownConvert, err)
		}
	}

	// Fold the flat list into horizontal slides with vertical children.
	var slides []RenderedSlide
	for _, s := range flat {
		rendered := RenderedSlide{Title: s.title, Body: s.body.String()}
		if s.level >= 2 && len(slides) > 0 {
			last := &slides[len(slides)-1]
			last.Vertical = append(last.Vertical, rendered)
			continue
		}
		slides = append(slides, rendered)
	}
	return slides, nil
}

// headingText flattens a heading node to plain text.
func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
