package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownCodeStyle indicates the requested chroma style does not exist.
var ErrUnknownCodeStyle = errors.New("unknown code style")

// DefaultCodeStyle is the chroma style used when none is configured.
const DefaultCodeStyle = "github"

// Highlighter renders code blocks through chroma using CSS classes, so a
// single generated stylesheet controls all highlighted fragments.
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter creates a Highlighter for the named chroma style.
func NewHighlighter(styleName string) (*Highlighter, error) {
	if styleName == "" {
		styleName = DefaultCodeStyle
	}
	s := styles.Get(styleName)
	if s == nil || s.Name != styleName {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodeStyle, styleName)
	}
	return &Highlighter{style: s}, nil
}

// StyleName returns the name of the configured chroma style.
func (h *Highlighter) StyleName() string { return h.style.Name }

// Highlight converts source code to highlighted HTML. An empty or unknown
// language falls back to chroma's plain-text lexer.
func (h *Highlighter) Highlight(source, lang string, lineNumbers bool) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenising code block: %w", err)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(lineNumbers),
	)
	var b strings.Builder
	if err := formatter.Format(&b, h.style, it); err != nil {
		return "", fmt.Errorf("formatting code block: %w", err)
	}
	return b.String(), nil
}

// CSS returns the stylesheet for the configured style, the chroma
// counterpart of "pygmentize -S <style>".
func (h *Highlighter) CSS() (string, error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var b strings.Builder
	if err := formatter.WriteCSS(&b, h.style); err != nil {
		return "", fmt.Errorf("writing style CSS: %w", err)
	}
	return b.String(), nil
}
