package pipeline

import (
	"strings"
	"testing"

	"github.com/alnah/go-rst2reveal/internal/plot"
)

func newTestRenderer(t *testing.T) *SlideRenderer {
	t.Helper()
	h, err := NewHighlighter("")
	if err != nil {
		t.Fatalf("NewHighlighter() error = %v", err)
	}
	return NewSlideRenderer(h, plot.FormatSVG)
}

func renderSource(t *testing.T, source string) string {
	t.Helper()
	doc := mustParse(t, source)
	out, err := newTestRenderer(t).RenderFragment(doc.Children)
	if err != nil {
		t.Fatalf("RenderFragment() error = %v", err)
	}
	return out
}

func TestRenderBasicNodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "paragraph with markup",
			source: "an *em* and **strong** and ``lit``\n",
			want:   []string{"<p>an <em>em</em> and <strong>strong</strong> and <code>lit</code></p>"},
		},
		{
			name:   "paragraph escapes html",
			source: "a <script> tag\n",
			want:   []string{"a &lt;script&gt; tag"},
		},
		{
			name:   "hyperlink",
			source: "see `Go <https://go.dev>`_\n",
			want:   []string{`<a href="https://go.dev">Go</a>`},
		},
		{
			name:   "bullet list inlines lone paragraphs",
			source: "- one\n- two\n",
			want:   []string{"<ul>", "<li>one</li>", "<li>two</li>", "</ul>"},
		},
		{
			name:   "enumerated list",
			source: "1. first\n2. second\n",
			want:   []string{"<ol>", "<li>first</li>", "</ol>"},
		},
		{
			name:   "transition",
			source: "a\n\n----\n\nb\n",
			want:   []string{"<hr />"},
		},
		{
			name:   "block quote",
			source: "lead\n\n    quoted\n",
			want:   []string{"<blockquote>", "<p>quoted</p>", "</blockquote>"},
		},
		{
			name:   "field list",
			source: "intro\n\n:speaker: Ada\n",
			want:   []string{`<dl class="field-list">`, "<dt>speaker</dt>", "<dd>Ada</dd>"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := renderSource(t, tt.source)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderRoles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "small", source: ":small:`tiny`\n", want: `<span class="small">tiny</span>`},
		{name: "striked", source: ":striked:`gone`\n", want: `<span class="striked">gone</span>`},
		{name: "strike alias", source: ":strike:`gone`\n", want: `<span class="striked">gone</span>`},
		{name: "vspace", source: ":vspace:`2`\n", want: "<br><br>"},
		{name: "vspace default", source: ":vspace:`x`\n", want: "<p><br></p>"},
		{name: "math", source: ":math:`x^2`\n", want: `\(x^2\)`},
		{name: "sub", source: "H\\ :sub:`2`\\ O\n", want: "<sub>2</sub>"},
		{name: "sup", source: "x\\ :sup:`3`\n", want: "<sup>3</sup>"},
		{name: "title reference", source: "`Moby Dick`\n", want: "<cite>Moby Dick</cite>"},
		{name: "unknown role passes through classed", source: ":whatever:`x`\n", want: `<span class="whatever">x</span>`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := renderSource(t, tt.source)
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRenderSubsectionHeading(t *testing.T) {
	t.Parallel()

	// A section rendered inside a slide body becomes an h3+ heading.
	source := `Deck
====

Part
----

Topic
~~~~~

text

Other
-----

y
`
	slides := Partition(mustParse(t, source), 1)
	rendered, err := newTestRenderer(t).RenderSlides(slides)
	if err != nil {
		t.Fatalf("RenderSlides() error = %v", err)
	}
	if !strings.Contains(rendered[0].Body, "<h4>Topic</h4>") {
		t.Errorf("body missing level-2 heading:\n%s", rendered[0].Body)
	}
}

func TestRenderLiteralBlockHighlighted(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "Code::\n\n    x = 1\n")
	if !strings.Contains(out, "chroma") {
		t.Errorf("literal block not highlighted:\n%s", out)
	}
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	source := `Deck
====

Intro
-----

- a
- b

.. warning::

   Careful.

Outro
-----

text
`
	doc := mustParse(t, source)
	r := newTestRenderer(t)

	first, err := r.RenderSlides(Partition(doc, 1))
	if err != nil {
		t.Fatalf("RenderSlides() error = %v", err)
	}
	second, err := r.RenderSlides(Partition(doc, 1))
	if err != nil {
		t.Fatalf("RenderSlides() error = %v", err)
	}
	for i := range first {
		if first[i].Body != second[i].Body {
			t.Errorf("slide %d body differs between runs", i)
		}
	}
}
