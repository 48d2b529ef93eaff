package pipeline

import (
	"strings"
	"testing"
)

func TestRenderAdmonitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "warning",
			source: ".. warning::\n\n   Mind the gap.\n",
			want: []string{
				`<div class="admonition warning">`,
				`<p class="admonition-title">Warning</p>`,
				"<p>Mind the gap.</p>",
			},
		},
		{
			name:   "note",
			source: ".. note::\n\n   Remember.\n",
			want:   []string{`<div class="admonition note">`, `<p class="admonition-title">Note</p>`},
		},
		{
			name:   "generic admonition with custom title",
			source: ".. admonition:: Pro Tip\n\n   Use tables.\n",
			want:   []string{`<div class="admonition admonition-generic">`, `<p class="admonition-title">Pro Tip</p>`},
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

func TestRenderTopicAndEpigraph(t *testing.T) {
	t.Parallel()

	out := renderSource(t, ".. topic:: Agenda\n\n   Items.\n")
	for _, want := range []string{`<div class="topic">`, `<p class="topic-title">Agenda</p>`} {
		if !strings.Contains(out, want) {
			t.Errorf("topic output missing %q:\n%s", want, out)
		}
	}

	out = renderSource(t, ".. epigraph::\n\n   To be or not to be.\n")
	if !strings.Contains(out, `<blockquote class="epigraph">`) {
		t.Errorf("epigraph output:\n%s", out)
	}
}

func TestRenderColumns(t *testing.T) {
	t.Parallel()

	source := `.. column:: left

   Left side.

.. column:: right

   Right side.
`
	out := renderSource(t, source)

	for _, want := range []string{
		`<div class="columns">`,
		`<div class="column-left">`,
		`<div class="column-right">`,
		"<p>Left side.</p>",
		"<p>Right side.</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// The right column closes the wrapper: tags must balance.
	opens := strings.Count(out, "<div")
	closes := strings.Count(out, "</div>")
	if opens != closes {
		t.Errorf("unbalanced divs: %d open, %d close:\n%s", opens, closes, out)
	}
}

func TestRenderCodeDirective(t *testing.T) {
	t.Parallel()

	source := ".. code:: python\n\n   def f():\n       return 1\n"
	out := renderSource(t, source)
	if !strings.Contains(out, "chroma") {
		t.Errorf("code directive not highlighted:\n%s", out)
	}
	// Keyword tokens get their own class spans.
	if !strings.Contains(out, "<span") {
		t.Errorf("no token spans emitted:\n%s", out)
	}
}

func TestRenderImageAndFigure(t *testing.T) {
	t.Parallel()

	source := ".. image:: pic.png\n   :width: 200\n   :align: center\n   :alt: a pic\n"
	out := renderSource(t, source)
	for _, want := range []string{`<div class="align-center">`, `src="pic.png"`, `width="200"`, `alt="a pic"`} {
		if !strings.Contains(out, want) {
			t.Errorf("image output missing %q:\n%s", want, out)
		}
	}

	source = ".. figure:: chart.png\n\n   The caption.\n"
	out = renderSource(t, source)
	if !strings.Contains(out, `<p class="caption">The caption.</p>`) {
		t.Errorf("figure caption missing:\n%s", out)
	}
}

func TestRenderVideo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "mp4",
			source: ".. video:: demo.mp4\n",
			want:   `<source src="demo.mp4" type="video/mp4">`,
		},
		{
			name:   "webm with options",
			source: ".. video:: demo.webm\n   :width: 80%\n   :autoplay:\n   :loop:\n",
			want:   "controls autoplay loop",
		},
		{
			name:   "ogv maps to ogg",
			source: ".. video:: demo.ogv\n",
			want:   `type="video/ogg"`,
		},
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

	t.Run("unsupported extension is skipped", func(t *testing.T) {
		t.Parallel()
		out := renderSource(t, ".. video:: demo.avi\n")
		if strings.Contains(out, "<video") {
			t.Errorf("unsupported video rendered:\n%s", out)
		}
	})
}

func TestRenderMathBlock(t *testing.T) {
	t.Parallel()

	out := renderSource(t, ".. math::\n\n   e = mc^2\n")
	if !strings.Contains(out, `<div class="math">\[`) || !strings.Contains(out, "e = mc^2") {
		t.Errorf("math block output:\n%s", out)
	}
}

func TestRenderRawHTML(t *testing.T) {
	t.Parallel()

	out := renderSource(t, ".. raw:: html\n\n   <canvas id=\"c\"></canvas>\n")
	if !strings.Contains(out, `<canvas id="c"></canvas>`) {
		t.Errorf("raw html not passed through:\n%s", out)
	}

	// Non-html raw content is dropped.
	out = renderSource(t, ".. raw:: latex\n\n   \\bf{x}\n")
	if strings.Contains(out, "bf{x}") {
		t.Errorf("non-html raw content leaked:\n%s", out)
	}
}

func TestRenderUnknownDirectivePassthrough(t *testing.T) {
	t.Parallel()

	out := renderSource(t, ".. sidebar-ish::\n\n   Body.\n")
	if !strings.Contains(out, `<div class="sidebar-ish">`) {
		t.Errorf("unknown directive not wrapped:\n%s", out)
	}
	if !strings.Contains(out, "<p>Body.</p>") {
		t.Errorf("unknown directive body missing:\n%s", out)
	}
}

func TestRenderPlotDirective(t *testing.T) {
	t.Parallel()

	source := `.. plot::
   :title: Growth

   line sales: 0,1 1,2 2,4
`
	out := renderSource(t, source)
	if !strings.Contains(out, `<div class="matplotlib-container align-center">`) {
		t.Errorf("plot container missing:\n%s", out)
	}
	if !strings.Contains(out, "<svg") {
		t.Errorf("no inline svg emitted:\n%s", out)
	}
}

func TestRenderPlotDirectiveBadSpec(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, ".. plot::\n\n   line: not-a-number\n")
	_, err := newTestRenderer(t).RenderFragment(doc.Children)
	if err == nil {
		t.Fatal("RenderFragment() error = nil, want plot spec error")
	}
}
