package rst2reveal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-rst2reveal/internal/pipeline"
)

const sampleRST = `My Talk
=======

:author: Jane Doe
:date: YYYY-MM-DD

Intro
-----

First point.

Details
-------

- one
- two
`

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "defaults", opts: nil},
		{name: "valid theme", opts: []Option{WithTheme("moon")}},
		{name: "unknown theme", opts: []Option{WithTheme("neon")}, wantErr: ErrUnknownTheme},
		{name: "unknown transition", opts: []Option{WithTransition("spiral")}, wantErr: ErrUnknownTransition},
		{name: "split level too low", opts: []Option{WithSplitLevel(0)}, wantErr: ErrInvalidSplitLevel},
		{name: "split level too high", opts: []Option{WithSplitLevel(3)}, wantErr: ErrInvalidSplitLevel},
		{name: "unknown code style", opts: []Option{WithCodeStyle("nope")}, wantErr: pipeline.ErrUnknownCodeStyle},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := New(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer c.Close()
		})
	}
}

func TestConvertEmptyDocumentShell(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// An empty document is not an error: it yields a valid presentation
	// shell with an empty slide container.
	for _, source := range []string{"", "   \n\t  "} {
		res, err := c.Convert(context.Background(), Input{Source: source})
		if err != nil {
			t.Fatalf("Convert(%q) error = %v", source, err)
		}
		html := string(res.HTML)
		for _, want := range []string{"<div class=\"slides\">", "Reveal.initialize", "</html>"} {
			if !strings.Contains(html, want) {
				t.Errorf("empty shell missing %q", want)
			}
		}
		if strings.Contains(html, "<section") {
			t.Error("empty document produced a slide section")
		}
		if res.Slides != 0 {
			t.Errorf("Slides = %d, want 0", res.Slides)
		}
	}
}

func TestConvertRST(t *testing.T) {
	t.Parallel()

	c, err := New(WithClock(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	res, err := c.Convert(context.Background(), Input{Source: sampleRST, Name: "talk.rst"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	html := string(res.HTML)
	for _, want := range []string{
		"Reveal.initialize",
		"titleslide",
		"My Talk",
		"Jane Doe",
		"2024-03-15",
		"<h2>Intro</h2>",
		"<h2>Details</h2>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if res.Slides != 2 {
		t.Errorf("Slides = %d, want 2", res.Slides)
	}
	if res.PDF != nil {
		t.Error("PDF present without WithPDF")
	}
}

func TestConvertParseError(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	source := "=======\nMismatch\n====\n"
	if _, err := c.Convert(context.Background(), Input{Source: source}); err == nil {
		t.Fatal("Convert() accepted mismatched section adornments")
	}
}

func TestConvertMarkdown(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	source := "# One\n\nhello\n\n# Two\n\nworld\n"

	t.Run("by extension", func(t *testing.T) {
		t.Parallel()
		res, err := c.Convert(context.Background(), Input{Source: source, Name: "deck.md"})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if res.Slides != 2 {
			t.Errorf("Slides = %d, want 2", res.Slides)
		}
		if !strings.Contains(string(res.HTML), "<p>hello</p>") {
			t.Error("markdown body not rendered")
		}
	})

	t.Run("explicit format wins", func(t *testing.T) {
		t.Parallel()
		res, err := c.Convert(context.Background(), Input{Source: source, Name: "deck.txt", Format: FormatMarkdown})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if res.Slides != 2 {
			t.Errorf("Slides = %d, want 2", res.Slides)
		}
	})
}

func TestConvertLinkedAssets(t *testing.T) {
	t.Parallel()

	c, err := New(WithEmbedAssets(false), WithCustomCSS(".x { color: red }"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	res, err := c.Convert(context.Background(), Input{Source: sampleRST})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	for _, path := range []string{
		"static/css/rst2reveal.css",
		"static/css/code.css",
		"static/css/custom.css",
	} {
		if _, ok := res.Assets[path]; !ok {
			t.Errorf("Assets missing %q", path)
		}
		if !strings.Contains(string(res.HTML), path) {
			t.Errorf("document does not link %q", path)
		}
	}
}

func TestConvertEmbeddedAssets(t *testing.T) {
	t.Parallel()

	c, err := New(WithEmbedAssets(true))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	res, err := c.Convert(context.Background(), Input{Source: sampleRST})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.Assets) != 0 {
		t.Errorf("Assets = %d entries, want none when embedding", len(res.Assets))
	}
	if !strings.Contains(string(res.HTML), "<style>") {
		t.Error("embedded document has no inline styles")
	}
}

func TestConvertCanceledContext(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Convert(ctx, Input{Source: sampleRST}); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input Input
		want  Format
	}{
		{name: "rst extension", input: Input{Name: "a.rst"}, want: FormatRST},
		{name: "md extension", input: Input{Name: "a.md"}, want: FormatMarkdown},
		{name: "markdown extension", input: Input{Name: "a.markdown"}, want: FormatMarkdown},
		{name: "uppercase extension", input: Input{Name: "A.MD"}, want: FormatMarkdown},
		{name: "no name defaults to rst", input: Input{}, want: FormatRST},
		{name: "explicit beats extension", input: Input{Name: "a.md", Format: FormatRST}, want: FormatRST},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := detectFormat(tt.input); got != tt.want {
				t.Errorf("detectFormat(%+v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithTimeoutPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

func TestThemeAndTransitionLists(t *testing.T) {
	t.Parallel()

	themes := Themes()
	if len(themes) != len(revealThemes) {
		t.Errorf("Themes() returned %d names, want %d", len(themes), len(revealThemes))
	}
	for i := 1; i < len(themes); i++ {
		if themes[i-1] >= themes[i] {
			t.Fatalf("Themes() not sorted: %q before %q", themes[i-1], themes[i])
		}
	}

	transitions := Transitions()
	for _, want := range []string{"linear", "fade", "none"} {
		found := false
		for _, tr := range transitions {
			if tr == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Transitions() missing %q", want)
		}
	}
}
