package pipeline

import (
	"errors"
	"fmt"
	"html"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-rst2reveal/internal/dateutil"
	"github.com/alnah/go-rst2reveal/internal/rst"
)

// ErrAssemble indicates the final document could not be built.
var ErrAssemble = errors.New("document assembly failed")

// DefaultRevealURL is the CDN base used when no local reveal.js tree is
// configured.
const DefaultRevealURL = "https://cdn.jsdelivr.net/npm/reveal.js@5.1.0"

// Relative asset paths used when stylesheets are linked instead of inlined.
const (
	baseCSSPath   = "static/css/rst2reveal.css"
	codeCSSPath   = "static/css/code.css"
	customCSSPath = "static/css/custom.css"
)

// defaultFirstSlide renders the title slide from document metadata, the
// shape the original generated for its titleslide section.
const defaultFirstSlide = `<h1>{{.Title}}</h1>
{{if .Subtitle}}<h3>{{.Subtitle}}</h3>
{{end}}<br>
{{range .Authors}}<p>{{if .Email}}<a href="mailto:{{.Email}}">{{end}}{{.Name}}{{if .Email}}</a>{{end}}</p>
{{end}}{{if .Institution}}<p>{{.Institution}}</p>
{{end}}<p>{{.Date}}</p>`

// defaultFooter renders the per-slide footer line.
const defaultFooter = `<b>{{.Title}}{{if .Subtitle}}. {{.Subtitle}}{{end}}.</b> {{.Author}}{{if .Institution}}, {{.Institution}}{{end}}. {{.Date}}`

// BuildOptions configures document assembly.
type BuildOptions struct {
	Theme        string
	Transition   string
	RevealURL    string // base URL or path of the reveal.js distribution
	EmbedAssets  bool   // inline generated CSS instead of writing static files
	BaseCSS      string // bundled overlay stylesheet content
	ChromaCSS    string // generated code highlighting stylesheet
	CustomCSS    string // user stylesheet content, appended last
	Lang         string
	SlideNumbers bool
	Controls     bool
	Progress     bool
	Center       bool
	Footer       bool
	FirstSlide   string // template override for the title slide
	FooterTmpl   string // template override for the footer line
	Now          time.Time
}

// BuildResult is the assembled document plus any companion asset files.
type BuildResult struct {
	HTML   string
	Assets map[string][]byte // relative path -> content; empty when embedding
}

// titleData feeds the first-slide and footer templates.
type titleData struct {
	Title       string
	Subtitle    string
	Authors     []rst.Author
	Author      string
	Institution string
	Date        string
}

// BuildDocument wraps rendered slides in the reveal.js skeleton.
func BuildDocument(meta rst.Meta, slides []RenderedSlide, o BuildOptions) (*BuildResult, error) {
	if o.RevealURL == "" {
		o.RevealURL = DefaultRevealURL
	}
	if o.Lang == "" {
		o.Lang = "en"
	}
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}

	data := titleData{
		Title:       meta.Title,
		Subtitle:    meta.Subtitle,
		Authors:     meta.Authors,
		Institution: meta.Institution,
		Date:        dateutil.Resolve(meta.Date, now),
	}
	if len(meta.Authors) > 0 {
		data.Author = meta.Authors[0].Name
	}

	footerHTML := ""
	if o.Footer {
		var err error
		footerHTML, err = execTemplate("footer", orDefault(o.FooterTmpl, defaultFooter), data)
		if err != nil {
			return nil, err
		}
	}

	res := &BuildResult{Assets: map[string][]byte{}}
	var b strings.Builder

	writeHead(&b, data.Title, o, res)

	b.WriteString("  <body>\n")
	b.WriteString("    <div class=\"reveal\">\n")
	b.WriteString("      <div class=\"slides\">\n")

	if meta.Title != "" || o.FirstSlide != "" {
		first, err := execTemplate("firstslide", orDefault(o.FirstSlide, defaultFirstSlide), data)
		if err != nil {
			return nil, err
		}
		b.WriteString("        <section class=\"titleslide\">\n")
		b.WriteString(indent(first, 10))
		b.WriteString("        </section>\n")
	}

	for _, s := range slides {
		writeSlide(&b, s, footerHTML, 8)
	}

	b.WriteString("      </div>\n")
	b.WriteString("    </div>\n")

	writeInitScript(&b, o)

	b.WriteString("  </body>\n</html>\n")

	res.HTML = b.String()
	if o.EmbedAssets {
		res.Assets = nil
	}
	return res, nil
}

// writeHead emits the document head, either linking or inlining the
// generated stylesheets. The reveal.js core assets are always linked, from
// the CDN or a local distribution path.
func writeHead(b *strings.Builder, title string, o BuildOptions, res *BuildResult) {
	b.WriteString("<!doctype html>\n")
	fmt.Fprintf(b, "<html lang=\"%s\">\n", html.EscapeString(o.Lang))
	b.WriteString("  <head>\n")
	b.WriteString("    <meta charset=\"utf-8\">\n")
	fmt.Fprintf(b, "    <title>%s</title>\n", html.EscapeString(title))
	if title != "" {
		fmt.Fprintf(b, "    <meta name=\"description\" content=\"%s\">\n", html.EscapeString(title))
	}
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(b, "    <link rel=\"stylesheet\" href=\"%s/dist/reveal.css\">\n", o.RevealURL)
	if o.Theme != "" {
		fmt.Fprintf(b, "    <link rel=\"stylesheet\" href=\"%s/dist/theme/%s.css\" id=\"theme\">\n", o.RevealURL, o.Theme)
	}

	sheets := []struct {
		path    string
		content string
	}{
		{codeCSSPath, o.ChromaCSS},
		{baseCSSPath, o.BaseCSS},
		{customCSSPath, o.CustomCSS},
	}
	for _, sheet := range sheets {
		if sheet.content == "" {
			continue
		}
		if o.EmbedAssets {
			b.WriteString("    <style>\n")
			b.WriteString(sanitizeCSS(sheet.content))
			b.WriteString("\n    </style>\n")
			continue
		}
		fmt.Fprintf(b, "    <link rel=\"stylesheet\" type=\"text/css\" href=\"%s\">\n", sheet.path)
		res.Assets[sheet.path] = []byte(sheet.content)
	}
	b.WriteString("  </head>\n")
}

// writeSlide emits one <section>, recursing for vertical slides.
func writeSlide(b *strings.Builder, s RenderedSlide, footerHTML string, pad int) {
	p := strings.Repeat(" ", pad)

	b.WriteString(p + "<section")
	for _, k := range sortedKeys(s.Attrs) {
		fmt.Fprintf(b, " %s=\"%s\"", k, html.EscapeString(s.Attrs[k]))
	}
	b.WriteString(">\n")

	if len(s.Vertical) > 0 {
		// The slide's own content becomes the first vertical child.
		writeSlide(b, RenderedSlide{Title: s.Title, Body: s.Body, Notes: s.Notes}, footerHTML, pad+2)
		for _, v := range s.Vertical {
			writeSlide(b, v, footerHTML, pad+2)
		}
		b.WriteString(p + "</section>\n")
		return
	}

	if s.Title != "" {
		fmt.Fprintf(b, "%s  <h2>%s</h2>\n", p, html.EscapeString(s.Title))
	}
	b.WriteString(indent(s.Body, pad+2))
	if s.Notes != "" {
		b.WriteString(p + "  <aside class=\"notes\">\n")
		b.WriteString(indent(s.Notes, pad+4))
		b.WriteString(p + "  </aside>\n")
	}
	if footerHTML != "" {
		fmt.Fprintf(b, "%s  <footer class=\"section-footer\">%s</footer>\n", p, footerHTML)
	}
	b.WriteString(p + "</section>\n")
}

// writeInitScript emits the reveal.js bootstrap matching the original's
// initialization block.
func writeInitScript(b *strings.Builder, o BuildOptions) {
	base := o.RevealURL
	for _, src := range []string{
		base + "/dist/reveal.js",
		base + "/plugin/zoom/zoom.js",
		base + "/plugin/notes/notes.js",
		base + "/plugin/search/search.js",
		base + "/plugin/math/math.js",
	} {
		fmt.Fprintf(b, "    <script src=\"%s\"></script>\n", src)
	}

	slideNumber := "false"
	if o.SlideNumbers {
		slideNumber = "'c/t'"
	}

	b.WriteString("    <script>\n")
	b.WriteString("      Reveal.initialize({\n")
	fmt.Fprintf(b, "        controls: %t,\n", o.Controls)
	fmt.Fprintf(b, "        progress: %t,\n", o.Progress)
	fmt.Fprintf(b, "        slideNumber: %s,\n", slideNumber)
	fmt.Fprintf(b, "        transition: '%s',\n", o.Transition)
	fmt.Fprintf(b, "        center: %t,\n", o.Center)
	b.WriteString("        hash: true,\n")
	b.WriteString("        history: true,\n")
	b.WriteString("        overview: true,\n")
	b.WriteString("        fragments: true,\n")
	b.WriteString("        pdfSeparateFragments: false,\n")
	b.WriteString("        plugins: [ RevealZoom, RevealNotes, RevealSearch, RevealMath ]\n")
	b.WriteString("      });\n")
	b.WriteString("    </script>\n")
}

// execTemplate parses and runs an html/template against the title data.
func execTemplate(name, text string, data titleData) (string, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s template: %v", ErrAssemble, name, err)
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: rendering %s template: %v", ErrAssemble, name, err)
	}
	return b.String(), nil
}

// sanitizeCSS escapes sequences that could close the <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

func indent(fragment string, pad int) string {
	if fragment == "" {
		return ""
	}
	p := strings.Repeat(" ", pad)
	lines := strings.Split(strings.TrimRight(fragment, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = p + l
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
