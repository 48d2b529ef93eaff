package pipeline

import (
	"encoding/base64"
	"fmt"
	"html"
	"path"
	"strings"

	"github.com/alnah/go-rst2reveal/internal/plot"
	"github.com/alnah/go-rst2reveal/internal/rst"
)

// admonitionKinds are the standard docutils admonition directives. Each maps
// to <div class="admonition {kind}"> with a title paragraph, matching the
// .admonition.{kind} hooks in the bundled theme.
var admonitionKinds = map[string]bool{
	"attention": true,
	"caution":   true,
	"danger":    true,
	"error":     true,
	"hint":      true,
	"important": true,
	"note":      true,
	"tip":       true,
	"warning":   true,
}

// videoCodecs maps video file extensions to MIME subtypes, as in the
// original video directive.
var videoCodecs = map[string]string{
	".webm": "webm",
	".ogg":  "ogg",
	".ogv":  "ogg",
	".mp4":  "mp4",
}

// renderDirective dispatches one directive through the fixed mapping table.
// Unrecognized directives are passed through as a classed container; they
// are never an error.
func (r *SlideRenderer) renderDirective(b *strings.Builder, d *rst.Directive) error {
	switch {
	case admonitionKinds[d.Name]:
		return r.renderAdmonition(b, d.Name, titleCase(d.Name), d.Children)

	case d.Name == "admonition":
		title := "Admonition"
		if len(d.Args) > 0 {
			title = d.Args[0]
		}
		return r.renderAdmonition(b, "admonition-generic", title, d.Children)

	case d.Name == "topic":
		b.WriteString(`<div class="topic">` + "\n")
		if len(d.Args) > 0 {
			b.WriteString(`<p class="topic-title">` + html.EscapeString(d.Args[0]) + "</p>\n")
		}
		if err := r.renderNodes(b, d.Children); err != nil {
			return err
		}
		b.WriteString("</div>\n")

	case d.Name == "epigraph":
		b.WriteString(`<blockquote class="epigraph">` + "\n")
		if err := r.renderNodes(b, d.Children); err != nil {
			return err
		}
		b.WriteString("</blockquote>\n")

	case d.Name == "column":
		return r.renderColumn(b, d)

	case d.Name == "code" || d.Name == "code-block" || d.Name == "sourcecode":
		lang := ""
		if len(d.Args) > 0 {
			lang = d.Args[0]
		}
		_, linenos := d.Option("linenos")
		if !linenos {
			_, linenos = d.Option("number-lines")
		}
		out, err := r.highlighter.Highlight(strings.Join(d.Raw, "\n"), lang, linenos)
		if err != nil {
			return err
		}
		b.WriteString(out)

	case d.Name == "image":
		r.renderImage(b, d, "")

	case d.Name == "figure":
		caption := ""
		if len(d.Children) > 0 {
			if p, ok := d.Children[0].(*rst.Paragraph); ok {
				caption = rst.InlineText(p.Content)
			}
		}
		r.renderImage(b, d, caption)

	case d.Name == "video":
		r.renderVideo(b, d)

	case d.Name == "plot" || d.Name == "matplotlib":
		return r.renderPlot(b, d)

	case d.Name == "math":
		b.WriteString(`<div class="math">\[` + "\n")
		b.WriteString(html.EscapeString(strings.Join(d.Raw, "\n")))
		b.WriteString("\n" + `\]</div>` + "\n")

	case d.Name == "raw":
		if len(d.Args) > 0 && strings.Contains(strings.ToLower(d.Args[0]), "html") {
			b.WriteString(strings.Join(d.Raw, "\n") + "\n")
		}

	case d.Name == "container":
		class := "container"
		if len(d.Args) > 0 {
			class = d.Args[0]
		}
		fmt.Fprintf(b, "<div class=\"%s\">\n", html.EscapeString(class))
		if err := r.renderNodes(b, d.Children); err != nil {
			return err
		}
		b.WriteString("</div>\n")

	default:
		// Transparent passthrough for anything unrecognized.
		fmt.Fprintf(b, "<div class=\"%s\">\n", html.EscapeString(d.Name))
		if err := r.renderNodes(b, d.Children); err != nil {
			return err
		}
		b.WriteString("</div>\n")
	}
	return nil
}

func (r *SlideRenderer) renderAdmonition(b *strings.Builder, kind, title string, body []rst.Node) error {
	fmt.Fprintf(b, "<div class=\"admonition %s\">\n", html.EscapeString(kind))
	b.WriteString(`<p class="admonition-title">` + html.EscapeString(title) + "</p>\n")
	if err := r.renderNodes(b, body); err != nil {
		return err
	}
	b.WriteString("</div>\n")
	return nil
}

// renderColumn implements the two-column layout: the left column opens the
// wrapper, the right column closes it, as in the original translator.
func (r *SlideRenderer) renderColumn(b *strings.Builder, d *rst.Directive) error {
	side := ""
	if len(d.Args) > 0 {
		side = strings.ToLower(d.Args[0])
	}
	switch side {
	case "left":
		b.WriteString(`<div class="columns">` + "\n")
		b.WriteString(`<div class="column-left">` + "\n")
	case "right":
		b.WriteString(`<div class="column-right">` + "\n")
	default:
		// Not a recognized side: degrade to a plain container.
		b.WriteString(`<div class="column">` + "\n")
	}
	if err := r.renderNodes(b, d.Children); err != nil {
		return err
	}
	b.WriteString("</div>\n")
	if side == "right" {
		b.WriteString("</div>\n")
	}
	return nil
}

func (r *SlideRenderer) renderImage(b *strings.Builder, d *rst.Directive, caption string) {
	src := ""
	if len(d.Args) > 0 {
		src = d.Args[0]
	}
	align := optionOr(d, "align", "")
	if align != "" {
		fmt.Fprintf(b, "<div class=\"align-%s\">\n", html.EscapeString(align))
	}
	b.WriteString(`<img src="` + html.EscapeString(src) + `"`)
	if v, ok := d.Option("width"); ok {
		b.WriteString(` width="` + html.EscapeString(v) + `"`)
	}
	if v, ok := d.Option("height"); ok {
		b.WriteString(` height="` + html.EscapeString(v) + `"`)
	}
	if v, ok := d.Option("alt"); ok {
		b.WriteString(` alt="` + html.EscapeString(v) + `"`)
	}
	b.WriteString(" />\n")
	if caption != "" {
		b.WriteString(`<p class="caption">` + html.EscapeString(caption) + "</p>\n")
	}
	if align != "" {
		b.WriteString("</div>\n")
	}
}

func (r *SlideRenderer) renderVideo(b *strings.Builder, d *rst.Directive) {
	filename := ""
	if len(d.Args) > 0 {
		filename = d.Args[0]
	} else if len(d.Raw) > 0 {
		filename = strings.TrimSpace(d.Raw[0])
	}
	codec, ok := videoCodecs[strings.ToLower(path.Ext(filename))]
	if filename == "" || !ok {
		// Unsupported container formats are skipped, as in the original.
		return
	}

	width := optionOr(d, "width", "50%")
	align := optionOr(d, "align", "center")
	attrs := "controls"
	if _, ok := d.Option("autoplay"); ok {
		attrs += " autoplay"
	}
	if _, ok := d.Option("loop"); ok {
		attrs += " loop"
	}

	fmt.Fprintf(b, "<div class=\"align-%s\">\n", html.EscapeString(align))
	fmt.Fprintf(b, "<video width=\"%s\" %s>\n", html.EscapeString(width), attrs)
	fmt.Fprintf(b, "<source src=\"%s\" type=\"video/%s\">\n",
		html.EscapeString(filename), codec)
	b.WriteString("Your browser does not support the video tag.\n</video>\n</div>\n")
}

// renderPlot builds a figure with gonum/plot and embeds it in a
// matplotlib-container element, inline for SVG and as a data URI for PNG.
func (r *SlideRenderer) renderPlot(b *strings.Builder, d *rst.Directive) error {
	spec, err := plot.ParseSpec(d.Options, d.Raw, r.plotFormat)
	if err != nil {
		return err
	}
	data, err := spec.Render()
	if err != nil {
		return err
	}

	align := optionOr(d, "align", "center")
	fmt.Fprintf(b, "<div class=\"matplotlib-container align-%s\">\n", html.EscapeString(align))
	switch spec.Format {
	case plot.FormatPNG:
		fmt.Fprintf(b, "<img src=\"data:image/png;base64,%s\" alt=\"%s\" />\n",
			base64.StdEncoding.EncodeToString(data), html.EscapeString(spec.Title))
	default:
		b.Write(data)
		b.WriteString("\n")
	}
	b.WriteString("</div>\n")
	return nil
}

func optionOr(d *rst.Directive, name, fallback string) string {
	if v, ok := d.Option(name); ok && v != "" {
		return v
	}
	return fallback
}

// titleCase upper-cases the first letter of an admonition kind.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
