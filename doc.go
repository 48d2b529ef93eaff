// Package rst2reveal converts reStructuredText (and Markdown) documents
// into reveal.js HTML presentations.
//
// # Quick Start
//
// Create a converter, convert a document, and close when done:
//
//	conv, err := rst2reveal.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, rst2reveal.Input{
//	    Source: "Title\n=====\n\nIntro\n-----\n\nHello.",
//	    Name:   "talk.rst",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("talk.html", result.HTML, 0644)
//
// When assets are not embedded, result.Assets maps relative paths
// (static/css/...) to stylesheet contents that must be written next to
// the HTML file.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Parsing: reStructuredText via the built-in parser, or Markdown via
//     Goldmark (GFM, syntax highlighting)
//  2. Partitioning: sections become slides at the configured split level;
//     level-2 sections can become vertical slides
//  3. Rendering: directives, roles, code blocks (chroma) and plots
//     (gonum/plot) become HTML fragments
//  4. Assembly: fragments are wrapped in the reveal.js skeleton with the
//     selected theme and transition
//  5. Optional PDF export via headless Chrome (go-rod), using reveal's
//     print layout
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := rst2reveal.New(
//	    rst2reveal.WithTheme("moon"),
//	    rst2reveal.WithTransition("fade"),
//	    rst2reveal.WithSplitLevel(2),
//	    rst2reveal.WithEmbedAssets(true),
//	    rst2reveal.WithCodeStyle("monokai"),
//	)
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; in containers and
// CI environments the sandbox is disabled automatically.
package rst2reveal
