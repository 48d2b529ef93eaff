package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the rst2reveal command.
type cliFlags struct {
	output       string
	theme        string
	transition   string
	splitLevel   int
	embedAssets  bool
	plotFormat   string
	codeStyle    string
	stylesheet   string
	revealURL    string
	assetPath    string
	slideNumbers bool
	noControls   bool
	noProgress   bool
	center       bool
	footer       bool
	pdf          bool
	timeout      string
	config       string
	genConfig    bool
	quiet        bool
	verbose      bool
	version      bool
}

// parseFlags parses the command line and returns flags, the flag set (for
// Changed lookups during config merging) and positional args.
func parseFlags(args []string) (*cliFlags, *flag.FlagSet, []string, error) {
	fs := flag.NewFlagSet("rst2reveal", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML path (default: input with .html suffix)")
	fs.StringVarP(&f.theme, "theme", "t", "", "reveal.js theme (simple, white, black, moon, night, ...)")
	fs.StringVar(&f.transition, "transition", "", "slide transition: none, fade, slide, convex, concave, zoom, linear")
	fs.IntVar(&f.splitLevel, "split-level", 0, "section level that starts a new slide (1-2)")
	fs.BoolVar(&f.embedAssets, "embed-assets", true, "inline generated CSS instead of writing static/ files")
	fs.StringVar(&f.plotFormat, "plot-format", "", "plot output format: svg, png")
	fs.StringVar(&f.codeStyle, "code-style", "", "chroma style for code highlighting")
	fs.StringVarP(&f.stylesheet, "stylesheet", "s", "", "custom CSS file appended after the theme")
	fs.StringVar(&f.revealURL, "reveal-url", "", "base URL or path of the reveal.js distribution")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory for bundled stylesheets")
	fs.BoolVar(&f.slideNumbers, "slide-numbers", false, "show the slide counter")
	fs.BoolVar(&f.noControls, "no-controls", false, "hide navigation arrows")
	fs.BoolVar(&f.noProgress, "no-progress", false, "hide the progress bar")
	fs.BoolVar(&f.center, "center", false, "vertically center slide content")
	fs.BoolVar(&f.footer, "footer", false, "render a per-slide footer from document metadata")
	fs.BoolVar(&f.pdf, "pdf", false, "also export a PDF next to the HTML")
	fs.StringVar(&f.timeout, "timeout", "", "PDF export timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.BoolVar(&f.genConfig, "gen-config", false, "write a starter config file and exit")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVar(&f.verbose, "verbose", false, "show detailed progress and timing")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}

	return f, fs, fs.Args(), nil
}
