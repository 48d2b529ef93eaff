package rst2reveal

import (
	"sort"
	"time"

	"github.com/alnah/go-rst2reveal/internal/pipeline"
	"github.com/alnah/go-rst2reveal/internal/plot"
)

// Format identifies the markup language of an input source.
type Format string

// Supported input formats. FormatAuto picks by file extension, falling
// back to reStructuredText.
const (
	FormatAuto     Format = ""
	FormatRST      Format = "rst"
	FormatMarkdown Format = "markdown"
)

// Split level bounds: 1 splits on top-level sections only, 2 turns
// second-level sections into vertical slides.
const (
	MinSplitLevel = 1
	MaxSplitLevel = 2
)

// revealThemes are the stylesheet names shipped with reveal.js 5.
var revealThemes = map[string]bool{
	"beige": true, "black": true, "blood": true, "dracula": true,
	"league": true, "moon": true, "night": true, "serif": true,
	"simple": true, "sky": true, "solarized": true, "white": true,
}

// revealTransitions are the slide transition names reveal.js accepts,
// plus "linear" which older decks used as an alias for "slide".
var revealTransitions = map[string]bool{
	"none": true, "fade": true, "slide": true, "convex": true,
	"concave": true, "zoom": true, "linear": true,
}

// Themes returns the known reveal.js theme names, sorted.
func Themes() []string { return sortedNames(revealThemes) }

// Transitions returns the known transition names, sorted.
func Transitions() []string { return sortedNames(revealTransitions) }

func sortedNames(m map[string]bool) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Input contains conversion parameters.
type Input struct {
	Source string // markup content (required)
	Name   string // source file name, used for format detection and errors
	Format Format // explicit format; FormatAuto detects from Name
}

// Result is a converted presentation.
type Result struct {
	HTML   []byte            // the presentation document
	Assets map[string][]byte // companion files (relative path -> content); nil when embedding
	PDF    []byte            // non-nil when PDF export was requested
	Slides int               // number of horizontal slides, excluding the title slide
}

// Option configures a Converter.
type Option func(*converterConfig)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	theme          string
	transition     string
	splitLevel     int
	embedAssets    bool
	plotFormat     plot.Format
	codeStyle      string
	customCSS      string
	revealURL      string
	lang           string
	slideNumbers   bool
	controls       bool
	progress       bool
	center         bool
	footer         bool
	footerTmpl     string
	firstSlideTmpl string
	assetPath      string
	pdf            bool
	timeout        time.Duration
	now            time.Time
}

// defaultTimeout is used when no timeout is specified for PDF export.
const defaultTimeout = 30 * time.Second

func defaultConfig() converterConfig {
	return converterConfig{
		theme:      "simple",
		transition: "linear",
		splitLevel: MinSplitLevel,
		plotFormat: plot.FormatSVG,
		codeStyle:  pipeline.DefaultCodeStyle,
		controls:   true,
		progress:   true,
		timeout:    defaultTimeout,
	}
}

// WithTheme selects the reveal.js theme stylesheet.
func WithTheme(name string) Option {
	return func(c *converterConfig) { c.theme = name }
}

// WithTransition selects the slide transition.
func WithTransition(name string) Option {
	return func(c *converterConfig) { c.transition = name }
}

// WithSplitLevel sets the section level at which slides are split.
func WithSplitLevel(level int) Option {
	return func(c *converterConfig) { c.splitLevel = level }
}

// WithEmbedAssets inlines the generated stylesheets into the document
// instead of writing companion files.
func WithEmbedAssets(embed bool) Option {
	return func(c *converterConfig) { c.embedAssets = embed }
}

// WithPlotFormat sets the output format for generated plots.
func WithPlotFormat(f plot.Format) Option {
	return func(c *converterConfig) { c.plotFormat = f }
}

// WithCodeStyle selects the chroma style for code highlighting.
func WithCodeStyle(name string) Option {
	return func(c *converterConfig) { c.codeStyle = name }
}

// WithCustomCSS appends a user stylesheet after the generated ones.
func WithCustomCSS(css string) Option {
	return func(c *converterConfig) { c.customCSS = css }
}

// WithRevealURL sets the base URL or path of the reveal.js distribution.
func WithRevealURL(url string) Option {
	return func(c *converterConfig) { c.revealURL = url }
}

// WithLang sets the document language attribute. Defaults to "en".
func WithLang(lang string) Option {
	return func(c *converterConfig) { c.lang = lang }
}

// WithSlideNumbers shows the current/total slide counter.
func WithSlideNumbers(show bool) Option {
	return func(c *converterConfig) { c.slideNumbers = show }
}

// WithControls toggles the on-screen navigation arrows.
func WithControls(show bool) Option {
	return func(c *converterConfig) { c.controls = show }
}

// WithProgress toggles the progress bar.
func WithProgress(show bool) Option {
	return func(c *converterConfig) { c.progress = show }
}

// WithCenter vertically centers slide content.
func WithCenter(center bool) Option {
	return func(c *converterConfig) { c.center = center }
}

// WithFooter enables the per-slide footer line rendered from document
// metadata.
func WithFooter(enabled bool) Option {
	return func(c *converterConfig) { c.footer = enabled }
}

// WithFooterTemplate overrides the footer html/template.
func WithFooterTemplate(tmpl string) Option {
	return func(c *converterConfig) { c.footerTmpl = tmpl }
}

// WithFirstSlideTemplate overrides the title slide html/template.
func WithFirstSlideTemplate(tmpl string) Option {
	return func(c *converterConfig) { c.firstSlideTmpl = tmpl }
}

// WithAssetPath loads bundled stylesheets from a directory instead of the
// embedded copies, falling back to embedded files for missing names.
func WithAssetPath(dir string) Option {
	return func(c *converterConfig) { c.assetPath = dir }
}

// WithPDF also renders the deck to PDF through headless Chrome.
func WithPDF(enabled bool) Option {
	return func(c *converterConfig) { c.pdf = enabled }
}

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("rst2reveal: WithTimeout duration must be positive")
	}
	return func(c *converterConfig) { c.timeout = d }
}

// WithClock fixes the reference time used to resolve date fields.
// Intended for reproducible builds and tests.
func WithClock(now time.Time) Option {
	return func(c *converterConfig) { c.now = now }
}
