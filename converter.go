package rst2reveal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-rst2reveal/internal/assets"
	"github.com/alnah/go-rst2reveal/internal/pipeline"
	"github.com/alnah/go-rst2reveal/internal/rst"
)

// Converter orchestrates the markup-to-presentation pipeline.
type Converter struct {
	cfg         converterConfig
	highlighter *pipeline.Highlighter
	renderer    *pipeline.SlideRenderer
	markdown    *pipeline.MarkdownFrontend
	loader      assets.Loader
	pdf         pdfExporter
}

// New creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTheme, WithSplitLevel).
func New(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if !revealThemes[cfg.theme] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, cfg.theme)
	}
	if !revealTransitions[cfg.transition] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransition, cfg.transition)
	}
	if cfg.splitLevel < MinSplitLevel || cfg.splitLevel > MaxSplitLevel {
		return nil, fmt.Errorf("%w: must be between %d and %d, got %d",
			ErrInvalidSplitLevel, MinSplitLevel, MaxSplitLevel, cfg.splitLevel)
	}

	highlighter, err := pipeline.NewHighlighter(cfg.codeStyle)
	if err != nil {
		return nil, err
	}

	var loader assets.Loader = assets.NewEmbeddedLoader()
	if cfg.assetPath != "" {
		loader, err = assets.NewFilesystemLoader(cfg.assetPath)
		if err != nil {
			return nil, err
		}
	}

	c := &Converter{
		cfg:         cfg,
		highlighter: highlighter,
		renderer:    pipeline.NewSlideRenderer(highlighter, cfg.plotFormat),
		markdown:    pipeline.NewMarkdownFrontend(highlighter.StyleName()),
		loader:      loader,
	}
	if cfg.pdf {
		c.pdf = newRodExporter(cfg.timeout)
	}
	return c, nil
}

// Convert runs the full pipeline and returns the presentation.
// The context is used for cancellation and timeout.
func (c *Converter) Convert(ctx context.Context, input Input) (*Result, error) {
	var (
		meta   rst.Meta
		slides []pipeline.RenderedSlide
		err    error
	)
	switch detectFormat(input) {
	case FormatMarkdown:
		slides, err = c.markdown.Slides(ctx, []byte(input.Source), c.cfg.splitLevel)
		if err != nil {
			return nil, fmt.Errorf("converting markdown: %w", err)
		}
	default:
		doc, parseErr := rst.Parse(input.Source)
		if parseErr != nil {
			return nil, parseErr
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		meta = doc.Meta
		slides, err = c.renderer.RenderSlides(pipeline.Partition(doc, c.cfg.splitLevel))
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	build, err := c.assemble(meta, slides, c.cfg.embedAssets)
	if err != nil {
		return nil, err
	}

	res := &Result{
		HTML:   []byte(build.HTML),
		Assets: build.Assets,
		Slides: len(slides),
	}

	if c.cfg.pdf {
		// Linked stylesheets would be missing next to the temp file the
		// browser loads, so the PDF always renders the embedded variant.
		htmlForPDF := build.HTML
		if !c.cfg.embedAssets {
			embedded, err := c.assemble(meta, slides, true)
			if err != nil {
				return nil, err
			}
			htmlForPDF = embedded.HTML
		}
		res.PDF, err = c.pdf.ExportPDF(ctx, htmlForPDF)
		if err != nil {
			return nil, fmt.Errorf("exporting PDF: %w", err)
		}
	}

	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}

// assemble wraps rendered slides in the reveal.js skeleton.
func (c *Converter) assemble(meta rst.Meta, slides []pipeline.RenderedSlide, embed bool) (*pipeline.BuildResult, error) {
	baseCSS, err := c.loader.LoadStyle(assets.BaseStyleName)
	if err != nil {
		return nil, err
	}
	chromaCSS, err := c.highlighter.CSS()
	if err != nil {
		return nil, err
	}

	return pipeline.BuildDocument(meta, slides, pipeline.BuildOptions{
		Theme:        c.cfg.theme,
		Transition:   c.cfg.transition,
		RevealURL:    c.cfg.revealURL,
		EmbedAssets:  embed,
		BaseCSS:      baseCSS,
		ChromaCSS:    chromaCSS,
		CustomCSS:    c.cfg.customCSS,
		Lang:         c.cfg.lang,
		SlideNumbers: c.cfg.slideNumbers,
		Controls:     c.cfg.controls,
		Progress:     c.cfg.progress,
		Center:       c.cfg.center,
		Footer:       c.cfg.footer,
		FirstSlide:   c.cfg.firstSlideTmpl,
		FooterTmpl:   c.cfg.footerTmpl,
		Now:          c.cfg.now,
	})
}

// detectFormat resolves the input format, preferring an explicit setting
// over the file extension.
func detectFormat(input Input) Format {
	if input.Format != FormatAuto {
		return input.Format
	}
	switch strings.ToLower(filepath.Ext(input.Name)) {
	case ".md", ".markdown", ".mdown":
		return FormatMarkdown
	default:
		return FormatRST
	}
}
