package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	rst2reveal "github.com/alnah/go-rst2reveal"
	"github.com/alnah/go-rst2reveal/internal/config"
	"github.com/alnah/go-rst2reveal/internal/fileutil"
	"github.com/alnah/go-rst2reveal/internal/plot"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read input file")
	ErrReadStylesheet = errors.New("failed to read stylesheet file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrWriteConfig    = errors.New("failed to write config file")
	ErrBadTimeout     = errors.New("invalid timeout")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// defaultConfigName is the file written by --gen-config when no -c path
// is given.
const defaultConfigName = "rst2reveal.yaml"

// runConvert orchestrates a single conversion.
func runConvert(ctx context.Context, positionalArgs []string, flags *cliFlags, fs *flag.FlagSet, stdout, stderr io.Writer) error {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, fs, cfg)

	inputPath := cfg.Input
	if len(positionalArgs) > 0 {
		inputPath = positionalArgs[0]
	}

	if flags.genConfig {
		return writeStarterConfig(flags.config, inputPath, cfg.Output, stdout, flags.quiet)
	}

	if inputPath == "" {
		return ErrNoInput
	}
	if !fileutil.FileExists(inputPath) {
		return fmt.Errorf("%w: %s is not a readable file", ErrReadInput, inputPath)
	}

	source, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided input path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	outputPath := cfg.Output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".html"
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q", ErrBadTimeout, flags.timeout)
		}
		opts = append(opts, rst2reveal.WithTimeout(d))
	}

	conv, err := rst2reveal.New(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	start := time.Now()
	result, err := conv.Convert(ctx, rst2reveal.Input{
		Source: string(source),
		Name:   inputPath,
	})
	if err != nil {
		return err
	}

	if err := writeResult(outputPath, result, cfg.PDF); err != nil {
		return err
	}

	if !flags.quiet {
		fmt.Fprintf(stdout, "%s -> %s (%d slides)\n", inputPath, outputPath, result.Slides)
	}
	if flags.verbose {
		fmt.Fprintf(stderr, "Converted in %v\n", time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// mergeFlags merges CLI flags into config. Explicitly set flags win.
func mergeFlags(flags *cliFlags, fs *flag.FlagSet, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if flags.transition != "" {
		cfg.Transition = flags.transition
	}
	if fs.Changed("split-level") {
		cfg.SplitLevel = flags.splitLevel
	}
	if fs.Changed("embed-assets") || cfg.EmbedAssets == nil {
		cfg.EmbedAssets = &flags.embedAssets
	}
	if flags.plotFormat != "" {
		cfg.PlotFormat = flags.plotFormat
	}
	if flags.codeStyle != "" {
		cfg.CodeStyle = flags.codeStyle
	}
	if flags.stylesheet != "" {
		cfg.Stylesheet = flags.stylesheet
	}
	if flags.revealURL != "" {
		cfg.RevealURL = flags.revealURL
	}
	if flags.assetPath != "" {
		cfg.AssetPath = flags.assetPath
	}
	if fs.Changed("slide-numbers") {
		cfg.SlideNumbers = flags.slideNumbers
	}
	if fs.Changed("no-controls") {
		controls := !flags.noControls
		cfg.Controls = &controls
	}
	if fs.Changed("no-progress") {
		progress := !flags.noProgress
		cfg.Progress = &progress
	}
	if fs.Changed("center") {
		cfg.Center = flags.center
	}
	if fs.Changed("footer") {
		cfg.Footer.Enabled = flags.footer
	}
	if fs.Changed("pdf") {
		cfg.PDF = flags.pdf
	}
}

// buildOptions translates the merged config into converter options.
func buildOptions(cfg *config.Config) ([]rst2reveal.Option, error) {
	opts := []rst2reveal.Option{
		rst2reveal.WithTheme(cfg.Theme),
		rst2reveal.WithTransition(cfg.Transition),
		rst2reveal.WithSplitLevel(cfg.SplitLevel),
		rst2reveal.WithSlideNumbers(cfg.SlideNumbers),
		rst2reveal.WithCenter(cfg.Center),
		rst2reveal.WithFooter(cfg.Footer.Enabled),
		rst2reveal.WithPDF(cfg.PDF),
	}

	if cfg.EmbedAssets != nil {
		opts = append(opts, rst2reveal.WithEmbedAssets(*cfg.EmbedAssets))
	}
	if cfg.Controls != nil {
		opts = append(opts, rst2reveal.WithControls(*cfg.Controls))
	}
	if cfg.Progress != nil {
		opts = append(opts, rst2reveal.WithProgress(*cfg.Progress))
	}
	if cfg.PlotFormat != "" {
		format, err := plot.ParseFormat(cfg.PlotFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rst2reveal.WithPlotFormat(format))
	}
	if cfg.CodeStyle != "" {
		opts = append(opts, rst2reveal.WithCodeStyle(cfg.CodeStyle))
	}
	if cfg.RevealURL != "" {
		opts = append(opts, rst2reveal.WithRevealURL(cfg.RevealURL))
	}
	if cfg.AssetPath != "" {
		opts = append(opts, rst2reveal.WithAssetPath(cfg.AssetPath))
	}
	if cfg.Footer.Template != "" {
		opts = append(opts, rst2reveal.WithFooterTemplate(cfg.Footer.Template))
	}
	if cfg.FirstSlide.Template != "" {
		opts = append(opts, rst2reveal.WithFirstSlideTemplate(cfg.FirstSlide.Template))
	}
	if cfg.Stylesheet != "" {
		if !fileutil.FileExists(cfg.Stylesheet) {
			return nil, fmt.Errorf("%w: %s is not a readable file", ErrReadStylesheet, cfg.Stylesheet)
		}
		css, err := os.ReadFile(cfg.Stylesheet) // #nosec G304 -- user-provided stylesheet path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadStylesheet, err)
		}
		opts = append(opts, rst2reveal.WithCustomCSS(string(css)))
	}

	return opts, nil
}

// writeResult writes the HTML document, companion assets, and the PDF.
func writeResult(outputPath string, result *rst2reveal.Result, pdf bool) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if err := os.WriteFile(outputPath, result.HTML, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	baseDir := filepath.Dir(outputPath)
	for rel, content := range result.Assets {
		path := filepath.Join(baseDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		if err := os.WriteFile(path, content, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	if pdf && result.PDF != nil {
		pdfPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".pdf"
		if err := os.WriteFile(pdfPath, result.PDF, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	return nil
}

// writeStarterConfig handles --gen-config.
func writeStarterConfig(configPath, input, output string, stdout io.Writer, quiet bool) error {
	if configPath == "" {
		configPath = defaultConfigName
	}
	data, err := config.GenerateDefault(input, output)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteConfig, err)
	}
	if err := os.WriteFile(configPath, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteConfig, err)
	}
	if !quiet {
		fmt.Fprintf(stdout, "Wrote %s\n", configPath)
	}
	return nil
}
