// Package config loads presentation configuration from YAML files, the
// replacement for the original's .ini/.conf configuration support.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-rst2reveal/internal/plot"
	"github.com/alnah/go-rst2reveal/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigInvalid  = errors.New("invalid config")
)

// Split level bounds: 1 splits on top-level sections only, 2 turns
// second-level sections into vertical slides.
const (
	MinSplitLevel = 1
	MaxSplitLevel = 2
)

// Config holds all configuration for a presentation build. Fields mirror
// the CLI flags; flags take precedence over the file.
type Config struct {
	Input        string           `yaml:"input"`
	Output       string           `yaml:"output"`
	Theme        string           `yaml:"theme"`
	Transition   string           `yaml:"transition"`
	SplitLevel   int              `yaml:"splitLevel"`
	EmbedAssets  *bool            `yaml:"embedAssets"`
	PlotFormat   string           `yaml:"plotFormat"`
	CodeStyle    string           `yaml:"codeStyle"`
	Stylesheet   string           `yaml:"stylesheet"`
	RevealURL    string           `yaml:"revealUrl"`
	AssetPath    string           `yaml:"assetPath"`
	SlideNumbers bool             `yaml:"slideNumbers"`
	Controls     *bool            `yaml:"controls"`
	Progress     *bool            `yaml:"progress"`
	Center       bool             `yaml:"center"`
	PDF          bool             `yaml:"pdf"`
	Footer       FooterConfig     `yaml:"footer"`
	FirstSlide   FirstSlideConfig `yaml:"firstslide"`
}

// FooterConfig controls the per-slide footer line.
type FooterConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Template string `yaml:"template"` // html/template over title metadata
}

// FirstSlideConfig overrides the generated title slide.
type FirstSlideConfig struct {
	Template string `yaml:"template"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Theme:      "simple",
		Transition: "linear",
		SplitLevel: 1,
		PlotFormat: string(plot.FormatSVG),
	}
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints. Theme, transition and code style
// names are validated later by the converter, which owns those registries.
func (c *Config) Validate() error {
	if c.SplitLevel < MinSplitLevel || c.SplitLevel > MaxSplitLevel {
		return fmt.Errorf("%w: splitLevel must be between %d and %d, got %d",
			ErrConfigInvalid, MinSplitLevel, MaxSplitLevel, c.SplitLevel)
	}
	if c.PlotFormat != "" {
		if _, err := plot.ParseFormat(c.PlotFormat); err != nil {
			return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
		}
	}
	return nil
}

// GenerateDefault renders a starter config for --gen-config, including the
// template sections the original wrote into its generated .conf files.
func GenerateDefault(input, output string) ([]byte, error) {
	cfg := DefaultConfig()
	cfg.Input = input
	cfg.Output = output
	cfg.Footer = FooterConfig{
		Enabled:  false,
		Template: `<b>{{.Title}}{{if .Subtitle}}. {{.Subtitle}}{{end}}.</b> {{.Author}}{{if .Institution}}, {{.Institution}}{{end}}. {{.Date}}`,
	}
	cfg.FirstSlide = FirstSlideConfig{
		Template: `<h1>{{.Title}}</h1>
<h3>{{.Subtitle}}</h3>
<br>
{{range .Authors}}<p><a href="mailto:{{.Email}}">{{.Name}}</a></p>{{end}}
<p>{{.Date}}</p>`,
	}
	return yamlutil.Marshal(cfg)
}
