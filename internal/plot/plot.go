// Package plot renders the plot directive through gonum/plot. The directive
// body is a declarative list of data series, one per line:
//
//	line sin(x): 0,0 1,0.84 2,0.91
//	scatter: 1,2 2,3 3,5
//	bars: 3 1 4 1 5
//
// A line without a kind prefix is treated as a line series. Options control
// the title, axis labels, size and output format.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Sentinel errors for plot operations.
var (
	ErrBadSpec = errors.New("invalid plot spec")
	ErrRender  = errors.New("plot rendering failed")
)

// Format selects the output encoding of a rendered figure.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a plot format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatSVG, "":
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", ErrBadSpec, s)
}

// Default figure size in inches, matching matplotlib's default figsize.
const (
	defaultWidthIn  = 6.4
	defaultHeightIn = 4.8
)

// Spec is a fully parsed plot directive.
type Spec struct {
	Title    string
	XLabel   string
	YLabel   string
	WidthIn  float64
	HeightIn float64
	Format   Format
	Series   []Series
}

// Series is one data series of a figure.
type Series struct {
	Kind string // "line", "scatter", "bars"
	Name string
	XYs  []XY
}

// XY is a single data point.
type XY struct{ X, Y float64 }

// ParseSpec builds a Spec from directive options and body lines. The
// defaultFormat applies unless a :format: option overrides it.
func ParseSpec(options map[string]string, body []string, defaultFormat Format) (*Spec, error) {
	s := &Spec{
		Title:    options["title"],
		XLabel:   options["xlabel"],
		YLabel:   options["ylabel"],
		WidthIn:  defaultWidthIn,
		HeightIn: defaultHeightIn,
		Format:   defaultFormat,
	}
	if s.Format == "" {
		s.Format = FormatSVG
	}

	if v, ok := options["format"]; ok {
		f, err := ParseFormat(v)
		if err != nil {
			return nil, err
		}
		s.Format = f
	}
	if v, ok := options["width"]; ok {
		w, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("%w: width %q", ErrBadSpec, v)
		}
		s.WidthIn = w
	}
	if v, ok := options["height"]; ok {
		h, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || h <= 0 {
			return nil, fmt.Errorf("%w: height %q", ErrBadSpec, v)
		}
		s.HeightIn = h
	}

	for i, line := range body {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		series, err := parseSeries(line)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i+1, err)
		}
		s.Series = append(s.Series, series)
	}
	if len(s.Series) == 0 {
		return nil, fmt.Errorf("%w: no data series", ErrBadSpec)
	}
	return s, nil
}

// parseSeries parses one body line: "[kind [name]:] point point ...".
func parseSeries(line string) (Series, error) {
	s := Series{Kind: "line"}
	if head, data, ok := strings.Cut(line, ":"); ok && !strings.Contains(head, ",") {
		fields := strings.Fields(head)
		if len(fields) > 0 {
			switch fields[0] {
			case "line", "scatter", "bars":
				s.Kind = fields[0]
				if len(fields) > 1 {
					s.Name = strings.Join(fields[1:], " ")
				}
			default:
				// No recognized kind: the whole head is the series name.
				s.Name = strings.TrimSpace(head)
			}
		}
		line = data
	}

	for _, tok := range strings.Fields(line) {
		xs, ys, ok := strings.Cut(tok, ",")
		if !ok {
			// Bare values enumerate X implicitly (bars-style input).
			y, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return Series{}, fmt.Errorf("%w: bad value %q", ErrBadSpec, tok)
			}
			s.XYs = append(s.XYs, XY{X: float64(len(s.XYs)), Y: y})
			continue
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return Series{}, fmt.Errorf("%w: bad point %q", ErrBadSpec, tok)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return Series{}, fmt.Errorf("%w: bad point %q", ErrBadSpec, tok)
		}
		s.XYs = append(s.XYs, XY{X: x, Y: y})
	}
	if len(s.XYs) == 0 {
		return Series{}, fmt.Errorf("%w: empty series", ErrBadSpec)
	}
	return s, nil
}

// Render draws the figure and encodes it in the configured format.
func (s *Spec) Render() ([]byte, error) {
	p := gplot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Add(plotter.NewGrid())

	for i, series := range s.Series {
		if err := addSeries(p, i, series); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
	}

	w := vg.Length(s.WidthIn) * vg.Inch
	h := vg.Length(s.HeightIn) * vg.Inch

	var buf bytes.Buffer
	switch s.Format {
	case FormatPNG:
		c := vgimg.New(w, h)
		p.Draw(draw.New(c))
		png := vgimg.PngCanvas{Canvas: c}
		if _, err := png.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
	default:
		c := vgsvg.New(w, h)
		p.Draw(draw.New(c))
		if _, err := c.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
	}
	return buf.Bytes(), nil
}

func addSeries(p *gplot.Plot, i int, s Series) error {
	xys := make(plotter.XYs, len(s.XYs))
	for j, pt := range s.XYs {
		xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
	}

	switch s.Kind {
	case "scatter":
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		p.Add(sc)
		if s.Name != "" {
			p.Legend.Add(s.Name, sc)
		}
	case "bars":
		values := make(plotter.Values, len(s.XYs))
		for j, pt := range s.XYs {
			values[j] = pt.Y
		}
		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)
		p.Add(bars)
		if s.Name != "" {
			p.Legend.Add(s.Name, bars)
		}
	default:
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}
	return nil
}
