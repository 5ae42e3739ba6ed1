// Package shaded draws a line with a symmetric shaded band, typically a mean
// profile with ±1 standard deviation around it.
//
//	line, err := shaded.LineStd(p, depth, mean, std, shaded.Vertical())
//
// Horizontal plots put x on the x axis and shade between y-std and y+std.
// Vertical plots put x on the y axis (depth profiles) and shade
// horizontally between y-std and y+std.
package shaded

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// DefaultFillAlpha is the opacity of the band.
const DefaultFillAlpha = 0.35

type config struct {
	vertical  bool
	lineStyle draw.LineStyle
	fillColor color.Color
	fillAlpha float64
}

// Option configures [LineStd].
type Option func(*config)

// Vertical plots x on the y axis and y on the x axis.
func Vertical() Option {
	return func(c *config) { c.vertical = true }
}

// Horizontal plots x on the x axis. It is the default.
func Horizontal() Option {
	return func(c *config) { c.vertical = false }
}

// WithLineStyle replaces the line style.
func WithLineStyle(ls draw.LineStyle) Option {
	return func(c *config) { c.lineStyle = ls }
}

// WithFillColor sets the band color. The band alpha still applies.
func WithFillColor(col color.Color) Option {
	return func(c *config) { c.fillColor = col }
}

// WithFillAlpha sets the band opacity in [0, 1].
func WithFillAlpha(a float64) Option {
	return func(c *config) { c.fillAlpha = math.Min(math.Max(a, 0), 1) }
}

// LineStd adds the line (x, y) and a band between y-std and y+std to p.
// The band is drawn beneath the line and defaults to the line color at
// [DefaultFillAlpha]. Samples where x, y or std is not finite are dropped.
// It returns the line plotter.
func LineStd(p *plot.Plot, x, y, std []float64, opts ...Option) (*plotter.Line, error) {
	cfg := config{
		lineStyle: plotter.DefaultLineStyle,
		fillAlpha: DefaultFillAlpha,
	}
	cfg.lineStyle.Color = plotutil.Color(0)
	for _, opt := range opts {
		opt(&cfg)
	}

	linePts, band, err := Band(x, y, std, cfg.vertical)
	if err != nil {
		return nil, err
	}

	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build band polygon")
	}
	fill := cfg.fillColor
	if fill == nil {
		fill = cfg.lineStyle.Color
	}
	poly.Color = WithAlpha(fill, cfg.fillAlpha)
	poly.LineStyle.Width = 0

	line, err := plotter.NewLine(linePts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build line")
	}
	line.LineStyle = cfg.lineStyle

	p.Add(poly, line)
	return line, nil
}

// Band returns the line vertices and the closed band outline for LineStd.
// The band runs along y-std in sample order and back along y+std.
func Band(x, y, std []float64, vertical bool) (line, band plotter.XYs, err error) {
	if err := errors.ValidateSameLength(
		[]string{"x", "y", "std"}, []int{len(x), len(y), len(std)},
	); err != nil {
		return nil, nil, err
	}

	idx := make([]int, 0, len(x))
	for i := range x {
		if finite(x[i]) && finite(y[i]) && finite(std[i]) {
			idx = append(idx, i)
		}
	}
	if len(idx) < 2 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput,
			"need at least 2 finite samples, got %d", len(idx))
	}

	point := func(coord, value float64) plotter.XY {
		if vertical {
			return plotter.XY{X: value, Y: coord}
		}
		return plotter.XY{X: coord, Y: value}
	}

	line = make(plotter.XYs, len(idx))
	band = make(plotter.XYs, 0, 2*len(idx))
	for j, i := range idx {
		line[j] = point(x[i], y[i])
		band = append(band, point(x[i], y[i]-std[i]))
	}
	for j := len(idx) - 1; j >= 0; j-- {
		i := idx[j]
		band = append(band, point(x[i], y[i]+std[i]))
	}
	return line, band, nil
}

// WithAlpha returns c with its opacity replaced by alpha.
func WithAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(alpha * 255))
	return n
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
