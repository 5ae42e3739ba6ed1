package tsdiagram

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/oceanplot/pkg/errors"
	"github.com/matzehuels/oceanplot/pkg/seawater"
)

// Density contour defaults.
const (
	DefaultGrid        = 20
	DefaultInterval    = 1.0
	DefaultLabelFormat = "%.02f"
)

// ContourColor is the default contour and annotation color.
var ContourColor = color.Gray{Y: 102}

// DensityOptions configures [DrawDensityContours]. The zero value draws
// sigma0 contours every 1 kg/m³ on a 20×20 grid spanning the plot limits,
// with salinity on the x axis.
type DensityOptions struct {
	Sigma seawater.Sigma

	// Grid is the number of grid points per axis.
	Grid int
	// Interval is the spacing between contour levels. Zero selects
	// DefaultInterval; negative values are rejected.
	Interval float64

	// SaltOnY puts salinity on the y axis and temperature on x.
	SaltOnY bool

	// SLim and TLim override the salinity and temperature extents read
	// from the plot axes. A zero value means unset.
	SLim, TLim [2]float64

	// LineStyle replaces the dashed gray contour style.
	LineStyle *draw.LineStyle
	// LabelFormat formats the level labels.
	LabelFormat string
	// NoLabels suppresses the σn annotation in the lower left corner.
	NoLabels bool
}

func (o *DensityOptions) setDefaults() {
	if o.Grid == 0 {
		o.Grid = DefaultGrid
	}
	if o.Interval == 0 {
		o.Interval = DefaultInterval
	}
	if o.LabelFormat == "" {
		o.LabelFormat = DefaultLabelFormat
	}
}

// Contours is what [DrawDensityContours] added to the plot.
type Contours struct {
	Levels     []float64
	Grid       *Grid
	Contour    *plotter.Contour // nil when there are no levels
	Labels     *plotter.Labels // nil when no level crosses the grid
	Annotation *Annotation     // nil with NoLabels
}

// DrawDensityContours adds potential density contours to p. Salinity and
// temperature are taken as absolute salinity and conservative temperature.
// Levels run from floor(min σ) to ceil(max σ), exclusive, every Interval.
func DrawDensityContours(p *plot.Plot, opts DensityOptions) (*Contours, error) {
	opts.setDefaults()
	if !opts.Sigma.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidSigma,
			"sigma function has to be one of sigma0...sigma4, got %d", int(opts.Sigma))
	}
	if opts.Interval < 0 || math.IsNaN(opts.Interval) || math.IsInf(opts.Interval, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "density interval must be positive, got %g", opts.Interval)
	}

	xlim := [2]float64{p.X.Min, p.X.Max}
	ylim := [2]float64{p.Y.Min, p.Y.Max}
	slim, tlim := xlim, ylim
	if opts.SaltOnY {
		slim, tlim = ylim, xlim
	}
	if opts.SLim != ([2]float64{}) {
		slim = opts.SLim
	}
	if opts.TLim != ([2]float64{}) {
		tlim = opts.TLim
	}

	grid, err := NewGrid(opts.Sigma, slim, tlim, opts.Grid, !opts.SaltOnY)
	if err != nil {
		return nil, err
	}
	lo, hi, ok := grid.Range()
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"no finite density in salinity %v, temperature %v", slim, tlim)
	}
	levels := Levels(math.Floor(lo), math.Ceil(hi), opts.Interval)

	ls := draw.LineStyle{
		Color:  ContourColor,
		Width:  vg.Points(0.5),
		Dashes: []vg.Length{vg.Points(3), vg.Points(2)},
	}
	if opts.LineStyle != nil {
		ls = *opts.LineStyle
	}

	out := &Contours{Levels: levels, Grid: grid}
	if len(levels) > 0 {
		out.Contour = plotter.NewContour(grid, levels, nil)
		out.Contour.LineStyles = []draw.LineStyle{ls}
		p.Add(out.Contour)
	}

	labels, err := levelLabels(grid, levels, opts.LabelFormat, ls.Color)
	if err != nil {
		return nil, err
	}
	if labels != nil {
		p.Add(labels)
		out.Labels = labels
	}

	if !opts.NoLabels {
		out.Annotation = NewAnnotation(opts.Sigma.Symbol(), 0.05, 0.05)
		out.Annotation.TextStyle.Color = ls.Color
		p.Add(out.Annotation)
	}
	return out, nil
}

func levelLabels(g *Grid, levels []float64, format string, col color.Color) (*plotter.Labels, error) {
	var xyl plotter.XYLabels
	for _, lvl := range levels {
		x, y, ok := g.crossing(lvl)
		if !ok {
			continue
		}
		xyl.XYs = append(xyl.XYs, plotter.XY{X: x, Y: y})
		xyl.Labels = append(xyl.Labels, fmt.Sprintf(format, lvl))
	}
	if len(xyl.Labels) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build contour labels")
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = col
		labels.TextStyle[i].Font.Size = vg.Points(8)
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	return labels, nil
}

// Annotation is text placed at a fixed fraction of the data area,
// independent of the axis ranges.
type Annotation struct {
	Text string
	// FracX and FracY locate the text center, 0 at the left/bottom edge and
	// 1 at the right/top edge.
	FracX, FracY float64
	TextStyle    text.Style
}

// NewAnnotation returns a centered 14pt annotation.
func NewAnnotation(txt string, fx, fy float64) *Annotation {
	return &Annotation{
		Text:  txt,
		FracX: fx,
		FracY: fy,
		TextStyle: text.Style{
			Color:   color.Black,
			Font:    font.From(plot.DefaultFont, vg.Points(14)),
			XAlign:  text.XCenter,
			YAlign:  text.YCenter,
			Handler: plot.DefaultTextHandler,
		},
	}
}

// Plot implements plot.Plotter.
func (a *Annotation) Plot(c draw.Canvas, _ *plot.Plot) {
	size := c.Size()
	pt := vg.Point{
		X: c.Min.X + vg.Length(a.FracX)*size.X,
		Y: c.Min.Y + vg.Length(a.FracY)*size.Y,
	}
	c.FillText(a.TextStyle, pt, a.Text)
}
