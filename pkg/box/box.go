// Package box draws rectangular region outlines that may wrap around the
// edge of the plotted domain.
//
// A [Box] is written [x1, x2, y1, y2]. When x2 < x1 the box crosses the
// right edge of the x axis and continues from the left edge (a longitude
// range crossing the antimeridian, for example); the same holds for y. Plot
// detects these wraps and draws the box as the visible pieces clipped to
// the current axis limits.
package box

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// Box is a rectangle given as [x1, x2, y1, y2].
type Box [4]float64

// FromSlice builds a Box from exactly four values.
func FromSlice(v []float64) (Box, error) {
	if len(v) != 4 {
		return Box{}, errors.New(errors.ErrCodeInvalidBox,
			"box needs 4 values [x1, x2, y1, y2], got %d", len(v))
	}
	return Box{v[0], v[1], v[2], v[3]}, nil
}

// Split reports whether the box wraps around the x and y axes.
func (b Box) Split() (x, y bool) {
	return b[1]-b[0] < 0, b[3]-b[2] < 0
}

// Segments returns the polylines outlining b within the axis limits
// xlim = [x0, xN] and ylim = [y0, yN]. Without wraparound, or when detect
// is false, the result is a single closed rectangle. A box wrapping one
// axis yields two closed pieces; a box wrapping both yields four open
// corner pieces.
func Segments(b Box, xlim, ylim [2]float64, detect bool) []plotter.XYs {
	x1, x2, y1, y2 := b[0], b[1], b[2], b[3]
	x0, xN := xlim[0], xlim[1]
	y0, yN := ylim[0], ylim[1]

	splitX, splitY := false, false
	if detect {
		splitX, splitY = b.Split()
	}

	switch {
	case splitX && splitY:
		return []plotter.XYs{
			{{X: xN, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: yN}},
			{{X: x0, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: yN}},
			{{X: xN, Y: y2}, {X: x1, Y: y2}, {X: x1, Y: y0}},
			{{X: x0, Y: y2}, {X: x2, Y: y2}, {X: x2, Y: y0}},
		}
	case splitY:
		return []plotter.XYs{
			{{X: x1, Y: yN}, {X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: yN}, {X: x1, Y: yN}},
			{{X: x1, Y: y0}, {X: x1, Y: y2}, {X: x2, Y: y2}, {X: x2, Y: y0}, {X: x1, Y: y0}},
		}
	case splitX:
		return []plotter.XYs{
			{{X: xN, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y2}, {X: xN, Y: y2}, {X: xN, Y: y1}},
			{{X: x0, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x0, Y: y2}, {X: x0, Y: y1}},
		}
	default:
		return []plotter.XYs{
			{{X: x1, Y: y1}, {X: x1, Y: y2}, {X: x2, Y: y2}, {X: x2, Y: y1}, {X: x1, Y: y1}},
		}
	}
}

type config struct {
	detect    bool
	lineStyle draw.LineStyle
}

// Option configures [Plot].
type Option func(*config)

// WithoutSplitDetection always draws the plain rectangle.
func WithoutSplitDetection() Option {
	return func(c *config) { c.detect = false }
}

// WithLineStyle sets the outline style.
func WithLineStyle(ls draw.LineStyle) Option {
	return func(c *config) { c.lineStyle = ls }
}

// Plot adds the outline of b to p and returns one line per piece.
// Wrapped boxes are clipped against p's current axis limits, so set the
// limits (or add the map data) before drawing the box.
func Plot(p *plot.Plot, b Box, opts ...Option) ([]*plotter.Line, error) {
	cfg := config{detect: true, lineStyle: plotter.DefaultLineStyle}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, v := range b {
		if !finite(v) {
			return nil, errors.New(errors.ErrCodeInvalidBox, "box values must be finite, got %v", b)
		}
	}

	xlim := [2]float64{p.X.Min, p.X.Max}
	ylim := [2]float64{p.Y.Min, p.Y.Max}
	if cfg.detect {
		splitX, splitY := b.Split()
		if splitX {
			if err := errors.ValidateLimits("x axis", xlim); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "box wraps around x, set x limits first")
			}
		}
		if splitY {
			if err := errors.ValidateLimits("y axis", ylim); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "box wraps around y, set y limits first")
			}
		}
	}

	segs := Segments(b, xlim, ylim, cfg.detect)
	lines := make([]*plotter.Line, 0, len(segs))
	for _, seg := range segs {
		l, err := plotter.NewLine(seg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "build box outline")
		}
		l.LineStyle = cfg.lineStyle
		p.Add(l)
		lines = append(lines, l)
	}
	return lines, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
