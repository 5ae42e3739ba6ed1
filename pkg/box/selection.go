package box

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// Default dimension names used by [FromSelection].
const (
	DefaultXDim = "lon"
	DefaultYDim = "lat"
)

// Range is a label-based slice along one dimension. Start may exceed Stop
// for ranges that wrap around.
type Range struct {
	Start float64 `json:"start" toml:"start"`
	Stop  float64 `json:"stop" toml:"stop"`
}

// Selection maps dimension names to ranges, e.g.
//
//	box.Selection{"lon": {Start: 160, Stop: -150}, "lat": {Start: -10, Stop: 10}}
type Selection map[string]Range

// FromSelection builds a Box from the xdim and ydim ranges of sel. Empty
// dimension names default to [DefaultXDim] and [DefaultYDim].
func FromSelection(sel Selection, xdim, ydim string) (Box, error) {
	if xdim == "" {
		xdim = DefaultXDim
	}
	if ydim == "" {
		ydim = DefaultYDim
	}
	xr, ok := sel[xdim]
	if !ok {
		return Box{}, errors.New(errors.ErrCodeInvalidBox, "selection has no %q dimension", xdim)
	}
	yr, ok := sel[ydim]
	if !ok {
		return Box{}, errors.New(errors.ErrCodeInvalidBox, "selection has no %q dimension", ydim)
	}
	return Box{xr.Start, xr.Stop, yr.Start, yr.Stop}, nil
}

// PlotSelection draws the box described by sel. See [FromSelection] and [Plot].
func PlotSelection(p *plot.Plot, sel Selection, xdim, ydim string, opts ...Option) ([]*plotter.Line, error) {
	b, err := FromSelection(sel, xdim, ydim)
	if err != nil {
		return nil, err
	}
	return Plot(p, b, opts...)
}
