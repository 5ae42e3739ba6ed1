package axes

import (
	"math"

	"gonum.org/v1/plot"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// Which names the axes [CenterLim] operates on.
type Which string

const (
	X  Which = "x"
	Y  Which = "y"
	XY Which = "xy"
	YX Which = "yx"
)

// CenterLim sets the limits of the selected axes to [-m, m], where m is the
// largest absolute value of the current limits. An unknown which returns an
// INVALID_AXIS error and leaves p untouched.
func CenterLim(p *plot.Plot, which Which) error {
	switch which {
	case X:
		centerAxis(&p.X)
	case Y:
		centerAxis(&p.Y)
	case XY, YX:
		centerAxis(&p.X)
		centerAxis(&p.Y)
	default:
		return errors.New(errors.ErrCodeInvalidAxis, "which is not in (x, y, xy), found %q", string(which))
	}
	return nil
}

func centerAxis(a *plot.Axis) {
	m := SymmetricLimit(a.Min, a.Max)
	a.Min, a.Max = -m, m
}

// SymmetricLimit returns max(|min|, |max|).
func SymmetricLimit(min, max float64) float64 {
	return math.Max(math.Abs(min), math.Abs(max))
}
