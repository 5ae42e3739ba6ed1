package axes

import "math"

// SymLogScale is a symmetric-log [plot.Normalizer]: linear for |x| <= LinThresh
// and logarithmic (base 10) beyond, continuous at the threshold. A zero
// LinThresh uses [DefaultLinThresh].
//
// [plot.Normalizer]: gonum.org/v1/plot.Normalizer
type SymLogScale struct {
	LinThresh float64
}

// linScaleAdj stretches the linear region to one decade, as linscale=1 does in base 10.
const linScaleAdj = 1 / (1 - 1/10.0)

// Transform maps x onto the symlog coordinate.
func (s SymLogScale) Transform(x float64) float64 {
	t := s.LinThresh
	if t <= 0 {
		t = DefaultLinThresh
	}
	a := math.Abs(x)
	if a <= t {
		return x * linScaleAdj
	}
	return math.Copysign(t*(linScaleAdj+math.Log10(a/t)), x)
}

// Normalize returns the fractional position of x between min and max.
func (s SymLogScale) Normalize(min, max, x float64) float64 {
	lo, hi := s.Transform(min), s.Transform(max)
	if hi == lo {
		return 0.5
	}
	return (s.Transform(x) - lo) / (hi - lo)
}
