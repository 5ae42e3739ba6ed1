package tsdiagram

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/oceanplot/pkg/errors"
	"github.com/matzehuels/oceanplot/pkg/seawater"
)

// Grid holds potential density anomalies on a regular salinity/temperature
// grid in plot coordinates. It implements plotter.GridXYZ.
type Grid struct {
	xs, ys  []float64
	sigma   [][]float64
	saltOnX bool
}

// NewGrid evaluates sg on an n×n grid spanning slim and tlim. With saltOnX
// the columns run along salinity; otherwise they run along temperature and
// the rows along salinity.
func NewGrid(sg seawater.Sigma, slim, tlim [2]float64, n int, saltOnX bool) (*Grid, error) {
	if !sg.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidSigma,
			"sigma function has to be one of sigma0...sigma4, got %d", int(sg))
	}
	if n < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "density grid needs at least 2 points per axis, got %d", n)
	}
	if err := errors.ValidateLimits("salinity", slim); err != nil {
		return nil, err
	}
	if err := errors.ValidateLimits("temperature", tlim); err != nil {
		return nil, err
	}

	xlim, ylim := slim, tlim
	if !saltOnX {
		xlim, ylim = tlim, slim
	}
	g := &Grid{
		xs:      floats.Span(make([]float64, n), xlim[0], xlim[1]),
		ys:      floats.Span(make([]float64, n), ylim[0], ylim[1]),
		sigma:   make([][]float64, n),
		saltOnX: saltOnX,
	}
	for r, y := range g.ys {
		row := make([]float64, n)
		for c, x := range g.xs {
			sa, ct := x, y
			if !saltOnX {
				sa, ct = y, x
			}
			row[c] = sg.Anomaly(sa, ct)
		}
		g.sigma[r] = row
	}
	return g, nil
}

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (c, r int) { return len(g.xs), len(g.ys) }

// Z returns the density anomaly at column c, row r.
func (g *Grid) Z(c, r int) float64 { return g.sigma[r][c] }

// X returns the x coordinate of column c.
func (g *Grid) X(c int) float64 { return g.xs[c] }

// Y returns the y coordinate of row r.
func (g *Grid) Y(r int) float64 { return g.ys[r] }

// SaltOnX reports whether salinity runs along the x axis.
func (g *Grid) SaltOnX() bool { return g.saltOnX }

// Range returns the smallest and largest finite anomaly. ok is false when
// the grid holds no finite value.
func (g *Grid) Range() (min, max float64, ok bool) {
	vals := make([]float64, 0, len(g.xs)*len(g.ys))
	for _, row := range g.sigma {
		for _, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				vals = append(vals, v)
			}
		}
	}
	if len(vals) == 0 {
		return 0, 0, false
	}
	return floats.Min(vals), floats.Max(vals), true
}

// Levels returns start, start+step, ... up to but excluding stop.
func Levels(start, stop, step float64) []float64 {
	if step <= 0 || !(stop > start) {
		return nil
	}
	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// crossing returns the point nearest the middle of the grid scan where the
// anomaly crosses level. ok is false when the level does not cross the grid.
func (g *Grid) crossing(level float64) (x, y float64, ok bool) {
	type pt struct{ x, y float64 }
	var pts []pt
	cols, rows := g.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			z0 := g.Z(c, r)
			if c+1 < cols {
				if t, hit := interp(z0, g.Z(c+1, r), level); hit {
					pts = append(pts, pt{g.xs[c] + t*(g.xs[c+1]-g.xs[c]), g.ys[r]})
				}
			}
			if r+1 < rows {
				if t, hit := interp(z0, g.Z(c, r+1), level); hit {
					pts = append(pts, pt{g.xs[c], g.ys[r] + t*(g.ys[r+1]-g.ys[r])})
				}
			}
		}
	}
	if len(pts) == 0 {
		return 0, 0, false
	}
	mid := pts[len(pts)/2]
	return mid.x, mid.y, true
}

func interp(z0, z1, level float64) (float64, bool) {
	if math.IsNaN(z0) || math.IsNaN(z1) || z0 == z1 {
		return 0, false
	}
	if (z0-level)*(z1-level) > 0 {
		return 0, false
	}
	return (level - z0) / (z1 - z0), true
}
