package tsdiagram

import (
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/oceanplot/pkg/errors"
	"github.com/matzehuels/oceanplot/pkg/seawater"
)

// Axis labels set by TSDiagram.
const (
	LabelAbsoluteSalinity        = "Absolute Salinity [g/kg]"
	LabelConservativeTemperature = "Conservative Temperature [°C]"
	LabelPracticalSalinity       = "Practical Salinity [PSS-78]"
	LabelPotentialTemperature    = "Potential Temperature [°C]"
)

// DefaultMarkerArea is the marker area in pt² when Sizes is empty.
const DefaultMarkerArea = 36.0

// Options configures [TSDiagram].
type Options struct {
	// NoConvert plots the input salinity and temperature as given instead
	// of converting practical salinity and potential temperature to
	// absolute salinity and conservative temperature.
	NoConvert bool
	// Lon, Lat and Pressure (dbar) locate the samples for the conversion.
	// Each holds one value for all samples or one value per sample.
	Lon, Lat, Pressure []float64

	// Color draws every marker in one color.
	Color color.Color
	// Values colors each marker through Colormap and adds a colorbar.
	Values []float64
	// Colormap maps Values to colors. Defaults to Moreland's smooth
	// blue-red map. TSDiagram sets its Min and Max to the range of the
	// drawn Values, so a shared colormap is modified in place.
	Colormap palette.ColorMap
	// Sizes are marker areas in pt², one for all samples or one per sample.
	Sizes []float64

	NoContours bool
	Density    DensityOptions

	NoColorbar bool
	// NoLabels leaves the axis labels alone.
	NoLabels bool
}

// Diagram is what [TSDiagram] produced.
type Diagram struct {
	Scatter  *plotter.Scatter
	Contours *Contours // nil with NoContours
	// Colorbar is a separate plot holding the colorbar for Values. It is
	// nil unless markers are colored per sample.
	Colorbar *plot.Plot
	// SA and CT are the plotted salinity and temperature, one per input
	// sample, after conversion.
	SA, CT []float64
}

// TSDiagram scatters salt against temp on p and draws density contours.
// Samples with a non-finite salinity, temperature or color value are not
// drawn.
func TSDiagram(p *plot.Plot, salt, temp []float64, opts Options) (*Diagram, error) {
	if err := errors.ValidateSameLength([]string{"salt", "temp"}, []int{len(salt), len(temp)}); err != nil {
		return nil, err
	}
	if opts.Color != nil && opts.Values != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "color and values are mutually exclusive")
	}
	if opts.Values != nil {
		if err := errors.ValidateSameLength([]string{"salt", "values"}, []int{len(salt), len(opts.Values)}); err != nil {
			return nil, err
		}
	}
	if len(opts.Sizes) > 1 {
		if err := errors.ValidateSameLength([]string{"salt", "sizes"}, []int{len(salt), len(opts.Sizes)}); err != nil {
			return nil, err
		}
	}

	sa, ct := salt, temp
	saltLabel, tempLabel := LabelPracticalSalinity, LabelPotentialTemperature
	if !opts.NoConvert {
		var err error
		if sa, ct, err = convert(salt, temp, opts); err != nil {
			return nil, err
		}
		saltLabel, tempLabel = LabelAbsoluteSalinity, LabelConservativeTemperature
	}
	if !opts.NoLabels {
		p.X.Label.Text = saltLabel
		p.Y.Label.Text = tempLabel
	}

	var keep []int
	for i := range sa {
		if !finite(sa[i]) || !finite(ct[i]) {
			continue
		}
		if opts.Values != nil && !finite(opts.Values[i]) {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no finite samples to plot")
	}

	xys := make(plotter.XYs, len(keep))
	for j, i := range keep {
		xys[j] = plotter.XY{X: sa[i], Y: ct[i]}
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build scatter")
	}

	var cmap palette.ColorMap
	if opts.Values != nil {
		cmap = opts.Colormap
		if cmap == nil {
			cmap = moreland.SmoothBlueRed()
		}
		vals := make([]float64, len(keep))
		for j, i := range keep {
			vals[j] = opts.Values[i]
		}
		lo, hi := floats.Min(vals), floats.Max(vals)
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
		cmap.SetMin(lo)
		cmap.SetMax(hi)
	}

	fixed := opts.Color
	if fixed == nil {
		fixed = plotutil.Color(0)
	}
	sc.GlyphStyleFunc = func(j int) draw.GlyphStyle {
		i := keep[j]
		gs := draw.GlyphStyle{
			Color:  fixed,
			Radius: markerRadius(opts.Sizes, i),
			Shape:  draw.CircleGlyph{},
		}
		if cmap != nil {
			if c, err := cmap.At(opts.Values[i]); err == nil {
				gs.Color = c
			}
		}
		return gs
	}
	p.Add(sc)

	d := &Diagram{Scatter: sc, SA: sa, CT: ct}

	if !opts.NoContours {
		widenDegenerate(&p.X)
		widenDegenerate(&p.Y)
		if d.Contours, err = DrawDensityContours(p, opts.Density); err != nil {
			return nil, err
		}
	}

	if cmap != nil && !opts.NoColorbar {
		d.Colorbar = NewColorbar(cmap)
	}
	return d, nil
}

// NewColorbar returns a plot holding a vertical colorbar for cmap.
func NewColorbar(cmap palette.ColorMap) *plot.Plot {
	cb := plot.New()
	cb.HideX()
	cb.Y.Padding = 0
	cb.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})
	return cb
}

func convert(sp, pt []float64, opts Options) (sa, ct []float64, err error) {
	var missing []string
	if len(opts.Lon) == 0 {
		missing = append(missing, "lon")
	}
	if len(opts.Lat) == 0 {
		missing = append(missing, "lat")
	}
	if len(opts.Pressure) == 0 {
		missing = append(missing, "pressure")
	}
	if len(missing) > 0 {
		return nil, nil, errors.New(errors.ErrCodeMissingCoordinates,
			"converting to TEOS-10 needs lon, lat and pressure; missing %s", strings.Join(missing, ", "))
	}

	if sa, err = seawater.SAFromSPSlice(sp, opts.Pressure, opts.Lon, opts.Lat); err != nil {
		return nil, nil, err
	}
	if ct, err = seawater.CTFromPtSlice(sa, pt); err != nil {
		return nil, nil, err
	}
	return sa, ct, nil
}

// widenDegenerate gives a single-valued axis a unit-wide range so the
// density grid has an extent.
func widenDegenerate(a *plot.Axis) {
	if a.Min == a.Max {
		a.Min, a.Max = a.Min-0.5, a.Max+0.5
	}
}

// markerRadius converts a marker area in pt² to a glyph radius.
func markerRadius(sizes []float64, i int) vg.Length {
	area := DefaultMarkerArea
	switch len(sizes) {
	case 0:
	case 1:
		area = sizes[0]
	default:
		area = sizes[i]
	}
	if !(area > 0) {
		return 0
	}
	return vg.Points(math.Sqrt(area) / 2)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
