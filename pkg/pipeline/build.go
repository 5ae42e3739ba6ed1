package pipeline

import (
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/oceanplot/pkg/axes"
	"github.com/matzehuels/oceanplot/pkg/box"
	"github.com/matzehuels/oceanplot/pkg/errors"
	"github.com/matzehuels/oceanplot/pkg/figure"
	dataio "github.com/matzehuels/oceanplot/pkg/io"
	"github.com/matzehuels/oceanplot/pkg/shaded"
	"github.com/matzehuels/oceanplot/pkg/tsdiagram"
)

// Request is one figure to build: its kind, input table and options.
// Box figures may omit the table.
type Request struct {
	Kind    Kind          `json:"kind"`
	Table   *dataio.Table `json:"table,omitempty"`
	Options Options       `json:"options"`

	// Refresh skips cache lookups in [Runner.Execute]. Fresh artifacts
	// are still stored.
	Refresh bool `json:"refresh,omitempty"`
}

// Axis labels of box figures.
const (
	LabelLongitude = "Longitude [°E]"
	LabelLatitude  = "Latitude [°N]"
)

// Build validates req and builds its figure without rendering it.
func Build(req Request) (*figure.Figure, error) {
	kind, err := ParseKind(string(req.Kind))
	if err != nil {
		return nil, err
	}
	o := &req.Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = o.Title

	var fig *figure.Figure
	switch kind {
	case KindTS:
		fig, err = buildTS(p, req.Table, o)
	case KindProfile:
		fig, err = buildProfile(p, req.Table, o)
	case KindBox:
		fig, err = buildBox(p, req.Table, o)
	}
	if err != nil {
		return nil, err
	}

	if o.Center != "" {
		if err := axes.CenterLim(p, axes.Which(o.Center)); err != nil {
			return nil, err
		}
	}
	return fig, nil
}

func requireTable(t *dataio.Table, kind Kind) error {
	if t.Len() == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s figure needs a table with at least one row", kind)
	}
	return nil
}

// =============================================================================
// T-S diagram
// =============================================================================

func buildTS(p *plot.Plot, t *dataio.Table, o *Options) (*figure.Figure, error) {
	if err := requireTable(t, KindTS); err != nil {
		return nil, err
	}
	salt, err := t.Column(o.SaltColumn)
	if err != nil {
		return nil, err
	}
	temp, err := t.Column(o.TempColumn)
	if err != nil {
		return nil, err
	}

	ts := tsdiagram.Options{
		NoConvert:  o.NoConvert,
		NoContours: o.NoContours,
		NoColorbar: o.NoColorbar,
		NoLabels:   o.NoLabels,
		Density: tsdiagram.DensityOptions{
			Sigma:    o.SigmaValue(),
			Grid:     o.Grid,
			Interval: o.Interval,
			NoLabels: o.NoLabels,
		},
	}
	if o.ColorColumn != "" {
		if ts.Values, err = t.Column(o.ColorColumn); err != nil {
			return nil, err
		}
	}
	if o.SizeColumn != "" {
		if ts.Sizes, err = t.Column(o.SizeColumn); err != nil {
			return nil, err
		}
	}
	if !o.NoConvert {
		if ts.Lon, err = coordinate(t, o.LonColumn, o.Lon, DefaultLonColumn); err != nil {
			return nil, err
		}
		if ts.Lat, err = coordinate(t, o.LatColumn, o.Lat, DefaultLatColumn); err != nil {
			return nil, err
		}
		if ts.Pressure, err = coordinate(t, o.PressureColumn, o.Pressure, DefaultPressureColumn); err != nil {
			return nil, err
		}
	}

	d, err := tsdiagram.TSDiagram(p, salt, temp, ts)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("built T-S diagram", "samples", len(d.Scatter.XYs), "levels", contourLevels(d))

	if d.Colorbar != nil {
		d.Colorbar.Y.Label.Text = o.ColorColumn
	}
	return &figure.Figure{Main: p, Colorbar: d.Colorbar}, nil
}

// coordinate resolves a per-sample coordinate: an explicit column wins,
// then a scalar value, then a column with the conventional name.
func coordinate(t *dataio.Table, column string, scalar *float64, fallback string) ([]float64, error) {
	switch {
	case column != "":
		return t.Column(column)
	case scalar != nil:
		return []float64{*scalar}, nil
	case t.Has(fallback):
		return t.Column(fallback)
	}
	return nil, nil
}

func contourLevels(d *tsdiagram.Diagram) int {
	if d.Contours == nil {
		return 0
	}
	return len(d.Contours.Levels)
}

// =============================================================================
// Profile
// =============================================================================

func buildProfile(p *plot.Plot, t *dataio.Table, o *Options) (*figure.Figure, error) {
	if err := requireTable(t, KindProfile); err != nil {
		return nil, err
	}
	if o.ValueColumn == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "profile figure needs value_column")
	}
	depth, err := t.Column(o.DepthColumn)
	if err != nil {
		return nil, err
	}
	value, err := t.Column(o.ValueColumn)
	if err != nil {
		return nil, err
	}
	vertical := !o.Horizontal

	var x, y, std []float64
	if o.StdColumn != "" && o.CastColumn == "" {
		if std, err = t.Column(o.StdColumn); err != nil {
			return nil, err
		}
		x, y = depth, value
	} else {
		if o.CastColumn != "" {
			cast, err := t.Column(o.CastColumn)
			if err != nil {
				return nil, err
			}
			if err := addCasts(p, depth, value, cast, vertical); err != nil {
				return nil, err
			}
		}
		prof, err := AggregateProfile(depth, value)
		if err != nil {
			return nil, err
		}
		o.Logger.Debug("aggregated profile", "samples", len(depth), "depths", len(prof.Depth))
		x, y, std = prof.Depth, prof.Mean, prof.Std
	}

	var opts []shaded.Option
	if vertical {
		opts = append(opts, shaded.Vertical())
	}
	if _, err := shaded.LineStd(p, x, y, std, opts...); err != nil {
		return nil, err
	}

	depthAxis, valueAxis := &p.Y, &p.X
	if !vertical {
		depthAxis, valueAxis = &p.X, &p.Y
	}
	if !o.NoLabels {
		depthAxis.Label.Text = o.DepthColumn
		valueAxis.Label.Text = o.ValueColumn
	}

	switch {
	case o.LogDepth && vertical:
		axes.DepthLogScale(p, axes.WithLinThresh(o.LinThresh), axes.WithTicks(o.Ticks))
	case o.LogDepth:
		p.X.Scale = axes.SymLogScale{LinThresh: o.LinThresh}
		p.X.Tick.Marker = axes.DepthTicks(o.Ticks)
	case vertical:
		// Depth increases downwards.
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
	return &figure.Figure{Main: p}, nil
}

// addCasts draws every cast as a thin gray line beneath the mean profile.
func addCasts(p *plot.Plot, depth, value, cast []float64, vertical bool) error {
	if err := errors.ValidateSameLength(
		[]string{"depth", "cast"}, []int{len(depth), len(cast)},
	); err != nil {
		return err
	}

	byCast := make(map[float64]plotter.XYs)
	var order []float64
	for i, c := range cast {
		if !finite(c) || !finite(depth[i]) || !finite(value[i]) {
			continue
		}
		if _, ok := byCast[c]; !ok {
			order = append(order, c)
		}
		xy := plotter.XY{X: depth[i], Y: value[i]}
		if vertical {
			xy = plotter.XY{X: value[i], Y: depth[i]}
		}
		byCast[c] = append(byCast[c], xy)
	}

	style := draw.LineStyle{Color: shaded.WithAlpha(plotutil.Color(1), 0.5), Width: vg.Points(0.5)}
	for _, c := range order {
		xys := byCast[c]
		if len(xys) < 2 {
			continue
		}
		slices.SortFunc(xys, func(a, b plotter.XY) int {
			if vertical {
				return cmpFloat(a.Y, b.Y)
			}
			return cmpFloat(a.X, b.X)
		})
		l, err := plotter.NewLine(xys)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "cast %g", c)
		}
		l.LineStyle = style
		p.Add(l)
	}
	return nil
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// =============================================================================
// Boxes
// =============================================================================

func buildBox(p *plot.Plot, t *dataio.Table, o *Options) (*figure.Figure, error) {
	if len(o.Boxes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidBox, "box figure needs at least one box")
	}
	xlim, err := limits("xlim", o.XLim)
	if err != nil {
		return nil, err
	}
	ylim, err := limits("ylim", o.YLim)
	if err != nil {
		return nil, err
	}

	if t.Len() > 0 {
		if err := addTrack(p, t, o); err != nil {
			return nil, err
		}
	}
	setLimits(p, xlim, ylim)

	var boxOpts []box.Option
	if o.NoSplitDetection {
		boxOpts = append(boxOpts, box.WithoutSplitDetection())
	}

	var names plotter.XYLabels
	var colors []draw.LineStyle
	for i, b := range o.Boxes {
		ls := draw.LineStyle{Color: plotutil.Color(i), Width: vg.Points(1.5)}
		sel := box.Selection{
			box.DefaultXDim: {Start: b.Lon[0], Stop: b.Lon[1]},
			box.DefaultYDim: {Start: b.Lat[0], Stop: b.Lat[1]},
		}
		if _, err := box.PlotSelection(p, sel, "", "", append(boxOpts, box.WithLineStyle(ls))...); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "box %d (%s)", i+1, b.Name)
		}
		if b.Name != "" {
			names.XYs = append(names.XYs, plotter.XY{X: b.Lon[0], Y: b.Lat[1]})
			names.Labels = append(names.Labels, b.Name)
			colors = append(colors, ls)
		}
	}

	if len(names.Labels) > 0 {
		labels, err := plotter.NewLabels(names)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "box labels")
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Color = colors[i].Color
			labels.TextStyle[i].Font.Size = vg.Points(9)
			labels.TextStyle[i].XAlign = text.XLeft
			labels.TextStyle[i].YAlign = text.YBottom
		}
		labels.Offset = vg.Point{X: vg.Points(2), Y: vg.Points(2)}
		p.Add(labels)
	}

	// Adding plotters widens the axes to their data; keep the map extent.
	setLimits(p, xlim, ylim)
	if !o.NoLabels {
		p.X.Label.Text = LabelLongitude
		p.Y.Label.Text = LabelLatitude
	}
	return &figure.Figure{Main: p}, nil
}

// addTrack scatters the table's positions, e.g. a cruise track.
func addTrack(p *plot.Plot, t *dataio.Table, o *Options) error {
	lonCol, latCol := o.LonColumn, o.LatColumn
	if lonCol == "" {
		lonCol = DefaultLonColumn
	}
	if latCol == "" {
		latCol = DefaultLatColumn
	}
	lon, err := t.Column(lonCol)
	if err != nil {
		return err
	}
	lat, err := t.Column(latCol)
	if err != nil {
		return err
	}

	var xys plotter.XYs
	for i := range lon {
		if finite(lon[i]) && finite(lat[i]) {
			xys = append(xys, plotter.XY{X: lon[i], Y: lat[i]})
		}
	}
	if len(xys) == 0 {
		return nil
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "track")
	}
	sc.GlyphStyle.Radius = vg.Points(1.5)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	return nil
}

func setLimits(p *plot.Plot, xlim, ylim [2]float64) {
	p.X.Min, p.X.Max = xlim[0], xlim[1]
	p.Y.Min, p.Y.Max = ylim[0], ylim[1]
}
