package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/oceanplot/pkg/pipeline"
	"github.com/matzehuels/oceanplot/pkg/tsdiagram"
)

// tsCommand creates the ts command for temperature-salinity diagrams.
func (c *CLI) tsCommand() *cobra.Command {
	var lon, lat, pressure float64

	cmd := &cobra.Command{
		Use:   "ts <file>",
		Short: "Draw a T-S diagram with potential density contours",
		Long: `Draw a temperature-salinity diagram from a CSV or JSON table.

Practical salinity and potential temperature are converted to TEOS-10
absolute salinity and conservative temperature unless --no-convert is given.
The conversion needs longitude, latitude and pressure, taken from columns
(--lon-column, or columns called lon, lat and pressure) or from constants
(--lon, --lat, --pressure).`,
		Example: `  oceanplot ts casts.csv --color-column oxygen -o casts.png
  oceanplot ts casts.csv --lon -30 --lat 10 --pressure 0 --sigma sigma2`,
		Args: cobra.ExactArgs(1),
	}
	f := newRenderFlags(cmd)
	fl := cmd.Flags()

	fl.StringVar(&f.opts.SaltColumn, "salt-column", pipeline.DefaultSaltColumn, "salinity column")
	f.bind("salt-column", func(d, s *pipeline.Options) { d.SaltColumn = s.SaltColumn })
	fl.StringVar(&f.opts.TempColumn, "temp-column", pipeline.DefaultTempColumn, "temperature column")
	f.bind("temp-column", func(d, s *pipeline.Options) { d.TempColumn = s.TempColumn })
	fl.StringVar(&f.opts.ColorColumn, "color-column", "", "color markers by this column and add a colorbar")
	f.bind("color-column", func(d, s *pipeline.Options) { d.ColorColumn = s.ColorColumn })
	fl.StringVar(&f.opts.SizeColumn, "size-column", "", "marker areas in pt²")
	f.bind("size-column", func(d, s *pipeline.Options) { d.SizeColumn = s.SizeColumn })
	fl.StringVar(&f.opts.LonColumn, "lon-column", "", "longitude column for the conversion")
	f.bind("lon-column", func(d, s *pipeline.Options) { d.LonColumn = s.LonColumn })
	fl.StringVar(&f.opts.LatColumn, "lat-column", "", "latitude column for the conversion")
	f.bind("lat-column", func(d, s *pipeline.Options) { d.LatColumn = s.LatColumn })
	fl.StringVar(&f.opts.PressureColumn, "pressure-column", "", "sea pressure column (dbar) for the conversion")
	f.bind("pressure-column", func(d, s *pipeline.Options) { d.PressureColumn = s.PressureColumn })
	fl.Float64Var(&lon, "lon", 0, "longitude of every sample")
	f.bind("lon", func(d, _ *pipeline.Options) { d.Lon = &lon })
	fl.Float64Var(&lat, "lat", 0, "latitude of every sample")
	f.bind("lat", func(d, _ *pipeline.Options) { d.Lat = &lat })
	fl.Float64Var(&pressure, "pressure", 0, "sea pressure (dbar) of every sample")
	f.bind("pressure", func(d, _ *pipeline.Options) { d.Pressure = &pressure })
	fl.BoolVar(&f.opts.NoConvert, "no-convert", false, "plot salinity and temperature as given")
	f.bind("no-convert", func(d, s *pipeline.Options) { d.NoConvert = s.NoConvert })

	fl.StringVar(&f.opts.Sigma, "sigma", pipeline.DefaultSigma, "density reference: sigma0 ... sigma4")
	f.bind("sigma", func(d, s *pipeline.Options) { d.Sigma = s.Sigma })
	fl.IntVar(&f.opts.Grid, "grid", tsdiagram.DefaultGrid, "density grid points per axis")
	f.bind("grid", func(d, s *pipeline.Options) { d.Grid = s.Grid })
	fl.Float64Var(&f.opts.Interval, "interval", tsdiagram.DefaultInterval, "contour interval in kg/m³")
	f.bind("interval", func(d, s *pipeline.Options) { d.Interval = s.Interval })
	fl.BoolVar(&f.opts.NoContours, "no-contours", false, "skip the density contours")
	f.bind("no-contours", func(d, s *pipeline.Options) { d.NoContours = s.NoContours })
	fl.BoolVar(&f.opts.NoColorbar, "no-colorbar", false, "skip the colorbar")
	f.bind("no-colorbar", func(d, s *pipeline.Options) { d.NoColorbar = s.NoColorbar })

	registerCompletions(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.render(cmd.Context(), cmd, pipeline.KindTS, args[0], f)
	}
	return cmd
}
