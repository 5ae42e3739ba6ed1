package cli

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/oceanplot/pkg/box"
	"github.com/matzehuels/oceanplot/pkg/errors"
	"github.com/matzehuels/oceanplot/pkg/pipeline"
)

// boxCommand creates the box command for region maps.
func (c *CLI) boxCommand() *cobra.Command {
	var boxes []string
	var track string

	cmd := &cobra.Command{
		Use:   "box [config.toml]",
		Short: "Draw region boxes on a lon/lat map",
		Long: `Draw the outlines of lon/lat boxes. A box whose first longitude is larger
than its second wraps across the map edge (e.g. the antimeridian) and is
drawn as two pieces clipped to --xlim.

Boxes come from [[boxes]] tables in the config file or from repeated --box
flags of the form "name:lon0,lon1,lat0,lat1".`,
		Example: `  oceanplot box regions.toml -o regions.pdf
  oceanplot box --box "Niño 3.4:-170,-120,-5,5" --box "Dateline:160,-150,-10,10"`,
		Args: cobra.MaximumNArgs(1),
	}
	f := newRenderFlags(cmd)
	fl := cmd.Flags()

	fl.StringArrayVar(&boxes, "box", nil, `box as "name:lon0,lon1,lat0,lat1" (repeatable)`)
	fl.StringVar(&track, "track", "", "CSV or JSON table whose lon/lat columns are drawn as a track")
	fl.StringVar(&f.opts.LonColumn, "lon-column", pipeline.DefaultLonColumn, "longitude column of the track")
	f.bind("lon-column", func(d, s *pipeline.Options) { d.LonColumn = s.LonColumn })
	fl.StringVar(&f.opts.LatColumn, "lat-column", pipeline.DefaultLatColumn, "latitude column of the track")
	f.bind("lat-column", func(d, s *pipeline.Options) { d.LatColumn = s.LatColumn })
	fl.Float64SliceVar(&f.opts.XLim, "xlim", pipeline.DefaultXLim, "longitude extent")
	f.bind("xlim", func(d, s *pipeline.Options) { d.XLim = s.XLim })
	fl.Float64SliceVar(&f.opts.YLim, "ylim", pipeline.DefaultYLim, "latitude extent")
	f.bind("ylim", func(d, s *pipeline.Options) { d.YLim = s.YLim })
	fl.BoolVar(&f.opts.NoSplitDetection, "no-split-detection", false, "always draw plain rectangles")
	f.bind("no-split-detection", func(d, s *pipeline.Options) { d.NoSplitDetection = s.NoSplitDetection })

	registerCompletions(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if f.config != "" {
				return errors.New(errors.ErrCodeInvalidInput, "give the config either as argument or with --config")
			}
			f.config = args[0]
		}
		specs := make([]pipeline.BoxSpec, 0, len(boxes))
		for _, s := range boxes {
			spec, err := parseBoxFlag(s)
			if err != nil {
				return err
			}
			specs = append(specs, spec)
		}
		if len(specs) > 0 {
			f.opts.Boxes = specs
			f.bind("box", func(d, s *pipeline.Options) { d.Boxes = append(d.Boxes, s.Boxes...) })
		}

		// Name outputs after the config file rather than the track.
		if f.output == "" && f.config != "" {
			stem := strings.TrimSuffix(filepath.Base(f.config), filepath.Ext(f.config))
			f.output = stem + "_" + string(pipeline.KindBox)
		}
		return c.render(cmd.Context(), cmd, pipeline.KindBox, track, f)
	}
	return cmd
}

// parseBoxFlag parses "name:lon0,lon1,lat0,lat1"; the name is optional.
func parseBoxFlag(s string) (pipeline.BoxSpec, error) {
	name, coords := "", s
	if i := strings.LastIndex(s, ":"); i >= 0 {
		name, coords = strings.TrimSpace(s[:i]), s[i+1:]
	}
	parts := strings.Split(coords, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return pipeline.BoxSpec{}, errors.New(errors.ErrCodeInvalidBox, "box %q: %q is not a number", s, strings.TrimSpace(p))
		}
		vals = append(vals, v)
	}
	b, err := box.FromSlice(vals)
	if err != nil {
		return pipeline.BoxSpec{}, errors.Wrap(errors.ErrCodeInvalidBox, err, "box %q", s)
	}
	return pipeline.BoxSpec{
		Name: name,
		Lon:  [2]float64{b[0], b[1]},
		Lat:  [2]float64{b[2], b[3]},
	}, nil
}
