package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/oceanplot/pkg/axes"
	"github.com/matzehuels/oceanplot/pkg/pipeline"
)

// profileCommand creates the profile command for depth profiles.
func (c *CLI) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <file>",
		Short: "Draw a depth profile with a ±1 standard deviation band",
		Long: `Draw the mean profile of a value column against depth with a shaded
band of one standard deviation.

The band comes from --std-column when given. Otherwise samples are grouped
by depth (e.g. several casts stacked in one table, see --cast-column) and
reduced to their mean and standard deviation.`,
		Example: `  oceanplot profile casts.csv --value-column temp --cast-column station
  oceanplot profile mean.csv --value-column temp --std-column temp_sd --log-depth`,
		Args: cobra.ExactArgs(1),
	}
	f := newRenderFlags(cmd)
	fl := cmd.Flags()

	fl.StringVar(&f.opts.DepthColumn, "depth-column", pipeline.DefaultDepthColumn, "depth column (m)")
	f.bind("depth-column", func(d, s *pipeline.Options) { d.DepthColumn = s.DepthColumn })
	fl.StringVar(&f.opts.ValueColumn, "value-column", "", "column to profile (required)")
	f.bind("value-column", func(d, s *pipeline.Options) { d.ValueColumn = s.ValueColumn })
	fl.StringVar(&f.opts.StdColumn, "std-column", "", "standard deviation column")
	f.bind("std-column", func(d, s *pipeline.Options) { d.StdColumn = s.StdColumn })
	fl.StringVar(&f.opts.CastColumn, "cast-column", "", "cast identifier column; draws every cast beneath the mean")
	f.bind("cast-column", func(d, s *pipeline.Options) { d.CastColumn = s.CastColumn })
	fl.BoolVar(&f.opts.Horizontal, "horizontal", false, "put depth on the x axis")
	f.bind("horizontal", func(d, s *pipeline.Options) { d.Horizontal = s.Horizontal })
	fl.BoolVar(&f.opts.LogDepth, "log-depth", false, "symmetric-log depth axis")
	f.bind("log-depth", func(d, s *pipeline.Options) { d.LogDepth = s.LogDepth })
	fl.Float64Var(&f.opts.LinThresh, "lin-thresh", axes.DefaultLinThresh, "depth (m) where the log depth axis turns logarithmic")
	f.bind("lin-thresh", func(d, s *pipeline.Options) { d.LinThresh = s.LinThresh })
	fl.Float64SliceVar(&f.opts.Ticks, "ticks", axes.DefaultDepthTicks, "depth ticks of the log depth axis")
	f.bind("ticks", func(d, s *pipeline.Options) { d.Ticks = s.Ticks })

	registerCompletions(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.render(cmd.Context(), cmd, pipeline.KindProfile, args[0], f)
	}
	return cmd
}
