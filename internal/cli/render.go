package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/oceanplot/pkg/figure"
	dataio "github.com/matzehuels/oceanplot/pkg/io"
	"github.com/matzehuels/oceanplot/pkg/pipeline"
)

// renderFlags holds the flags shared by the figure commands (ts, profile,
// box). Figure options bound to flags are collected in opts; only flags the
// user actually set override values from --config.
type renderFlags struct {
	output   string // output file (single format) or base path (several)
	formats  string // comma-separated output formats
	config   string // TOML file with figure options
	noCache  bool   // disable the artifact cache
	refresh  bool   // re-render even if cached
	redisURL string // Redis artifact cache

	opts      pipeline.Options
	overrides map[string]func(dst *pipeline.Options)
}

func newRenderFlags(cmd *cobra.Command) *renderFlags {
	f := &renderFlags{overrides: make(map[string]func(*pipeline.Options))}
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (several formats)")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(figure.ValidFormats, ", ")+" (comma-separated, default svg)")
	fl.StringVar(&f.config, "config", "", "TOML file with figure options (flags take precedence)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	fl.BoolVar(&f.refresh, "refresh", false, "re-render even if the figure is cached")
	fl.StringVar(&f.redisURL, "redis-url", os.Getenv(envRedisURL), "cache artifacts in Redis (default $"+envRedisURL+")")

	fl.StringVar(&f.opts.Title, "title", "", "figure title")
	f.bind("title", func(d, s *pipeline.Options) { d.Title = s.Title })
	fl.Float64Var(&f.opts.Width, "width", pipeline.DefaultWidth, "figure width in cm")
	f.bind("width", func(d, s *pipeline.Options) { d.Width = s.Width })
	fl.Float64Var(&f.opts.Height, "height", pipeline.DefaultHeight, "figure height in cm")
	f.bind("height", func(d, s *pipeline.Options) { d.Height = s.Height })
	fl.StringVar(&f.opts.Center, "center", "", "center axis limits on zero: x, y or xy")
	f.bind("center", func(d, s *pipeline.Options) { d.Center = s.Center })
	fl.BoolVar(&f.opts.NoLabels, "no-labels", false, "leave axis labels and annotations empty")
	f.bind("no-labels", func(d, s *pipeline.Options) { d.NoLabels = s.NoLabels })
	return f
}

// bind registers how the flag name is copied onto options loaded from a
// config file.
func (f *renderFlags) bind(name string, apply func(dst, src *pipeline.Options)) {
	f.overrides[name] = func(dst *pipeline.Options) { apply(dst, &f.opts) }
}

// options merges --config, the changed flags and the output extension.
func (f *renderFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		var err error
		if opts, err = pipeline.LoadConfig(f.config); err != nil {
			return pipeline.Options{}, err
		}
	} else {
		opts.Width, opts.Height = f.opts.Width, f.opts.Height
	}

	names := make([]string, 0, len(f.overrides))
	for name := range f.overrides {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			f.overrides[name](&opts)
		}
	}

	switch {
	case f.formats != "":
		opts.Formats = parseFormats(f.formats)
	case len(opts.Formats) == 0:
		if ext := strings.TrimPrefix(filepath.Ext(f.output), "."); ext != "" {
			opts.Formats = []string{ext}
		}
	}
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{figure.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputPaths maps each format to its output file. A single format is
// written to output as given; several formats share output's base name.
// Without output, the name derives from the input file and the kind.
func outputPaths(output, input string, kind pipeline.Kind, formats []string) map[string]string {
	base := output
	if base == "" {
		stem := appName
		if input != "" {
			stem = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		}
		base = stem + "_" + string(kind)
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// render loads input (if any), runs the pipeline and writes the artifacts.
func (c *CLI) render(ctx context.Context, cmd *cobra.Command, kind pipeline.Kind, input string, f *renderFlags) error {
	opts, err := f.options(cmd)
	if err != nil {
		return err
	}

	var table *dataio.Table
	if input != "" {
		prog := newProgress(c.Logger)
		if table, err = dataio.Import(input); err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Loaded %d rows from %s", table.Len(), filepath.Base(input)))
	}

	runner, err := c.newRunner(ctx, f.noCache, f.redisURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s figure...", kind))
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Request{
		Kind:    kind,
		Table:   table,
		Options: opts,
		Refresh: f.refresh,
	})
	if err != nil {
		spinner.Stop()
		if spinner.Cancelled() {
			return ctx.Err()
		}
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s figure", kind))

	formats := make([]string, 0, len(result.Artifacts))
	for format := range result.Artifacts {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	paths := outputPaths(f.output, input, kind, formats)

	printStats(result.Stats.Rows, len(formats), result.CacheHit)
	for _, format := range formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path, len(result.Artifacts[format]))
	}
	return nil
}
