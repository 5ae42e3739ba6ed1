// Package pipeline turns tabular cast data into rendered figures.
//
// This package implements the load → build → render pipeline shared by the
// CLI and the HTTP API. By centralizing it, both entry points validate,
// default and cache requests the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: Turn a data table into a plot of the requested [Kind]
//     (T-S diagram, depth profile, or region boxes)
//  2. Render: Encode the plot in one or more formats (SVG, PNG, PDF, ...)
//
// Rendered artifacts are cached under a hash of kind, options and table.
//
// # Usage
//
// Create a Runner and execute a request:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Request{
//	    Kind:    pipeline.KindTS,
//	    Table:   table,
//	    Options: pipeline.Options{Formats: []string{"svg"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Build without rendering:
//
//	fig, err := pipeline.Build(req)
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oceanplot/pkg/axes"
	"github.com/matzehuels/oceanplot/pkg/errors"
	"github.com/matzehuels/oceanplot/pkg/figure"
	"github.com/matzehuels/oceanplot/pkg/seawater"
	"github.com/matzehuels/oceanplot/pkg/tsdiagram"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default figure width in centimeters.
	DefaultWidth = 16.0

	// DefaultHeight is the default figure height in centimeters.
	DefaultHeight = 12.0

	// DefaultSigma is the default density contour reference.
	DefaultSigma = "sigma0"

	// Default column names.
	DefaultSaltColumn     = "salt"
	DefaultTempColumn     = "temp"
	DefaultDepthColumn    = "depth"
	DefaultLonColumn      = "lon"
	DefaultLatColumn      = "lat"
	DefaultPressureColumn = "pressure"
)

// DefaultXLim and DefaultYLim are the map extent of box figures.
var (
	DefaultXLim = []float64{-180, 180}
	DefaultYLim = []float64{-90, 90}
)

// Kind selects the figure built from a request.
type Kind string

// Figure kinds.
const (
	KindTS      Kind = "ts"
	KindProfile Kind = "profile"
	KindBox     Kind = "box"
)

// ValidKinds lists the supported figure kinds.
var ValidKinds = []Kind{KindTS, KindProfile, KindBox}

// ParseKind validates a figure kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ValidKinds, k) {
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "invalid kind: %q (must be one of: ts, profile, box)", s)
}

// =============================================================================
// Options - Figure Configuration
// =============================================================================

// BoxSpec is a named region drawn on a box figure. Lon[0] > Lon[1] wraps
// across the antimeridian.
type BoxSpec struct {
	Name string     `json:"name,omitempty" toml:"name"`
	Lon  [2]float64 `json:"lon" toml:"lon"`
	Lat  [2]float64 `json:"lat" toml:"lat"`
}

// Options contains all configuration for building and rendering a figure.
// It is decoded from API request bodies (JSON) and config files (TOML).
type Options struct {
	// Common options
	Title   string   `json:"title,omitempty" toml:"title"`
	Width   float64  `json:"width,omitempty" toml:"width"`   // cm
	Height  float64  `json:"height,omitempty" toml:"height"` // cm
	Formats []string `json:"formats,omitempty" toml:"formats"`
	Center  string   `json:"center,omitempty" toml:"center"` // "", "x", "y" or "xy"

	// T-S diagram options
	SaltColumn     string   `json:"salt_column,omitempty" toml:"salt_column"`
	TempColumn     string   `json:"temp_column,omitempty" toml:"temp_column"`
	ColorColumn    string   `json:"color_column,omitempty" toml:"color_column"`
	SizeColumn     string   `json:"size_column,omitempty" toml:"size_column"`
	LonColumn      string   `json:"lon_column,omitempty" toml:"lon_column"`
	LatColumn      string   `json:"lat_column,omitempty" toml:"lat_column"`
	PressureColumn string   `json:"pressure_column,omitempty" toml:"pressure_column"`
	Lon            *float64 `json:"lon,omitempty" toml:"lon"`
	Lat            *float64 `json:"lat,omitempty" toml:"lat"`
	Pressure       *float64 `json:"pressure,omitempty" toml:"pressure"`
	NoConvert      bool     `json:"no_convert,omitempty" toml:"no_convert"`
	Sigma          string   `json:"sigma,omitempty" toml:"sigma"`
	Grid           int      `json:"grid,omitempty" toml:"grid"`
	Interval       float64  `json:"interval,omitempty" toml:"interval"`
	NoContours     bool     `json:"no_contours,omitempty" toml:"no_contours"`
	NoColorbar     bool     `json:"no_colorbar,omitempty" toml:"no_colorbar"`
	NoLabels       bool     `json:"no_labels,omitempty" toml:"no_labels"`

	// Profile options
	DepthColumn string    `json:"depth_column,omitempty" toml:"depth_column"`
	ValueColumn string    `json:"value_column,omitempty" toml:"value_column"`
	StdColumn   string    `json:"std_column,omitempty" toml:"std_column"`
	CastColumn  string    `json:"cast_column,omitempty" toml:"cast_column"`
	Horizontal  bool      `json:"horizontal,omitempty" toml:"horizontal"`
	LogDepth    bool      `json:"log_depth,omitempty" toml:"log_depth"`
	LinThresh   float64   `json:"lin_thresh,omitempty" toml:"lin_thresh"`
	Ticks       []float64 `json:"ticks,omitempty" toml:"ticks"`

	// Box options
	Boxes            []BoxSpec `json:"boxes,omitempty" toml:"boxes"`
	XLim             []float64 `json:"xlim,omitempty" toml:"xlim"`
	YLim             []float64 `json:"ylim,omitempty" toml:"ylim"`
	NoSplitDetection bool      `json:"no_split_detection,omitempty" toml:"no_split_detection"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Kind Kind

	// InputHash is the content hash of kind, options and table.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills every unset option with its default.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{figure.FormatSVG}
	}
	if o.SaltColumn == "" {
		o.SaltColumn = DefaultSaltColumn
	}
	if o.TempColumn == "" {
		o.TempColumn = DefaultTempColumn
	}
	if o.DepthColumn == "" {
		o.DepthColumn = DefaultDepthColumn
	}
	if o.Sigma == "" {
		o.Sigma = DefaultSigma
	}
	if o.Grid == 0 {
		o.Grid = tsdiagram.DefaultGrid
	}
	if o.Interval == 0 {
		o.Interval = tsdiagram.DefaultInterval
	}
	if o.LinThresh == 0 {
		o.LinThresh = axes.DefaultLinThresh
	}
	if len(o.Ticks) == 0 {
		o.Ticks = slices.Clone(axes.DefaultDepthTicks)
	}
	if len(o.XLim) == 0 {
		o.XLim = slices.Clone(DefaultXLim)
	}
	if len(o.YLim) == 0 {
		o.YLim = slices.Clone(DefaultYLim)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Formats are normalized in place
// ("jpeg" becomes "jpg"). Column existence is checked when building.
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 || !finite(o.Width) || !finite(o.Height) {
		return errors.New(errors.ErrCodeInvalidInput, "figure size must be positive, got %g×%g cm", o.Width, o.Height)
	}
	if err := o.validateFormats(); err != nil {
		return err
	}
	switch axes.Which(o.Center) {
	case "", axes.X, axes.Y, axes.XY, axes.YX:
	default:
		return errors.New(errors.ErrCodeInvalidAxis, "center is not in (x, y, xy), found %q", o.Center)
	}
	if _, err := seawater.ParseSigma(o.Sigma); err != nil {
		return err
	}
	if o.Grid < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "grid must be at least 2, got %d", o.Grid)
	}
	if !(o.Interval > 0) || !finite(o.Interval) {
		return errors.New(errors.ErrCodeInvalidInput, "interval must be positive, got %g", o.Interval)
	}
	if !(o.LinThresh > 0) || !finite(o.LinThresh) {
		return errors.New(errors.ErrCodeInvalidInput, "lin_thresh must be positive, got %g", o.LinThresh)
	}
	for _, name := range []string{
		o.SaltColumn, o.TempColumn, o.DepthColumn,
	} {
		if err := errors.ValidateColumnName(name); err != nil {
			return err
		}
	}
	if _, err := limits("xlim", o.XLim); err != nil {
		return err
	}
	if _, err := limits("ylim", o.YLim); err != nil {
		return err
	}
	for i, b := range o.Boxes {
		for _, v := range [...]float64{b.Lon[0], b.Lon[1], b.Lat[0], b.Lat[1]} {
			if !finite(v) {
				return errors.New(errors.ErrCodeInvalidBox, "box %d (%s) has a non-finite corner", i+1, b.Name)
			}
		}
	}
	return nil
}

func (o *Options) validateFormats() error {
	seen := make(map[string]bool, len(o.Formats))
	out := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		norm, err := figure.ValidateFormat(f)
		if err != nil {
			return err
		}
		if !seen[norm] {
			seen[norm] = true
			out = append(out, norm)
		}
	}
	o.Formats = out
	return nil
}

// SigmaValue returns the parsed density reference.
func (o *Options) SigmaValue() seawater.Sigma {
	s, err := seawater.ParseSigma(o.Sigma)
	if err != nil {
		return seawater.Sigma0
	}
	return s
}

func limits(name string, v []float64) ([2]float64, error) {
	if len(v) != 2 {
		return [2]float64{}, errors.New(errors.ErrCodeInvalidInput, "%s needs 2 values, got %d", name, len(v))
	}
	lim := [2]float64{v[0], v[1]}
	return lim, errors.ValidateLimits(name, lim)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
