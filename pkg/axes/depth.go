package axes

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// DefaultLinThresh is the depth (m) below which the depth axis becomes logarithmic.
const DefaultLinThresh = 400.0

// DefaultDepthTicks are the depth ticks drawn by [DepthLogScale].
var DefaultDepthTicks = []float64{0, 100, 250, 500, 1000, 2500, 5000}

type depthConfig struct {
	linThresh float64
	ticks     []float64
}

// DepthOption configures [DepthLogScale].
type DepthOption func(*depthConfig)

// WithLinThresh sets the linear threshold. Values <= 0 are ignored.
func WithLinThresh(t float64) DepthOption {
	return func(c *depthConfig) {
		if t > 0 && !math.IsInf(t, 0) {
			c.linThresh = t
		}
	}
}

// WithTicks replaces the default depth ticks. An empty slice is ignored.
func WithTicks(ticks []float64) DepthOption {
	return func(c *depthConfig) {
		if len(ticks) > 0 {
			c.ticks = append([]float64(nil), ticks...)
		}
	}
}

// DepthLogScale sets a symmetric-log scale on the y axis, places labelled
// ticks at the configured depths and inverts the axis so depth increases
// downward.
func DepthLogScale(p *plot.Plot, opts ...DepthOption) {
	cfg := depthConfig{linThresh: DefaultLinThresh, ticks: DefaultDepthTicks}
	for _, opt := range opts {
		opt(&cfg)
	}

	p.Y.Scale = plot.InvertedScale{Normalizer: SymLogScale{LinThresh: cfg.linThresh}}
	p.Y.Tick.Marker = DepthTicks(cfg.ticks)
}

// DepthTicks returns constant ticks labelled with the decimal form of each value.
func DepthTicks(values []float64) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return ticks
}
