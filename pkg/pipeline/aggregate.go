package pipeline

import (
	"maps"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// Profile is a depth profile reduced to one sample per depth.
type Profile struct {
	Depth []float64
	Mean  []float64
	Std   []float64
	Count []int
}

// AggregateProfile groups value by depth and reduces every group to its
// mean and sample standard deviation. Samples where depth or value is not
// finite are skipped. Depths come out in ascending order; a depth with a
// single sample has a standard deviation of zero.
func AggregateProfile(depth, value []float64) (*Profile, error) {
	if err := errors.ValidateSameLength([]string{"depth", "value"}, []int{len(depth), len(value)}); err != nil {
		return nil, err
	}

	groups := make(map[float64][]float64)
	for i, d := range depth {
		if !finite(d) || !finite(value[i]) {
			continue
		}
		groups[d] = append(groups[d], value[i])
	}
	if len(groups) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "profile has no finite samples")
	}

	depths := slices.Sorted(maps.Keys(groups))
	p := &Profile{
		Depth: depths,
		Mean:  make([]float64, len(depths)),
		Std:   make([]float64, len(depths)),
		Count: make([]int, len(depths)),
	}
	for i, d := range depths {
		vals := groups[d]
		mean, std := stat.MeanStdDev(vals, nil)
		if len(vals) < 2 || math.IsNaN(std) {
			std = 0
		}
		p.Mean[i], p.Std[i], p.Count[i] = mean, std, len(vals)
	}
	return p, nil
}
