package seawater

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// Sigma selects the reference pressure of a potential density anomaly:
// Sigma0 is referenced to 0 dbar, Sigma4 to 4000 dbar.
type Sigma int

const (
	Sigma0 Sigma = iota
	Sigma1
	Sigma2
	Sigma3
	Sigma4
)

// ParseSigma parses "sigma0" through "sigma4".
func ParseSigma(s string) (Sigma, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for sg := Sigma0; sg <= Sigma4; sg++ {
		if name == sg.String() {
			return sg, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidSigma,
		"sigma function has to be one of sigma0...sigma4, got %q", s)
}

// String returns the canonical name, e.g. "sigma2".
func (s Sigma) String() string {
	return fmt.Sprintf("sigma%d", int(s))
}

// Valid reports whether s is one of Sigma0..Sigma4.
func (s Sigma) Valid() bool {
	return s >= Sigma0 && s <= Sigma4
}

// ReferencePressure returns the reference sea pressure in dbar.
func (s Sigma) ReferencePressure() float64 {
	return 1000 * float64(s)
}

// Symbol returns the Greek-letter label, e.g. "σ0".
func (s Sigma) Symbol() string {
	return fmt.Sprintf("σ%d", int(s))
}

// Anomaly returns potential density minus 1000 kg/m³ at the reference
// pressure for absolute salinity sa (g/kg) and conservative temperature ct (°C).
func (s Sigma) Anomaly(sa, ct float64) float64 {
	if !finite(sa, ct) {
		return math.NaN()
	}
	sp := sa / UPS
	pt := PtFromCT(sa, ct)
	pr := s.ReferencePressure()
	t := pt
	if pr != 0 {
		t = PotentialTemperature(sp, pt, 0, pr)
	}
	return Density(sp, t, pr) - 1000
}

func lengthError(name string, got, want int) error {
	return errors.New(errors.ErrCodeInvalidInput, "%s has %d values, want 1 or %d", name, got, want)
}
