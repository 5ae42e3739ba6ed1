package seawater

import (
	"math"
	"testing"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDensityCheckValues(t *testing.T) {
	// UNESCO (1983) check values; temperatures IPTS-68, pressure in bar.
	tests := []struct {
		s, t, pbar float64
		want       float64
	}{
		{0, 5, 0, 999.96675},
		{35, 5, 0, 1027.67547},
		{0, 25, 0, 997.04796},
		{35, 25, 0, 1023.34306},
		{0, 5, 1000, 1044.12802},
		{35, 5, 1000, 1069.48914},
		{0, 25, 1000, 1037.90204},
		{35, 25, 1000, 1062.53817},
	}

	for _, tt := range tests {
		if got := density68(tt.s, tt.t, tt.pbar); !near(got, tt.want, 1e-4) {
			t.Errorf("density68(%g, %g, %g) = %.5f, want %.5f", tt.s, tt.t, tt.pbar, got, tt.want)
		}
	}
}

func TestAdiabaticLapseRateCheckValue(t *testing.T) {
	if got := adtg68(40, 40, 10000); !near(got, 3.255976e-4, 1e-10) {
		t.Errorf("adtg68(40, 40, 10000) = %g, want 3.255976e-4", got)
	}
}

func TestPotentialTemperatureCheckValue(t *testing.T) {
	if got := ptmp68(40, 40, 10000, 0); !near(got, 36.89073, 1e-5) {
		t.Errorf("ptmp68(40, 40, 10000, 0) = %.5f, want 36.89073", got)
	}
}

func TestPotentialTemperatureRoundTrip(t *testing.T) {
	theta := PotentialTemperature(35, 10, 0, 4000)
	if theta <= 10 {
		t.Errorf("compressing a parcel to 4000 dbar should warm it, got %g", theta)
	}
	back := PotentialTemperature(35, theta, 4000, 0)
	if !near(back, 10, 1e-4) {
		t.Errorf("round trip = %g, want 10", back)
	}
	if got := PotentialTemperature(35, 10, 500, 500); got != 10 {
		t.Errorf("same reference pressure should be the identity, got %g", got)
	}
}

func TestCTFromPt(t *testing.T) {
	// Conservative temperature is zero at the standard ocean reference state.
	if got := CTFromPt(SSO, 0); !near(got, 0, 1e-6) {
		t.Errorf("CTFromPt(SSO, 0) = %g, want 0", got)
	}
	if got := CTFromPt(35, 20); !near(got, 19.99802, 1e-4) {
		t.Errorf("CTFromPt(35, 20) = %.5f, want 19.99802", got)
	}
	if got := CTFromPt(SSO, 10); !near(got, 9.98981, 1e-4) {
		t.Errorf("CTFromPt(SSO, 10) = %.5f, want 9.98981", got)
	}
}

func TestPtFromCTInvertsCTFromPt(t *testing.T) {
	for _, sa := range []float64{0, 20, 34.5, 35.16504, 40} {
		for _, pt := range []float64{-2, 0, 4.5, 15, 30} {
			ct := CTFromPt(sa, pt)
			if got := PtFromCT(sa, ct); !near(got, pt, 1e-8) {
				t.Errorf("PtFromCT(%g, CTFromPt(%g, %g)) = %g", sa, sa, pt, got)
			}
		}
	}
	if !math.IsNaN(PtFromCT(math.NaN(), 1)) {
		t.Error("PtFromCT(NaN, 1) should be NaN")
	}
}

func TestSAFromSP(t *testing.T) {
	if got := SAFromSP(35, 0, 0, 0); !near(got, SSO, 1e-12) {
		t.Errorf("SAFromSP(35) = %g, want %g", got, SSO)
	}
	if got := SAFromSP(-1, 0, 0, 0); got != 0 {
		t.Errorf("negative salinity should clamp to 0, got %g", got)
	}
	if got := SPFromSA(SAFromSP(34.2, 10, 20, 30), 10, 20, 30); !near(got, 34.2, 1e-12) {
		t.Errorf("SPFromSA(SAFromSP(34.2)) = %g", got)
	}

	invalid := []struct {
		name            string
		sp, p, lon, lat float64
	}{
		{"latitude out of range", 35, 0, 0, 91},
		{"nan salinity", math.NaN(), 0, 0, 0},
		{"inf pressure", 35, math.Inf(1), 0, 0},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if got := SAFromSP(tt.sp, tt.p, tt.lon, tt.lat); !math.IsNaN(got) {
				t.Errorf("SAFromSP = %g, want NaN", got)
			}
		})
	}
}

func TestSAFromSPSliceBroadcast(t *testing.T) {
	sa, err := SAFromSPSlice([]float64{34, 35}, []float64{10}, []float64{-30}, []float64{45, 46})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sa) != 2 || !near(sa[1], SSO, 1e-12) {
		t.Errorf("SAFromSPSlice = %v", sa)
	}

	_, err = SAFromSPSlice([]float64{34, 35, 36}, []float64{1, 2}, []float64{0}, []float64{0})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("mismatched pressure length: got %v, want INVALID_INPUT", err)
	}
}

func TestCTFromPtSlice(t *testing.T) {
	ct, err := CTFromPtSlice([]float64{SSO, 35}, []float64{0, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !near(ct[0], 0, 1e-6) || !near(ct[1], 19.99802, 1e-4) {
		t.Errorf("CTFromPtSlice = %v", ct)
	}
	if _, err := CTFromPtSlice([]float64{1}, []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestParseSigma(t *testing.T) {
	tests := []struct {
		in      string
		want    Sigma
		wantErr bool
	}{
		{"sigma0", Sigma0, false},
		{"sigma4", Sigma4, false},
		{" Sigma2 ", Sigma2, false},
		{"sigma5", 0, true},
		{"sigma", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSigma(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidSigma) {
					t.Errorf("ParseSigma(%q) error = %v, want INVALID_SIGMA", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseSigma(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestSigmaProperties(t *testing.T) {
	if Sigma3.ReferencePressure() != 3000 {
		t.Errorf("Sigma3.ReferencePressure() = %g", Sigma3.ReferencePressure())
	}
	if Sigma1.String() != "sigma1" || Sigma1.Symbol() != "σ1" {
		t.Errorf("Sigma1 names = %q, %q", Sigma1.String(), Sigma1.Symbol())
	}
	if Sigma(7).Valid() || !Sigma4.Valid() {
		t.Error("Valid() mismatch")
	}
}

func TestSigmaAnomaly(t *testing.T) {
	tests := []struct {
		sigma  Sigma
		sa, ct float64
		want   float64
	}{
		{Sigma0, SSO, 0, 28.1063},
		{Sigma0, 35, 10, 26.8225},
		{Sigma2, 35, 10, 35.6351},
		{Sigma4, 34.5, 2, 45.4461},
	}

	for _, tt := range tests {
		if got := tt.sigma.Anomaly(tt.sa, tt.ct); !near(got, tt.want, 1e-3) {
			t.Errorf("%s.Anomaly(%g, %g) = %.4f, want %.4f", tt.sigma, tt.sa, tt.ct, got, tt.want)
		}
	}

	// Density increases with salinity and decreases with temperature.
	if Sigma0.Anomaly(35, 10) <= Sigma0.Anomaly(34, 10) {
		t.Error("sigma0 should increase with salinity")
	}
	if Sigma0.Anomaly(35, 5) <= Sigma0.Anomaly(35, 15) {
		t.Error("sigma0 should decrease with temperature")
	}
	if !math.IsNaN(Sigma0.Anomaly(math.NaN(), 1)) {
		t.Error("NaN input should give NaN")
	}
}
