package seawater

import "math"

const (
	// SSO is the standard ocean reference salinity in g/kg.
	SSO = 35.16504

	// UPS converts practical salinity to reference-composition absolute salinity.
	UPS = SSO / 35.0

	// CP0 is the TEOS-10 heat capacity used to define conservative temperature, J/(kg K).
	CP0 = 3991.86795711963

	// sfac is 1/(40·UPS), the salinity scale of the TEOS-10 polynomials.
	sfac = 0.0248826675584615
)

// SAFromSP returns absolute salinity (g/kg) from practical salinity sp at sea
// pressure p (dbar), longitude lon and latitude lat.
//
// The reference-composition approximation SA = SP·uPS is used, so p and lon
// only take part in validation. Non-finite input or |lat| > 90 returns NaN.
func SAFromSP(sp, p, lon, lat float64) float64 {
	if !finite(sp, p, lon, lat) || math.Abs(lat) > 90 {
		return math.NaN()
	}
	return math.Max(sp, 0) * UPS
}

// SPFromSA is the inverse of [SAFromSP].
func SPFromSA(sa, p, lon, lat float64) float64 {
	if !finite(sa, p, lon, lat) || math.Abs(lat) > 90 {
		return math.NaN()
	}
	return math.Max(sa, 0) / UPS
}

// CTFromPt returns conservative temperature (°C) from absolute salinity sa
// (g/kg) and potential temperature pt (°C) referenced to 0 dbar.
func CTFromPt(sa, pt float64) float64 {
	x2 := sfac * math.Max(sa, 0)
	x := math.Sqrt(x2)
	y := pt * 0.025

	potEnthalpy := 61.01362420681071 + y*(168776.46138048015+
		y*(-2735.2785605119625+y*(2574.2164453821433+
			y*(-1536.6644434977543+y*(545.7340497931629+
				(-50.91091728474331-18.30489878927802*y)*y))))) +
		x2*(268.5520265845071+y*(-12019.028203559312+
			y*(3734.858026725145+y*(-2046.7671145057618+
				y*(465.28655623826234+(-0.6370820302376359-
					10.650848542359153*y)*y))))+
			x*(937.2099110620707+y*(588.1802812170108+
				y*(248.39476522971285+(-3.871557904936333-
					2.6268019854268356*y)*y))+
				x*(-1687.914374187449+x*(246.9598888781377+
					x*(123.59576582457964-48.5891069025409*x))+
					y*(936.3206544460336+
						y*(-942.7827304544439+y*(369.4389437509002+
							(-33.83664947895248-9.987880382780322*y)*y))))))

	return potEnthalpy / CP0
}

// PtFromCT returns potential temperature (°C, 0 dbar reference) from absolute
// salinity and conservative temperature by Newton iteration on [CTFromPt].
func PtFromCT(sa, ct float64) float64 {
	if !finite(sa, ct) {
		return math.NaN()
	}
	const h = 1e-3
	pt := ct
	for i := 0; i < 6; i++ {
		f := CTFromPt(sa, pt) - ct
		if math.Abs(f) < 1e-12 {
			break
		}
		d := (CTFromPt(sa, pt+h) - CTFromPt(sa, pt-h)) / (2 * h)
		pt -= f / d
	}
	return pt
}

// SAFromSPSlice converts every sample of sp. p, lon and lat must either have
// the length of sp or a single element that is broadcast to every sample.
func SAFromSPSlice(sp, p, lon, lat []float64) ([]float64, error) {
	out := make([]float64, len(sp))
	for i := range sp {
		pi, err := broadcast("pressure", p, i, len(sp))
		if err != nil {
			return nil, err
		}
		loni, err := broadcast("lon", lon, i, len(sp))
		if err != nil {
			return nil, err
		}
		lati, err := broadcast("lat", lat, i, len(sp))
		if err != nil {
			return nil, err
		}
		out[i] = SAFromSP(sp[i], pi, loni, lati)
	}
	return out, nil
}

// CTFromPtSlice converts every (sa, pt) pair. The slices must have equal length.
func CTFromPtSlice(sa, pt []float64) ([]float64, error) {
	if len(sa) != len(pt) {
		return nil, lengthError("pt", len(pt), len(sa))
	}
	out := make([]float64, len(sa))
	for i := range sa {
		out[i] = CTFromPt(sa[i], pt[i])
	}
	return out, nil
}

func broadcast(name string, v []float64, i, n int) (float64, error) {
	switch len(v) {
	case 1:
		return v[0], nil
	case n:
		return v[i], nil
	default:
		return 0, lengthError(name, len(v), n)
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
