package seawater

import "math"

// t68 converts ITS-90 temperatures to IPTS-68, the scale EOS-80 is fitted on.
const t68 = 1.00024

// Density returns in-situ density (kg/m³) from practical salinity sp,
// in-situ temperature t (ITS-90, °C) and sea pressure p (dbar) using the
// EOS-80 international equation of state.
func Density(sp, t, p float64) float64 {
	return density68(sp, t*t68, p/10)
}

// PotentialTemperature returns the temperature (ITS-90) a parcel with
// practical salinity sp and in-situ temperature t at pressure p would have if
// moved adiabatically to the reference pressure pr (dbar).
func PotentialTemperature(sp, t, p, pr float64) float64 {
	return ptmp68(sp, t*t68, p, pr) / t68
}

// density68 is the UNESCO 1981 equation of state; t in IPTS-68, pbar in bar.
func density68(s, t, pbar float64) float64 {
	s15 := s * math.Sqrt(s)

	rhow := 999.842594 + t*(6.793952e-2+t*(-9.095290e-3+t*(1.001685e-4+t*(-1.120083e-6+t*6.536332e-9))))
	a := 8.24493e-1 + t*(-4.0899e-3+t*(7.6438e-5+t*(-8.2467e-7+t*5.3875e-9)))
	b := -5.72466e-3 + t*(1.0227e-4-1.6546e-6*t)
	const c = 4.8314e-4
	rho0 := rhow + a*s + b*s15 + c*s*s
	if pbar == 0 {
		return rho0
	}

	kw := 19652.21 + t*(148.4206+t*(-2.327105+t*(1.360477e-2-5.155288e-5*t)))
	aw := 3.239908 + t*(1.43713e-3+t*(1.16092e-4-5.77905e-7*t))
	bw := 8.50935e-5 + t*(-6.12293e-6+5.2787e-8*t)

	k0 := kw + s*(54.6746+t*(-0.603459+t*(1.09987e-2-6.1670e-5*t))) +
		s15*(7.944e-2+t*(1.6483e-2-5.3009e-4*t))
	ak := aw + s*(2.2838e-3+t*(-1.0981e-5-1.6078e-6*t)) + 1.91075e-4*s15
	bk := bw + s*(-9.9348e-7+t*(2.0816e-8+9.1697e-10*t))
	k := k0 + ak*pbar + bk*pbar*pbar

	return rho0 / (1 - pbar/k)
}

// adtg68 is the Bryden (1973) adiabatic lapse rate in °C/dbar; t in IPTS-68, p in dbar.
func adtg68(s, t, p float64) float64 {
	ds := s - 35
	return (((-2.1687e-16*t+1.8676e-14)*t-4.6206e-13)*p+
		((2.7759e-12*t-1.1351e-10)*ds+((-5.4481e-14*t+8.733e-12)*t-6.7795e-10)*t+1.8741e-8))*p +
		(-4.2393e-8*t+1.8932e-6)*ds +
		((6.6228e-10*t-6.836e-8)*t+8.5258e-6)*t + 3.5803e-5
}

// ptmp68 integrates the lapse rate from p to pr with Fofonoff's fourth-order
// Runge-Kutta scheme. Temperatures are IPTS-68.
func ptmp68(s, t, p, pr float64) float64 {
	dp := pr - p
	dth := dp * adtg68(s, t, p)
	th := t + 0.5*dth
	q := dth

	dth = dp * adtg68(s, th, p+0.5*dp)
	th += (1 - 1/math.Sqrt2) * (dth - q)
	q = (2-math.Sqrt2)*dth + (-2+3/math.Sqrt2)*q

	dth = dp * adtg68(s, th, p+0.5*dp)
	th += (1 + 1/math.Sqrt2) * (dth - q)
	q = (2+math.Sqrt2)*dth + (-2-3/math.Sqrt2)*q

	dth = dp * adtg68(s, th, p+dp)
	return th + (dth-2*q)/6
}
