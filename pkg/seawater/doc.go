// Package seawater provides the seawater equation-of-state functions used by
// the T-S diagram helpers.
//
// # Salinity and Temperature Conversions
//
// [SAFromSP] and [CTFromPt] convert measured practical salinity and potential
// temperature into the TEOS-10 variables absolute salinity (g/kg) and
// conservative temperature (°C):
//
//	sa := seawater.SAFromSP(35.0, 100, -30, 45)
//	ct := seawater.CTFromPt(sa, 12.5)
//
// Absolute salinity uses the reference-composition approximation
// SA = SP·uPS. The regional absolute-salinity anomaly (the TEOS-10 atlas) is
// not applied, so results differ from a full TEOS-10 implementation by the
// anomaly, typically below 0.02 g/kg in the open ocean.
//
// Conservative temperature uses the TEOS-10 potential enthalpy polynomial and
// is accurate to the TEOS-10 reference implementation.
//
// # Density
//
// [Sigma] selects a reference pressure (σ0 at 0 dbar through σ4 at 4000 dbar).
// [Sigma.Anomaly] evaluates potential density minus 1000 kg/m³ for a water
// parcel given as (SA, CT). The parcel is brought to the reference pressure
// adiabatically and its density is evaluated with the EOS-80 international
// equation of state. The result agrees with TEOS-10 potential density to
// about 0.01 kg/m³, which is well below the contour interval of a T-S diagram.
//
// All pressures are sea pressures in dbar. Temperatures are ITS-90 unless a
// name says otherwise.
package seawater
