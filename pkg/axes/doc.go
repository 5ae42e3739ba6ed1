// Package axes adjusts the axes of a gonum plot for oceanographic figures.
//
// [CenterLim] makes one or both axes symmetric around zero, which is what
// anomaly and velocity plots usually want:
//
//	axes.CenterLim(p, axes.Y)
//
// [DepthLogScale] turns the y axis into a symmetric-log depth axis: linear
// near the surface, logarithmic below a threshold, inverted so depth grows
// downward, with fixed depth ticks:
//
//	axes.DepthLogScale(p, axes.WithLinThresh(200))
//
// [SymLogScale] is the underlying [plot.Normalizer] and can be used on its own.
//
// [plot.Normalizer]: gonum.org/v1/plot.Normalizer
package axes
