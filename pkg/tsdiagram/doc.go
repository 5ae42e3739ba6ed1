// Package tsdiagram draws temperature-salinity diagrams.
//
// A T-S diagram is a scatter of water samples in salinity/temperature space
// overlaid with contours of potential density. [TSDiagram] converts
// practical salinity and potential temperature to TEOS-10 absolute salinity
// and conservative temperature, scatters the samples, optionally colored
// by a third variable, and calls [DrawDensityContours] to add the density
// contours.
//
//	p := plot.New()
//	d, err := tsdiagram.TSDiagram(p, salt, temp, tsdiagram.Options{
//		Lon:      []float64{-30},
//		Lat:      []float64{45},
//		Pressure: depth,
//		Values:   oxygen,
//	})
//
// The returned [Diagram] carries the colorbar as a separate plot; render it
// next to the main plot with the figure package.
package tsdiagram
