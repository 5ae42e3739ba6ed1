// Package pkg provides the core libraries for oceanplot.
//
// # Overview
//
// oceanplot draws the everyday figures of physical oceanography on top of
// gonum/plot. The pkg directory is organized into three main areas:
//
//  1. Science - seawater properties ([seawater])
//  2. Plot helpers - figure building blocks ([axes], [box], [shaded], [tsdiagram])
//  3. Infrastructure - data files, rendering, caching and orchestration
//     ([io], [figure], [cache], [pipeline], [observability])
//
// # Architecture
//
// The typical data flow through oceanplot:
//
//	CSV/JSON table
//	     ↓
//	[io] package (columns of float64)
//	     ↓
//	[pipeline] package (options, defaults, figure building)
//	     ↓
//	[tsdiagram] / [shaded] / [box] / [axes] (plotters on a gonum plot)
//	     ↓
//	[figure] package (SVG/PNG/PDF/EPS/JPG/TIFF bytes)
//
// # Quick Start
//
// Draw a T-S diagram with σ0 contours:
//
//	import (
//	    "gonum.org/v1/plot"
//	    "github.com/matzehuels/oceanplot/pkg/figure"
//	    "github.com/matzehuels/oceanplot/pkg/tsdiagram"
//	)
//
//	p := plot.New()
//	d, _ := tsdiagram.TSDiagram(p, salt, temp, tsdiagram.Options{NoConvert: true})
//	data, _ := figure.Render(&figure.Figure{Main: p, Colorbar: d.Colorbar}, "svg",
//	    figure.DefaultWidth, figure.DefaultHeight)
//
// # Main Packages
//
// [seawater] - Practical/absolute salinity, potential/conservative
// temperature and potential density anomalies (σ0 to σ4).
//
// [tsdiagram] - Temperature-salinity scatter plots with labelled potential
// density contours and an optional colorbar.
//
// [shaded] - Lines with a shaded ±1 standard deviation band, horizontal or
// along a depth axis.
//
// [box] - Lon/lat box outlines, including boxes crossing the map edge.
//
// [axes] - Axis helpers: centering limits on zero and a symmetric-log
// depth scale.
//
// [io] - Column tables read from CSV and JSON files.
//
// [figure] - Renders a main plot and its colorbar to image bytes.
//
// [cache] - Artifact caches (file, Redis, null) keyed by input hash.
//
// [pipeline] - Complete figure pipeline (options → build → render → cache)
// used by the CLI and the HTTP API.
//
// [observability] - Hooks for build, render, cache and API events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/seawater/...   # Specific package
//	go test -run Example ./...   # Examples only
//
// [seawater]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/seawater
// [tsdiagram]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/tsdiagram
// [shaded]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/shaded
// [box]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/box
// [axes]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/axes
// [io]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/io
// [figure]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/figure
// [cache]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/oceanplot/pkg/observability
package pkg
