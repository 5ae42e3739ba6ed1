// Package figure renders plots to image bytes.
//
// A [Figure] is a main plot with an optional colorbar plot drawn in a strip
// along its right edge. [Render] writes it in any of the [ValidFormats]
// using gonum's canvas backends, so no external converter is needed:
//
//	data, err := figure.Render(&figure.Figure{Main: p, Colorbar: cb},
//	    "png", figure.DefaultWidth, figure.DefaultHeight)
package figure

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatEPS  = "eps"
	FormatJPG  = "jpg"
	FormatTIFF = "tiff"
)

// ValidFormats lists the formats Render accepts.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatEPS, FormatJPG, FormatTIFF}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatEPS:  "application/postscript",
	FormatJPG:  "image/jpeg",
	FormatTIFF: "image/tiff",
}

// Default figure size.
const (
	DefaultWidth  = 16 * vg.Centimeter
	DefaultHeight = 12 * vg.Centimeter
)

// DefaultColorbarFraction is the share of the width given to the colorbar.
const DefaultColorbarFraction = 0.15

// Figure is a main plot and an optional colorbar beside it.
type Figure struct {
	Main     *plot.Plot
	Colorbar *plot.Plot
}

// ValidateFormat normalizes s ("JPEG" becomes "jpg", "tif" becomes "tiff")
// and checks it is one of [ValidFormats].
func ValidateFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	switch f {
	case "jpeg":
		f = FormatJPG
	case "tif":
		f = FormatTIFF
	}
	if _, ok := contentTypes[f]; !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: %s)", s, strings.Join(ValidFormats, ", "))
	}
	return f, nil
}

// ContentType returns the MIME type of a valid format.
func ContentType(format string) string {
	return contentTypes[format]
}

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	cbFrac float64
}

// WithColorbarFraction sets the share of the width used by the colorbar.
// Values outside (0, 0.5] are ignored.
func WithColorbarFraction(f float64) Option {
	return func(r *renderer) {
		if f > 0 && f <= 0.5 {
			r.cbFrac = f
		}
	}
}

// Render draws fig on a width×height canvas and returns the encoded bytes.
func Render(fig *Figure, format string, width, height vg.Length, opts ...Option) (data []byte, err error) {
	if fig == nil || fig.Main == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure has no plot")
	}
	format, err = ValidateFormat(format)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure size must be positive, got %v×%v", width, height)
	}

	r := renderer{cbFrac: DefaultColorbarFraction}
	for _, opt := range opts {
		opt(&r)
	}

	// gonum/plot panics on some inconsistent plots, e.g. a colormap
	// with an empty range.
	defer func() {
		if rec := recover(); rec != nil {
			data = nil
			err = errors.New(errors.ErrCodeInternal, "draw %s: %v", format, rec)
		}
	}()

	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "create %s canvas", format)
	}
	dc := draw.New(c)

	if fig.Colorbar == nil {
		fig.Main.Draw(dc)
	} else {
		cbw := width * vg.Length(r.cbFrac)
		fig.Main.Draw(draw.Crop(dc, 0, -cbw, 0, 0))
		fig.Colorbar.Draw(draw.Crop(dc, width-cbw, 0, 0, 0))
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", format)
	}
	return buf.Bytes(), nil
}

// Save renders fig to path, taking the format from the file extension.
func Save(fig *Figure, path string, width, height vg.Length, opts ...Option) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "%s has no extension to infer the format from", path)
	}
	data, err := Render(fig, format, width, height, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
