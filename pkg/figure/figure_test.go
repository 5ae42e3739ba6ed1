package figure

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

func testPlot(t *testing.T) *plot.Plot {
	t.Helper()
	p := plot.New()
	p.Title.Text = "cast"
	l, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 1}})
	if err != nil {
		t.Fatal(err)
	}
	p.Add(l)
	return p
}

func testColorbar() *plot.Plot {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(10)
	cb := plot.New()
	cb.HideX()
	cb.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	return cb
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"svg", "svg", false},
		{"PNG", "png", false},
		{" pdf ", "pdf", false},
		{"jpeg", "jpg", false},
		{"tif", "tiff", false},
		{"eps", "eps", false},
		{"gif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ValidateFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) error = %v, want INVALID_FORMAT", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ValidateFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestRenderFormats(t *testing.T) {
	magic := map[string][]byte{
		FormatPNG: []byte("\x89PNG"),
		FormatPDF: []byte("%PDF"),
		FormatEPS: []byte("%%!PS-Adobe"),
		FormatJPG: {0xff, 0xd8},
	}

	for _, format := range ValidFormats {
		t.Run(format, func(t *testing.T) {
			data, err := Render(&Figure{Main: testPlot(t)}, format, 8*vg.Centimeter, 6*vg.Centimeter)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if len(data) == 0 {
				t.Fatal("Render returned no data")
			}
			if format == FormatSVG && !bytes.Contains(data, []byte("<svg")) {
				t.Error("output is not SVG")
			}
			if m, ok := magic[format]; ok && !bytes.HasPrefix(data, m) {
				t.Errorf("%s output starts with %q", format, data[:min(len(data), 8)])
			}
		})
	}
}

func TestRenderWithColorbar(t *testing.T) {
	fig := &Figure{Main: testPlot(t), Colorbar: testColorbar()}
	data, err := Render(fig, FormatSVG, DefaultWidth, DefaultHeight, WithColorbarFraction(0.2))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("output is not SVG")
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		fig    *Figure
		format string
		w, h   vg.Length
		code   errors.Code
	}{
		{"nil figure", nil, FormatSVG, DefaultWidth, DefaultHeight, errors.ErrCodeInvalidInput},
		{"no main plot", &Figure{}, FormatSVG, DefaultWidth, DefaultHeight, errors.ErrCodeInvalidInput},
		{"bad format", &Figure{Main: plot.New()}, "gif", DefaultWidth, DefaultHeight, errors.ErrCodeInvalidFormat},
		{"zero size", &Figure{Main: plot.New()}, FormatSVG, 0, DefaultHeight, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.fig, tt.format, tt.w, tt.h)
			if !errors.Is(err, tt.code) {
				t.Errorf("Render error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cast.png")
	if err := Save(&Figure{Main: testPlot(t)}, path, DefaultWidth, DefaultHeight); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("Save wrote nothing: %v", err)
	}

	if err := Save(&Figure{Main: testPlot(t)}, filepath.Join(dir, "noext"), DefaultWidth, DefaultHeight); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Save without extension error = %v, want INVALID_FORMAT", err)
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType(FormatSVG); got != "image/svg+xml" {
		t.Errorf("ContentType(svg) = %q", got)
	}
	if got := ContentType("gif"); got != "" {
		t.Errorf("ContentType(gif) = %q, want empty", got)
	}
}
