package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

const boxConfig = `
title = "Equatorial Pacific"
formats = ["svg", "png"]
xlim = [120, 300]
ylim = [-30, 30]

[[boxes]]
name = "Niño 3.4"
lon = [190, 240]
lat = [-5, 5]

[[boxes]]
name = "Niño 4"
lon = [160, 210]
lat = [-5, 5]
`

func TestDecodeConfig(t *testing.T) {
	o, err := DecodeConfig(strings.NewReader(boxConfig))
	if err != nil {
		t.Fatalf("DecodeConfig() error: %v", err)
	}
	if o.Title != "Equatorial Pacific" || len(o.Formats) != 2 {
		t.Errorf("common options = %q %v", o.Title, o.Formats)
	}
	if len(o.Boxes) != 2 || o.Boxes[1].Name != "Niño 4" || o.Boxes[0].Lon != [2]float64{190, 240} {
		t.Errorf("boxes = %+v", o.Boxes)
	}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Errorf("decoded options do not validate: %v", err)
	}
}

func TestDecodeConfigProfile(t *testing.T) {
	o, err := DecodeConfig(strings.NewReader(`
value_column = "temp"
log_depth = true
lin_thresh = 200
ticks = [0, 200, 1000]
lon = -30.5
`))
	if err != nil {
		t.Fatalf("DecodeConfig() error: %v", err)
	}
	if !o.LogDepth || o.LinThresh != 200 || len(o.Ticks) != 3 {
		t.Errorf("profile options = %+v", o)
	}
	if o.Lon == nil || *o.Lon != -30.5 {
		t.Errorf("Lon = %v, want -30.5", o.Lon)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", `title = `},
		{"unknown key", `titel = "typo"`},
		{"wrong type", `width = "wide"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeConfig(strings.NewReader(tt.in)); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("DecodeConfig() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxes.toml")
	if err := os.WriteFile(path, []byte(boxConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Errorf("LoadConfig() error: %v", err)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
