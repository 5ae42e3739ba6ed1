package io

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

const castCSV = `depth, salt, temp
# surface sample first
0,35.1,18.2
100,35.0,
250,NaN,12.5
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(castCSV))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}

	if got := strings.Join(tbl.Columns, ","); got != "depth,salt,temp" {
		t.Errorf("Columns = %s", got)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tbl.Len())
	}

	depth, _ := tbl.Column("depth")
	if depth[2] != 250 {
		t.Errorf("depth[2] = %g, want 250", depth[2])
	}
	temp, _ := tbl.Column("temp")
	if !math.IsNaN(temp[1]) {
		t.Errorf("empty cell = %g, want NaN", temp[1])
	}
	salt, _ := tbl.Column("salt")
	if !math.IsNaN(salt[2]) {
		t.Errorf("NaN cell = %g, want NaN", salt[2])
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidInput},
		{"ragged", "a,b\n1,2\n3\n", errors.ErrCodeInvalidInput},
		{"not a number", "a,b\n1,x\n", errors.ErrCodeInvalidInput},
		{"duplicate header", "a,a\n1,2\n", errors.ErrCodeInvalidInput},
		{"blank header", "a,\n1,2\n", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadCSV error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestColumn(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Add("salt", []float64{35}); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if _, err := tbl.Column("oxygen"); !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("Column error = %v, want MISSING_COLUMN", err)
	}
	var nilTable *Table
	if _, err := nilTable.Column("salt"); !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("nil table Column error = %v, want MISSING_COLUMN", err)
	}
}

func TestAdd(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Add("salt", []float64{35, 34}); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	tests := []struct {
		name   string
		column string
		values []float64
	}{
		{"duplicate", "salt", []float64{1, 2}},
		{"length", "temp", []float64{1}},
		{"blank name", " ", []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tbl.Add(tt.column, tt.values); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Add error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tbl := NewTable()
	tbl.Add("temp", []float64{18.2, math.NaN()})
	tbl.Add("salt", []float64{35.1, 35})

	var buf bytes.Buffer
	if err := WriteJSON(tbl, &buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	if !strings.Contains(buf.String(), "null") {
		t.Errorf("NaN not written as null:\n%s", buf.String())
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if strings.Join(got.Columns, ",") != "salt,temp" {
		t.Errorf("Columns = %v, want sorted [salt temp]", got.Columns)
	}
	temp, _ := got.Column("temp")
	if temp[0] != 18.2 || !math.IsNaN(temp[1]) {
		t.Errorf("temp = %v", temp)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"columns":`, errors.ErrCodeInvalidInput},
		{"no columns", `{}`, errors.ErrCodeInvalidInput},
		{"ragged", `{"columns": {"a": [1, 2], "b": [1]}}`, errors.ErrCodeInvalidInput},
		{"string value", `{"columns": {"a": ["x"]}}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(castCSV))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(tbl, &buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	want := "depth,salt,temp\n0,35.1,18.2\n100,35,\n250,,12.5\n"
	if buf.String() != want {
		t.Errorf("WriteCSV =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "cast.CSV")
	if err := os.WriteFile(csvPath, []byte(castCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Import(csvPath)
	if err != nil {
		t.Fatalf("Import csv error: %v", err)
	}

	jsonPath := filepath.Join(dir, "cast.json")
	if err := ExportJSON(tbl, jsonPath); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	back, err := Import(jsonPath)
	if err != nil {
		t.Fatalf("Import json error: %v", err)
	}
	if back.Len() != 3 {
		t.Errorf("re-imported Len = %d, want 3", back.Len())
	}

	exported := filepath.Join(dir, "out.csv")
	if err := ExportCSV(back, exported); err != nil {
		t.Fatalf("ExportCSV error: %v", err)
	}
	if _, err := ImportCSV(exported); err != nil {
		t.Errorf("ImportCSV error: %v", err)
	}

	if _, err := Import(filepath.Join(dir, "cast.nc")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Import .nc error = %v, want INVALID_FORMAT", err)
	}
	if _, err := Import(filepath.Join(dir, "missing.csv")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import missing error = %v, want FILE_NOT_FOUND", err)
	}
}
