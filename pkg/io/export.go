package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// WriteJSON encodes t as indented JSON and writes it to w. NaN values are
// written as null. The output can be read back with [ReadJSON].
func WriteJSON(t *Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes t to a JSON file at path.
func ExportJSON(t *Table, path string) error {
	return export(path, func(w io.Writer) error { return WriteJSON(t, w) })
}

// WriteCSV writes t as CSV with a header row. NaN values are written as
// empty cells.
func WriteCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for row := 0; row < t.Len(); row++ {
		for i, c := range t.Columns {
			v := t.Data[c][row]
			if math.IsNaN(v) {
				rec[i] = ""
				continue
			}
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", row+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes t to a CSV file at path.
func ExportCSV(t *Table, path string) error {
	return export(path, func(w io.Writer) error { return WriteCSV(t, w) })
}

func export(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
