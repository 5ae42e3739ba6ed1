package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// Import reads a table from path, choosing the decoder by file extension:
// ".csv" or ".json". Other extensions return an INVALID_FORMAT error.
func Import(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ImportCSV(path)
	case ".json":
		return ImportJSON(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported data file %s (want .csv or .json)", filepath.Base(path))
	}
}

// ReadCSV decodes a CSV table from r. See the package documentation for
// the format.
//
// ReadCSV returns an error if:
//   - The header is missing, has a blank or duplicate column name
//   - A record has a different number of fields than the header
//   - A cell is neither a number nor a missing-value marker
//
// ReadCSV does not close r.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty CSV: no header")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV header")
	}

	t := NewTable()
	for i, h := range header {
		name := strings.TrimSpace(h)
		if err := t.Add(name, nil); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "header column %d", i+1)
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV")
		}
		line, _ := cr.FieldPos(0)
		for i, cell := range rec {
			v, err := parseCell(cell)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"line %d, column %q: %q is not a number", line, t.Columns[i], cell)
			}
			name := t.Columns[i]
			t.Data[name] = append(t.Data[name], v)
		}
	}
	return t, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "na":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// ImportCSV reads a CSV file at path. See [ReadCSV].
func ImportCSV(path string) (*Table, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadJSON decodes a JSON table from r and validates it. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ImportJSON reads a JSON file at path. See [ReadJSON].
func ImportJSON(path string) (*Table, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
