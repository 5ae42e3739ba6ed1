// Package io reads and writes tabular cast data as CSV and JSON.
//
// # Overview
//
// A [Table] is a set of named, equal-length float64 columns: one row per
// sample, one column per variable (salinity, temperature, depth, ...).
// Missing values are NaN. Tables feed the T-S, profile and box figures and
// travel inside HTTP render requests.
//
// # CSV Format
//
// The first record is the header. Every other record holds one number per
// column:
//
//	depth,salt,temp,cast
//	0,35.1,18.2,1
//	100,35.0,,1
//	# comment lines are skipped
//
// Empty cells and "nan", "NaN" or "NA" read as NaN. Records with a
// different number of fields than the header are rejected.
//
// # JSON Format
//
// A single object maps column names to arrays of numbers; null stands for
// a missing value:
//
//	{
//	  "columns": {
//	    "salt": [35.1, 35.0],
//	    "temp": [18.2, null]
//	  }
//	}
//
// Column order is not preserved by JSON objects, so tables read from JSON
// list their columns sorted by name.
//
// # Import
//
// Use [Import] to read a file and pick the decoder by extension, or the
// format-specific [ImportCSV], [ImportJSON], [ReadCSV] and [ReadJSON]:
//
//	t, err := io.Import("cast.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	salt, err := t.Column("salt")
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the JSON format, [WriteCSV] and
// [ExportCSV] the CSV format. Both round-trip through the matching reader.
package io
