// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package render writes simulation results as CSV tables and PNG plots.
//
package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/db47h/pllsim"
	"github.com/pkg/errors"
)

// Column is a named sequence.
//
type Column struct {
	Name string
	Data pllsim.Sequence
}

// WriteCSV writes the columns as a CSV table with a header row and a leading
// "step" column. All columns must have the same length.
//
func WriteCSV(w io.Writer, cols ...Column) error {
	if len(cols) == 0 {
		return errors.New("no columns")
	}
	n := len(cols[0].Data)
	for _, c := range cols {
		if len(c.Data) != n {
			return errors.Errorf("column %q: length %d, expected %d", c.Name, len(c.Data), n)
		}
	}

	cw := csv.NewWriter(w)
	row := make([]string, len(cols)+1)
	row[0] = "step"
	for i, c := range cols {
		row[i+1] = c.Name
	}
	if err := cw.Write(row); err != nil {
		return errors.Wrap(err, "write header")
	}
	for s := 0; s < n; s++ {
		row[0] = strconv.Itoa(s)
		for i, c := range cols {
			row[i+1] = strconv.FormatFloat(c.Data[s], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "write row %d", s)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush")
}

// LoopColumns returns the columns of an analog loop result.
//
func LoopColumns(r *pllsim.LoopResult) []Column {
	return []Column{{"pd", r.PD}, {"filter", r.Filter}, {"freq", r.Freq}}
}

// DelayColumns returns the columns of a delay line result.
//
func DelayColumns(r *pllsim.DelayResult) []Column {
	return []Column{{"input", r.Input}, {"delayed", r.Delayed}}
}

// CDRColumns returns the columns of a CDR result.
//
func CDRColumns(r *pllsim.CDRResult) []Column {
	return []Column{{"data", r.Data}, {"clock", r.Clock}, {"recovered", r.Recovered}}
}
