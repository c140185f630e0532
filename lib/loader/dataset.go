// Package loader reads datasets of sequences from files.
package loader

import (
	"fmt"

	"github.com/kpaschen/tspaa/lib/datatypes"
	"gonum.org/v1/gonum/mat"
)

type Dataset struct {
	Rows []datatypes.LabeledSequence
}

// Matrix returns the row values as a matrix. All rows must have the same length.
func (d *Dataset) Matrix() (*mat.Dense, error) {
	if len(d.Rows) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	columnCount := len(d.Rows[0].Values)
	if columnCount == 0 {
		return nil, fmt.Errorf("row 0 is empty")
	}
	data := make([]float64, 0, len(d.Rows)*columnCount)
	for i, r := range d.Rows {
		if len(r.Values) != columnCount {
			return nil, fmt.Errorf("inconsistent number of values in row %d: expected %d but got %d",
				i, columnCount, len(r.Values))
		}
		data = append(data, r.Values...)
	}
	return mat.NewDense(len(d.Rows), columnCount, data), nil
}

// Labels returns the label of every row.
func (d *Dataset) Labels() []datatypes.Label {
	ret := make([]datatypes.Label, len(d.Rows))
	for i, r := range d.Rows {
		ret[i] = r.Label
	}
	return ret
}
