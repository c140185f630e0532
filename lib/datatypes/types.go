package datatypes

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Label is an optional class value attached to a sequence.
// The transform only ever copies it.
type Label struct {
	Value   float64
	Present bool
}

func NoLabel() Label {
	return Label{}
}

func NewLabel(value float64) Label {
	return Label{Value: value, Present: true}
}

// An absent label is encoded as json null.
func (l Label) MarshalJSON() ([]byte, error) {
	if !l.Present {
		return []byte("null"), nil
	}
	return json.Marshal(l.Value)
}

func (l *Label) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = NoLabel()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = NewLabel(v)
	return nil
}

// LabeledSequence is one sequence plus its optional label.
type LabeledSequence struct {
	Values []float64 `json:"values"`
	Label  Label     `json:"label"`
}

// Dimension is one named sequence of a multi-dimensional series.
type Dimension struct {
	Name   string    `json:"name,omitempty"`
	Values []float64 `json:"values"`
}

// MultivariateSeries is an ordered set of sequences sharing one label record.
// LabelIndex is -1 when the series is unlabeled; ClassLabels holds the
// possible class names and is never interpreted.
type MultivariateSeries struct {
	Dimensions  []Dimension `json:"dimensions"`
	LabelIndex  int         `json:"labelIndex"`
	ClassLabels []string    `json:"classLabels,omitempty"`
}

func NewMultivariateSeries(values [][]float64, labelIndex int, classLabels []string) *MultivariateSeries {
	dims := make([]Dimension, len(values))
	for i, v := range values {
		dims[i] = Dimension{Values: v}
	}
	return &MultivariateSeries{
		Dimensions:  dims,
		LabelIndex:  labelIndex,
		ClassLabels: classLabels,
	}
}

func (m *MultivariateSeries) NumDimensions() int {
	return len(m.Dimensions)
}

// Values returns the raw values per dimension. The inner slices are shared.
func (m *MultivariateSeries) Values() [][]float64 {
	ret := make([][]float64, len(m.Dimensions))
	for i, d := range m.Dimensions {
		ret[i] = d.Values
	}
	return ret
}

// WithDimensions returns a series with the given dimensions and a copy of
// m's label record.
func (m *MultivariateSeries) WithDimensions(dims []Dimension) *MultivariateSeries {
	return &MultivariateSeries{
		Dimensions:  dims,
		LabelIndex:  m.LabelIndex,
		ClassLabels: slices.Clone(m.ClassLabels),
	}
}

// UnmarshalJSON defaults LabelIndex to -1 when the field is missing.
func (m *MultivariateSeries) UnmarshalJSON(data []byte) error {
	ms := &struct {
		Dimensions  []Dimension `json:"dimensions"`
		LabelIndex  *int        `json:"labelIndex"`
		ClassLabels []string    `json:"classLabels"`
	}{}
	if err := json.Unmarshal(data, ms); err != nil {
		return err
	}
	m.Dimensions = ms.Dimensions
	m.ClassLabels = ms.ClassLabels
	m.LabelIndex = -1
	if ms.LabelIndex != nil {
		m.LabelIndex = *ms.LabelIndex
	}
	return nil
}
