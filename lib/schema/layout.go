// Package schema describes the attribute layout of PAA inputs and outputs
// so that callers can declare result shapes before running the transform.
package schema

import (
	"encoding/json"
	"fmt"
	"slices"
)

const (
	RELATION_PREFIX    = "PAA"
	INTERVAL_PREFIX    = "PAAInterval_"
	NO_CLASS_ATTRIBUTE = -1
)

// Attribute is one column of a layout. Values is the domain of a
// categorical attribute and nil for numeric ones.
type Attribute struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
}

func (a Attribute) IsCategorical() bool {
	return a.Values != nil
}

type Layout struct {
	Relation   string      `json:"relation"`
	Attributes []Attribute `json:"attributes"`
	// ClassIndex is the position of the class attribute, or -1.
	ClassIndex int `json:"classIndex"`
}

// UnmarshalJSON defaults ClassIndex to -1 when the field is missing.
func (l *Layout) UnmarshalJSON(data []byte) error {
	ls := &struct {
		Relation   string      `json:"relation"`
		Attributes []Attribute `json:"attributes"`
		ClassIndex *int        `json:"classIndex"`
	}{}
	if err := json.Unmarshal(data, ls); err != nil {
		return err
	}
	l.Relation = ls.Relation
	l.Attributes = ls.Attributes
	l.ClassIndex = NO_CLASS_ATTRIBUTE
	if ls.ClassIndex != nil {
		l.ClassIndex = *ls.ClassIndex
	}
	return nil
}

func (l Layout) ClassAttribute() (Attribute, bool) {
	if l.ClassIndex < 0 || l.ClassIndex >= len(l.Attributes) {
		return Attribute{}, false
	}
	return l.Attributes[l.ClassIndex], true
}

func IntervalName(i int) string {
	return fmt.Sprintf("%s%d", INTERVAL_PREFIX, i)
}

// OutputLayout returns the layout of the transform output for inputs laid out
// like in: numIntervals numeric attributes followed by a copy of the class
// attribute, if in has one.
func OutputLayout(in Layout, numIntervals int) (Layout, error) {
	if numIntervals < 1 {
		return Layout{}, fmt.Errorf("number of intervals must be at least 1, got %d", numIntervals)
	}
	if in.ClassIndex >= len(in.Attributes) {
		return Layout{}, fmt.Errorf("class index %d out of range for %d attributes",
			in.ClassIndex, len(in.Attributes))
	}

	attributes := make([]Attribute, 0, numIntervals+1)
	for i := 0; i < numIntervals; i++ {
		attributes = append(attributes, Attribute{Name: IntervalName(i)})
	}

	out := Layout{
		Relation:   RELATION_PREFIX + in.Relation,
		ClassIndex: NO_CLASS_ATTRIBUTE,
	}
	if class, ok := in.ClassAttribute(); ok {
		attributes = append(attributes, Attribute{Name: class.Name, Values: slices.Clone(class.Values)})
		out.ClassIndex = len(attributes) - 1
	}
	out.Attributes = attributes
	return out, nil
}
