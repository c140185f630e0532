package paa

import (
	"fmt"
	"slices"

	"github.com/kpaschen/tspaa/lib/datatypes"
	"github.com/kpaschen/tspaa/lib/settings"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// A Transformer applies PAA with a fixed configuration. It holds no state
// besides its settings, so one Transformer can be shared between goroutines.
// To change the number of intervals, build a new Transformer.
type Transformer struct {
	config settings.PAASettings
}

func NewTransformer(config settings.PAASettings) (*Transformer, error) {
	config = config.ComputeSettingsFields()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return &Transformer{config: config}, nil
}

func (t *Transformer) NumIntervals() int {
	return t.config.NumIntervals
}

func (t *Transformer) Settings() settings.PAASettings {
	return t.config
}

// Transform reduces seq to NumIntervals values. seq is not modified.
func (t *Transformer) Transform(seq []float64) ([]float64, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: cannot reduce an empty sequence", ErrInvalidInput)
	}
	if t.config.Strict && t.config.NumIntervals > len(seq) {
		return nil, fmt.Errorf("%w: number of intervals (%d) greater than series length (%d)",
			ErrInvalidInput, t.config.NumIntervals, len(seq))
	}
	if t.config.Normalize {
		seq = slices.Clone(seq)
		NormalizeSlice(seq)
	}
	return Aggregate(seq, t.config.NumIntervals)
}

// TransformLabeled reduces the values of in and copies its label unchanged.
func (t *Transformer) TransformLabeled(in datatypes.LabeledSequence) (datatypes.LabeledSequence, error) {
	values, err := t.Transform(in.Values)
	if err != nil {
		return datatypes.LabeledSequence{}, err
	}
	return datatypes.LabeledSequence{Values: values, Label: in.Label}, nil
}

// TransformInstance works on rows where the class value, if any, is stored
// as the last element. The class value is stripped before aggregation and
// appended again afterwards, so a labeled row yields NumIntervals+1 values.
func (t *Transformer) TransformInstance(row []float64, hasLabel bool) ([]float64, error) {
	data := row
	if hasLabel {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: labeled row needs at least one value besides the label, got %d elements",
				ErrInvalidInput, len(row))
		}
		data = row[:len(row)-1]
	}
	intervals, err := t.Transform(data)
	if err != nil {
		return nil, err
	}
	if hasLabel {
		intervals = append(intervals, row[len(row)-1])
	}
	return intervals, nil
}

// TransformMultivariate reduces every dimension of in independently. The
// output keeps dimension order and names as well as the label record.
// Dimensions may have different lengths.
func (t *Transformer) TransformMultivariate(in *datatypes.MultivariateSeries) (*datatypes.MultivariateSeries, error) {
	if in == nil || len(in.Dimensions) == 0 {
		return nil, fmt.Errorf("%w: series has no dimensions", ErrInvalidInput)
	}
	for i, d := range in.Dimensions {
		if len(d.Values) == 0 {
			return nil, fmt.Errorf("%w: dimension %d (%q) is empty", ErrInvalidInput, i, d.Name)
		}
	}

	out := make([]datatypes.Dimension, len(in.Dimensions))
	var g errgroup.Group
	g.SetLimit(t.config.Parallelism)
	for i, d := range in.Dimensions {
		i, d := i, d
		g.Go(func() error {
			values, err := t.Transform(d.Values)
			if err != nil {
				return fmt.Errorf("dimension %d (%q): %w", i, d.Name, err)
			}
			out[i] = datatypes.Dimension{Name: d.Name, Values: values}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug().Int("dimensions", len(out)).Int("numIntervals", t.config.NumIntervals).
		Msg("reduced multivariate series")
	return in.WithDimensions(out), nil
}
