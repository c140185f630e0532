package kafka

import (
	"github.com/kpaschen/tspaa/lib/datatypes"
)

const (
	SEQUENCES_TOPIC = "paa_sequences"
	RESULTS_TOPIC   = "paa_results"
)

// SequenceMessage asks for the reduction of either a labeled sequence or a
// multi-dimensional series. NumIntervals overrides the worker's default
// when it is positive.
type SequenceMessage struct {
	NumIntervals int                           `json:"numIntervals,omitempty"`
	Sequence     *datatypes.LabeledSequence    `json:"sequence,omitempty"`
	Series       *datatypes.MultivariateSeries `json:"series,omitempty"`
}

type ResultMessage struct {
	NumIntervals int                           `json:"numIntervals"`
	Sequence     *datatypes.LabeledSequence    `json:"sequence,omitempty"`
	Series       *datatypes.MultivariateSeries `json:"series,omitempty"`
}
