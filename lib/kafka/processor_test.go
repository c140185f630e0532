package kafka

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kpaschen/tspaa/lib/datatypes"
	"github.com/kpaschen/tspaa/lib/paa"
	"github.com/kpaschen/tspaa/lib/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(t *testing.T) *Processor {
	tr, err := paa.NewTransformer(settings.PAASettings{NumIntervals: 2})
	require.NoError(t, err)
	return NewProcessor(tr)
}

func TestProcessSequence(t *testing.T) {
	p := newProcessor(t)
	out, err := p.ProcessBytes([]byte(`{"sequence":{"values":[5,6,7,8],"label":1}}`))
	require.NoError(t, err)

	var res ResultMessage
	require.NoError(t, json.Unmarshal(out, &res))
	assert.Equal(t, 2, res.NumIntervals)
	require.NotNil(t, res.Sequence)
	assert.Equal(t, []float64{5.5, 7.5}, res.Sequence.Values)
	assert.Equal(t, datatypes.NewLabel(1), res.Sequence.Label)
	assert.Nil(t, res.Series)
}

func TestProcessSeriesWithOverride(t *testing.T) {
	p := newProcessor(t)
	res, err := p.Process(&SequenceMessage{
		NumIntervals: 3,
		Series:       datatypes.NewMultivariateSeries([][]float64{{1, 2, 3, 4, 5, 6}, {1, 1, 1}}, 0, []string{"a"}),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.NumIntervals)
	assert.Equal(t, []float64{1.5, 3.5, 5.5}, res.Series.Dimensions[0].Values)
	assert.Equal(t, []float64{1, 1, 1}, res.Series.Dimensions[1].Values)
	assert.Equal(t, 0, res.Series.LabelIndex)

	// The processor's own transformer is untouched.
	assert.Equal(t, 2, p.transformer.NumIntervals())
}

func TestProcessWithoutOverrideUsesDefault(t *testing.T) {
	p := newProcessor(t)
	for _, k := range []int{0, -1} {
		res, err := p.Process(&SequenceMessage{
			NumIntervals: k,
			Sequence:     &datatypes.LabeledSequence{Values: []float64{1, 2, 3, 4}},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, res.NumIntervals)
		assert.Equal(t, []float64{1.5, 3.5}, res.Sequence.Values)
	}
}

func TestProcessRejectsBadMessages(t *testing.T) {
	p := newProcessor(t)

	_, err := p.Process(&SequenceMessage{})
	assert.True(t, errors.Is(err, paa.ErrInvalidInput))

	_, err = p.Process(&SequenceMessage{Sequence: &datatypes.LabeledSequence{}})
	assert.True(t, errors.Is(err, paa.ErrInvalidInput))

	_, err = p.ProcessBytes([]byte(`not json`))
	assert.Error(t, err)
}
