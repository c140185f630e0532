package lib

import (
	"slices"
	"sync"
	"time"

	"github.com/kpaschen/tspaa/lib/datatypes"
	"github.com/kpaschen/tspaa/lib/paa"
	"github.com/kpaschen/tspaa/lib/settings"
	"github.com/rs/zerolog/log"
)

// A TimeseriesWindow keeps the most recent samples of a set of timeseries.
// Every row corresponds to a timeseries and holds at most windowSize values.
type TimeseriesWindow struct {
	mu sync.Mutex

	// rowmap maps the timeseries fingerprints to row ids
	rowmap map[uint64]int

	// The ids of the timeseries, in order.
	// invariant: rowmap[Tsids[i].MetricFingerprint] == i
	Tsids []TsId

	buffers        [][]float64
	lastTimestamps []time.Time

	windowSize int
	maxRows    int
}

func NewTimeseriesWindow(config settings.PAASettings) *TimeseriesWindow {
	config = config.ComputeSettingsFields()
	return &TimeseriesWindow{
		rowmap:     make(map[uint64]int),
		Tsids:      make([]TsId, 0),
		windowSize: config.WindowSize,
		maxRows:    config.MaxRows,
	}
}

func (w *TimeseriesWindow) RowCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Tsids)
}

// ReducedWindow is the PAA of every row of a window. Series.Dimensions[i]
// belongs to Tsids[i] and is named after its metric.
type ReducedWindow struct {
	Tsids  []TsId                        `json:"tsids"`
	Series *datatypes.MultivariateSeries `json:"series"`
}

// Reduce applies t to a copy of every row. The window is only locked while
// the copy is taken.
func (w *TimeseriesWindow) Reduce(t *paa.Transformer) (*ReducedWindow, error) {
	w.mu.Lock()
	tsids := slices.Clone(w.Tsids)
	dims := make([]datatypes.Dimension, len(w.buffers))
	for i, b := range w.buffers {
		dims[i] = datatypes.Dimension{Name: w.Tsids[i].MetricName, Values: slices.Clone(b)}
	}
	w.mu.Unlock()

	if len(dims) == 0 {
		return &ReducedWindow{
			Tsids:  tsids,
			Series: &datatypes.MultivariateSeries{Dimensions: dims, LabelIndex: -1},
		}, nil
	}

	reduced, err := t.TransformMultivariate(&datatypes.MultivariateSeries{Dimensions: dims, LabelIndex: -1})
	if err != nil {
		return nil, err
	}
	log.Info().Int("rows", len(tsids)).Int("numIntervals", t.NumIntervals()).Msg("reduced timeseries window")
	return &ReducedWindow{Tsids: tsids, Series: reduced}, nil
}
