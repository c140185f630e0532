package lib

import (
	"math"
	"time"
)

type Observation struct {
	MetricFingerprint uint64
	MetricName        string
	Value             float64
	Timestamp         time.Time
}

type TsId struct {
	MetricFingerprint uint64
	MetricName        string
}

// AddObservation appends one sample to the window of its timeseries.
// It returns false when the sample was dropped, either because it is not
// newer than the last sample of its timeseries (or carries the zero time)
// or because the window already tracks MaxRows timeseries.
func (w *TimeseriesWindow) AddObservation(observation *Observation) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	rowid, ok := w.rowmap[observation.MetricFingerprint]
	last := time.Time{}
	if ok {
		last = w.lastTimestamps[rowid]
	}
	// Sometimes there is a double message for the same timestamp, just ignore it.
	if !observation.Timestamp.After(last) {
		return false
	}
	if !ok {
		if w.maxRows > 0 && len(w.Tsids) >= w.maxRows {
			return false
		}
		rowid = len(w.Tsids)
		w.rowmap[observation.MetricFingerprint] = rowid
		w.Tsids = append(w.Tsids,
			TsId{MetricName: observation.MetricName, MetricFingerprint: observation.MetricFingerprint})
		w.buffers = append(w.buffers, make([]float64, 0, w.windowSize))
		w.lastTimestamps = append(w.lastTimestamps, time.Time{})
	}
	w.lastTimestamps[rowid] = observation.Timestamp

	// Stale markers and gaps arrive as NaN. Infinite values cannot be
	// averaged or encoded, so they are treated the same way.
	value := observation.Value
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = float64(0)
	}

	buf := append(w.buffers[rowid], value)
	if len(buf) > w.windowSize {
		buf = buf[len(buf)-w.windowSize:]
	}
	w.buffers[rowid] = buf
	return true
}
