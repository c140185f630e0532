// Package settings contains all the parameters for the PAA transform and
// the services built around it.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
)

const (
	DEFAULT_NUM_INTERVALS = 8
	DEFAULT_WINDOW_SIZE   = 1020
)

// ErrInvalidSettings is returned by Validate. The paa package wraps it
// into its own configuration error.
var ErrInvalidSettings = errors.New("invalid settings")

type PAASettings struct {
	// The number of frames a sequence is reduced to (aka K).
	NumIntervals int `json:"numIntervals"`

	// Reject sequences shorter than NumIntervals instead of splitting
	// every sample across several frames.
	Strict bool `json:"strict"`

	// z-normalize a copy of every sequence before aggregating it.
	Normalize bool `json:"normalize"`

	// Upper bound on the number of dimensions or rows aggregated at once.
	Parallelism int `json:"parallelism"`

	// The number of samples kept per remote-write timeseries.
	WindowSize int `json:"windowSize"`

	// The maximum number of remote-write timeseries to track. 0 means no limit.
	MaxRows int `json:"maxRows"`
}

// ComputeSettingsFields fills in Parallelism and WindowSize. NumIntervals
// has no implicit default here: callers pick it explicitly.
func (s PAASettings) ComputeSettingsFields() PAASettings {
	if s.Parallelism == 0 {
		s.Parallelism = runtime.NumCPU()
	}
	if s.WindowSize == 0 {
		s.WindowSize = DEFAULT_WINDOW_SIZE
	}
	return s
}

func (s PAASettings) Validate() error {
	if s.NumIntervals < 1 {
		return fmt.Errorf("%w: number of intervals must be at least 1, got %d", ErrInvalidSettings, s.NumIntervals)
	}
	if s.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1, got %d", ErrInvalidSettings, s.Parallelism)
	}
	if s.WindowSize < 1 {
		return fmt.Errorf("%w: window size must be at least 1, got %d", ErrInvalidSettings, s.WindowSize)
	}
	if s.MaxRows < 0 {
		return fmt.Errorf("%w: maxRows cannot be negative, got %d", ErrInvalidSettings, s.MaxRows)
	}
	return nil
}

// LoadFile reads settings from a json file. Fields missing from the file
// keep the values they have in base, and a missing NumIntervals falls back
// to DEFAULT_NUM_INTERVALS when base does not set one either.
func LoadFile(path string, base PAASettings) (PAASettings, error) {
	if base.NumIntervals == 0 {
		base.NumIntervals = DEFAULT_NUM_INTERVALS
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("could not load settings from %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &base); err != nil {
		return base, fmt.Errorf("could not unmarshal settings from %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("numIntervals", base.NumIntervals).Msg("loaded settings")
	return base, nil
}
