package paa

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidConfiguration = errors.New("invalid PAA configuration")
	ErrInvalidInput         = errors.New("invalid PAA input")
)

// frameEpsilon is the relative tolerance used to decide that a frame is full.
const frameEpsilon = 1e-9

func mean(slice []float64) float64 {
	return floats.Sum(slice) / float64(len(slice))
}

// NormalizeSlice centers slice on its mean and scales it by the root of the
// sum of squared deviations, in place. A constant slice is set to all
// zeroes and NormalizeSlice returns true for it.
func NormalizeSlice(slice []float64) bool {
	length := len(slice)
	if length == 0 {
		return true
	}
	avg := mean(slice)
	var sumOfSquares float64

	for i := 0; i < length; i++ {
		diff := slice[i] - avg
		sumOfSquares += diff * diff
	}
	normalizingFactor := math.Sqrt(sumOfSquares)
	if normalizingFactor == 0.0 {
		for i := 0; i < length; i++ {
			slice[i] = 0.0
		}
		return true
	}
	for i := 0; i < length; i++ {
		slice[i] = (slice[i] - avg) / normalizingFactor
	}
	return false
}

func frameFull(size, frameLength float64) bool {
	return size == frameLength || math.Abs(frameLength-size) <= frameEpsilon*frameLength
}

// Aggregate reduces data to numIntervals values. The sequence is cut into
// numIntervals frames of len(data)/numIntervals samples each and every
// frame is replaced by its mean. The frame length need not be integral:
// a sample on a frame boundary contributes to both neighbouring frames in
// proportion to how much of it falls into each.
func Aggregate(data []float64, numIntervals int) ([]float64, error) {
	if numIntervals < 1 {
		return nil, fmt.Errorf("%w: number of intervals must be at least 1, got %d",
			ErrInvalidConfiguration, numIntervals)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: cannot reduce an empty sequence", ErrInvalidInput)
	}

	intervals := make([]float64, numIntervals)
	frameLength := float64(len(data)) / float64(numIntervals)

	currentFrame := 0
	frameSum, currentFrameSize := 0.0, 0.0

	for _, v := range data {
		remaining := frameLength - currentFrameSize
		wholePoint := remaining > 1.0

		if wholePoint {
			frameSum += v
			currentFrameSize += 1
		} else {
			frameSum += remaining * v
			currentFrameSize += remaining
		}

		if !frameFull(currentFrameSize, frameLength) || currentFrame >= numIntervals {
			continue
		}
		intervals[currentFrame] = frameSum / frameLength
		currentFrame++

		// Carry the unused share of v over into the next frame.
		leftover := 0.0
		if !wholePoint {
			leftover = 1 - remaining
		}
		// Frames narrower than one sample: v alone can fill several of them.
		for leftover > 0 && frameFull(math.Min(leftover, frameLength), frameLength) &&
			currentFrame < numIntervals {
			intervals[currentFrame] = v
			currentFrame++
			leftover -= frameLength
		}
		if leftover < 0 {
			leftover = 0
		}
		frameSum = leftover * v
		currentFrameSize = leftover
	}

	// Rounding can leave the last frame just short of frameLength.
	if currentFrame == numIntervals-1 {
		intervals[currentFrame] = frameSum / frameLength
	}

	return intervals, nil
}

// ConvertInstance reduces data to numIntervals values with the default,
// permissive settings.
func ConvertInstance(data []float64, numIntervals int) ([]float64, error) {
	return Aggregate(data, numIntervals)
}
