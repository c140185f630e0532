package correlation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

func EuclideanDistance(x []float64, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0.0, fmt.Errorf("euclidean distance needs arguments of the same length")
	}
	return floats.Distance(x, y, 2), nil
}

// PAADistance compares two PAA approximations of sequences that originally
// had originalLength samples. When originalLength is a multiple of the
// approximation length, the result never exceeds the euclidean distance of
// the original sequences.
func PAADistance(x []float64, y []float64, originalLength int) (float64, error) {
	if len(x) == 0 {
		return 0.0, fmt.Errorf("paa distance needs non-empty approximations")
	}
	if originalLength < len(x) {
		return 0.0, fmt.Errorf("original length %d is shorter than the approximation length %d",
			originalLength, len(x))
	}
	dist, err := EuclideanDistance(x, y)
	if err != nil {
		return 0.0, err
	}
	return math.Sqrt(float64(originalLength)/float64(len(x))) * dist, nil
}
