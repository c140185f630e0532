package correlation

import (
	"testing"

	"github.com/kpaschen/tspaa/lib/paa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclideanDistance(t *testing.T) {
	_, err := EuclideanDistance([]float64{0.0, 0.1, 0.2}, []float64{0.0, 0.1})
	require.Error(t, err, "vectors of unequal length")

	dist, err := EuclideanDistance([]float64{0.0, 0.1, 0.2}, []float64{0.0, 0.1, 0.2})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, dist, 0.0001)

	dist, err = EuclideanDistance([]float64{0.5, 0.1, 0.2}, []float64{0.0, 0.1, 0.2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, dist, 0.0001)
}

func TestPAADistanceLowerBound(t *testing.T) {
	x := []float64{0.3, 1.2, -0.4, 2.5, 0.0, 1.1, 0.9, -1.3}
	y := []float64{1.0, 0.2, 0.4, 1.5, -0.7, 0.1, 1.9, 0.3}

	full, err := EuclideanDistance(x, y)
	require.NoError(t, err)

	for _, k := range []int{1, 2, 4, 8} {
		px, err := paa.Aggregate(x, k)
		require.NoError(t, err)
		py, err := paa.Aggregate(y, k)
		require.NoError(t, err)

		dist, err := PAADistance(px, py, len(x))
		require.NoError(t, err)
		assert.LessOrEqual(t, dist, full+1e-12, "k=%d", k)
	}

	// At full resolution the bound is tight.
	dist, err := PAADistance(x, y, len(x))
	require.NoError(t, err)
	assert.InDelta(t, full, dist, 1e-12)

	_, err = PAADistance(nil, nil, 3)
	assert.Error(t, err)
	_, err = PAADistance([]float64{1, 2}, []float64{1, 2}, 1)
	assert.Error(t, err)
}
