package paa

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// TransformDense reduces every row of m. The result has as many rows as m
// and NumIntervals columns.
func (t *Transformer) TransformDense(m *mat.Dense) (*mat.Dense, error) {
	if m == nil || m.IsEmpty() {
		return nil, fmt.Errorf("%w: cannot reduce an empty matrix", ErrInvalidInput)
	}
	rowCount, _ := m.Dims()
	result := mat.NewDense(rowCount, t.config.NumIntervals, nil)

	var g errgroup.Group
	g.SetLimit(t.config.Parallelism)
	for i := 0; i < rowCount; i++ {
		i := i
		g.Go(func() error {
			row, err := t.Transform(m.RawRowView(i))
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			// Rows are disjoint, so concurrent SetRow calls do not overlap.
			result.SetRow(i, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
