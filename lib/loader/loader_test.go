package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kpaschen/tspaa/lib/datatypes"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	input := "1 2 3 4 0\n\n5,6,7,8,1\n0.5\t0.25\t0.125 1\n"
	d, err := ReadText(strings.NewReader(input), true)
	require.NoError(t, err)
	require.Len(t, d.Rows, 3)
	assert.Equal(t, []float64{1, 2, 3, 4}, d.Rows[0].Values)
	assert.Equal(t, datatypes.NewLabel(0), d.Rows[0].Label)
	assert.Equal(t, []float64{5, 6, 7, 8}, d.Rows[1].Values)
	assert.Equal(t, []float64{0.5, 0.25, 0.125}, d.Rows[2].Values)
	assert.Equal(t, []datatypes.Label{datatypes.NewLabel(0), datatypes.NewLabel(1), datatypes.NewLabel(1)}, d.Labels())

	d, err = ReadText(strings.NewReader("1 2 3\n"), false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, d.Rows[0].Values)
	assert.False(t, d.Rows[0].Label.Present)
}

func TestReadTextErrors(t *testing.T) {
	_, err := ReadText(strings.NewReader("1 2 x\n"), false)
	assert.Error(t, err)

	_, err = ReadText(strings.NewReader("1\n"), true)
	assert.Error(t, err)

	_, err = ReadTextFile(filepath.Join(t.TempDir(), "missing.txt"), false)
	assert.Error(t, err)
}

func TestMatrix(t *testing.T) {
	d, err := ReadText(strings.NewReader("1 2 3\n4 5 6\n"), false)
	require.NoError(t, err)
	m, err := d.Matrix()
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 6.0, m.At(1, 2))

	d, err = ReadText(strings.NewReader("1 2 3\n4 5\n"), false)
	require.NoError(t, err)
	_, err = d.Matrix()
	assert.Error(t, err)

	_, err = (&Dataset{}).Matrix()
	assert.Error(t, err)
}

func TestReadParquet(t *testing.T) {
	label := 2.0
	rows := []SequenceRow{
		{ID: 0, Label: &label, Values: []float64{1, 2, 3}},
		{ID: 1, Values: []float64{4, 5}},
	}
	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[SequenceRow](&buf)
	_, err := writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	d, err := ReadParquet(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, d.Rows, 2)
	assert.Equal(t, []float64{1, 2, 3}, d.Rows[0].Values)
	assert.Equal(t, datatypes.NewLabel(2), d.Rows[0].Label)
	assert.Equal(t, []float64{4, 5}, d.Rows[1].Values)
	assert.False(t, d.Rows[1].Label.Present)

	path := filepath.Join(t.TempDir(), "rows.pq")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0640))
	d, err = ReadParquetFile(path)
	require.NoError(t, err)
	assert.Len(t, d.Rows, 2)
}
