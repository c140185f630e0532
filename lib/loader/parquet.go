package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/kpaschen/tspaa/lib/datatypes"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog/log"
)

// SequenceRow is the parquet layout of a dataset row.
type SequenceRow struct {
	ID     int64     `parquet:"id"`
	Label  *float64  `parquet:"label,optional"`
	Values []float64 `parquet:"values,list"`
}

func (s SequenceRow) labeledSequence() datatypes.LabeledSequence {
	// The reader reuses row buffers between calls.
	ret := datatypes.LabeledSequence{Values: slices.Clone(s.Values), Label: datatypes.NoLabel()}
	if s.Label != nil {
		ret.Label = datatypes.NewLabel(*s.Label)
	}
	return ret
}

// ReadParquet reads all rows of a parquet file with the SequenceRow layout.
func ReadParquet(input io.ReaderAt) (*Dataset, error) {
	reader := parquet.NewGenericReader[SequenceRow](input)
	defer reader.Close()

	ret := &Dataset{}
	buf := make([]SequenceRow, 100)
	for done := false; !done; {
		numRead, err := reader.Read(buf)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}
			done = true
		}
		for _, row := range buf[:numRead] {
			ret.Rows = append(ret.Rows, row.labeledSequence())
		}
	}
	return ret, nil
}

func ReadParquetFile(filename string) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	d, err := ReadParquet(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	log.Info().Str("file", filename).Int("rows", len(d.Rows)).Msg("read parquet dataset")
	return d, nil
}
