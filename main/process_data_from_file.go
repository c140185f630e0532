package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kpaschen/tspaa/lib/datatypes"
	"github.com/kpaschen/tspaa/lib/loader"
	"github.com/kpaschen/tspaa/lib/paa"
	"github.com/kpaschen/tspaa/lib/settings"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func formatRow(seq datatypes.LabeledSequence) string {
	parts := make([]string, 0, len(seq.Values)+1)
	for _, v := range seq.Values {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	if seq.Label.Present {
		parts = append(parts, strconv.FormatFloat(seq.Label.Value, 'g', -1, 64))
	}
	return strings.Join(parts, " ")
}

// reduce transforms every row of d. Unlabeled datasets with rows of equal
// length go through the matrix path.
func reduce(t *paa.Transformer, d *loader.Dataset) ([]datatypes.LabeledSequence, error) {
	ret := make([]datatypes.LabeledSequence, len(d.Rows))
	labeled := false
	for _, r := range d.Rows {
		labeled = labeled || r.Label.Present
	}
	if !labeled {
		if m, err := d.Matrix(); err == nil {
			reduced, err := t.TransformDense(m)
			if err != nil {
				return nil, err
			}
			for i := range ret {
				ret[i] = datatypes.LabeledSequence{Values: reduced.RawRowView(i), Label: datatypes.NoLabel()}
			}
			return ret, nil
		}
	}
	for i, r := range d.Rows {
		out, err := t.TransformLabeled(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		ret[i] = out
	}
	return ret, nil
}

func writeRows(w io.Writer, rows []datatypes.LabeledSequence) error {
	writer := bufio.NewWriter(w)
	for _, r := range rows {
		if _, err := fmt.Fprintln(writer, formatRow(r)); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func main() {
	filename := flag.String("filename", "", "Name of the file to read")
	format := flag.String("format", "text", "Input format: text or parquet")
	labeled := flag.Bool("labelled", false, "Whether the last value on every line of a text file is a class label")
	numIntervals := flag.Int("intervals", settings.DEFAULT_NUM_INTERVALS, "How many columns to reduce every row to")
	normalize := flag.Bool("normalize", false, "z-normalize rows before reducing them")
	strict := flag.Bool("strict", false, "reject rows shorter than the number of intervals")
	logLevel := flag.String("logLevel", "warn", "log level")
	flag.Parse()

	if level, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	transformer, err := paa.NewTransformer(settings.PAASettings{
		NumIntervals: *numIntervals,
		Normalize:    *normalize,
		Strict:       *strict,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	var dataset *loader.Dataset
	switch *format {
	case "text":
		dataset, err = loader.ReadTextFile(*filename, *labeled)
	case "parquet":
		dataset, err = loader.ReadParquetFile(*filename)
	default:
		err = fmt.Errorf("unsupported format %s", *format)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dataset")
	}

	rows, err := reduce(transformer, dataset)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to reduce dataset")
	}
	if err := writeRows(os.Stdout, rows); err != nil {
		log.Fatal().Err(err).Msg("failed to write output")
	}
}
