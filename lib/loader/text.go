package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kpaschen/tspaa/lib/datatypes"
	"github.com/rs/zerolog/log"
)

func isSeparator(r rune) bool {
	return r == ' ' || r == ',' || r == '\t'
}

// ReadText reads one sequence per line. Values are separated by spaces,
// tabs or commas. If labeled is set, the last value of a line is its label.
// Empty lines are skipped.
func ReadText(r io.Reader, labeled bool) (*Dataset, error) {
	ret := &Dataset{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	lineCount := 0
	for scanner.Scan() {
		lineCount++
		parts := strings.FieldsFunc(scanner.Text(), isSeparator)
		if len(parts) == 0 {
			continue
		}
		vec := make([]float64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("on line %d, failed to parse %s into a float: %w", lineCount, p, err)
			}
			vec[i] = v
		}
		row := datatypes.LabeledSequence{Values: vec, Label: datatypes.NoLabel()}
		if labeled {
			if len(vec) < 2 {
				return nil, fmt.Errorf("line %d has a label but no values", lineCount)
			}
			row.Values = vec[:len(vec)-1]
			row.Label = datatypes.NewLabel(vec[len(vec)-1])
		}
		ret.Rows = append(ret.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func ReadTextFile(filename string, labeled bool) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	d, err := ReadText(file, labeled)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	log.Info().Str("file", filename).Int("rows", len(d.Rows)).Msg("read text dataset")
	return d, nil
}
