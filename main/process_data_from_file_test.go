package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kpaschen/tspaa/lib/loader"
	"github.com/kpaschen/tspaa/lib/paa"
	"github.com/kpaschen/tspaa/lib/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reduceText(t *testing.T, input string, labeled bool) string {
	tr, err := paa.NewTransformer(settings.PAASettings{NumIntervals: 2})
	require.NoError(t, err)
	d, err := loader.ReadText(strings.NewReader(input), labeled)
	require.NoError(t, err)
	rows, err := reduce(tr, d)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, writeRows(&out, rows))
	return out.String()
}

func TestReduceLabeledText(t *testing.T) {
	assert.Equal(t, "5.5 7.5 1\n1.5 3.5 0\n", reduceText(t, "5 6 7 8 1\n1 2 3 4 0\n", true))
}

func TestReduceUnlabeledText(t *testing.T) {
	// Equal row lengths take the matrix path, ragged rows the per-row path.
	assert.Equal(t, "1.5 3.5\n5.5 7.5\n", reduceText(t, "1 2 3 4\n5 6 7 8\n", false))
	assert.Equal(t, "1.5 3.5\n1 2\n", reduceText(t, "1 2 3 4\n1 2\n", false))
}

func TestReduceRejectsEmptyRows(t *testing.T) {
	tr, err := paa.NewTransformer(settings.PAASettings{NumIntervals: 2, Strict: true})
	require.NoError(t, err)
	d, err := loader.ReadText(strings.NewReader("1 2 3 4\n1\n"), false)
	require.NoError(t, err)
	_, err = reduce(tr, d)
	assert.Error(t, err)
}
