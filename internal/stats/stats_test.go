package stats_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-seqlength/internal/artifact"
	"github.com/askiada/go-seqlength/internal/failure"
	"github.com/askiada/go-seqlength/internal/stats"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		lengths []int
		expMin  string
		expMax  string
	}{
		"empty":  {lengths: nil, expMin: "N/A", expMax: "N/A"},
		"single": {lengths: []int{42}, expMin: "42", expMax: "42"},
		"many":   {lengths: []int{250, 200, 1000}, expMin: "200", expMax: "1000"},
		"zero":   {lengths: []int{0, 3}, expMin: "0", expMax: "3"},
	}

	for name, tc := range tcs {
		name, tc := name, tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := stats.Summarize(tc.lengths)
			assert.Equal(t, len(tc.lengths), s.Count)
			assert.Equal(t, tc.expMin, s.Min.String())
			assert.Equal(t, tc.expMax, s.Max.String())
		})
	}
}

func TestLengthGet(t *testing.T) {
	t.Parallel()

	_, ok := stats.Length{}.Get()
	assert.False(t, ok)

	v, ok := stats.Some(0).Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestReportWriteTo(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		unit  artifact.Unit
		above []int
		below []int
		exp   string
	}{
		"mixed": {
			unit:  artifact.Nucleotide,
			above: []int{250, 200, 1000},
			below: []int{150, 199},
			exp: "Total number of input Sequences = 5\n" +
				"Number of Sequences above 199 bp = 3, Min Length = 200, Max Length = 1000\n" +
				"Number of Sequences below 200 bp = 2, Min Length = 150, Max Length = 199\n",
		},
		"no records": {
			unit: artifact.Nucleotide,
			exp: "Total number of input Sequences = 0\n" +
				"Number of Sequences above 199 bp = 0, Min Length = N/A, Max Length = N/A\n" +
				"Number of Sequences below 200 bp = 0, Min Length = N/A, Max Length = N/A\n",
		},
		"protein below only": {
			unit:  artifact.AminoAcid,
			below: []int{50, 10},
			exp: "Total number of input Sequences = 2\n" +
				"Number of Sequences above 199 aa = 0, Min Length = N/A, Max Length = N/A\n" +
				"Number of Sequences below 200 aa = 2, Min Length = 10, Max Length = 50\n",
		},
	}

	for name, tc := range tcs {
		name, tc := name, tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder

			r := stats.NewReport(200, tc.unit, tc.above, tc.below)
			n, err := r.WriteTo(&sb)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, sb.String())
			assert.Equal(t, int64(len(tc.exp)), n)
		})
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous content that is longer than the report\n\n\n\n"), 0o600))

	r := stats.NewReport(10, artifact.Nucleotide, []int{10}, []int{9})
	require.NoError(t, stats.WriteFile(path, r))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Total number of input Sequences = 2\n"+
		"Number of Sequences above 9 bp = 1, Min Length = 10, Max Length = 10\n"+
		"Number of Sequences below 10 bp = 1, Min Length = 9, Max Length = 9\n", string(content))
}

func TestWriteFileUnwritable(t *testing.T) {
	t.Parallel()

	err := stats.WriteFile(filepath.Join(t.TempDir(), "missing", "stats.txt"), stats.Report{})
	assert.ErrorIs(t, err, failure.ErrOutputWriteFailure)
}
