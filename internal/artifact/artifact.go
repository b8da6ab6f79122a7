// Package artifact names the files written by a run.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/askiada/go-seqlength/internal/failure"
)

// Unit labels sequence lengths. It only affects names and titles.
type Unit string

const (
	Nucleotide Unit = "bp"
	AminoAcid  Unit = "aa"
)

// Set derives every output path of a run from the output directory, the cutoff and the unit.
type Set struct {
	Dir    string
	Cutoff int
	Unit   Unit
}

// New returns the artifact set of a run.
func New(dir string, cutoff int, unit Unit) Set {
	return Set{Dir: dir, Cutoff: cutoff, Unit: unit}
}

// DefaultDir returns the output directory used when none is configured: a sibling of the input
// named after its stem, e.g. "data/seq_length_reads" for "data/reads.fasta".
func DefaultDir(input string) string {
	base := filepath.Base(input)
	for _, ext := range []string{".gz", ".xz", ".zst", ".bz2"} {
		base = strings.TrimSuffix(base, ext)
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(filepath.Dir(input), "seq_length_"+stem)
}

// AboveLabel is the label of the above partition, e.g. "199bp" for a cutoff of 200.
func (s Set) AboveLabel() string {
	return fmt.Sprintf("%d%s", s.Cutoff-1, s.Unit)
}

// BelowLabel is the label of the below partition, e.g. "200bp" for a cutoff of 200.
func (s Set) BelowLabel() string {
	return fmt.Sprintf("%d%s", s.Cutoff, s.Unit)
}

func (s Set) path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s Set) AboveFASTA() string {
	return s.path("seq_above" + s.AboveLabel() + ".fasta")
}

func (s Set) BelowFASTA() string {
	return s.path("seq_below" + s.BelowLabel() + ".fasta")
}

func (s Set) AboveHistogram() string {
	return s.path("seq_length_distribution_above" + s.AboveLabel() + ".png")
}

func (s Set) BelowHistogram() string {
	return s.path("seq_length_distribution_below" + s.BelowLabel() + ".png")
}

func (s Set) AboveLogHistogram() string {
	return s.path("seq_length_distribution_above" + s.AboveLabel() + "_log.png")
}

func (s Set) BelowLogHistogram() string {
	return s.path("seq_length_distribution_below" + s.BelowLabel() + "_log.png")
}

func (s Set) StatsReport() string {
	return s.path(fmt.Sprintf("seq_length_stats_by_cutoff_%d%s.txt", s.Cutoff, s.Unit))
}

// All returns every path of the set, FASTA files first.
func (s Set) All() []string {
	return []string{
		s.AboveFASTA(),
		s.BelowFASTA(),
		s.AboveHistogram(),
		s.BelowHistogram(),
		s.AboveLogHistogram(),
		s.BelowLogHistogram(),
		s.StatsReport(),
	}
}

// Prepare creates the output directory.
func (s Set) Prepare() error {
	err := os.MkdirAll(s.Dir, 0o755)
	if err != nil {
		return failure.Wrapf(failure.ErrOutputWriteFailure, err, "create output directory %s", s.Dir)
	}

	return nil
}
