// Package stats summarises the lengths of each partition and writes the statistics report.
package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/askiada/go-seqlength/internal/artifact"
	"github.com/askiada/go-seqlength/internal/failure"
)

// NotAvailable is printed in place of the min or max of an empty partition.
const NotAvailable = "N/A"

// Length is a length that may be absent.
type Length struct {
	value int
	valid bool
}

// Some returns a present length.
func Some(v int) Length {
	return Length{value: v, valid: true}
}

// Get returns the length and whether it is present.
func (l Length) Get() (int, bool) {
	return l.value, l.valid
}

func (l Length) String() string {
	if !l.valid {
		return NotAvailable
	}

	return strconv.Itoa(l.value)
}

// Summary describes one partition.
type Summary struct {
	Count int
	Min   Length
	Max   Length
}

// Summarize computes the summary of lengths. Min and Max are absent when lengths is empty.
func Summarize(lengths []int) Summary {
	s := Summary{Count: len(lengths)}
	if len(lengths) == 0 {
		return s
	}

	lo, hi := lengths[0], lengths[0]
	for _, l := range lengths[1:] {
		lo = min(lo, l)
		hi = max(hi, l)
	}

	s.Min, s.Max = Some(lo), Some(hi)

	return s
}

// Report is the statistics report of a run.
type Report struct {
	Cutoff int
	Unit   artifact.Unit
	Above  Summary
	Below  Summary
}

// NewReport summarises both partitions.
func NewReport(cutoff int, unit artifact.Unit, above, below []int) Report {
	return Report{
		Cutoff: cutoff,
		Unit:   unit,
		Above:  Summarize(above),
		Below:  Summarize(below),
	}
}

// Total is the number of records of both partitions.
func (r Report) Total() int {
	return r.Above.Count + r.Below.Count
}

// WriteTo writes the three lines of the report to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"Total number of input Sequences = %d\n"+
			"Number of Sequences above %d %s = %d, Min Length = %s, Max Length = %s\n"+
			"Number of Sequences below %d %s = %d, Min Length = %s, Max Length = %s\n",
		r.Total(),
		r.Cutoff-1, r.Unit, r.Above.Count, r.Above.Min, r.Above.Max,
		r.Cutoff, r.Unit, r.Below.Count, r.Below.Min, r.Below.Max,
	)

	return int64(n), err
}

// WriteFile writes the report to path, replacing any existing file.
func WriteFile(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return failure.Wrapf(failure.ErrOutputWriteFailure, err, "create %s", path)
	}

	_, err = r.WriteTo(f)
	if err != nil {
		_ = f.Close()

		return failure.Wrapf(failure.ErrOutputWriteFailure, err, "write %s", path)
	}

	err = f.Close()
	if err != nil {
		return failure.Wrapf(failure.ErrOutputWriteFailure, err, "close %s", path)
	}

	return nil
}
