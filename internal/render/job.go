package render

import (
	"fmt"

	"github.com/askiada/go-seqlength/internal/artifact"
	"github.com/askiada/go-seqlength/internal/partition"
)

// Scale is the scale of the frequency axis.
type Scale int

const (
	Linear Scale = iota
	Log
)

func (s Scale) String() string {
	if s == Log {
		return "log"
	}

	return "linear"
}

// Job is one histogram to render.
type Job struct {
	Lengths []int
	Title   string
	Path    string
	Scale   Scale
}

// Jobs returns the four histograms of a run: linear above, linear below, log above, log below.
func Jobs(set artifact.Set, res partition.Result) []Job {
	above := fmt.Sprintf("Above %d %s", set.Cutoff-1, set.Unit)
	below := fmt.Sprintf("Below %d %s", set.Cutoff, set.Unit)

	return []Job{
		{Lengths: res.Above, Title: "Seq Length Distribution " + above, Path: set.AboveHistogram(), Scale: Linear},
		{Lengths: res.Below, Title: "Seq Length Distribution " + below, Path: set.BelowHistogram(), Scale: Linear},
		{Lengths: res.Above, Title: "Log-Scale Distribution " + above, Path: set.AboveLogHistogram(), Scale: Log},
		{Lengths: res.Below, Title: "Log-Scale Distribution " + below, Path: set.BelowLogHistogram(), Scale: Log},
	}
}
