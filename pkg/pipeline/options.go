package pipeline

import "fmt"

type SplitterOption[I any] func(s *Splitter[I])

// SplitterBranchNames names the branches of a splitter, in the order of its functions.
// Missing names default to "<splitter name>/<index>".
func SplitterBranchNames[I any](names ...string) SplitterOption[I] {
	return func(s *Splitter[I]) {
		s.branchNames = names
	}
}

func (s *Splitter[I]) branchName(idx int) string {
	if idx < len(s.branchNames) && s.branchNames[idx] != "" {
		return s.branchNames[idx]
	}

	return fmt.Sprintf("%s/%d", s.mainStep.Name, idx)
}
