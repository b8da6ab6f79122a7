package model

type stepType string

const (
	RootStepType     stepType = "root"
	NormalStepType   stepType = "step"
	SplitterStepType stepType = "splitter"
	SinkStepType     stepType = "sink"
)

// StepInfo describes a step of the pipeline.
type StepInfo struct {
	Type stepType
	Name string
	// Parents lists the names of the steps feeding this one.
	Parents []string
}

var (
	StartStep = &StepInfo{Name: "start"}
	EndStep   = &StepInfo{Name: "end"}
)
