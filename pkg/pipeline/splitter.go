package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-seqlength/pkg/pipeline/model"
)

// SplitterFn decides whether an element goes to a branch of a splitter.
type SplitterFn[I any] func(input I) (bool, error)

// Splitter routes the elements of a step to branches.
type Splitter[I any] struct {
	mu            sync.Mutex
	currIdx       int
	mainStep      *model.StepInfo
	splittedSteps []*Step[I]
	branchNames   []string
	Total         int
}

// Get returns the next branch of the splitter, false once all branches were returned.
func (s *Splitter[I]) Get() (*Step[I], bool) {
	s.mu.Lock()
	defer func() {
		s.currIdx++
		s.mu.Unlock()
	}()

	if s.currIdx >= len(s.splittedSteps) {
		return nil, false
	}

	return s.splittedSteps[s.currIdx], true
}

// AddSplitterFn adds a splitter with one branch per function. Every element is sent, in order, to
// each branch whose function returns true, so an element can reach zero, one or several branches.
func AddSplitterFn[I any](p *Pipeline, name string, input *Step[I], fns []SplitterFn[I], opts ...SplitterOption[I]) (*Splitter[I], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	total := len(fns)
	if total == 0 {
		return nil, ErrSplitterTotal
	}

	splitter := &Splitter[I]{
		Total: total,
		mainStep: &model.StepInfo{
			Type:    model.SplitterStepType,
			Name:    name,
			Parents: []string{input.Details.Name},
		},
	}

	for _, opt := range opts {
		opt(splitter)
	}

	err := p.register(splitter.mainStep)
	if err != nil {
		return nil, err
	}

	err = p.eachOption(func(opt model.PipelineOption) error {
		return opt.PrepareSplitter(input.Details, splitter.mainStep)
	})
	if err != nil {
		return nil, err
	}

	splitter.splittedSteps = make([]*Step[I], total)

	for i := 0; i < total; i++ {
		branch := newStep[I](model.StepInfo{Type: model.SplitterStepType, Name: splitter.branchName(i)}, name)

		err = p.register(branch.Details)
		if err != nil {
			return nil, err
		}

		err = p.eachOption(func(opt model.PipelineOption) error {
			return opt.PrepareStep(splitter.mainStep, branch.Details)
		})
		if err != nil {
			return nil, err
		}

		splitter.splittedSteps[i] = branch
	}

	input.subscribe(func(ctx context.Context, in I) error {
		start := time.Now()

		var computation time.Duration

		for i, fn := range fns {
			startFn := time.Now()

			ok, err := fn(in)
			if err != nil {
				return wrapStepError(name, errors.Wrap(err, "unable to run splitter function"))
			}

			computation += time.Since(startFn)

			if !ok {
				continue
			}

			err = splitter.splittedSteps[i].emit(ctx, in)
			if err != nil {
				return err
			}
		}

		return p.eachOption(func(opt model.PipelineOption) error {
			return opt.OnSplitterOutput(input.Details, splitter.mainStep, time.Since(start), computation)
		})
	})

	return splitter, nil
}
