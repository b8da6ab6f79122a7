package pipeline

import (
	"context"
	"time"

	"github.com/askiada/go-seqlength/pkg/pipeline/model"
)

// Step is a node of the pipeline producing elements of type O.
type Step[O any] struct {
	Details   *model.StepInfo
	consumers []func(ctx context.Context, out O) error
}

func newStep[O any](info model.StepInfo, parents ...string) *Step[O] {
	details := info
	details.Parents = parents

	return &Step[O]{Details: &details}
}

func (s *Step[O]) subscribe(consumer func(ctx context.Context, out O) error) {
	s.consumers = append(s.consumers, consumer)
}

// emit pushes out to every consumer of the step, in subscription order.
func (s *Step[O]) emit(ctx context.Context, out O) error {
	if err := ctx.Err(); err != nil {
		return wrapStepError(s.Details.Name, err)
	}

	for _, consumer := range s.consumers {
		err := consumer(ctx, out)
		if err != nil {
			return err
		}
	}

	return nil
}

func addStep[I any, O any](p *Pipeline, name string, input *Step[I], process func(ctx context.Context, in I) ([]O, error)) (*Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := newStep[O](model.StepInfo{Type: model.NormalStepType, Name: name}, input.Details.Name)

	err := p.register(step.Details)
	if err != nil {
		return nil, err
	}

	err = p.eachOption(func(opt model.PipelineOption) error {
		return opt.PrepareStep(input.Details, step.Details)
	})
	if err != nil {
		return nil, err
	}

	input.subscribe(func(ctx context.Context, in I) error {
		start := time.Now()

		outs, err := process(ctx, in)
		if err != nil {
			return wrapStepError(name, err)
		}

		computation := time.Since(start)

		for _, out := range outs {
			err = step.emit(ctx, out)
			if err != nil {
				return err
			}
		}

		return p.eachOption(func(opt model.PipelineOption) error {
			return opt.OnStepOutput(input.Details, step.Details, time.Since(start), computation)
		})
	})

	return step, nil
}

// AddStepOneToOne adds a step producing exactly one element for each input element.
func AddStepOneToOne[I any, O any](p *Pipeline, name string, input *Step[I], oneToOneFn func(context.Context, I) (O, error)) (*Step[O], error) {
	return addStep(p, name, input, func(ctx context.Context, in I) ([]O, error) {
		out, err := oneToOneFn(ctx, in)
		if err != nil {
			return nil, err
		}

		return []O{out}, nil
	})
}
