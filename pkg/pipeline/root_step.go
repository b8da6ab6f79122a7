package pipeline

import (
	"context"
	"time"

	"github.com/askiada/go-seqlength/pkg/pipeline/model"
)

// AddRootStep adds a step producing elements out of nothing. stepFn calls emit for every element;
// emit returns once the element went through the whole pipeline, or with the first error raised
// downstream. stepFn is expected to stop and return that error.
func AddRootStep[O any](p *Pipeline, name string, stepFn func(ctx context.Context, emit func(O) error) error) (*Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	step := newStep[O](model.StepInfo{Type: model.RootStepType, Name: name})

	err := p.register(step.Details)
	if err != nil {
		return nil, err
	}

	err = p.eachOption(func(opt model.PipelineOption) error {
		return opt.PrepareStep(model.StartStep, step.Details)
	})
	if err != nil {
		return nil, err
	}

	p.roots = append(p.roots, func(ctx context.Context) error {
		last := time.Now()
		err := stepFn(ctx, func(out O) error {
			computation := time.Since(last)
			start := time.Now()

			err := step.emit(ctx, out)
			if err != nil {
				return err
			}

			last = time.Now()

			return p.eachOption(func(opt model.PipelineOption) error {
				return opt.OnStepOutput(model.StartStep, step.Details, time.Since(start), computation)
			})
		})

		return wrapStepError(name, err)
	})

	return step, nil
}
