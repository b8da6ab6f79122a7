package pipeline

import (
	"context"
	"time"

	"github.com/askiada/go-seqlength/pkg/pipeline/model"
)

// AddSink adds a step consuming the elements of input.
func AddSink[I any](pipe *Pipeline, name string, input *Step[I], sinkFn func(ctx context.Context, input I) error) error {
	if pipe == nil {
		return ErrPipelineMustBeSet
	}

	if input == nil {
		return ErrInputMustBeSet
	}

	details := &model.StepInfo{
		Type:    model.SinkStepType,
		Name:    name,
		Parents: []string{input.Details.Name},
	}

	err := pipe.register(details)
	if err != nil {
		return err
	}

	err = pipe.eachOption(func(opt model.PipelineOption) error {
		return opt.PrepareSink(input.Details, details)
	})
	if err != nil {
		return err
	}

	input.subscribe(func(ctx context.Context, in I) error {
		start := time.Now()

		err := sinkFn(ctx, in)
		if err != nil {
			return wrapStepError(name, err)
		}

		elapsed := time.Since(start)

		return pipe.eachOption(func(opt model.PipelineOption) error {
			return opt.OnSinkOutput(input.Details, details, elapsed, elapsed)
		})
	})

	pipe.sinks = append(pipe.sinks, details)

	return nil
}
