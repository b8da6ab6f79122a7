package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-seqlength/pkg/pipeline"
)

func addRootFromSlice(t *testing.T, pipe *pipeline.Pipeline, name string, input []int) *pipeline.Step[int] {
	t.Helper()

	step, err := pipeline.AddRootStep(pipe, name, func(ctx context.Context, emit func(int) error) error {
		for _, i := range input {
			if err := emit(i); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)

	return step
}

func addCollectSink(t *testing.T, pipe *pipeline.Pipeline, name string, input *pipeline.Step[int], got *[]int) {
	t.Helper()

	err := pipeline.AddSink(pipe, name, input, func(ctx context.Context, in int) error {
		*got = append(*got, in)

		return nil
	})
	require.NoError(t, err)
}

func createRange(total int) []int {
	res := make([]int, total)
	for i := 0; i < total; i++ {
		res[i] = i
	}

	return res
}
