// Package partition splits sequence records in two by length.
//
// Records are read one at a time and each one is written to its sink before the next one is read.
// Only the lengths are kept once a record is written.
package partition

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/askiada/go-seqlength/internal/failure"
	"github.com/askiada/go-seqlength/pkg/pipeline"
	"github.com/askiada/go-seqlength/pkg/pipeline/model"
)

// Step names of the partition pipeline.
const (
	StepRead       = "read records"
	StepMeasure    = "measure length"
	StepClassify   = "classify"
	StepAbove      = "above"
	StepBelow      = "below"
	StepWriteAbove = "write above"
	StepWriteBelow = "write below"
)

var ErrInvalidCutoff = errors.New("cutoff must be at least 1")

// Record is a sequence record as seen by the partitioner.
type Record interface {
	Name() string
	Len() int
}

// Source produces records until it returns io.EOF.
type Source[R Record] interface {
	Read() (R, error)
}

// Sink receives the records of a partition.
type Sink[R Record] interface {
	Write(record R) error
}

// Cutoff is the smallest length of the above partition.
type Cutoff int

// NewCutoff validates n as a cutoff.
func NewCutoff(n int) (Cutoff, error) {
	if n < 1 {
		return 0, errors.Wrapf(ErrInvalidCutoff, "got %d", n)
	}

	return Cutoff(n), nil
}

// Above reports whether length belongs to the above partition, [cutoff, ∞).
func (c Cutoff) Above(length int) bool {
	return length >= int(c)
}

// Result holds the lengths of each partition in input order.
type Result struct {
	Above []int
	Below []int
	// Steps lists the steps the records went through, in topological order.
	Steps []string
}

// Total is the number of records partitioned.
func (r Result) Total() int {
	return len(r.Above) + len(r.Below)
}

type measured[R Record] struct {
	record R
	length int
}

// Run reads every record of src and writes it to above when its length is at least cutoff,
// to below otherwise. Sinks are neither created nor closed by Run.
//
// Errors from src are reported as failure.ErrSourceUnreadable unless they already carry a kind;
// the same goes for sinks with failure.ErrOutputWriteFailure.
func Run[R Record](ctx context.Context, src Source[R], cutoff Cutoff, above, below Sink[R], opts ...model.PipelineOption) (Result, error) {
	if cutoff < 1 {
		return Result{}, errors.Wrapf(ErrInvalidCutoff, "got %d", cutoff)
	}

	res := Result{Above: []int{}, Below: []int{}}

	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return Result{}, errors.Wrap(err, "unable to create partition pipeline")
	}

	records, err := pipeline.AddRootStep(pipe, StepRead, func(ctx context.Context, emit func(R) error) error {
		for {
			record, err := src.Read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}

				return ensureKind(failure.ErrSourceUnreadable, err, "read record")
			}

			err = emit(record)
			if err != nil {
				return err
			}
		}
	})
	if err != nil {
		return Result{}, err
	}

	lengths, err := pipeline.AddStepOneToOne(pipe, StepMeasure, records, func(_ context.Context, record R) (measured[R], error) {
		return measured[R]{record: record, length: record.Len()}, nil
	})
	if err != nil {
		return Result{}, err
	}

	splitter, err := pipeline.AddSplitterFn(pipe, StepClassify, lengths, []pipeline.SplitterFn[measured[R]]{
		func(m measured[R]) (bool, error) { return cutoff.Above(m.length), nil },
		func(m measured[R]) (bool, error) { return !cutoff.Above(m.length), nil },
	}, pipeline.SplitterBranchNames[measured[R]](StepAbove, StepBelow))
	if err != nil {
		return Result{}, err
	}

	aboveStep, _ := splitter.Get()
	belowStep, _ := splitter.Get()

	err = addWriter(pipe, StepWriteAbove, aboveStep, above, &res.Above)
	if err != nil {
		return Result{}, err
	}

	err = addWriter(pipe, StepWriteBelow, belowStep, below, &res.Below)
	if err != nil {
		return Result{}, err
	}

	err = pipe.Run()
	if err != nil {
		return Result{}, err
	}

	res.Steps, err = pipe.Steps()
	if err != nil {
		return Result{}, err
	}

	return res, nil
}

func addWriter[R Record](pipe *pipeline.Pipeline, name string, input *pipeline.Step[measured[R]], sink Sink[R], lengths *[]int) error {
	return pipeline.AddSink(pipe, name, input, func(_ context.Context, m measured[R]) error {
		err := sink.Write(m.record)
		if err != nil {
			return ensureKind(failure.ErrOutputWriteFailure, err, fmt.Sprintf("write record %s", m.record.Name()))
		}

		*lengths = append(*lengths, m.length)

		return nil
	})
}

// ensureKind tags err with kind unless it already carries one of the failure kinds.
func ensureKind(kind, err error, msg string) error {
	for _, known := range []error{failure.ErrSourceUnreadable, failure.ErrOutputWriteFailure} {
		if errors.Is(err, known) {
			return errors.Wrap(err, msg)
		}
	}

	return failure.Wrap(kind, err, msg)
}
