package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("p must be set")
	ErrInputMustBeSet    = errors.New("input must be set")
	ErrSplitterTotal     = errors.New("total must be greater than 0")
	ErrDuplicateStep     = errors.New("step name already used")
	ErrAlreadyRun        = errors.New("pipeline already run")
)

// stepError decorates an error with the name of the step it comes from.
type stepError struct {
	name string
	err  error
}

func (e *stepError) Error() string {
	return e.name + ": " + e.err.Error()
}

func (e *stepError) Unwrap() error {
	return e.err
}

// wrapStepError names err after step, unless a downstream step already did.
func wrapStepError(name string, err error) error {
	if err == nil {
		return nil
	}

	var se *stepError
	if errors.As(err, &se) {
		return err
	}

	return &stepError{name: name, err: err}
}
