package pipeline

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var errDisk = errors.New("disk full")

func TestWrapStepError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, wrapStepError("step", nil))

	err := wrapStepError("write above", errDisk)
	assert.EqualError(t, err, "write above: disk full")
	assert.ErrorIs(t, err, errDisk)
}

func TestWrapStepErrorKeepsInnermostName(t *testing.T) {
	t.Parallel()

	inner := wrapStepError("write above", errDisk)
	outer := wrapStepError("read records", inner)
	assert.Same(t, inner, outer)
	assert.EqualError(t, outer, "write above: disk full")

	withContext := errors.Wrap(inner, "context")
	assert.Equal(t, withContext, wrapStepError("read records", withContext))
}
