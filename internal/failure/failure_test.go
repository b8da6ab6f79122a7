package failure_test

import (
	"io/fs"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-seqlength/internal/failure"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	err := failure.Wrap(failure.ErrSourceUnreadable, fs.ErrNotExist, "open reads.fa")
	assert.EqualError(t, err, "open reads.fa: source unreadable: file does not exist")
	assert.ErrorIs(t, err, failure.ErrSourceUnreadable)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, failure.ErrOutputWriteFailure)

	assert.NoError(t, failure.Wrap(failure.ErrSourceUnreadable, nil, "nothing"))
}

func TestWrapfSurvivesPkgErrorsWrap(t *testing.T) {
	t.Parallel()

	err := failure.Wrapf(failure.ErrOutputWriteFailure, assert.AnError, "create %s", "out/seq_above199bp.fasta")
	err = errors.Wrap(err, "partition")
	assert.ErrorIs(t, err, failure.ErrOutputWriteFailure)
	assert.Contains(t, err.Error(), "partition: create out/seq_above199bp.fasta: output write failure")
}
