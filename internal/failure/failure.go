// Package failure defines the kinds of error a run can end with.
package failure

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSourceUnreadable reports an input that is missing, unreadable or not FASTA.
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrOutputWriteFailure reports an output directory or file that cannot be written.
	ErrOutputWriteFailure = errors.New("output write failure")
	// ErrBackendUnavailable reports a plot viewer backend that cannot be used.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Wrap tags err with kind and prefixes it with msg. Both kind and err match errors.Is.
func Wrap(kind, err error, msg string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w: %w", msg, kind, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(kind, err error, format string, args ...any) error {
	return Wrap(kind, err, fmt.Sprintf(format, args...))
}
