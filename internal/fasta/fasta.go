// Package fasta reads and writes FASTA files, gzip compressed or not.
package fasta

import (
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"

	"github.com/askiada/go-seqlength/internal/artifact"
	"github.com/askiada/go-seqlength/internal/failure"
)

// LineWidth is the number of residues per line written to output files.
const LineWidth = 60

// Alphabet returns the alphabet used to hold sequences of unit.
func Alphabet(unit artifact.Unit) alphabet.Alphabet {
	if unit == artifact.AminoAcid {
		return alphabet.Protein
	}

	return alphabet.DNA
}

// Reader reads sequences one at a time from a FASTA file.
type Reader struct {
	path string
	file *xopen.Reader
	r    *fasta.Reader
}

// Open opens the FASTA file at path. Compressed files are decompressed on the fly.
func Open(path string, unit artifact.Unit) (*Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, failure.Wrapf(failure.ErrSourceUnreadable, err, "open %s", path)
	}

	if info.IsDir() {
		return nil, failure.Wrapf(failure.ErrSourceUnreadable, errors.New("is a directory"), "open %s", path)
	}

	rd := &Reader{path: path}

	// an empty file is an empty source
	if info.Size() == 0 {
		return rd, nil
	}

	file, err := xopen.Ropen(path)
	if err != nil {
		return nil, failure.Wrapf(failure.ErrSourceUnreadable, err, "open %s", path)
	}

	rd.file = file
	rd.r = fasta.NewReader(file, linear.NewSeq("", nil, Alphabet(unit)))

	return rd, nil
}

// Read returns the next sequence, or io.EOF once the file is exhausted.
func (r *Reader) Read() (seq.Sequence, error) {
	if r.r == nil {
		return nil, io.EOF
	}

	s, err := r.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, failure.Wrapf(failure.ErrSourceUnreadable, err, "read %s", r.path)
	}

	return s, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil

	return errors.Wrapf(err, "close %s", r.path)
}

// Writer writes sequences to a FASTA file. A path ending with ".gz" is gzip compressed.
type Writer struct {
	path string
	file *xopen.Writer
	w    *fasta.Writer
}

// Create creates or truncates the FASTA file at path.
func Create(path string) (*Writer, error) {
	file, err := xopen.Wopen(path)
	if err != nil {
		return nil, failure.Wrapf(failure.ErrOutputWriteFailure, err, "create %s", path)
	}

	return &Writer{
		path: path,
		file: file,
		w:    fasta.NewWriter(file, LineWidth),
	}, nil
}

// Path returns the path of the file written.
func (w *Writer) Path() string {
	return w.path
}

// Write appends s to the file.
func (w *Writer) Write(s seq.Sequence) error {
	if w.file == nil {
		return failure.Wrapf(failure.ErrOutputWriteFailure, os.ErrClosed, "write %s", w.path)
	}

	_, err := w.w.Write(s)
	if err != nil {
		return failure.Wrapf(failure.ErrOutputWriteFailure, err, "write %s", w.path)
	}

	return nil
}

// Close flushes and closes the file. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil

	if err != nil {
		return failure.Wrapf(failure.ErrOutputWriteFailure, err, "close %s", w.path)
	}

	return nil
}
