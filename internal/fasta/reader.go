// Package fasta reads FASTA-formatted sequence files one record at a time.
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
)

// maxLine allows very long single-line sequences (64 MiB).
const maxLine = 64 * 1024 * 1024

// Record is a single parsed FASTA sequence.
type Record struct {
	ID  string
	Seq []byte
}

// Reader yields FASTA records lazily. It makes a single pass over its input
// and cannot be restarted.
type Reader struct {
	sc      *bufio.Scanner
	closer  io.Closer
	pending []byte // header of the next record, without '>'
	line    int
	done    bool
}

// NewReader parses FASTA from r. The caller owns r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &Reader{sc: sc}
}

// Open opens a FASTA file (plain or gzip-compressed) for reading.
func Open(path string) (*Reader, error) {
	rc, err := openFile(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(rc)
	r.closer = rc
	return r, nil
}

// Next returns the next record, or io.EOF once the input is exhausted.
// Sequence data appearing before the first header is an error.
func (r *Reader) Next() (Record, error) {
	if r.done {
		return Record{}, io.EOF
	}

	var (
		rec     Record
		started = r.pending != nil
	)
	if started {
		rec.ID = parseHeaderID(r.pending)
		r.pending = nil
	}

	for r.sc.Scan() {
		r.line++
		line := bytes.TrimSpace(r.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if started {
				r.pending = append(make([]byte, 0, len(line)), line[1:]...)
				return rec, nil
			}
			rec.ID = parseHeaderID(line[1:])
			started = true
			continue
		}
		if !started {
			return Record{}, fmt.Errorf("fasta: line %d: sequence data before first header", r.line)
		}
		rec.Seq = append(rec.Seq, line...)
	}
	r.done = true
	if err := r.sc.Err(); err != nil {
		return Record{}, fmt.Errorf("fasta scan: %w", err)
	}
	if started {
		return rec, nil
	}
	return Record{}, io.EOF
}

// All iterates over the remaining records. Iteration stops after the first
// error, which is yielded with a zero Record.
func (r *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the underlying file when the Reader was created with Open.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
