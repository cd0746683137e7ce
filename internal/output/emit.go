package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// EmitSink streams lifecycle Events as NDJSON (one JSON object per line).
// Tables are not emitted; the report file carries them.
type EmitSink struct {
	writer io.Writer
	format string
	mu     sync.Mutex
}

func NewEmitSink(w io.Writer, format string) (*EmitSink, error) {
	if w == nil {
		return nil, fmt.Errorf("emit sink writer must not be nil")
	}
	if format != "ndjson" {
		return nil, fmt.Errorf("unsupported emit format: %s", format)
	}
	return &EmitSink{writer: w, format: format}, nil
}

func (s *EmitSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := v.(Event)
	if !ok {
		return nil
	}
	if err := json.NewEncoder(s.writer).Encode(e); err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}

func (s *EmitSink) Close() error {
	return nil
}

type flusher interface {
	Flush() error
}

// flushIfPossible flushes buffered writers (e.g. bufio.Writer) so streamed
// lines reach the consumer as they are produced.
func flushIfPossible(w io.Writer) error {
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
