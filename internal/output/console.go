package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"velvetstat/internal/report"

	"github.com/fatih/color"
)

// ConsoleSink prints one human-readable status line per directory and a
// closing summary.
type ConsoleSink struct {
	writer io.Writer
	mu     sync.Mutex

	ok   *color.Color
	skip *color.Color
	fail *color.Color
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{
		writer: w,
		ok:     color.New(color.FgGreen, color.Bold),
		skip:   color.New(color.FgYellow, color.Bold),
		fail:   color.New(color.FgRed, color.Bold),
	}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch t := v.(type) {
	case Event:
		return s.writeEvent(t)
	case *report.Table:
		if _, err := fmt.Fprintf(s.writer, "%d directories, %d metrics\n", len(t.Rows), len(t.Keys)); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	default:
		return nil
	}
}

func (s *ConsoleSink) writeEvent(e Event) error {
	var err error
	switch e.Type {
	case EventDirFinished:
		_, err = s.ok.Fprint(s.writer, "[OK]  ")
		if err == nil {
			_, err = fmt.Fprintf(s.writer, " %s (%d metrics)\n", e.Dir, len(e.Metrics))
		}
	case EventDirSkipped:
		_, err = s.skip.Fprint(s.writer, "[SKIP]")
		if err == nil {
			_, err = fmt.Fprintf(s.writer, " %s - %s\n", e.Dir, e.Reason)
		}
	case EventDirFailed:
		_, err = s.fail.Fprint(s.writer, "[FAIL]")
		if err == nil {
			_, err = fmt.Fprintf(s.writer, " %s - %s\n", e.Dir, e.Reason)
		}
	default:
		return nil
	}
	if err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}

func (s *ConsoleSink) Close() error {
	return nil
}
