package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"velvetstat/internal/report"
)

// FileSink writes the final report table to a file. Lifecycle events are
// ignored. The table is written when it arrives; Close flushes and closes.
type FileSink struct {
	path   string
	format string
	file   *os.File
	buf    *bufio.Writer
	mu     sync.Mutex
	wrote  bool
}

func NewFileSink(path string, format string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path required")
	}
	switch format {
	case "csv", "tsv", "json", "markdown":
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &FileSink{
		path:   path,
		format: format,
		file:   f,
		buf:    bufio.NewWriter(f),
	}, nil
}

func (s *FileSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := v.(*report.Table)
	if !ok {
		return nil
	}
	if s.wrote {
		return fmt.Errorf("report table already written to %s", s.path)
	}
	s.wrote = true
	return WriteTable(s.buf, s.format, t)
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.buf.Flush()
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// WriteTable renders t to w in the given format.
func WriteTable(w io.Writer, format string, t *report.Table) error {
	switch format {
	case "csv":
		return writeDelimited(w, ',', t)
	case "tsv":
		return writeDelimited(w, '\t', t)
	case "json":
		return writeJSON(w, t)
	case "markdown":
		return writeMarkdown(w, t)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeDelimited(w io.Writer, comma rune, t *report.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row.Cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonRow struct {
	Outdir  string         `json:"outdir"`
	Metrics map[string]any `json:"metrics"`
}

type jsonReport struct {
	Columns []string  `json:"columns"`
	Rows    []jsonRow `json:"rows"`
}

func writeJSON(w io.Writer, t *report.Table) error {
	out := jsonReport{Columns: t.Columns(), Rows: make([]jsonRow, 0, len(t.Rows))}
	for _, row := range t.Rows {
		m := make(map[string]any, len(row.Values))
		for k, v := range row.Values {
			m[string(k)] = v
		}
		out.Rows = append(out.Rows, jsonRow{Outdir: row.Dir, Metrics: m})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeMarkdown(w io.Writer, t *report.Table) error {
	cols := t.Columns()
	var b strings.Builder
	b.WriteString("| " + strings.Join(escapeCells(cols), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(cols)) + "\n")
	for _, row := range t.Rows {
		b.WriteString("| " + strings.Join(escapeCells(row.Cells), " | ") + " |\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}
