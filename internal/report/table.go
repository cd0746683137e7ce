// Package report turns per-directory run contexts into one rectangular table.
package report

import (
	"math"
	"strconv"

	"velvetstat/internal/data"
)

// OutdirColumn is the trailing column holding each row's source directory.
const OutdirColumn = "outdir"

// KeySet is an insertion-ordered set of metric keys.
type KeySet struct {
	keys []data.Key
	seen map[data.Key]struct{}
}

func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[data.Key]struct{})}
}

// Add registers keys not seen before, preserving first-seen order.
func (s *KeySet) Add(keys ...data.Key) {
	for _, k := range keys {
		if _, ok := s.seen[k]; ok {
			continue
		}
		s.seen[k] = struct{}{}
		s.keys = append(s.keys, k)
	}
}

func (s *KeySet) Keys() []data.Key {
	out := make([]data.Key, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *KeySet) Len() int { return len(s.keys) }

// Row is one directory's line in the report. Cells align with Table.Columns.
type Row struct {
	Dir   string
	Cells []string
	// Values holds the raw metric values keyed by column; missing metrics are
	// absent, undefined metrics are present with a nil value.
	Values map[data.Key]any
}

// Table is the final report. Every row has len(Keys)+1 cells.
type Table struct {
	Keys []data.Key
	Rows []Row
}

// Columns returns the header row: metric keys followed by OutdirColumn.
func (t *Table) Columns() []string {
	cols := make([]string, 0, len(t.Keys)+1)
	for _, k := range t.Keys {
		cols = append(cols, string(k))
	}
	return append(cols, OutdirColumn)
}

// Build registers every context's keys in the given order and renders one
// row per context. Callers pass contexts in a stable order so the column
// order is reproducible.
func Build(contexts []*data.RunContext) *Table {
	keys := NewKeySet()
	for _, rc := range contexts {
		keys.Add(rc.Keys()...)
	}

	t := &Table{Keys: keys.Keys()}
	for _, rc := range contexts {
		row := Row{
			Dir:    rc.Dir(),
			Cells:  make([]string, 0, len(t.Keys)+1),
			Values: make(map[data.Key]any, rc.Len()),
		}
		for _, k := range t.Keys {
			v, ok := rc.Get(k)
			if ok {
				row.Values[k] = v
			}
			row.Cells = append(row.Cells, FormatValue(v))
		}
		row.Cells = append(row.Cells, rc.Dir())
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FormatValue renders a metric value as a report cell. nil and unknown types
// render as an empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return ""
	}
}
