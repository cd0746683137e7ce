package data

import (
	"sort"
	"strings"
)

// TrackingContext is the view of a RunContext handed to one extractor. It
// records every metric the extractor reads so the engine can reject reads
// of metrics the extractor never listed in Requires().
type TrackingContext struct {
	inner Context
	reads map[Key]struct{}
}

func NewTrackingContext(inner Context) *TrackingContext {
	return &TrackingContext{
		inner: inner,
		reads: make(map[Key]struct{}),
	}
}

// Get records the read even when the metric is absent: asking for an
// undeclared metric is a violation whether or not an earlier stage set it.
func (c *TrackingContext) Get(key Key) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.reads[key] = struct{}{}
	if c.inner == nil {
		return nil, false
	}
	return c.inner.Get(key)
}

// AccessedKeys returns the metrics read so far, sorted.
func (c *TrackingContext) AccessedKeys() []Key {
	if c == nil {
		return nil
	}
	keys := make([]Key, 0, len(c.reads))
	for k := range c.reads {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Undeclared returns the metrics that were read but are not in requires.
func (c *TrackingContext) Undeclared(requires []Key) []Key {
	return Undeclared(c.AccessedKeys(), requires)
}

// Undeclared returns the members of got missing from declared, sorted and
// without duplicates. It serves both directions of the extractor contract:
// reads checked against Requires() and results checked against Provides().
func Undeclared(got, declared []Key) []Key {
	decl := make(map[Key]struct{}, len(declared))
	for _, k := range declared {
		decl[k] = struct{}{}
	}

	seen := make(map[Key]struct{})
	var out []Key
	for _, k := range got {
		if _, ok := decl[k]; ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	SortKeys(out)
	return out
}

func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}

// JoinKeys renders keys as a comma-separated list.
func JoinKeys(keys []Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
