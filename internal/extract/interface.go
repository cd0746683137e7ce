// Package extract defines metric extractors and the registry that holds them.
package extract

import (
	"context"

	"velvetstat/internal/data"
)

type Extractor interface {
	ID() string
	Title() string
	Description() string

	// Artifact is the file name, relative to the run directory, this
	// extractor reads. The validator requires it to exist and be non-empty.
	Artifact() string

	// Stage orders extractors within a run (lower runs first).
	Stage() int

	// Requires declares the metrics this extractor reads from the run context.
	// Extractors MUST NOT read anything else.
	Requires() []data.Key

	// Provides declares the metrics this extractor may return.
	Provides() []data.Key

	// Extract reads path and derives metrics. in holds the metrics produced by
	// earlier stages for the same directory.
	Extract(ctx context.Context, path string, in data.Context) (Metrics, error)
}

// Metric is one named value. Value is int64, float64 or nil.
type Metric struct {
	Key   data.Key
	Value any
}

// Metrics is an ordered set of metric values produced by one extractor.
type Metrics []Metric

func (m Metrics) Keys() []data.Key {
	out := make([]data.Key, len(m))
	for i, mt := range m {
		out[i] = mt.Key
	}
	return out
}
