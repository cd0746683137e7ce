package extractors

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"

	"velvetstat/internal/data"
	"velvetstat/internal/extract"
)

// RoadmapExtractor reads the hash length from the Roadmaps header line
// ("<sequences> <reads> <hash length> ...").
type RoadmapExtractor struct{}

func (e *RoadmapExtractor) ID() string {
	return "roadmap"
}

func (e *RoadmapExtractor) Title() string {
	return "Assembly k-mer Length"
}

func (e *RoadmapExtractor) Description() string {
	return "Reads the first line of the Roadmaps file and reports its third whitespace-delimited token as the k-mer (hash) length used for the assembly."
}

func (e *RoadmapExtractor) Artifact() string {
	return RoadmapFile
}

func (e *RoadmapExtractor) Stage() int {
	return StageRoadmap
}

func (e *RoadmapExtractor) Requires() []data.Key {
	return nil
}

func (e *RoadmapExtractor) Provides() []data.Key {
	return []data.Key{data.KeyKmerLength}
}

func (e *RoadmapExtractor) Extract(ctx context.Context, path string, _ data.Context) (extract.Metrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 4096), 1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, extract.NewParseError(e.ID(), path, 1, "read header: %w", err)
		}
		return nil, extract.NewParseError(e.ID(), path, 1, "empty roadmap file")
	}

	fields := strings.Fields(sc.Text())
	if len(fields) < 3 {
		return nil, extract.NewParseError(e.ID(), path, 1, "header has %d tokens, need at least 3", len(fields))
	}
	k, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, extract.NewParseError(e.ID(), path, 1, "k-mer length %q is not an integer", fields[2])
	}
	if k <= 0 {
		return nil, extract.NewParseError(e.ID(), path, 1, "k-mer length must be positive, got %d", k)
	}

	return extract.Metrics{{Key: data.KeyKmerLength, Value: k}}, nil
}

func init() {
	extract.Register(&RoadmapExtractor{})
}
