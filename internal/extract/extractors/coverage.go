package extractors

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"velvetstat/internal/data"
	"velvetstat/internal/extract"
)

// MinCoverage is the lowest summed short-read coverage a node may have to be
// counted towards the expected coverage estimate.
const MinCoverage = 3

const lengthColumn = "lgth"

var shortCovColumn = regexp.MustCompile(`^short\d+_cov$`)

// CoverageExtractor estimates the expected k-mer coverage from stats.txt as
// the most frequent length-weighted coverage bucket.
type CoverageExtractor struct{}

func (e *CoverageExtractor) ID() string {
	return "coverage"
}

func (e *CoverageExtractor) Title() string {
	return "Expected Coverage Estimate"
}

func (e *CoverageExtractor) Description() string {
	return "Reads stats.txt, keeps nodes at least 3k-1 long whose summed shortN_cov is at least 3 and finite, buckets round(cov*lgth), and reports the most frequent bucket as exp_cov (ties resolve to the smallest bucket). exp_cov is blank when no node qualifies."
}

func (e *CoverageExtractor) Artifact() string {
	return CoverageFile
}

func (e *CoverageExtractor) Stage() int {
	return StageCoverage
}

func (e *CoverageExtractor) Requires() []data.Key {
	return []data.Key{data.KeyKmerLength}
}

func (e *CoverageExtractor) Provides() []data.Key {
	return []data.Key{data.KeyExpCov}
}

func (e *CoverageExtractor) Extract(ctx context.Context, path string, in data.Context) (extract.Metrics, error) {
	k, err := kmerLength(in)
	if err != nil {
		return nil, err
	}
	minLength := 3*k - 1

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		lineNo  int
		lgthIdx = -1
		covIdx  []int
		ncols   int
		hist    = newHistogram()
	)

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		if ncols == 0 {
			ncols = len(fields)
			for i, name := range fields {
				name = strings.TrimSpace(name)
				switch {
				case name == lengthColumn:
					lgthIdx = i
				case shortCovColumn.MatchString(name):
					covIdx = append(covIdx, i)
				}
			}
			if lgthIdx < 0 {
				return nil, extract.NewParseError(e.ID(), path, lineNo, "header has no %q column", lengthColumn)
			}
			if len(covIdx) == 0 {
				return nil, extract.NewParseError(e.ID(), path, lineNo, "header has no shortN_cov column")
			}
			continue
		}

		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if len(fields) < ncols {
			return nil, extract.NewParseError(e.ID(), path, lineNo, "row has %d columns, header has %d", len(fields), ncols)
		}

		lgth, err := strconv.ParseInt(strings.TrimSpace(fields[lgthIdx]), 10, 64)
		if err != nil {
			return nil, extract.NewParseError(e.ID(), path, lineNo, "invalid %s %q", lengthColumn, fields[lgthIdx])
		}
		if lgth < minLength {
			continue
		}

		var cov float64
		for _, i := range covIdx {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return nil, extract.NewParseError(e.ID(), path, lineNo, "invalid coverage %q", fields[i])
			}
			cov += v
		}
		if math.IsNaN(cov) || math.IsInf(cov, 0) || cov < MinCoverage {
			continue
		}

		// Buckets past the int64 range cannot be represented; drop the row.
		bucket := math.Round(cov * float64(lgth))
		if bucket >= math.MaxInt64 {
			continue
		}
		hist.add(int64(bucket))
	}
	if err := sc.Err(); err != nil {
		return nil, extract.NewParseError(e.ID(), path, lineNo, "read: %w", err)
	}
	if ncols == 0 {
		return nil, extract.NewParseError(e.ID(), path, 0, "missing header row")
	}

	var expCov any
	if mode, ok := hist.mode(); ok {
		expCov = mode
	}
	return extract.Metrics{{Key: data.KeyExpCov, Value: expCov}}, nil
}

func kmerLength(in data.Context) (int64, error) {
	v, ok := in.Get(data.KeyKmerLength)
	if !ok {
		return 0, fmt.Errorf("missing dependency %s", data.KeyKmerLength)
	}
	k, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("dependency %s has type %T, want int64", data.KeyKmerLength, v)
	}
	return k, nil
}

// histogram counts occurrences of integer buckets.
type histogram struct {
	counts map[int64]int
}

func newHistogram() *histogram {
	return &histogram{counts: make(map[int64]int)}
}

func (h *histogram) add(bucket int64) {
	h.counts[bucket]++
}

// mode returns the bucket with the highest count. Ties resolve to the smallest
// bucket so the result does not depend on input order.
func (h *histogram) mode() (int64, bool) {
	var (
		best      int64
		bestCount int
	)
	for bucket, n := range h.counts {
		if n > bestCount || (n == bestCount && bucket < best) {
			best, bestCount = bucket, n
		}
	}
	return best, bestCount > 0
}

func init() {
	extract.Register(&CoverageExtractor{})
}
