package extractors

import (
	"bytes"
	"context"
	"sort"

	"velvetstat/internal/data"
	"velvetstat/internal/extract"
	"velvetstat/internal/fasta"
)

// LongContigThreshold separates long from short contigs (inclusive).
const LongContigThreshold = 1000

// ContigsExtractor derives the contig length distribution from contigs.fa.
type ContigsExtractor struct{}

func (e *ContigsExtractor) ID() string {
	return "contigs"
}

func (e *ContigsExtractor) Title() string {
	return "Contig Length Distribution"
}

func (e *ContigsExtractor) Description() string {
	return "Reads every sequence in contigs.fa once and reports sequence and base counts, ambiguous (N) base counts, long/short contig counts (threshold 1000), min/max/average length, and N50."
}

func (e *ContigsExtractor) Artifact() string {
	return ContigsFile
}

func (e *ContigsExtractor) Stage() int {
	return StageContigs
}

func (e *ContigsExtractor) Requires() []data.Key {
	return nil
}

func (e *ContigsExtractor) Provides() []data.Key {
	return []data.Key{
		data.KeyNSequences,
		data.KeyNBases,
		data.KeyNN,
		data.KeyNNonN,
		data.KeyNLongSequences,
		data.KeyNShortSequences,
		data.KeyMinLength,
		data.KeyMaxLength,
		data.KeyAvgLength,
		data.KeyN50,
	}
}

func (e *ContigsExtractor) Extract(ctx context.Context, path string, _ data.Context) (extract.Metrics, error) {
	r, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var st contigStats
	for rec, err := range r.All() {
		if err != nil {
			return nil, extract.NewParseError(e.ID(), path, 0, "%w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st.add(rec)
	}
	if st.count == 0 {
		return nil, extract.NewParseError(e.ID(), path, 0, "no sequences")
	}
	if st.bases == 0 {
		return nil, extract.NewParseError(e.ID(), path, 0, "%d sequences but no bases", st.count)
	}

	return st.metrics(), nil
}

// contigStats accumulates running aggregates over contig records.
type contigStats struct {
	count   int64
	bases   int64
	nBases  int64
	lengths []int64
}

func (s *contigStats) add(rec fasta.Record) {
	n := int64(len(rec.Seq))
	s.count++
	s.bases += n
	s.nBases += int64(bytes.Count(rec.Seq, []byte{'N'}) + bytes.Count(rec.Seq, []byte{'n'}))
	s.lengths = append(s.lengths, n)
}

// metrics must only be called once at least one base has been added.
func (s *contigStats) metrics() extract.Metrics {
	var long, short int64
	minLen, maxLen := s.lengths[0], s.lengths[0]
	for _, l := range s.lengths {
		if l >= LongContigThreshold {
			long++
		} else {
			short++
		}
		minLen = min(minLen, l)
		maxLen = max(maxLen, l)
	}
	n50, _ := N50(s.lengths)

	return extract.Metrics{
		{Key: data.KeyNSequences, Value: s.count},
		{Key: data.KeyNBases, Value: s.bases},
		{Key: data.KeyNN, Value: s.nBases},
		{Key: data.KeyNNonN, Value: s.bases - s.nBases},
		{Key: data.KeyNLongSequences, Value: long},
		{Key: data.KeyNShortSequences, Value: short},
		{Key: data.KeyMinLength, Value: minLen},
		{Key: data.KeyMaxLength, Value: maxLen},
		{Key: data.KeyAvgLength, Value: float64(s.bases) / float64(s.count)},
		{Key: data.KeyN50, Value: n50},
	}
}

// N50 returns the length of the first contig, taken longest first, at which
// the running sum of lengths strictly exceeds half of the total. ok is false
// for an empty list or a zero total.
func N50(lengths []int64) (n50 int64, ok bool) {
	sorted := make([]int64, len(lengths))
	copy(sorted, lengths)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	var total int64
	for _, l := range sorted {
		total += l
	}

	var sum int64
	for _, l := range sorted {
		sum += l
		if 2*sum > total {
			return l, true
		}
	}
	return 0, false
}

func init() {
	extract.Register(&ContigsExtractor{})
}
