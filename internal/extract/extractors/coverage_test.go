package extractors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"velvetstat/internal/data"
	"velvetstat/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsHeader = "ID\tlgth\tout\tin\tlong_cov\tshort1_cov\tshort1_Ocov\tshort2_cov\tshort2_Ocov\tlong_nb\tshort1_nb\tshort2_nb"

// statsRow builds a stats.txt row with the given length and short-read coverages.
func statsRow(id, lgth, short1, short2 string) string {
	return strings.Join([]string{id, lgth, "1", "1", "0", short1, short1, short2, short2, "0", "10", "0"}, "\t")
}

func statsFile(rows ...string) string {
	return statsHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func TestCoverageExtractor_Scenario(t *testing.T) {
	path := writeArtifact(t, CoverageFile, statsFile(
		statsRow("1", "100", "30", "0"),  // 3000
		statsRow("2", "50", "30", "0"),   // shorter than 3*21-1
		statsRow("3", "100", "1", "1"),   // cov 2 < 3
		statsRow("4", "100", "Inf", "0"), // infinite
		statsRow("5", "62", "0", "0"),    // cov 0
	))

	got, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(21))
	require.NoError(t, err)
	assert.Equal(t, extract.Metrics{{Key: data.KeyExpCov, Value: int64(3000)}}, got)
}

func TestCoverageExtractor_SumsShortCoverageColumns(t *testing.T) {
	path := writeArtifact(t, CoverageFile, statsFile(
		statsRow("1", "100", "2", "2"), // 400
	))

	got, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(21))
	require.NoError(t, err)
	assert.Equal(t, int64(400), metricMap(got)[data.KeyExpCov])
}

func TestCoverageExtractor_MinLengthBoundary(t *testing.T) {
	// k=31 gives a minimum length of 92.
	path := writeArtifact(t, CoverageFile, statsFile(
		statsRow("1", "91", "10", "0"),
		statsRow("2", "92", "10", "0"),
	))

	got, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(31))
	require.NoError(t, err)
	assert.Equal(t, int64(920), metricMap(got)[data.KeyExpCov])
}

func TestCoverageExtractor_RoundsBuckets(t *testing.T) {
	path := writeArtifact(t, CoverageFile, statsFile(
		statsRow("1", "70", "3.33", "0"), // 233.1
		statsRow("2", "70", "3.35", "0"), // 234.5 rounds up
	))

	got, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(21))
	require.NoError(t, err)
	// One hit each; the tie resolves to the smaller bucket.
	assert.Equal(t, int64(233), metricMap(got)[data.KeyExpCov])
}

func TestCoverageExtractor_ModeTieBreakIsOrderIndependent(t *testing.T) {
	rows := []string{
		statsRow("1", "100", "5", "0"), // 500
		statsRow("2", "100", "5", "0"), // 500
		statsRow("3", "100", "4", "0"), // 400
		statsRow("4", "100", "4", "0"), // 400
		statsRow("5", "100", "9", "0"), // 900
	}
	reversed := []string{rows[4], rows[3], rows[2], rows[1], rows[0]}

	for _, rs := range [][]string{rows, reversed} {
		path := writeArtifact(t, CoverageFile, statsFile(rs...))
		got, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(21))
		require.NoError(t, err)
		assert.Equal(t, int64(400), metricMap(got)[data.KeyExpCov])
	}
}

func TestCoverageExtractor_NoQualifyingRows(t *testing.T) {
	path := writeArtifact(t, CoverageFile, statsFile(
		statsRow("1", "10", "50", "0"),
		statsRow("2", "100", "1", "0"),
	))

	got, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(21))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, data.KeyExpCov, got[0].Key)
	assert.Nil(t, got[0].Value)
}

func TestCoverageExtractor_HeaderOnly(t *testing.T) {
	path := writeArtifact(t, CoverageFile, statsHeader+"\n")

	got, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(21))
	require.NoError(t, err)
	assert.Nil(t, got[0].Value)
}

func TestCoverageExtractor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing length column",
			content: "ID\tlength\tshort1_cov\n1\t100\t5\n",
			wantErr: `no "lgth" column`,
		},
		{
			name:    "missing coverage column",
			content: "ID\tlgth\tshort1_Ocov\n1\t100\t5\n",
			wantErr: "no shortN_cov column",
		},
		{
			name:    "short row",
			content: statsHeader + "\n1\t100\n",
			wantErr: "row has 2 columns",
		},
		{
			name:    "bad length",
			content: statsFile(statsRow("1", "x", "5", "0")),
			wantErr: `invalid lgth "x"`,
		},
		{
			name:    "bad coverage",
			content: statsFile(statsRow("1", "100", "five", "0")),
			wantErr: `invalid coverage "five"`,
		},
		{
			name:    "blank file",
			content: "\n\n",
			wantErr: "missing header row",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArtifact(t, CoverageFile, tt.content)
			_, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(21))
			require.Error(t, err)
			var pe *extract.ParseError
			assert.True(t, errors.As(err, &pe), "expected ParseError, got %T", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCoverageExtractor_MissingKmerLength(t *testing.T) {
	path := writeArtifact(t, CoverageFile, statsFile(statsRow("1", "100", "5", "0")))

	_, err := (&CoverageExtractor{}).Extract(context.Background(), path, data.NewRunContext("/runs/a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing dependency kmer_length")
}

func TestHistogramMode(t *testing.T) {
	h := newHistogram()
	_, ok := h.mode()
	assert.False(t, ok)

	for _, b := range []int64{7, 3, 7, 3, 1} {
		h.add(b)
	}
	got, ok := h.mode()
	assert.True(t, ok)
	assert.Equal(t, int64(3), got)
}

func TestCoverageExtractor_SkipsBucketsBeyondInt64(t *testing.T) {
	path := writeArtifact(t, CoverageFile, statsFile(
		statsRow("1", "100", "1e300", "0"),
		statsRow("2", "100", "1e17", "0"), // 1e19 > MaxInt64
		statsRow("3", "100", "5", "0"),    // 500
	))

	got, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(21))
	require.NoError(t, err)
	assert.Equal(t, int64(500), metricMap(got)[data.KeyExpCov])
}

func TestCoverageExtractor_OnlyOversizedRows(t *testing.T) {
	path := writeArtifact(t, CoverageFile, statsFile(
		statsRow("1", "100", "1e300", "0"),
	))

	got, err := (&CoverageExtractor{}).Extract(context.Background(), path, kmerContext(21))
	require.NoError(t, err)
	assert.Nil(t, metricMap(got)[data.KeyExpCov])
}
