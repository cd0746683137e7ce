package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"velvetstat/internal/data"
	"velvetstat/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *report.Table {
	a := data.NewRunContext("/runs/a")
	a.Set(data.KeyKmerLength, int64(21))
	a.Set(data.KeyAvgLength, 1333.5)
	a.Set(data.KeyExpCov, nil)
	b := data.NewRunContext("/runs/b,odd")
	b.Set(data.KeyKmerLength, int64(31))
	b.Set("foo", int64(7))
	return report.Build([]*data.RunContext{a, b})
}

func TestWriteTable_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, "csv", sampleTable()))

	want := "kmer_length,avg_length,exp_cov,foo,outdir\n" +
		"21,1333.5,,,/runs/a\n" +
		"31,,,7,\"/runs/b,odd\"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTable_TSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, "tsv", sampleTable()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "kmer_length\tavg_length\texp_cov\tfoo\toutdir", lines[0])
	assert.Equal(t, "31\t\t\t7\t/runs/b,odd", lines[2])
}

func TestWriteTable_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, "json", sampleTable()))

	var got struct {
		Columns []string `json:"columns"`
		Rows    []struct {
			Outdir  string         `json:"outdir"`
			Metrics map[string]any `json:"metrics"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"kmer_length", "avg_length", "exp_cov", "foo", "outdir"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "/runs/a", got.Rows[0].Outdir)
	assert.Equal(t, float64(21), got.Rows[0].Metrics["kmer_length"])

	v, ok := got.Rows[0].Metrics["exp_cov"]
	assert.True(t, ok, "undefined metric is present as null")
	assert.Nil(t, v)
	_, ok = got.Rows[0].Metrics["foo"]
	assert.False(t, ok, "missing metric is absent")
}

func TestWriteTable_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, "markdown", sampleTable()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| kmer_length | avg_length | exp_cov | foo | outdir |", lines[0])
	assert.Equal(t, "| --- | --- | --- | --- | --- |", lines[1])
	assert.Equal(t, "| 21 | 1333.5 |  |  | /runs/a |", lines[2])
}

func TestWriteTable_UnknownFormat(t *testing.T) {
	assert.Error(t, WriteTable(&bytes.Buffer{}, "xml", sampleTable()))
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.csv")

	s, err := NewFileSink(path, "csv")
	require.NoError(t, err)
	require.NoError(t, s.Write(Event{Type: EventRunStarted}))
	require.NoError(t, s.Write(sampleTable()))
	assert.Error(t, s.Write(sampleTable()), "table is written once")
	require.NoError(t, s.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "kmer_length,avg_length,exp_cov,foo,outdir\n"))
}

func TestNewFileSink_Errors(t *testing.T) {
	_, err := NewFileSink("", "csv")
	assert.Error(t, err)

	_, err = NewFileSink(filepath.Join(t.TempDir(), "r.xml"), "xml")
	assert.EqualError(t, err, "unsupported output format: xml")
}

func TestEmitSink_StreamsEventsOnly(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	s, err := NewEmitSink(bw, "ndjson")
	require.NoError(t, err)

	require.NoError(t, s.Write(Event{Type: EventDirSkipped, Dir: "/runs/b", Reason: "missing stats.txt"}))
	require.NoError(t, s.Write(sampleTable()))
	require.NoError(t, s.Write(Event{Type: EventRunFinished, Rows: 1}))
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "flushed per event; tables are not emitted")

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ev))
	assert.Equal(t, EventDirSkipped, ev.Type)
	assert.Equal(t, "/runs/b", ev.Dir)
}

func TestNewEmitSink_Errors(t *testing.T) {
	_, err := NewEmitSink(nil, "ndjson")
	assert.Error(t, err)
	_, err = NewEmitSink(&bytes.Buffer{}, "json")
	assert.EqualError(t, err, "unsupported emit format: json")
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf)

	require.NoError(t, s.Write(Event{Type: EventRunStarted}))
	require.NoError(t, s.Write(Event{Type: EventDirFinished, Dir: "/runs/a", Metrics: map[string]any{"N50": int64(1)}}))
	require.NoError(t, s.Write(Event{Type: EventDirSkipped, Dir: "/runs/b", Reason: "stats.txt is missing"}))
	require.NoError(t, s.Write(Event{Type: EventDirFailed, Dir: "/runs/c", Reason: "no sequences"}))
	require.NoError(t, s.Write(sampleTable()))
	require.NoError(t, s.Close())

	out := buf.String()
	assert.Contains(t, out, "[OK]")
	assert.Contains(t, out, "/runs/a (1 metrics)")
	assert.Contains(t, out, "[SKIP]")
	assert.Contains(t, out, "/runs/b - stats.txt is missing")
	assert.Contains(t, out, "[FAIL]")
	assert.Contains(t, out, "/runs/c - no sequences")
	assert.Contains(t, out, "2 directories, 4 metrics")
	assert.NotContains(t, out, "run.started")
}
