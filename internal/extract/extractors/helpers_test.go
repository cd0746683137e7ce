package extractors

import (
	"os"
	"path/filepath"
	"testing"

	"velvetstat/internal/data"
	"velvetstat/internal/extract"

	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func metricMap(m extract.Metrics) map[data.Key]any {
	out := make(map[data.Key]any, len(m))
	for _, mt := range m {
		out[mt.Key] = mt.Value
	}
	return out
}

func kmerContext(k int64) *data.RunContext {
	rc := data.NewRunContext("/runs/test")
	rc.Set(data.KeyKmerLength, k)
	return rc
}
