package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const statsHeader = "ID\tlgth\tout\tin\tlong_cov\tshort1_cov\tshort1_Ocov\tshort2_cov\tshort2_Ocov\tlong_nb\tshort1_nb\tshort2_nb"

type runFixture struct {
	roadmap string
	contigs string
	stats   string
	omit    []string
}

func fastaOfLengths(lengths ...int) string {
	var b strings.Builder
	for i, l := range lengths {
		fmt.Fprintf(&b, ">NODE_%d_length_%d\n%s\n", i+1, l, strings.Repeat("A", l))
	}
	return b.String()
}

func statsOf(rows ...string) string {
	return statsHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func statsRow(lgth int, cov float64) string {
	return fmt.Sprintf("1\t%d\t1\t1\t0\t%g\t%g\t0\t0\t0\t10\t0", lgth, cov, cov)
}

// scenarioA is k=21, contigs [500 1500 2000], one qualifying stats row of 3000.
func scenarioA() runFixture {
	return runFixture{
		roadmap: "3\t1000\t21\t2\n",
		contigs: fastaOfLengths(500, 1500, 2000),
		stats:   statsOf(statsRow(100, 30), statsRow(40, 30)),
	}
}

func writeRun(t *testing.T, root, name string, f runFixture) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	files := map[string]string{
		"Roadmaps":   f.roadmap,
		"contigs.fa": f.contigs,
		"stats.txt":  f.stats,
	}
	for _, o := range f.omit {
		delete(files, o)
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
