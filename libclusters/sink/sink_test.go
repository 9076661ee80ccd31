package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/clusters/clusters"
	"github.com/2x3systems/clusters/libclusters/graph"
)

func mustParse(t *testing.T, exprs ...string) []*graph.Graph {
	t.Helper()
	U := make([]*graph.Graph, len(exprs))
	for i, expr := range exprs {
		X, err := graph.ParseEdgeExpr(expr)
		require.NoError(t, err)
		U[i] = X
	}
	return U
}

func TestPairsFileAppends(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "nonisomorphic.txt")

	pw, err := OpenPairsFile(pathname, clusters.FormatPairs)
	require.NoError(t, err)
	require.NoError(t, pw.AppendUnique(2, mustParse(t, "0-1")))
	require.NoError(t, pw.AppendUnique(3, mustParse(t, "0-1, 0-2", "0-1-2-0")))
	require.NoError(t, pw.Close())

	pw, err = OpenPairsFile(pathname, clusters.FormatPairs)
	require.NoError(t, err)
	require.NoError(t, pw.AppendUnique(4, mustParse(t, "0-1-2-3")))
	require.NoError(t, pw.Close())

	contents, err := os.ReadFile(pathname)
	require.NoError(t, err)
	assert.Equal(t, "0 1\n0 1 0 2\n0 1 1 2 2 0\n0 1 1 2 2 3\n", string(contents))
}

func TestPairsWriterGraph6(t *testing.T) {
	var out strings.Builder
	pw, err := NewPairsWriter(&out, clusters.FormatGraph6)
	require.NoError(t, err)
	require.NoError(t, pw.AppendUnique(3, mustParse(t, "0-1-2", "0-1-2-0")))
	assert.Equal(t, "Bg\nBw\n", out.String())

	_, err = NewPairsWriter(&out, "dot")
	assert.ErrorIs(t, err, clusters.ErrBadConfig)
}

var testRecs = []clusters.Record{
	{N: 3, Candidates: 3, GenTime: time.Millisecond, Unique: 2, FilterTime: 2 * time.Millisecond, TotalUnique: 3, TotalTime: 5 * time.Millisecond},
	{N: 4, Candidates: 12, GenTime: time.Millisecond, Unique: 6, FilterTime: 3 * time.Millisecond, TotalUnique: 9, WriteTime: time.Microsecond, TotalTime: 9 * time.Millisecond},
}

func TestTableSink(t *testing.T) {
	var out strings.Builder
	ts := NewTableSink(&out)
	for _, rec := range testRecs {
		ts.OnGeneration(rec)
	}
	require.NoError(t, ts.Close())

	rendered := out.String()
	assert.Contains(t, rendered, "TOTAL_FOUND")
	assert.Contains(t, rendered, "FILTER_TIME")
	assert.Len(t, strings.Split(strings.TrimSpace(rendered), "\n"), 6)
}

func TestMetricsSink(t *testing.T) {
	textfile := filepath.Join(t.TempDir(), "clusters.prom")
	ms := NewMetricsSink(textfile)
	for _, rec := range testRecs {
		ms.OnGeneration(rec)
		LogSink{}.OnGeneration(rec)
	}

	assert.Equal(t, 4.0, testutil.ToFloat64(ms.generation))
	assert.Equal(t, 9.0, testutil.ToFloat64(ms.totalUnique))
	assert.Equal(t, 15.0, testutil.ToFloat64(ms.candidates))
	assert.Equal(t, 8.0, testutil.ToFloat64(ms.unique))
	assert.Equal(t, 3, testutil.CollectAndCount(ms.phaseTime))

	require.NoError(t, ms.Close())
	contents, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "clusters_candidates_total 15")
}
