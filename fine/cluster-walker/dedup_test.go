package walker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/clusters/clusters"
	"github.com/2x3systems/clusters/libclusters/combo"
	"github.com/2x3systems/clusters/libclusters/graph"
)

// indexesOf returns the position in cands of each graph in U.
func indexesOf(cands, U []*graph.Graph) []int {
	idx := make([]int, len(U))
	for i, X := range U {
		idx[i] = -1
		for j, Xc := range cands {
			if X == Xc {
				idx[i] = j
				break
			}
		}
	}
	return idx
}

// fiveVertexCandidates returns the raw candidates grown from all connected 4-vertex graphs.
func fiveVertexCandidates(t *testing.T) []*graph.Graph {
	U := []*graph.Graph{
		mustParse(t, "0-1-2-3"),
		mustParse(t, "0-1, 0-2, 0-3"),
		mustParse(t, "0-1-2-3-0"),
		mustParse(t, "0-1-2-0, 2-3"),
		mustParse(t, "0-1-2-3-0, 0-2"),
		mustParse(t, "0-1-2-3-0, 0-2, 1-3"),
	}
	cands, err := ExtendAll(U, 6, combo.Lexical{}, 2)
	require.NoError(t, err)
	return cands
}

func TestDedupEarliestSurvives(t *testing.T) {
	cands := []*graph.Graph{
		mustParse(t, "0-1, 0-2"),
		mustParse(t, "0-1-2-0"),
		mustParse(t, "0-1-2"),
		mustParse(t, "0-2, 1-2"),
	}
	U, err := Dedup(cands, graph.Isomorphic)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, indexesOf(cands, U))

	again, err := Dedup(U, graph.Isomorphic)
	require.NoError(t, err)
	assert.Equal(t, U, again)

	U, err = Dedup(nil, graph.Isomorphic)
	require.NoError(t, err)
	assert.Empty(t, U)
}

func TestDedupStrategiesAgree(t *testing.T) {
	cands := fiveVertexCandidates(t)
	require.Len(t, cands, 6*15)

	serial, err := Dedup(cands, graph.Isomorphic)
	require.NoError(t, err)
	assert.Len(t, serial, 21)
	want := indexesOf(cands, serial)

	for _, workers := range []int{1, 2, 3, 8} {
		U, err := DedupParallel(cands, graph.Isomorphic, workers)
		require.NoError(t, err)
		assert.Equal(t, want, indexesOf(cands, U), "parallel, %d workers", workers)

		U, err = DedupBucketed(cands, graph.Isomorphic, workers)
		require.NoError(t, err)
		assert.Equal(t, want, indexesOf(cands, U), "bucketed, %d workers", workers)
	}
}

func TestDedupPermutedInput(t *testing.T) {
	cands := fiveVertexCandidates(t)
	reversed := make([]*graph.Graph, len(cands))
	for i, X := range cands {
		reversed[len(cands)-1-i] = X
	}

	serial, err := Dedup(cands, graph.Isomorphic)
	require.NoError(t, err)

	// The representative of each class is its first member in reversed order.
	seen := make([]bool, len(serial))
	var want []int
	for j, X := range reversed {
		for c, Xc := range serial {
			same, err := graph.Isomorphic(Xc, X)
			require.NoError(t, err)
			if same {
				if !seen[c] {
					seen[c] = true
					want = append(want, j)
				}
				break
			}
		}
	}

	U, err := Dedup(reversed, graph.Isomorphic)
	require.NoError(t, err)
	require.Len(t, U, 21)
	assert.Equal(t, want, indexesOf(reversed, U))

	for i := range U {
		for j := i + 1; j < len(U); j++ {
			same, err := graph.Isomorphic(U[i], U[j])
			require.NoError(t, err)
			assert.False(t, same, "%v and %v", U[i], U[j])
		}
	}
}

func TestDedupOracleFailure(t *testing.T) {
	cands := fiveVertexCandidates(t)
	errBroken := errors.New("broken oracle")
	broken := func(a, b *graph.Graph) (bool, error) {
		if a.NumEdges() != b.NumEdges() {
			return false, nil
		}
		return false, errBroken
	}

	for name, dedup := range map[string]func() ([]*graph.Graph, error){
		"serial":   func() ([]*graph.Graph, error) { return Dedup(cands, broken) },
		"parallel": func() ([]*graph.Graph, error) { return DedupParallel(cands, broken, 4) },
		"bucketed": func() ([]*graph.Graph, error) { return DedupBucketed(cands, broken, 4) },
	} {
		U, err := dedup()
		assert.Nil(t, U, name)
		assert.ErrorIs(t, err, clusters.ErrOracle, name)
		assert.ErrorIs(t, err, errBroken, name)
	}
}

func TestParseDedupStrategy(t *testing.T) {
	strategy, ok := ParseDedupStrategy(clusters.DedupBucketed)
	assert.True(t, ok)
	assert.Equal(t, StrategyBucketed, strategy)

	// every name a valid config accepts has a strategy
	for _, name := range []string{clusters.DedupSerial, clusters.DedupParallel, clusters.DedupBucketed} {
		cfg := clusters.DefaultConfig()
		cfg.Dedup = name
		require.NoError(t, cfg.Validate())
		_, ok = ParseDedupStrategy(name)
		assert.True(t, ok, name)
	}

	_, ok = ParseDedupStrategy("quantum")
	assert.False(t, ok)
}
