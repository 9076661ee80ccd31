package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	X, err := Build([]Edge{{0, 1}, {1, 2}, {0, 3}})
	require.NoError(t, err)
	assert.Equal(t, 4, X.NumVertices())
	assert.Equal(t, 3, X.NumEdges())
	assert.Equal(t, []int{2, 2, 1, 1}, X.DegreeSequence())
	assert.True(t, X.HasEdge(3, 0))
	assert.False(t, X.HasEdge(2, 3))
	assert.Equal(t, "0 1 1 2 0 3", X.String())

	_, err = Build([]Edge{{0, 1}, {1, 1}})
	assert.ErrorIs(t, err, ErrSelfLoop)

	_, err = Build([]Edge{{0, 1}, {1, 0}})
	assert.ErrorIs(t, err, ErrDupEdge)

	_, err = Build([]Edge{{-1, 1}})
	assert.ErrorIs(t, err, ErrBadVtxID)

	_, err = NewGraph(2, []Edge{{0, 2}})
	assert.ErrorIs(t, err, ErrBadVtxID)

	_, err = NewGraph(MaxVertices+1, nil)
	assert.ErrorIs(t, err, ErrTooManyVertices)
}

func TestGrowIsCopyOnWrite(t *testing.T) {
	X, err := Build([]Edge{{0, 1}})
	require.NoError(t, err)

	Xv, err := X.AddVertex()
	require.NoError(t, err)
	assert.Equal(t, 3, Xv.NumVertices())
	assert.Equal(t, 0, Xv.Degree(2))

	Xe, err := Xv.AddEdges([]Edge{{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, "0 1 1 2", Xe.String())

	_, err = Xe.AddEdges([]Edge{{2, 1}})
	assert.ErrorIs(t, err, ErrDupEdge)

	Xx, err := Xe.Extend([]VtxID{0, 2})
	require.NoError(t, err)
	assert.Equal(t, "0 1 1 2 0 3 2 3", Xx.String())
	assert.Equal(t, 2, Xx.Degree(3))

	// originals are untouched
	assert.Equal(t, "0 1", X.String())
	assert.Equal(t, 2, X.NumVertices())
	assert.Equal(t, 1, Xv.NumEdges())
	assert.Equal(t, 1, Xe.Degree(0))

	Xc := Xx.Copy()
	if diff := cmp.Diff(Xx.Edges(), Xc.Edges()); diff != "" {
		t.Errorf("Copy() edges mismatch (-want +got):\n%s", diff)
	}
	Xc2, err := Xc.AddVertex()
	require.NoError(t, err)
	assert.Equal(t, 4, Xx.NumVertices())
	assert.Equal(t, 5, Xc2.NumVertices())
}

func TestExtendLimits(t *testing.T) {
	X, err := NewGraph(MaxVertices, nil)
	require.NoError(t, err)

	_, err = X.Extend([]VtxID{0})
	assert.ErrorIs(t, err, ErrTooManyVertices)

	_, err = X.AddVertex()
	assert.ErrorIs(t, err, ErrTooManyVertices)

	Y, err := Build([]Edge{{0, 1}})
	require.NoError(t, err)
	_, err = Y.Extend([]VtxID{0, 0})
	assert.ErrorIs(t, err, ErrDupEdge)
}

func TestParseEdgeExpr(t *testing.T) {
	X, err := ParseEdgeExpr("0-1-2, 2-3, 5")
	require.NoError(t, err)
	assert.Equal(t, 6, X.NumVertices())
	assert.Equal(t, "0 1 1 2 2 3", X.String())
	assert.Equal(t, 0, X.Degree(4))

	X, err = ParseEdgeExpr(" 0-1 1-2 ")
	require.NoError(t, err)
	assert.Equal(t, "0 1 1 2", X.String())

	X, err = ParseEdgeExpr("")
	require.NoError(t, err)
	assert.Equal(t, 0, X.NumVertices())

	_, err = ParseEdgeExpr("0-")
	assert.ErrorIs(t, err, ErrBadEdgeExpr)

	_, err = ParseEdgeExpr("0-a")
	assert.ErrorIs(t, err, ErrBadEdgeExpr)

	_, err = ParseEdgeExpr("0-1-0")
	assert.ErrorIs(t, err, ErrDupEdge)
}

func TestGraph6(t *testing.T) {
	for _, tc := range []struct {
		expr string
		enc  string
	}{
		{"0-1", "A_"},
		{"0-1-2", "Bg"},
		{"0-1-2-0", "Bw"},
	} {
		X, err := ParseEdgeExpr(tc.expr)
		require.NoError(t, err)
		assert.Equal(t, tc.enc, X.Graph6(), tc.expr)

		Y, err := FromGraph6(tc.enc)
		require.NoError(t, err)
		same, err := Isomorphic(X, Y)
		require.NoError(t, err)
		assert.True(t, same, tc.expr)
	}

	X, err := ParseEdgeExpr("0-3-1-4, 2-4-0")
	require.NoError(t, err)
	Y, err := FromGraph6(X.Graph6())
	require.NoError(t, err)
	assert.Equal(t, X.NumVertices(), Y.NumVertices())
	for _, e := range X.Edges() {
		assert.True(t, Y.HasEdge(e.A, e.B))
	}
	assert.Equal(t, X.NumEdges(), Y.NumEdges())
}

func TestTraces(t *testing.T) {
	triangle, err := ParseEdgeExpr("0-1-2-0")
	require.NoError(t, err)
	assert.Equal(t, Traces{0, 6, 6, 18}, triangle.Traces(4))

	path, err := ParseEdgeExpr("0-1-2")
	require.NoError(t, err)
	assert.Equal(t, Traces{0, 4, 0, 8}, path.Traces(4))
	assert.Len(t, path.Traces(0), 3)

	assert.True(t, Traces{0, 4}.IsEqual(Traces{0, 4, 0, 8}))
	assert.False(t, Traces{0, 6}.IsEqual(Traces{0, 4, 0, 8}))
}

func TestInvariantKey(t *testing.T) {
	a, err := ParseEdgeExpr("0-1, 0-2, 0-3")
	require.NoError(t, err)
	b, err := ParseEdgeExpr("3-0, 3-1, 3-2")
	require.NoError(t, err)
	c, err := ParseEdgeExpr("0-1-2-3")
	require.NoError(t, err)

	assert.Equal(t, a.InvariantKey(nil), b.InvariantKey(nil))
	assert.NotEqual(t, a.InvariantKey(nil), c.InvariantKey(nil))
}
