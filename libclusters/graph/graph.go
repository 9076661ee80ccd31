package graph

import (
	"math/bits"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Graph is a simple undirected graph (no self-loops, no parallel edges).
//
// A Graph is never changed once built: AddVertex, AddEdges and Extend each return a new Graph,
// so a Graph can be shared read-only across goroutines.
type Graph struct {
	edges []Edge   // in the order added
	adj   []uint64 // adj[v] has bit u set iff edge {v,u} exists
}

// NewGraph builds a Graph with Nv vertices and the given edges.
func NewGraph(Nv int, edges []Edge) (*Graph, error) {
	if Nv < 0 {
		return nil, errors.Wrapf(ErrBadVtxID, "negative vertex count %d", Nv)
	}
	if Nv > MaxVertices {
		return nil, errors.Wrapf(ErrTooManyVertices, "%d vertices", Nv)
	}
	X := &Graph{
		edges: make([]Edge, 0, len(edges)),
		adj:   make([]uint64, Nv),
	}
	for _, e := range edges {
		if err := X.addEdge(e); err != nil {
			return nil, err
		}
	}
	return X, nil
}

// Build builds a Graph from an edge list, where the vertex count is one more than the largest vertex ID referenced.
func Build(edges []Edge) (*Graph, error) {
	Nv := 0
	for _, e := range edges {
		if e.A < 0 || e.B < 0 {
			return nil, errors.Wrapf(ErrBadVtxID, "edge %d-%d", e.A, e.B)
		}
		Nv = max(Nv, e.A+1, e.B+1)
	}
	return NewGraph(Nv, edges)
}

func (X *Graph) addEdge(e Edge) error {
	Nv := len(X.adj)
	if e.A < 0 || e.A >= Nv || e.B < 0 || e.B >= Nv {
		return errors.Wrapf(ErrBadVtxID, "edge %d-%d in graph with %d vertices", e.A, e.B, Nv)
	}
	if e.A == e.B {
		return errors.Wrapf(ErrSelfLoop, "edge %d-%d", e.A, e.B)
	}
	if X.adj[e.A]&(1<<uint(e.B)) != 0 {
		return errors.Wrapf(ErrDupEdge, "edge %d-%d", e.A, e.B)
	}
	X.adj[e.A] |= 1 << uint(e.B)
	X.adj[e.B] |= 1 << uint(e.A)
	X.edges = append(X.edges, e)
	return nil
}

// Copy returns a deep copy of X.
func (X *Graph) Copy() *Graph {
	return X.grow(0, 0)
}

// grow returns a copy of X with room for extraVtx more vertices and extraEdges more edges.
func (X *Graph) grow(extraVtx, extraEdges int) *Graph {
	Xc := &Graph{
		edges: make([]Edge, len(X.edges), len(X.edges)+extraEdges),
		adj:   make([]uint64, len(X.adj), len(X.adj)+extraVtx),
	}
	copy(Xc.edges, X.edges)
	copy(Xc.adj, X.adj)
	return Xc
}

// AddVertex returns a copy of X with one more (isolated) vertex, whose ID is X.NumVertices().
func (X *Graph) AddVertex() (*Graph, error) {
	if len(X.adj) >= MaxVertices {
		return nil, errors.Wrapf(ErrTooManyVertices, "cannot add vertex %d", len(X.adj))
	}
	Xc := X.grow(1, 0)
	Xc.adj = append(Xc.adj, 0)
	return Xc, nil
}

// AddEdges returns a copy of X with the given edges appended.
func (X *Graph) AddEdges(pairs []Edge) (*Graph, error) {
	Xc := X.grow(0, len(pairs))
	for _, e := range pairs {
		if err := Xc.addEdge(e); err != nil {
			return nil, err
		}
	}
	return Xc, nil
}

// Extend returns a copy of X with a new vertex n = X.NumVertices() and one edge (s, n) for each s in sites.
func (X *Graph) Extend(sites []VtxID) (*Graph, error) {
	n := len(X.adj)
	if n >= MaxVertices {
		return nil, errors.Wrapf(ErrTooManyVertices, "cannot add vertex %d", n)
	}
	Xc := X.grow(1, len(sites))
	Xc.adj = append(Xc.adj, 0)
	for _, s := range sites {
		if err := Xc.addEdge(Edge{A: s, B: n}); err != nil {
			return nil, err
		}
	}
	return Xc, nil
}

// NumVertices returns the vertex count of X.
func (X *Graph) NumVertices() int {
	return len(X.adj)
}

// NumEdges returns the edge count of X.
func (X *Graph) NumEdges() int {
	return len(X.edges)
}

// Degree returns the number of edges incident to vertex v.
func (X *Graph) Degree(v VtxID) int {
	return bits.OnesCount64(X.adj[v])
}

// Neighbors returns the adjacency bitset of vertex v.
func (X *Graph) Neighbors(v VtxID) uint64 {
	return X.adj[v]
}

// HasEdge returns true if a and b are adjacent.
func (X *Graph) HasEdge(a, b VtxID) bool {
	return X.adj[a]&(1<<uint(b)) != 0
}

// Edges returns the edges of X in the order they were added.
// The returned slice is owned by X and must not be modified.
func (X *Graph) Edges() []Edge {
	return X.edges
}

// DegreeSequence returns the vertex degrees sorted in descending order.
func (X *Graph) DegreeSequence() []int {
	seq := make([]int, len(X.adj))
	for v := range X.adj {
		seq[v] = X.Degree(v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(seq)))
	return seq
}

// AppendEdgePairs appends X's edges as whitespace-separated vertex index pairs, e.g. "0 1 0 2".
func (X *Graph) AppendEdgePairs(dst []byte) []byte {
	for i, e := range X.edges {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendInt(dst, int64(e.A), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, int64(e.B), 10)
	}
	return dst
}

func (X *Graph) String() string {
	var scrap [128]byte
	return string(X.AppendEdgePairs(scrap[:0]))
}
