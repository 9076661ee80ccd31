package graph

import (
	"github.com/pkg/errors"
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/graph6"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph6 returns the graph6 encoding of X (vertex IDs are preserved; edge order is not).
func (X *Graph) Graph6() string {
	return string(graph6.Encode(X.gonumGraph()))
}

func (X *Graph) gonumGraph() gonum.Graph {
	G := simple.NewUndirectedGraph()
	for v := range X.NumVertices() {
		G.AddNode(simple.Node(v))
	}
	for _, e := range X.edges {
		G.SetEdge(simple.Edge{F: simple.Node(e.A), T: simple.Node(e.B)})
	}
	return G
}

// FromGraph6 decodes a graph6 string.  Edges are added in ascending (lo, hi) vertex order.
func FromGraph6(enc string) (*Graph, error) {
	G := graph6.Graph(enc)
	if !graph6.IsValid(G) {
		return nil, errors.Wrapf(ErrBadEncoding, "graph6 %q", enc)
	}

	Nv := G.Nodes().Len()
	var edges []Edge
	for lo := range Nv {
		for hi := lo + 1; hi < Nv; hi++ {
			if G.HasEdgeBetween(int64(lo), int64(hi)) {
				edges = append(edges, Edge{A: lo, B: hi})
			}
		}
	}
	return NewGraph(Nv, edges)
}
