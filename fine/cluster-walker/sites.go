package walker

import (
	"github.com/2x3systems/clusters/libclusters/graph"
)

// OpenSites returns, in ascending order, the vertices of X whose degree is below degreeBound.
// An empty result means X is saturated and cannot grow.
func OpenSites(X *graph.Graph, degreeBound int) []graph.VtxID {
	var open []graph.VtxID
	for v := range X.NumVertices() {
		if X.Degree(v) < degreeBound {
			open = append(open, v)
		}
	}
	return open
}
