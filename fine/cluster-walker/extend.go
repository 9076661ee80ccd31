package walker

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/2x3systems/clusters/libclusters/combo"
	"github.com/2x3systems/clusters/libclusters/graph"
)

// maxPrealloc caps how many candidate slots are reserved up front.
const maxPrealloc = 1 << 16

// Extend returns every candidate grown from X by adding one vertex n = X.NumVertices() joined to a
// k-subset of X's open sites, for k = 1..min(len(open), degreeBound).
//
// Candidates are ordered by k ascending, then by src's subset order over positions into the open site list.
// No deduplication happens here.
func Extend(X *graph.Graph, degreeBound int, src combo.Source) ([]*graph.Graph, error) {
	open := OpenSites(X, degreeBound)
	m := len(open)
	if m == 0 {
		return nil, nil
	}
	kMax := min(m, degreeBound)

	cands := make([]*graph.Graph, 0, min(CountExtensions(m, degreeBound), maxPrealloc))
	sites := make([]graph.VtxID, 0, kMax)

	for k := 1; k <= kMax; k++ {
		pos := make([]int, k)
		for it := src.Combinations(m, k); it.Next(); {
			pos = it.Combination(pos)

			sites = sites[:0]
			for _, p := range pos {
				sites = append(sites, open[p])
			}

			Xc, err := X.Extend(sites)
			if err != nil {
				return nil, errors.Wrapf(err, "extending %q at sites %v", X.String(), sites)
			}
			cands = append(cands, Xc)
		}
	}
	return cands, nil
}

// CountExtensions returns how many candidates Extend produces for a graph with m open sites.
func CountExtensions(m, degreeBound int) int {
	return combo.Count(m, degreeBound)
}

// ExtendAll runs Extend for each graph of U using up to workers goroutines and concatenates the
// results in U's order.  src must be safe for concurrent use.
func ExtendAll(U []*graph.Graph, degreeBound int, src combo.Source, workers int) ([]*graph.Graph, error) {
	perParent := make([][]*graph.Graph, len(U))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, X := range U {
		g.Go(func() error {
			cands, err := Extend(X, degreeBound, src)
			perParent[i] = cands
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, cands := range perParent {
		total += len(cands)
	}
	all := make([]*graph.Graph, 0, total)
	for _, cands := range perParent {
		all = append(all, cands...)
	}
	return all, nil
}
