package graph

import (
	"encoding/binary"
	"math/bits"
	"slices"
	"sort"
)

// Isomorphic returns true if a and b are the same graph up to a relabeling of vertices.
//
// Cheap invariants (vertex and edge counts, degree sequence, traces) are compared first.
// Vertices are then colored by iterated neighborhood refinement run jointly over both graphs,
// and a backtracking search looks for a color-preserving bijection that preserves adjacency.
func Isomorphic(a, b *Graph) (bool, error) {
	if a == nil || b == nil {
		return false, ErrNilGraph
	}
	if a.NumVertices() != b.NumVertices() || a.NumEdges() != b.NumEdges() {
		return false, nil
	}
	if !slices.Equal(a.DegreeSequence(), b.DegreeSequence()) {
		return false, nil
	}
	if !a.Traces(DefaultNumTraces).IsEqual(b.Traces(DefaultNumTraces)) {
		return false, nil
	}

	ca, cb, ok := refineColors(a, b)
	if !ok {
		return false, nil
	}

	m := isoMatcher{
		a:     a,
		b:     b,
		ca:    ca,
		cb:    cb,
		order: searchOrder(a, ca),
		mapAB: make([]VtxID, a.NumVertices()),
	}
	return m.match(0), nil
}

// refineColors assigns each vertex of a and b a color such that an isomorphism can only map
// a vertex onto a vertex of the same color. Returns false if the color histograms differ.
func refineColors(a, b *Graph) (ca, cb []int, ok bool) {
	Nv := a.NumVertices()
	ca = make([]int, Nv)
	cb = make([]int, Nv)
	for v := range Nv {
		ca[v] = a.Degree(v)
		cb[v] = b.Degree(v)
	}

	numColors := -1
	for {
		ids := make(map[string]int, 2*Nv)
		na := recolor(a, ca, ids)
		nb := recolor(b, cb, ids)

		hist := make([]int, len(ids))
		for v := range Nv {
			hist[na[v]]++
			hist[nb[v]]--
		}
		for _, h := range hist {
			if h != 0 {
				return nil, nil, false
			}
		}

		ca, cb = na, nb
		if len(ids) == numColors {
			return ca, cb, true
		}
		numColors = len(ids)
	}
}

// recolor maps each vertex to the ID of (own color, sorted neighbor colors), issuing IDs from ids.
func recolor(X *Graph, colors []int, ids map[string]int) []int {
	out := make([]int, len(colors))
	nbr := make([]int, 0, len(colors))
	var sig []byte

	for v := range colors {
		nbr = nbr[:0]
		for nbrs := X.adj[v]; nbrs != 0; nbrs &= nbrs - 1 {
			nbr = append(nbr, colors[bits.TrailingZeros64(nbrs)])
		}
		sort.Ints(nbr)

		sig = binary.AppendUvarint(sig[:0], uint64(colors[v]))
		for _, c := range nbr {
			sig = binary.AppendUvarint(sig, uint64(c))
		}
		id, found := ids[string(sig)]
		if !found {
			id = len(ids)
			ids[string(sig)] = id
		}
		out[v] = id
	}
	return out
}

// searchOrder orders the vertices of X so that each vertex has as many already-placed neighbors as possible,
// preferring vertices from small color classes.
func searchOrder(X *Graph, colors []int) []VtxID {
	Nv := X.NumVertices()
	classSize := make(map[int]int, Nv)
	for _, c := range colors {
		classSize[c]++
	}

	order := make([]VtxID, 0, Nv)
	placed := uint64(0)
	for len(order) < Nv {
		best, bestLinks, bestSize := -1, -1, 0
		for v := range Nv {
			if placed&(1<<uint(v)) != 0 {
				continue
			}
			links := bits.OnesCount64(X.adj[v] & placed)
			size := classSize[colors[v]]
			if links > bestLinks || (links == bestLinks && size < bestSize) {
				best, bestLinks, bestSize = v, links, size
			}
		}
		order = append(order, best)
		placed |= 1 << uint(best)
	}
	return order
}

type isoMatcher struct {
	a, b   *Graph
	ca, cb []int
	order  []VtxID // a's vertices in search order
	mapAB  []VtxID // mapAB[u] is the b vertex assigned to a's vertex u
	usedB  uint64
}

func (m *isoMatcher) match(depth int) bool {
	if depth == len(m.order) {
		return true
	}
	u := m.order[depth]
	for w := range m.b.NumVertices() {
		if m.usedB&(1<<uint(w)) != 0 || m.cb[w] != m.ca[u] {
			continue
		}
		if !m.consistent(u, w, depth) {
			continue
		}
		m.mapAB[u] = w
		m.usedB |= 1 << uint(w)
		if m.match(depth + 1) {
			return true
		}
		m.usedB &^= 1 << uint(w)
	}
	return false
}

// consistent returns true if mapping u onto w preserves adjacency with every vertex placed so far.
func (m *isoMatcher) consistent(u, w VtxID, depth int) bool {
	for _, up := range m.order[:depth] {
		if m.a.HasEdge(u, up) != m.b.HasEdge(w, m.mapAB[up]) {
			return false
		}
	}
	return true
}
