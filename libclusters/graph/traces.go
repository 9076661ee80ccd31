package graph

import (
	"encoding/binary"
	"math/bits"
)

// Traces is a sequence of closed walk counts: TX[i] = trace(A^(i+1)) where A is the adjacency matrix.
//
// Isomorphic graphs always have equal Traces, so unequal Traces prove two graphs are not isomorphic.
// Values wrap on overflow, which preserves that property.
type Traces []int64

// IsEqual returns if two traces have the same prefix.
// The number of elements compared is the trace with the shorter length, so a Traces of length 0 will be equal to all other Traces.
func (TX Traces) IsEqual(target Traces) bool {
	N := min(len(TX), len(target))
	for i := 0; i < N; i++ {
		if TX[i] != target[i] {
			return false
		}
	}
	return true
}

// AppendTraceSpecTo appends a binary encoding of TX: a length byte followed by each trace as a varint.
func (TX Traces) AppendTraceSpecTo(io []byte) []byte {
	io = append(io, byte(len(TX)))
	for _, TXi := range TX {
		io = binary.AppendVarint(io, TXi)
	}
	return io
}

// Traces returns the first numTraces traces of X (numTraces <= 0 denotes X.NumVertices()).
func (X *Graph) Traces(numTraces int) Traces {
	Nv := X.NumVertices()
	Nt := numTraces
	if Nt <= 0 {
		Nt = Nv
	}
	TX := make(Traces, Nt)
	if Nv == 0 {
		return TX
	}

	NvNv := Nv * Nv
	scrap := make([]int64, NvNv*2)
	Ci0 := scrap[:NvNv]
	Ci1 := scrap[NvNv:]

	// Ci0 starts as the identity matrix
	for vi := range Nv {
		Ci0[Nv*vi+vi] = 1
	}

	for ti := range Nt {
		TX_ti := int64(0)

		for vi := range Nv {
			Ci0_vi := Ci0[Nv*vi : Nv*(vi+1)]
			Ci1_vi := Ci1[Nv*vi : Nv*(vi+1)]

			// row vi of Ci0 * A: pull walk counts over each edge into vj
			for vj := range Nv {
				flow := int64(0)
				for nbrs := X.adj[vj]; nbrs != 0; nbrs &= nbrs - 1 {
					flow += Ci0_vi[bits.TrailingZeros64(nbrs)]
				}
				Ci1_vi[vj] = flow
			}

			TX_ti += Ci1_vi[vi]
		}

		TX[ti] = TX_ti
		Ci0, Ci1 = Ci1, Ci0
	}

	return TX
}

// InvariantKey appends a key to io that is equal for any two isomorphic graphs:
// vertex count, edge count, degree sequence, and the first DefaultNumTraces traces.
func (X *Graph) InvariantKey(io []byte) []byte {
	io = binary.AppendUvarint(io, uint64(X.NumVertices()))
	io = binary.AppendUvarint(io, uint64(X.NumEdges()))
	for _, deg := range X.DegreeSequence() {
		io = append(io, byte(deg))
	}
	return X.Traces(DefaultNumTraces).AppendTraceSpecTo(io)
}
