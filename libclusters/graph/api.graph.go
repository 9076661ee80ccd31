package graph

import (
	"errors"
)

const (

	// MaxVertices is the max number of vertices a Graph can hold (one adjacency word per vertex).
	MaxVertices = 64

	// DefaultNumTraces is the number of traces used when forming an InvariantKey.
	DefaultNumTraces = 8
)

// Errors
var (
	ErrBadVtxID        = errors.New("bad graph vertex ID")
	ErrSelfLoop        = errors.New("self-loop edge")
	ErrDupEdge         = errors.New("duplicate edge")
	ErrNilGraph        = errors.New("nil graph")
	ErrTooManyVertices = errors.New("vertex count exceeds MaxVertices")
	ErrBadEncoding     = errors.New("bad graph encoding")
	ErrBadEdgeExpr     = errors.New("bad edge expression")
)

// VtxID is a zero-based vertex index (0..MaxVertices-1)
type VtxID = int

// Edge is an unordered vertex pair, kept in the order it was added.
type Edge struct {
	A VtxID
	B VtxID
}
