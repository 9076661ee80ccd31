// Package clusters declares the collaborators of a cluster growth run: where unique graphs go
// (ResultSink), where per-generation counters go (TelemetrySink), and how a run is configured.
package clusters

import (
	"time"

	"github.com/2x3systems/clusters/libclusters/graph"
)

// ResultSink persists each generation's Unique Set.
type ResultSink interface {

	// AppendUnique appends every graph of U, in order.  N is the vertex count of U's members.
	// A returned error is fatal to the run.
	AppendUnique(N int, U []*graph.Graph) error
}

// TelemetrySink consumes one Record per completed generation.
type TelemetrySink interface {
	OnGeneration(rec Record)
}

// Record holds the counters and timings of one generation.
type Record struct {
	N           int           // vertex count of this generation's graphs
	Candidates  int           // raw candidates generated
	GenTime     time.Duration // time spent generating candidates
	Unique      int           // candidates surviving deduplication
	FilterTime  time.Duration // time spent deduplicating
	TotalUnique int64         // unique graphs produced so far, seed included
	WriteTime   time.Duration // time spent persisting the previous Unique Set
	TotalTime   time.Duration // time since the run started
}

// Closer is implemented by sinks that hold resources (files, databases) until the run completes.
type Closer interface {
	Close() error
}
