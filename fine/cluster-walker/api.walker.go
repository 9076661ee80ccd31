package walker

import (
	"github.com/2x3systems/clusters/clusters"
	"github.com/2x3systems/clusters/libclusters/combo"
	"github.com/2x3systems/clusters/libclusters/graph"
)

// Primary entry point for cluster topology enumeration: streams every unique graph grown from seed.
func EnumClusters(seed *graph.Graph, opts EnumOpts) (*clusters.GraphStream, error) {
	return enumClusters(seed, opts)
}

// IsoFunc decides whether two graphs are isomorphic.  A returned error aborts the dedup call.
type IsoFunc func(a, b *graph.Graph) (bool, error)

// DedupStrategy selects how a Candidate List is reduced to a Unique Set.
type DedupStrategy int

const (
	StrategySerial   DedupStrategy = iota // single goroutine, removed-marker sweep (Dedup)
	StrategyParallel                      // per-pivot sharded sweep with a barrier per pivot (DedupParallel)
	StrategyBucketed                      // invariant-key buckets deduplicated independently (DedupBucketed)
)

// ParseDedupStrategy maps a config name (see clusters.DedupSerial etc.) to a DedupStrategy.
func ParseDedupStrategy(name string) (DedupStrategy, bool) {
	switch name {
	case clusters.DedupSerial:
		return StrategySerial, true
	case clusters.DedupParallel:
		return StrategyParallel, true
	case clusters.DedupBucketed:
		return StrategyBucketed, true
	}
	return StrategySerial, false
}

// EnumOpts configures a growth run.
type EnumOpts struct {
	DegreeBound int           // a vertex is open iff its degree < DegreeBound
	MaxVertices int           // last generation grown (N_max)
	Workers     int           // goroutines used for extension and dedup; <= 1 runs serially
	Dedup       DedupStrategy // how candidates are deduplicated
	Iso         IsoFunc       // nil denotes graph.Isomorphic
	Combos      combo.Source  // nil denotes combo.Lexical

	Results   []clusters.ResultSink    // each generation's Unique Set is appended to every sink
	Telemetry []clusters.TelemetrySink // each generation's Record is sent to every sink
}

// Summary describes a completed run.
type Summary struct {
	Generations int   // number of Records emitted
	LastN       int   // vertex count of the final Unique Set
	FinalUnique int   // size of the final Unique Set
	TotalUnique int64 // unique graphs produced, seed included
	Saturated   bool  // true if the run ended because no candidates could be generated
}

func (opts *EnumOpts) iso() IsoFunc {
	if opts.Iso == nil {
		return graph.Isomorphic
	}
	return opts.Iso
}

func (opts *EnumOpts) combos() combo.Source {
	if opts.Combos == nil {
		return combo.Lexical{}
	}
	return opts.Combos
}
