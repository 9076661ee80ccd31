package walker

import (
	"fmt"
	"slices"
	"time"

	"github.com/plan-systems/klog"

	"github.com/2x3systems/clusters/clusters"
	"github.com/2x3systems/clusters/libclusters/graph"
)

func enumClusters(seed *graph.Graph, opts EnumOpts) (*clusters.GraphStream, error) {
	stream := clusters.NewGraphStream()
	opts.Results = append(slices.Clone(opts.Results), stream)

	gw, err := NewWalker(opts)
	if err != nil {
		return nil, err
	}
	if err = checkSeed(seed); err != nil {
		return nil, err
	}

	go func() {
		_, err := gw.Run(seed)
		stream.CloseWithError(err)
	}()

	return stream, nil
}

// Walker grows a seed generation by generation, keeping one representative per isomorphism class.
type Walker struct {
	opts EnumOpts
}

// NewWalker validates opts and returns a Walker ready to Run.
func NewWalker(opts EnumOpts) (*Walker, error) {
	if opts.DegreeBound < 1 {
		return nil, fmt.Errorf("%w: degree bound %d must be at least 1", clusters.ErrBadConfig, opts.DegreeBound)
	}
	if opts.MaxVertices > graph.MaxVertices {
		return nil, fmt.Errorf("%w: max vertices %d exceeds %d", clusters.ErrBadConfig, opts.MaxVertices, graph.MaxVertices)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Walker{
		opts: opts,
	}, nil
}

func checkSeed(seed *graph.Graph) error {
	if seed == nil || seed.NumVertices() == 0 {
		return clusters.ErrBadSeed
	}
	return nil
}

// Run grows seed until the generation of MaxVertices-vertex graphs is complete or no graph can grow.
//
// Each Unique Set (the seed included) is appended to every ResultSink exactly once, and one Record
// per deduplicated generation goes to every TelemetrySink.  Any error aborts the run.
func (gw *Walker) Run(seed *graph.Graph) (Summary, error) {
	var sum Summary
	if err := checkSeed(seed); err != nil {
		return sum, err
	}

	opts := &gw.opts
	src := opts.combos()
	start := time.Now()

	U := []*graph.Graph{seed}
	sum.LastN = seed.NumVertices()
	sum.FinalUnique = 1
	sum.TotalUnique = 1

	klog.V(1).Infof("growing %v to %d vertices (degree bound %d, %d workers)", seed, opts.MaxVertices, opts.DegreeBound, opts.Workers)

	for N := seed.NumVertices() + 1; N <= opts.MaxVertices; N++ {
		t0 := time.Now()
		cands, err := ExtendAll(U, opts.DegreeBound, src, opts.Workers)
		if err != nil {
			return sum, err
		}
		genTime := time.Since(t0)

		t0 = time.Now()
		if err = gw.persist(N-1, U); err != nil {
			return sum, err
		}
		writeTime := time.Since(t0)
		U = nil

		if len(cands) == 0 {
			klog.V(1).Infof("N=%d: no open sites remain", N)
			sum.Saturated = true
			return sum, nil
		}

		t0 = time.Now()
		U, err = opts.dedup(cands)
		if err != nil {
			return sum, err
		}
		filterTime := time.Since(t0)

		sum.Generations++
		sum.LastN = N
		sum.FinalUnique = len(U)
		sum.TotalUnique += int64(len(U))

		rec := clusters.Record{
			N:           N,
			Candidates:  len(cands),
			GenTime:     genTime,
			Unique:      len(U),
			FilterTime:  filterTime,
			TotalUnique: sum.TotalUnique,
			WriteTime:   writeTime,
			TotalTime:   time.Since(start),
		}
		for _, sink := range opts.Telemetry {
			sink.OnGeneration(rec)
		}
	}

	if err := gw.persist(sum.LastN, U); err != nil {
		return sum, err
	}

	klog.V(1).Infof("done: %d generations, %d unique graphs", sum.Generations, sum.TotalUnique)
	return sum, nil
}

func (gw *Walker) persist(N int, U []*graph.Graph) error {
	for _, sink := range gw.opts.Results {
		if err := sink.AppendUnique(N, U); err != nil {
			return fmt.Errorf("%w: N=%d: %w", clusters.ErrSink, N, err)
		}
	}
	return nil
}
