package walker

import (
	"fmt"
	"hash/maphash"

	"golang.org/x/sync/errgroup"

	"github.com/2x3systems/clusters/clusters"
	"github.com/2x3systems/clusters/libclusters/graph"
)

// minShard is the fewest comparisons handed to a goroutine of its own.
const minShard = 32

// Dedup returns the subsequence of cands that survives a first-occurrence sweep: each candidate
// not yet removed removes every later candidate isomorphic to it, then is kept.
//
// Survivors keep their relative order and the earliest member of each isomorphism class is its representative.
// The returned slice is freshly allocated; cands is not modified.
func Dedup(cands []*graph.Graph, iso IsoFunc) ([]*graph.Graph, error) {
	removed := make([]bool, len(cands))
	unique := make([]*graph.Graph, 0, len(cands))
	for i, Xi := range cands {
		if removed[i] {
			continue
		}
		if err := sweep(cands, removed, i, i+1, len(cands), iso); err != nil {
			return nil, err
		}
		unique = append(unique, Xi)
	}
	return unique, nil
}

// DedupParallel returns the same result as Dedup, splitting each pivot's comparisons across workers.
//
// For pivot i, the range (i, n) is cut into contiguous disjoint shards and each goroutine writes
// only the removed markers of its own shard.  All shards finish (errgroup.Wait) before any marker
// is read to choose the next pivot.
func DedupParallel(cands []*graph.Graph, iso IsoFunc, workers int) ([]*graph.Graph, error) {
	if workers <= 1 {
		return Dedup(cands, iso)
	}

	n := len(cands)
	removed := make([]bool, n)
	unique := make([]*graph.Graph, 0, n)

	for i, Xi := range cands {
		if removed[i] {
			continue
		}

		rest := n - (i + 1)
		shards := min(workers, max(rest/minShard, 1))
		if shards == 1 {
			if err := sweep(cands, removed, i, i+1, n, iso); err != nil {
				return nil, err
			}
		} else {
			var g errgroup.Group
			for w := range shards {
				lo := i + 1 + rest*w/shards
				hi := i + 1 + rest*(w+1)/shards
				g.Go(func() error {
					return sweep(cands, removed, i, lo, hi, iso)
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}
		}

		unique = append(unique, Xi)
	}
	return unique, nil
}

// sweep marks removed[j] for each j in [lo, hi) whose candidate is isomorphic to cands[pivot].
// Only removed[lo:hi] is read or written.
func sweep(cands []*graph.Graph, removed []bool, pivot, lo, hi int, iso IsoFunc) error {
	Xi := cands[pivot]
	for j := lo; j < hi; j++ {
		if removed[j] {
			continue
		}
		same, err := iso(Xi, cands[j])
		if err != nil {
			return fmt.Errorf("%w: candidates %d and %d: %w", clusters.ErrOracle, pivot, j, err)
		}
		if same {
			removed[j] = true
		}
	}
	return nil
}

// DedupBucketed returns the same result as Dedup.
//
// Candidates are grouped by a hash of graph.InvariantKey (isomorphic graphs always share a bucket),
// each bucket is swept on its own goroutine into a private survivor list, and a single owner then
// merges the survivors back into original order.
func DedupBucketed(cands []*graph.Graph, iso IsoFunc, workers int) ([]*graph.Graph, error) {
	var hasher maphash.Hash
	var keyBuf [256]byte

	bucketOf := make(map[uint64]int)
	var buckets [][]int
	for i, X := range cands {
		hasher.Reset()
		hasher.Write(X.InvariantKey(keyBuf[:0]))
		hash := hasher.Sum64()

		b, found := bucketOf[hash]
		if !found {
			b = len(buckets)
			bucketOf[hash] = b
			buckets = append(buckets, nil)
		}
		buckets[b] = append(buckets[b], i)
	}

	keep := make([][]int, len(buckets))
	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for b, members := range buckets {
		g.Go(func() error {
			survivors, err := dedupMembers(cands, members, iso)
			keep[b] = survivors
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	survives := make([]bool, len(cands))
	count := 0
	for _, survivors := range keep {
		for _, i := range survivors {
			survives[i] = true
		}
		count += len(survivors)
	}
	unique := make([]*graph.Graph, 0, count)
	for i, X := range cands {
		if survives[i] {
			unique = append(unique, X)
		}
	}
	return unique, nil
}

// dedupMembers runs the Dedup sweep over the candidates indexed by members (ascending) and returns the surviving indices.
func dedupMembers(cands []*graph.Graph, members []int, iso IsoFunc) ([]int, error) {
	removed := make([]bool, len(members))
	var survivors []int
	for mi, i := range members {
		if removed[mi] {
			continue
		}
		for mj := mi + 1; mj < len(members); mj++ {
			if removed[mj] {
				continue
			}
			j := members[mj]
			same, err := iso(cands[i], cands[j])
			if err != nil {
				return nil, fmt.Errorf("%w: candidates %d and %d: %w", clusters.ErrOracle, i, j, err)
			}
			if same {
				removed[mj] = true
			}
		}
		survivors = append(survivors, i)
	}
	return survivors, nil
}

// dedup reduces cands using the strategy selected in opts.
func (opts *EnumOpts) dedup(cands []*graph.Graph) ([]*graph.Graph, error) {
	switch opts.Dedup {
	case StrategyParallel:
		return DedupParallel(cands, opts.iso(), opts.Workers)
	case StrategyBucketed:
		return DedupBucketed(cands, opts.iso(), opts.Workers)
	default:
		return Dedup(cands, opts.iso())
	}
}
