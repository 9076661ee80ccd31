// Package combo provides k-subset enumeration of {0..n-1} in a fixed lexicographic order.
package combo

import (
	"math"
	"math/big"

	"gonum.org/v1/gonum/stat/combin"
)

// Iterator walks the k-subsets of one Combinations() call.
type Iterator interface {

	// Next advances to the next subset, returning false once all subsets have been visited.
	Next() bool

	// Combination writes the current subset into dst (allocating if dst is nil) and returns it.
	Combination(dst []int) []int
}

// Source yields a fresh, finite Iterator over the k-subsets of {0..n-1} for each call.
type Source interface {
	Combinations(n, k int) Iterator
}

// Lexical enumerates subsets in lexicographic order: {0,1}, {0,2}, {0,3}, {1,2}, ...
type Lexical struct{}

// Combinations returns an Iterator over the k-subsets of {0..n-1}; k outside 1..n yields nothing.
func (Lexical) Combinations(n, k int) Iterator {
	if k < 1 || k > n {
		return empty{}
	}
	return combin.NewCombinationGenerator(n, k)
}

type empty struct{}

func (empty) Next() bool                  { return false }
func (empty) Combination(dst []int) []int { return dst[:0] }

// maxExactN is the largest n for which combin.Binomial(n, k) cannot overflow.
const maxExactN = 60

// Count returns the number of subsets of size 1..kMax of an n-set: Σ C(n,k).
// The result saturates at math.MaxInt.
func Count(n, kMax int) int {
	kMax = min(n, kMax)
	total := 0
	if n <= maxExactN {
		for k := 1; k <= kMax; k++ {
			total += combin.Binomial(n, k)
		}
		return total
	}

	C := big.NewInt(1)
	for k := 1; k <= kMax; k++ {
		// C(n,k) = C(n,k-1) * (n-k+1) / k
		C.Mul(C, big.NewInt(int64(n-k+1)))
		C.Quo(C, big.NewInt(int64(k)))
		if !C.IsInt64() || C.Int64() > int64(math.MaxInt-total) {
			return math.MaxInt
		}
		total += int(C.Int64())
	}
	return total
}
