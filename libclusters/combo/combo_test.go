package combo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(src Source, n, k int) [][]int {
	var all [][]int
	for it := src.Combinations(n, k); it.Next(); {
		all = append(all, it.Combination(nil))
	}
	return all
}

func TestLexicalOrder(t *testing.T) {
	assert.Equal(t, [][]int{
		{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
	}, collect(Lexical{}, 4, 2))

	assert.Equal(t, [][]int{{0}, {1}, {2}}, collect(Lexical{}, 3, 1))
	assert.Equal(t, [][]int{{0, 1, 2}}, collect(Lexical{}, 3, 3))

	assert.Empty(t, collect(Lexical{}, 3, 0))
	assert.Empty(t, collect(Lexical{}, 3, 4))
	assert.Empty(t, collect(Lexical{}, 0, 1))
}

func TestLexicalRestarts(t *testing.T) {
	src := Lexical{}
	assert.Equal(t, collect(src, 5, 3), collect(src, 5, 3))
	assert.Len(t, collect(src, 5, 3), 10)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 3, Count(2, 4))
	assert.Equal(t, 15, Count(4, 4))
	assert.Equal(t, 10, Count(4, 2))
	assert.Equal(t, 0, Count(0, 4))
	assert.Equal(t, 0, Count(4, 0))

	assert.Equal(t, 1<<60-1, Count(60, 60))
	assert.Equal(t, 61+61*60/2, Count(61, 2))
	assert.Equal(t, 1<<62-1, Count(62, 62))
	assert.Equal(t, math.MaxInt, Count(63, 63))
	assert.Equal(t, math.MaxInt, Count(64, 64))
}
