package perm

import (
	"math/big"
	"slices"

	"github.com/matzehuels/schreier/pkg/errors"
)

// Seq returns the slice [0, 1, 2, ..., n-1], the image array of the identity.
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! as an arbitrary-precision integer. For n <= 1 it
// returns 1. The symmetric group on n points has n! elements, which exceeds
// 64-bit range already at n = 21, so callers comparing against group orders
// must stay in big.Int arithmetic.
func Factorial(n int) *big.Int {
	result := big.NewInt(1)
	factor := new(big.Int)
	for i := 2; i <= n; i++ {
		result.Mul(result, factor.SetInt64(int64(i)))
	}
	return result
}

// Generate returns permutations of degree n using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Heap's algorithm produces each permutation exactly once in a
// non-lexicographic but deterministic order, starting with the identity.
// For n >= 13 the full set exceeds billions of elements; always pass a limit
// for large n. This is the brute-force enumerator used to cross-check
// stabilizer-chain results at small degree.
func Generate(n, limit int) []Permutation {
	if n == 0 {
		return []Permutation{{}}
	}

	images := Seq(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 && n <= 12 {
		capacity = int(Factorial(n).Int64())
	}
	result := make([]Permutation, 0, max(capacity, 1))
	result = append(result, Permutation{images: slices.Clone(images)})

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				images[0], images[i] = images[i], images[0]
			} else {
				images[state[i]], images[i] = images[i], images[state[i]]
			}
			result = append(result, Permutation{images: slices.Clone(images)})
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}

// FindPermutation returns the permutation p carrying the ordering from onto
// the ordering to: for every position i, from[p.Image(i)] == to[i]. Both
// slices must contain the same distinct values; anything else fails with
// NOT_A_BIJECTION (or INCOMPATIBLE_DEGREE for a length mismatch).
//
// This is the conversion boundary for callers that track group elements as
// relabelings of a reference sequence (e.g. stabilizer states under a gate)
// rather than as explicit image arrays.
func FindPermutation(from, to []int) (Permutation, error) {
	if len(from) != len(to) {
		return Permutation{}, errors.New(errors.ErrCodeIncompatibleDegree,
			"sequences have different lengths: %d and %d", len(from), len(to))
	}

	position := make(map[int]int, len(from))
	for i, v := range from {
		if _, dup := position[v]; dup {
			return Permutation{}, errors.New(errors.ErrCodeNotABijection,
				"value %d appears more than once", v)
		}
		position[v] = i
	}

	images := make([]int, len(to))
	for i, v := range to {
		j, ok := position[v]
		if !ok {
			return Permutation{}, errors.New(errors.ErrCodeNotABijection,
				"value %d is not a rearrangement of the source sequence", v)
		}
		images[i] = j
	}
	return New(images)
}
