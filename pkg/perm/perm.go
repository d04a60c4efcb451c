// Package perm implements permutations of a finite domain {0, 1, ..., n-1}.
//
// A [Permutation] is an immutable bijection value: composition, inversion,
// cycle decomposition, element order and parity are all exact. The package
// also provides cycle-notation parsing and printing ([ParseCycles],
// [Permutation.String]) and brute-force enumeration helpers ([Generate])
// used for cross-checking group computations at small degree.
//
// Permutations are safe for concurrent use: all operations return new values
// and never mutate their receivers or arguments.
package perm

import (
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/schreier/pkg/errors"
)

// Permutation is an immutable bijection of {0, 1, ..., n-1} onto itself,
// where n is the degree. Point i is mapped to the i-th entry of the image
// array.
//
// The zero value is the unique permutation of degree 0. Use [New],
// [Identity], [FromCycles] or [ParseCycles] to construct non-trivial values.
type Permutation struct {
	images []int
}

// New constructs a permutation from an explicit image array: point i maps to
// images[i]. The input is validated as a bijection; a slice with values
// outside [0, len) or with repeated values fails with a NOT_A_BIJECTION
// error. The slice is copied, so the caller may reuse it.
func New(images []int) (Permutation, error) {
	n := len(images)
	seen := make([]bool, n)
	for i, v := range images {
		if v < 0 || v >= n {
			return Permutation{}, errors.New(errors.ErrCodeNotABijection,
				"image of %d is %d, outside the domain [0, %d)", i, v, n)
		}
		if seen[v] {
			return Permutation{}, errors.New(errors.ErrCodeNotABijection,
				"value %d appears more than once in the image array", v)
		}
		seen[v] = true
	}
	return Permutation{images: slices.Clone(images)}, nil
}

// Identity returns the identity permutation of degree n: every point maps to
// itself. The identity is a valid group element and a valid (trivial)
// generator.
func Identity(n int) Permutation {
	images := make([]int, n)
	for i := range images {
		images[i] = i
	}
	return Permutation{images: images}
}

// Degree returns the size of the domain the permutation acts on.
func (p Permutation) Degree() int { return len(p.images) }

// Images returns a copy of the image array. Mutating the returned slice does
// not affect the permutation.
func (p Permutation) Images() []int { return slices.Clone(p.images) }

// Apply returns the image of point under p. Points at or beyond the degree
// fail with a POINT_OUT_OF_RANGE error.
func (p Permutation) Apply(point int) (int, error) {
	if point < 0 || point >= len(p.images) {
		return 0, errors.New(errors.ErrCodePointOutOfRange,
			"point %d is outside the domain [0, %d)", point, len(p.images))
	}
	return p.images[point], nil
}

// Image returns the image of point under p without range checking; it panics
// when point is outside [0, degree). Use [Permutation.Apply] for inputs that
// are not known to be in range.
func (p Permutation) Image(point int) int { return p.images[point] }

// Equal reports whether p and q are the same bijection of the same domain.
func (p Permutation) Equal(q Permutation) bool {
	return slices.Equal(p.images, q.images)
}

// IsIdentity reports whether p fixes every point of its domain.
func (p Permutation) IsIdentity() bool {
	for i, v := range p.images {
		if i != v {
			return false
		}
	}
	return true
}

// Key returns a canonical string encoding of the image array, suitable as a
// map key when deduplicating permutations. Two permutations have equal keys
// iff they are Equal.
func (p Permutation) Key() string {
	if len(p.images) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range p.images {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// Compose returns the permutation applying b first and then a, that is
// (a∘b)(x) = a(b(x)). Operands of different degree fail with an
// INCOMPATIBLE_DEGREE error.
//
// This right-to-left convention is used consistently throughout the module,
// including the Schreier generator construction in the group package.
func Compose(a, b Permutation) (Permutation, error) {
	if len(a.images) != len(b.images) {
		return Permutation{}, errors.New(errors.ErrCodeIncompatibleDegree,
			"cannot compose a permutation of degree %d with one of degree %d",
			len(a.images), len(b.images))
	}
	images := make([]int, len(a.images))
	for i := range images {
		images[i] = a.images[b.images[i]]
	}
	return Permutation{images: images}, nil
}

// Product composes one or more permutations right to left: the last operand
// applies first, matching [Compose]. Degree mismatches fail with
// INCOMPATIBLE_DEGREE; an empty operand list fails with INVALID_INPUT since
// the degree of the identity result would be undefined.
func Product(ps ...Permutation) (Permutation, error) {
	if len(ps) == 0 {
		return Permutation{}, errors.New(errors.ErrCodeInvalidInput,
			"product of zero permutations has no defined degree")
	}
	result := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		var err error
		result, err = Compose(ps[i], result)
		if err != nil {
			return Permutation{}, err
		}
	}
	return result, nil
}

// Inverse returns the permutation q with q(p(i)) = i for every point i.
func (p Permutation) Inverse() Permutation {
	images := make([]int, len(p.images))
	for i, v := range p.images {
		images[v] = i
	}
	return Permutation{images: images}
}

// Cycles returns the disjoint cycle decomposition of p covering the full
// domain, including singleton cycles for fixed points. Each cycle starts at
// its smallest element and cycles are ordered by first element, so the
// result is deterministic. Use [Permutation.NontrivialCycles] to omit fixed
// points.
func (p Permutation) Cycles() [][]int {
	return p.cycles(true)
}

// NontrivialCycles returns the disjoint cycles of length two or more, in the
// same deterministic order as [Permutation.Cycles]. The identity decomposes
// into no nontrivial cycles.
func (p Permutation) NontrivialCycles() [][]int {
	return p.cycles(false)
}

func (p Permutation) cycles(includeFixed bool) [][]int {
	visited := make([]bool, len(p.images))
	var result [][]int
	for start := range p.images {
		if visited[start] {
			continue
		}
		cycle := []int{start}
		visited[start] = true
		for next := p.images[start]; next != start; next = p.images[next] {
			cycle = append(cycle, next)
			visited[next] = true
		}
		if includeFixed || len(cycle) > 1 {
			result = append(result, cycle)
		}
	}
	return result
}

// FromCycles reconstructs a permutation of degree n from disjoint cycles.
// Points absent from every cycle are fixed. Overlapping cycles or points
// outside [0, n) fail with NOT_A_BIJECTION or POINT_OUT_OF_RANGE
// respectively, so FromCycles(n, p.Cycles()) always round-trips.
func FromCycles(n int, cycles [][]int) (Permutation, error) {
	images := make([]int, n)
	for i := range images {
		images[i] = i
	}
	used := make([]bool, n)
	for _, cycle := range cycles {
		for i, point := range cycle {
			if point < 0 || point >= n {
				return Permutation{}, errors.New(errors.ErrCodePointOutOfRange,
					"cycle point %d is outside the domain [0, %d)", point, n)
			}
			if used[point] {
				return Permutation{}, errors.New(errors.ErrCodeNotABijection,
					"point %d appears in more than one cycle", point)
			}
			used[point] = true
			images[point] = cycle[(i+1)%len(cycle)]
		}
	}
	return Permutation{images: images}, nil
}

// Order returns the order of p as a group element: the least positive k with
// p^k equal to the identity, computed as the least common multiple of the
// cycle lengths. The result is arbitrary precision; at degree n it can grow
// as fast as Landau's function g(n).
func (p Permutation) Order() *big.Int {
	order := big.NewInt(1)
	length := new(big.Int)
	gcd := new(big.Int)
	for _, cycle := range p.NontrivialCycles() {
		length.SetInt64(int64(len(cycle)))
		gcd.GCD(nil, nil, order, length)
		order.Div(order.Mul(order, length), gcd)
	}
	return order
}

// Parity returns +1 for even permutations and -1 for odd ones, computed as
// (-1)^(n - #cycles) over the full cycle decomposition.
func (p Permutation) Parity() int {
	if (len(p.images)-len(p.Cycles()))%2 == 0 {
		return 1
	}
	return -1
}

// SmallestMovedPoint returns the smallest point not fixed by p, or -1 for
// the identity. The stabilizer-chain builder uses this as its deterministic
// base-selection rule.
func (p Permutation) SmallestMovedPoint() int {
	for i, v := range p.images {
		if i != v {
			return i
		}
	}
	return -1
}

// String renders p in cycle notation, e.g. "(0 1 2)(3 4)". Fixed points are
// omitted; the identity renders as "()".
func (p Permutation) String() string {
	return FormatCycles(p)
}
