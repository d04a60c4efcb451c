// Package group implements permutation groups given by generating sets.
//
// A [Group] wraps an ordered generator list and a lazily built, cached
// stabilizer chain (base and strong generating set, constructed with the
// Schreier-Sims algorithm). The chain answers the group-theoretic queries
// ([Group.Order], [Group.Contains], [Group.RandomElement]) without ever
// enumerating the group, whose size grows factorially in the degree.
//
// The building blocks are exported too: [Orbit] computes the orbit of a
// point under a generator set together with a Schreier vector, from which
// [SchreierVector.Transversal] reconstructs witness permutations.
package group

import (
	"slices"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/perm"
)

// vectorEntry records how a point was first reached during orbit expansion:
// applying generator gen to point pred. The root carries gen == -1.
type vectorEntry struct {
	gen  int
	pred int
}

// SchreierVector is the result of an orbit computation: the set of points
// reachable from a root under a generator set, plus one witness edge per
// point recording how it was first discovered. Walking witness edges back to
// the root reconstructs a transversal element for any orbit point.
//
// A SchreierVector is immutable after construction and safe for concurrent
// reads.
type SchreierVector struct {
	degree  int
	root    int
	gens    []perm.Permutation
	entries map[int]vectorEntry
	points  []int // discovery order, points[0] == root
}

// Orbit computes the orbit of point under gens by breadth-first closure:
// starting from {point}, every generator is applied to every discovered
// point until a pass adds nothing new. The domain is finite, so this always
// terminates. The orbit as a set is independent of generator order; only the
// discovery order may differ.
//
// An empty generator set is valid and yields the singleton orbit {point}.
// The degree is passed explicitly so that case stays well-defined;
// generators of a different degree fail with INCOMPATIBLE_DEGREE and a point
// outside [0, degree) fails with POINT_OUT_OF_RANGE.
func Orbit(degree, point int, gens []perm.Permutation) (*SchreierVector, error) {
	if point < 0 || point >= degree {
		return nil, errors.New(errors.ErrCodePointOutOfRange,
			"orbit root %d is outside the domain [0, %d)", point, degree)
	}
	for _, g := range gens {
		if g.Degree() != degree {
			return nil, errors.New(errors.ErrCodeIncompatibleDegree,
				"generator %s has degree %d, want %d", g, g.Degree(), degree)
		}
	}

	sv := &SchreierVector{
		degree:  degree,
		root:    point,
		gens:    slices.Clone(gens),
		entries: map[int]vectorEntry{point: {gen: -1, pred: point}},
		points:  []int{point},
	}

	for i := 0; i < len(sv.points); i++ {
		p := sv.points[i]
		for gi, g := range gens {
			image := g.Image(p)
			if _, seen := sv.entries[image]; !seen {
				sv.entries[image] = vectorEntry{gen: gi, pred: p}
				sv.points = append(sv.points, image)
			}
		}
	}
	return sv, nil
}

// Root returns the point the orbit was expanded from.
func (sv *SchreierVector) Root() int { return sv.root }

// Degree returns the domain size the orbit lives in.
func (sv *SchreierVector) Degree() int { return sv.degree }

// Len returns the number of points in the orbit.
func (sv *SchreierVector) Len() int { return len(sv.points) }

// Points returns the orbit in discovery order, starting with the root.
// The returned slice is a copy.
func (sv *SchreierVector) Points() []int { return slices.Clone(sv.points) }

// Contains reports whether point lies in the orbit.
func (sv *SchreierVector) Contains(point int) bool {
	_, ok := sv.entries[point]
	return ok
}

// Transversal reconstructs a permutation mapping the root to point by
// walking the Schreier vector back to the root and composing the generators
// used along the way, first-applied rightmost. Points outside the orbit fail
// with POINT_NOT_IN_ORBIT.
func (sv *SchreierVector) Transversal(point int) (perm.Permutation, error) {
	if _, ok := sv.entries[point]; !ok {
		return perm.Permutation{}, errors.New(errors.ErrCodePointNotInOrbit,
			"point %d is not in the orbit of %d", point, sv.root)
	}

	t := perm.Identity(sv.degree)
	for point != sv.root {
		entry := sv.entries[point]
		// t currently maps entry's image to the target; prepend the witness
		// generator so it applies before everything accumulated so far.
		var err error
		t, err = perm.Compose(t, sv.gens[entry.gen])
		if err != nil {
			return perm.Permutation{}, errors.Wrap(errors.ErrCodeChainInvariant, err,
				"transversal composition at point %d", point)
		}
		point = entry.pred
	}
	return t, nil
}
