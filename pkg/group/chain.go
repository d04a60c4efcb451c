package group

import (
	"math/big"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/perm"
)

// level is one link of a stabilizer chain: a base point, the generating set
// of the subgroup fixing all earlier base points, and the orbit of the base
// point under that set. The orbit is recomputed lazily after generator
// insertions.
type level struct {
	base  int
	gens  []perm.Permutation
	keys  map[string]struct{}
	orbit *SchreierVector
	dirty bool
}

func newLevel(base int) *level {
	return &level{base: base, keys: make(map[string]struct{}), dirty: true}
}

// addGen inserts g into the level's generating set, deduplicating by image
// array. Reports whether the set actually grew.
func (lv *level) addGen(g perm.Permutation) bool {
	key := g.Key()
	if _, dup := lv.keys[key]; dup {
		return false
	}
	lv.keys[key] = struct{}{}
	lv.gens = append(lv.gens, g)
	lv.dirty = true
	return true
}

// refresh recomputes the level's orbit if generators changed since the last
// computation.
func (lv *level) refresh(degree int) error {
	if !lv.dirty && lv.orbit != nil {
		return nil
	}
	orbit, err := Orbit(degree, lv.base, lv.gens)
	if err != nil {
		return errors.Wrap(errors.ErrCodeChainInvariant, err,
			"orbit of base point %d", lv.base)
	}
	lv.orbit = orbit
	lv.dirty = false
	return nil
}

// chain is a stabilizer chain: an index-addressed sequence of levels where
// level 0 describes the full group and each deeper level the stabilizer of
// all earlier base points. An empty chain describes the trivial group.
//
// verified marks a chain proven closed by exhaustive Schreier-generator
// sifting; Monte-Carlo construction leaves it false.
type chain struct {
	degree   int
	levels   []*level
	verified bool
}

func newChain(degree int) *chain {
	return &chain{degree: degree}
}

// order returns the group order as the product of orbit sizes across all
// levels (orbit-stabilizer theorem). Exact for a closed chain.
func (c *chain) order() (*big.Int, error) {
	result := big.NewInt(1)
	size := new(big.Int)
	for _, lv := range c.levels {
		if err := lv.refresh(c.degree); err != nil {
			return nil, err
		}
		result.Mul(result, size.SetInt64(int64(lv.orbit.Len())))
	}
	return result, nil
}

// base returns the base points in chain order.
func (c *chain) base() []int {
	points := make([]int, len(c.levels))
	for i, lv := range c.levels {
		points[i] = lv.base
	}
	return points
}

// sift strips p through the whole chain. See siftFrom.
func (c *chain) sift(p perm.Permutation) (perm.Permutation, int, error) {
	return c.siftFrom(0, p)
}

// siftFrom strips p level by level starting at level start: at each level
// the candidate's image of the base point is looked up in the level orbit
// and the matching transversal element is cancelled off. It returns the
// residue and the level index where stripping stopped, len(levels) when the
// candidate made it through the entire chain. A membership test succeeds iff
// the residue is the identity.
func (c *chain) siftFrom(start int, p perm.Permutation) (perm.Permutation, int, error) {
	residue := p
	for i := start; i < len(c.levels); i++ {
		lv := c.levels[i]
		if err := lv.refresh(c.degree); err != nil {
			return perm.Permutation{}, 0, err
		}
		image := residue.Image(lv.base)
		if image == lv.base {
			continue
		}
		if !lv.orbit.Contains(image) {
			return residue, i, nil
		}
		t, err := lv.orbit.Transversal(image)
		if err != nil {
			return perm.Permutation{}, 0, err
		}
		// t maps the base point where the residue does; cancelling it
		// leaves a candidate fixing this level's base point.
		residue, err = perm.Compose(t.Inverse(), residue)
		if err != nil {
			return perm.Permutation{}, 0, errors.Wrap(errors.ErrCodeChainInvariant, err,
				"sift at level %d", i)
		}
		if residue.Image(lv.base) != lv.base {
			return perm.Permutation{}, 0, errors.New(errors.ErrCodeChainInvariant,
				"residue still moves base point %d after cancellation at level %d", lv.base, i)
		}
	}
	return residue, len(c.levels), nil
}

// finalize refreshes every level's orbit so the chain can be published
// immutably: after finalize, readers (sift, order, transversal lookups)
// never mutate shared state and are safe to run concurrently.
func (c *chain) finalize() error {
	for _, lv := range c.levels {
		if err := lv.refresh(c.degree); err != nil {
			return err
		}
	}
	return nil
}

// place inserts a non-identity sift residue that stopped at level index lvl,
// appending a fresh terminal level when the chain ended before accounting
// for the residue's moved points.
//
// The residue fixes the base points of all levels before lvl, so it belongs
// to the generating set of every level up to and including lvl. Adding it to
// all of them keeps the level sets nested, which is what makes the orbit
// size product and sifting-based membership exact.
func (c *chain) place(lvl int, residue perm.Permutation) error {
	if lvl > len(c.levels) {
		return errors.New(errors.ErrCodeChainInvariant,
			"residue placed at level %d of a %d-level chain", lvl, len(c.levels))
	}
	if lvl == len(c.levels) {
		base := residue.SmallestMovedPoint()
		if base < 0 {
			return errors.New(errors.ErrCodeChainInvariant,
				"identity residue placed at a new level")
		}
		c.levels = append(c.levels, newLevel(base))
	}
	for i := 0; i <= lvl; i++ {
		c.levels[i].addGen(residue)
	}
	return nil
}
