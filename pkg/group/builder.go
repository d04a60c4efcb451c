package group

import (
	"math/rand"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/perm"
)

// confidenceThreshold is the number of consecutive random elements that must
// sift to the identity before Monte-Carlo construction accepts the chain as
// probably closed. Each clean sift at least halves the failure probability,
// so 16 in a row bounds it by 2^-16.
const confidenceThreshold = 16

// buildDeterministic runs the deterministic Schreier-Sims algorithm: seed
// the chain by sifting every generator, then repeat full verification
// passes (deriving every Schreier generator at every level and sifting it
// through the remainder of the chain) until a pass yields no residue. The
// resulting chain is provably closed: the product of its orbit sizes is the
// exact group order.
func buildDeterministic(degree int, gens []perm.Permutation) (*chain, error) {
	c, err := seedChain(degree, gens)
	if err != nil {
		return nil, err
	}
	for {
		changed, err := c.closurePass()
		if err != nil {
			return nil, err
		}
		if !changed {
			break
		}
	}
	c.verified = true
	return c, nil
}

// buildRandom runs Monte-Carlo Schreier-Sims: after seeding with the
// generators it sifts random words over the generator set instead of
// exhaustively deriving Schreier generators. Construction stops once
// confidenceThreshold consecutive words sift to the identity. The chain is
// then probably but not provably closed, so verified stays false.
//
// If retries words are exhausted before the threshold is reached, the chain
// built so far is returned together with an UNVERIFIED_GROUP error; it
// remains usable, with reduced confidence.
func buildRandom(degree int, gens []perm.Permutation, retries int, rng *rand.Rand) (*chain, error) {
	c, err := seedChain(degree, gens)
	if err != nil {
		return nil, err
	}
	if len(c.levels) == 0 {
		return c, nil
	}

	consecutive := 0
	for attempt := 0; consecutive < confidenceThreshold; attempt++ {
		if attempt >= retries {
			return c, errors.New(errors.ErrCodeUnverifiedGroup,
				"no stable closure after %d random sift attempts", retries)
		}
		w, err := randomWord(gens, rng)
		if err != nil {
			return nil, err
		}
		grew, err := c.siftAndPlace(w)
		if err != nil {
			return nil, err
		}
		if grew {
			consecutive = 0
		} else {
			consecutive++
		}
	}
	return c, nil
}

// seedChain sifts each input generator into a fresh chain. The first base
// point is fixed up front as the smallest point moved by any generator, so
// base selection does not depend on generator order. Identity generators are
// legal and contribute nothing; an empty or all-identity generator set
// yields the empty chain of the trivial group.
func seedChain(degree int, gens []perm.Permutation) (*chain, error) {
	c := newChain(degree)
	base := -1
	for _, g := range gens {
		if m := g.SmallestMovedPoint(); m >= 0 && (base < 0 || m < base) {
			base = m
		}
	}
	if base >= 0 {
		c.levels = append(c.levels, newLevel(base))
	}
	for _, g := range gens {
		if _, err := c.siftAndPlace(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// siftAndPlace sifts p and, if a non-identity residue remains, inserts it
// where stripping stopped. Reports whether the chain grew.
func (c *chain) siftAndPlace(p perm.Permutation) (bool, error) {
	residue, lvl, err := c.sift(p)
	if err != nil {
		return false, err
	}
	if residue.IsIdentity() {
		return false, nil
	}
	if err := c.place(lvl, residue); err != nil {
		return false, err
	}
	return true, nil
}

// closurePass derives the Schreier generators of every level and sifts each
// through the chain below it. On the first non-identity residue the residue
// is inserted and the pass aborts reporting change, since earlier levels may
// need re-derivation. A pass reporting no change certifies closure: every
// level's Schreier generators lie in the span of the deeper levels, which is
// exactly the strong generating property.
func (c *chain) closurePass() (bool, error) {
	for i, lv := range c.levels {
		if err := lv.refresh(c.degree); err != nil {
			return false, err
		}
		for _, p := range lv.orbit.Points() {
			tp, err := lv.orbit.Transversal(p)
			if err != nil {
				return false, err
			}
			for _, g := range lv.gens {
				s, err := schreierGenerator(lv, g, p, tp)
				if err != nil {
					return false, err
				}
				if s.IsIdentity() {
					continue
				}
				residue, lvl, err := c.siftFrom(i+1, s)
				if err != nil {
					return false, err
				}
				if residue.IsIdentity() {
					continue
				}
				if err := c.place(lvl, residue); err != nil {
					return false, err
				}
				return true, nil
			}
		}
	}
	return false, nil
}

// schreierGenerator forms Inverse(t[g(p)]) ∘ g ∘ t[p] for orbit point p and
// level generator g, where t[x] is the transversal element mapping the base
// point to x. The product maps the base point to itself, so it lies in the
// next stabilizer.
func schreierGenerator(lv *level, g perm.Permutation, p int, tp perm.Permutation) (perm.Permutation, error) {
	gp := g.Image(p)
	tgp, err := lv.orbit.Transversal(gp)
	if err != nil {
		// The orbit is closed under its own generators, so a missing image
		// is a builder defect.
		return perm.Permutation{}, errors.Wrap(errors.ErrCodeChainInvariant, err,
			"orbit of %d not closed under its generators", lv.base)
	}
	s, err := perm.Product(tgp.Inverse(), g, tp)
	if err != nil {
		return perm.Permutation{}, errors.Wrap(errors.ErrCodeChainInvariant, err,
			"schreier generator at point %d", p)
	}
	if s.Image(lv.base) != lv.base {
		return perm.Permutation{}, errors.New(errors.ErrCodeChainInvariant,
			"schreier generator at point %d moves base point %d", p, lv.base)
	}
	return s, nil
}

// randomWord composes a short random product of generators and their
// inverses, the sampling primitive of Monte-Carlo construction.
func randomWord(gens []perm.Permutation, rng *rand.Rand) (perm.Permutation, error) {
	length := 1 + rng.Intn(2*len(gens)+3)
	word := make([]perm.Permutation, length)
	for i := range word {
		g := gens[rng.Intn(len(gens))]
		if rng.Intn(2) == 0 {
			g = g.Inverse()
		}
		word[i] = g
	}
	return perm.Product(word...)
}
