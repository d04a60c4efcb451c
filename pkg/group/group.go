package group

import (
	"math/big"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/observability"
	"github.com/matzehuels/schreier/pkg/perm"
)

// Strategy selects how the stabilizer chain is constructed. Construction is
// a configuration choice on the group, not a type hierarchy.
type Strategy string

const (
	// StrategyDeterministic is exhaustive Schreier-Sims: every Schreier
	// generator at every level is derived and sifted, so the resulting chain
	// is provably closed. This is the default.
	StrategyDeterministic Strategy = "deterministic"

	// StrategyRandom is Monte-Carlo Schreier-Sims: random words are sifted
	// instead, trading a small, explicit failure probability for speed on
	// large generator sets. Chains built this way report Verified() == false.
	StrategyRandom Strategy = "random"
)

// Defaults for the randomized construction strategy.
const (
	// DefaultRandomRetries bounds the number of random words sifted before
	// Monte-Carlo construction gives up with UNVERIFIED_GROUP.
	DefaultRandomRetries = 1024

	// DefaultSeed seeds the randomized builder and RandomElement when the
	// caller supplies no source, keeping results reproducible.
	DefaultSeed = int64(42)
)

// Option configures a Group at construction time.
type Option func(*Group)

// WithStrategy selects the chain construction strategy.
func WithStrategy(s Strategy) Option {
	return func(g *Group) { g.strategy = s }
}

// WithRandomRetries bounds the random words sifted by StrategyRandom.
// Values below 1 fall back to DefaultRandomRetries.
func WithRandomRetries(n int) Option {
	return func(g *Group) {
		if n >= 1 {
			g.retries = n
		}
	}
}

// WithSeed fixes the seed used by StrategyRandom and by RandomElement calls
// that pass a nil source.
func WithSeed(seed int64) Option {
	return func(g *Group) { g.seed = seed }
}

// Group is a permutation group given by an ordered generating set.
//
// The stabilizer chain backing Order, Contains, Base and RandomElement is
// built lazily on first use and cached; AddGenerator invalidates the cache.
// The build happens at most once per generator set: concurrent readers
// serialize through the same build step and only ever observe a fully built
// chain.
type Group struct {
	degree   int
	strategy Strategy
	retries  int
	seed     int64

	mu       sync.Mutex
	gens     []perm.Permutation
	chain    *chain
	chainErr error
}

// New creates a group generated by gens. The degree is inferred from the
// generators, which must all agree on it; a mismatch fails with
// INCOMPATIBLE_DEGREE. An empty generator list fails with INVALID_INPUT
// because it leaves the degree undefined; use [Trivial] for the
// identity-only group.
func New(gens []perm.Permutation, opts ...Option) (*Group, error) {
	if len(gens) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"no generators given: degree would be undefined (use Trivial for the identity group)")
	}
	degree := gens[0].Degree()
	for _, g := range gens[1:] {
		if g.Degree() != degree {
			return nil, errors.New(errors.ErrCodeIncompatibleDegree,
				"generators of degree %d and %d cannot act on the same domain", degree, g.Degree())
		}
	}

	g := &Group{
		degree:   degree,
		gens:     slices.Clone(gens),
		strategy: StrategyDeterministic,
		retries:  DefaultRandomRetries,
		seed:     DefaultSeed,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Trivial returns the identity-only group on the given domain size. It has
// no generators, so the degree must be supplied explicitly.
func Trivial(degree int, opts ...Option) *Group {
	g := &Group{
		degree:   degree,
		strategy: StrategyDeterministic,
		retries:  DefaultRandomRetries,
		seed:     DefaultSeed,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Degree returns the size of the domain the group acts on.
func (g *Group) Degree() int { return g.degree }

// Generators returns a copy of the current generator list, in order.
func (g *Group) Generators() []perm.Permutation {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.gens)
}

// IsTrivial reports whether the group is the identity-only group, which is
// the case exactly when every generator is the identity. No chain is built.
func (g *Group) IsTrivial() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, gen := range g.gens {
		if !gen.IsIdentity() {
			return false
		}
	}
	return true
}

// AddGenerator appends p to the generating set and invalidates the cached
// stabilizer chain, which is rebuilt lazily on the next query. The degree
// must match; the identity is accepted as a valid (trivial) generator.
func (g *Group) AddGenerator(p perm.Permutation) error {
	if p.Degree() != g.degree {
		return errors.New(errors.ErrCodeIncompatibleDegree,
			"generator has degree %d, group acts on %d points", p.Degree(), g.degree)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gens = append(g.gens, p)
	g.chain = nil
	g.chainErr = nil
	return nil
}

// ensureChain builds the stabilizer chain on first use, caching both the
// chain and any build error. For UNVERIFIED_GROUP the chain is cached
// alongside the error: it is usable, with reduced confidence, and callers
// receive both.
func (g *Group) ensureChain() (*chain, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.chain != nil || g.chainErr != nil {
		return g.chain, g.chainErr
	}

	observability.Chain().OnBuildStart(g.degree, len(g.gens))
	start := time.Now()

	var c *chain
	var err error
	switch g.strategy {
	case StrategyRandom:
		c, err = buildRandom(g.degree, g.gens, g.retries, rand.New(rand.NewSource(g.seed)))
	default:
		c, err = buildDeterministic(g.degree, g.gens)
	}

	if c != nil {
		if ferr := c.finalize(); ferr != nil {
			c, err = nil, ferr
		}
	}

	levels, verified := 0, false
	if c != nil {
		levels, verified = len(c.levels), c.verified
	}
	observability.Chain().OnBuildComplete(g.degree, levels, verified, time.Since(start), err)

	g.chain = c
	g.chainErr = err
	return g.chain, g.chainErr
}

// Order returns the exact number of group elements as an arbitrary-precision
// integer: the product of orbit sizes across the stabilizer chain. The value
// grows factorially with the degree, so fixed-width integers are unsafe even
// at moderate degree.
//
// Under StrategyRandom an UNVERIFIED_GROUP error may accompany a usable
// result; the returned order is then a lower bound that is correct with high
// probability.
func (g *Group) Order() (*big.Int, error) {
	c, err := g.ensureChain()
	if c == nil {
		return nil, err
	}
	order, oerr := c.order()
	if oerr != nil {
		return nil, oerr
	}
	return order, err
}

// Contains reports whether p is an element of the group, by stripping p
// through the stabilizer chain exactly as the builder sifts candidates: p is
// a member iff the residue is the identity. A degree mismatch fails with
// INCOMPATIBLE_DEGREE.
func (g *Group) Contains(p perm.Permutation) (bool, error) {
	if p.Degree() != g.degree {
		return false, errors.New(errors.ErrCodeIncompatibleDegree,
			"element has degree %d, group acts on %d points", p.Degree(), g.degree)
	}
	c, err := g.ensureChain()
	if c == nil {
		return false, err
	}
	residue, _, serr := c.sift(p)
	if serr != nil {
		return false, serr
	}
	return residue.IsIdentity(), err
}

// RandomElement returns a group element sampled by choosing a uniformly
// random orbit point at every chain level and composing the corresponding
// transversal elements top to bottom. Over a closed chain the distribution
// is exactly uniform on the group.
//
// Pass nil to use a source seeded with the group's seed, which makes
// successive calls reproducible.
func (g *Group) RandomElement(rng *rand.Rand) (perm.Permutation, error) {
	c, err := g.ensureChain()
	if c == nil {
		return perm.Permutation{}, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(g.seed))
	}

	element := perm.Identity(g.degree)
	for _, lv := range c.levels {
		points := lv.orbit.Points()
		t, terr := lv.orbit.Transversal(points[rng.Intn(len(points))])
		if terr != nil {
			return perm.Permutation{}, terr
		}
		// Deeper levels apply first: the element is u0 ∘ u1 ∘ ... ∘ uk.
		element, terr = perm.Compose(element, t)
		if terr != nil {
			return perm.Permutation{}, terr
		}
	}
	return element, err
}

// Base returns the base points chosen during chain construction, in order.
// The first base point is always the smallest point moved by some generator.
func (g *Group) Base() ([]int, error) {
	c, err := g.ensureChain()
	if c == nil {
		return nil, err
	}
	return c.base(), err
}

// Verified reports whether the cached chain was proven closed. Deterministic
// construction always verifies; Monte-Carlo construction never does, so
// answers derived from it carry an explicit reduced-confidence marker.
func (g *Group) Verified() bool {
	c, _ := g.ensureChain()
	return c != nil && c.verified
}

// Orbit returns the orbit of point under the group's generators, in
// discovery order. This needs no stabilizer chain and never triggers a
// build.
func (g *Group) Orbit(point int) ([]int, error) {
	g.mu.Lock()
	gens := slices.Clone(g.gens)
	g.mu.Unlock()
	sv, err := Orbit(g.degree, point, gens)
	if err != nil {
		return nil, err
	}
	return sv.Points(), nil
}

// LevelInfo describes one level of the built stabilizer chain for
// inspection, serialization and interactive display.
type LevelInfo struct {
	BasePoint  int
	Orbit      []int
	Generators []perm.Permutation
}

// Levels returns a snapshot of the built chain, one entry per level from the
// full group down to the last proper stabilizer. The trivial group has no
// levels.
func (g *Group) Levels() ([]LevelInfo, error) {
	c, err := g.ensureChain()
	if c == nil {
		return nil, err
	}
	infos := make([]LevelInfo, len(c.levels))
	for i, lv := range c.levels {
		if rerr := lv.refresh(c.degree); rerr != nil {
			return nil, rerr
		}
		infos[i] = LevelInfo{
			BasePoint:  lv.base,
			Orbit:      lv.orbit.Points(),
			Generators: slices.Clone(lv.gens),
		}
	}
	return infos, err
}
