package group

import (
	"math/big"
	"math/rand"
	"slices"
	"sync"
	"testing"

	"github.com/matzehuels/schreier/pkg/errors"
	"github.com/matzehuels/schreier/pkg/perm"
)

// closure enumerates the group generated by gens by breadth-first search over
// products. Only usable at small degree; it is the independent oracle the
// chain-based answers are checked against.
func closure(t *testing.T, gens []perm.Permutation) map[string]perm.Permutation {
	t.Helper()
	if len(gens) == 0 {
		t.Fatal("closure needs at least one generator")
	}
	elements := map[string]perm.Permutation{}
	queue := []perm.Permutation{perm.Identity(gens[0].Degree())}
	elements[queue[0].Key()] = queue[0]
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, g := range gens {
			next, err := perm.Compose(g, cur)
			if err != nil {
				t.Fatalf("Compose: %v", err)
			}
			if _, seen := elements[next.Key()]; !seen {
				elements[next.Key()] = next
				queue = append(queue, next)
			}
		}
	}
	return elements
}

func mustGroup(t *testing.T, gens []perm.Permutation, opts ...Option) *Group {
	t.Helper()
	g, err := New(gens, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestOrder_Symmetric3(t *testing.T) {
	// (0 1) and (1 2) generate all of S3.
	g := mustGroup(t, []perm.Permutation{
		mustParse(t, "(0 1)", 3),
		mustParse(t, "(1 2)", 3),
	})

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if order.Cmp(big.NewInt(6)) != 0 {
		t.Errorf("order = %s, want 6", order)
	}
	if !g.Verified() {
		t.Error("deterministic construction should verify")
	}

	ok, err := g.Contains(mustParse(t, "(0 2)", 3))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Error("(0 2) should be an element of S3")
	}
}

func TestOrder_SingleTransposition(t *testing.T) {
	g := mustGroup(t, []perm.Permutation{mustParse(t, "(0 1)(2 3)", 4)})

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if order.Cmp(big.NewInt(2)) != 0 {
		t.Errorf("order = %s, want 2", order)
	}

	orbit, err := g.Orbit(0)
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}
	slices.Sort(orbit)
	if !slices.Equal(orbit, []int{0, 1}) {
		t.Errorf("orbit of 0 = %v, want [0 1]", orbit)
	}
}

func TestOrder_KnownGroups(t *testing.T) {
	cases := []struct {
		name      string
		notations []string
		degree    int
		want      int64
	}{
		{"symmetric S5", []string{"(0 1)", "(0 1 2 3 4)"}, 5, 120},
		{"alternating A4", []string{"(0 1 2)", "(1 2 3)"}, 4, 12},
		{"cyclic C6", []string{"(0 1 2 3 4 5)"}, 6, 6},
		{"dihedral D8", []string{"(0 1 2 3 4 5 6 7)", "(1 7)(2 6)(3 5)"}, 8, 16},
		{"klein four", []string{"(0 1)(2 3)", "(0 2)(1 3)"}, 4, 4},
		{"symmetric S8", []string{"(0 1)", "(0 1 2 3 4 5 6 7)"}, 8, 40320},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gens := make([]perm.Permutation, len(tc.notations))
			for i, n := range tc.notations {
				gens[i] = mustParse(t, n, tc.degree)
			}
			g := mustGroup(t, gens)
			order, err := g.Order()
			if err != nil {
				t.Fatalf("Order: %v", err)
			}
			if order.Cmp(big.NewInt(tc.want)) != 0 {
				t.Errorf("order = %s, want %d", order, tc.want)
			}
		})
	}
}

func TestOrder_SingleQubitCliffordAction(t *testing.T) {
	// The single-qubit Clifford group permutes the six signed Pauli axes
	// +X -X +Y -Y +Z -Z (points 0..5). The Hadamard gate swaps X and Z while
	// flipping Y; the phase gate rotates X into Y. Modulo phases the image in
	// S6 is the rotation group of the octahedron, order 24.
	hadamard := mustNew6(t, 4, 5, 3, 2, 0, 1)
	phase := mustNew6(t, 2, 3, 1, 0, 4, 5)

	g := mustGroup(t, []perm.Permutation{hadamard, phase})
	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if order.Cmp(big.NewInt(24)) != 0 {
		t.Errorf("order = %s, want 24", order)
	}
}

func mustNew6(t *testing.T, images ...int) perm.Permutation {
	t.Helper()
	p, err := perm.New(images)
	if err != nil {
		t.Fatalf("New(%v): %v", images, err)
	}
	return p
}

func TestOrderAndMembership_AgainstClosure(t *testing.T) {
	cases := [][]perm.Permutation{
		{mustParse(t, "(0 1 2)", 5), mustParse(t, "(2 3 4)", 5)},
		{mustParse(t, "(0 1)(2 3)", 6), mustParse(t, "(1 2)(4 5)", 6)},
		{mustParse(t, "(0 1 2 3)", 4)},
		{mustParse(t, "(0 1)", 7), mustParse(t, "(0 1 2 3 4 5 6)", 7)},
	}
	for _, gens := range cases {
		g := mustGroup(t, gens)
		elements := closure(t, gens)

		order, err := g.Order()
		if err != nil {
			t.Fatalf("Order: %v", err)
		}
		if order.Cmp(big.NewInt(int64(len(elements)))) != 0 {
			t.Fatalf("order = %s, closure has %d elements", order, len(elements))
		}

		// Membership must agree with the enumeration for every permutation of
		// the domain.
		for _, candidate := range perm.Generate(g.Degree(), 0) {
			ok, err := g.Contains(candidate)
			if err != nil {
				t.Fatalf("Contains: %v", err)
			}
			_, inClosure := elements[candidate.Key()]
			if ok != inClosure {
				t.Fatalf("Contains(%v) = %t, closure says %t", candidate, ok, inClosure)
			}
		}
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty generators: got %v, want INVALID_INPUT", err)
	}

	gens := []perm.Permutation{
		mustParse(t, "(0 1)", 3),
		mustParse(t, "(0 1)", 4),
	}
	if _, err := New(gens); !errors.Is(err, errors.ErrCodeIncompatibleDegree) {
		t.Errorf("mixed degrees: got %v, want INCOMPATIBLE_DEGREE", err)
	}
}

func TestContains_DegreeMismatch(t *testing.T) {
	g := mustGroup(t, []perm.Permutation{mustParse(t, "(0 1)", 3)})

	_, err := g.Contains(mustParse(t, "(0 1)", 4))
	if !errors.Is(err, errors.ErrCodeIncompatibleDegree) {
		t.Errorf("got %v, want INCOMPATIBLE_DEGREE", err)
	}
}

func TestTrivialGroup(t *testing.T) {
	g := Trivial(5)
	if !g.IsTrivial() {
		t.Error("Trivial should report IsTrivial")
	}

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if order.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("order = %s, want 1", order)
	}

	ok, err := g.Contains(perm.Identity(5))
	if err != nil || !ok {
		t.Errorf("identity membership = %t, %v; want true, nil", ok, err)
	}
	ok, err = g.Contains(mustParse(t, "(0 1)", 5))
	if err != nil || ok {
		t.Errorf("(0 1) membership = %t, %v; want false, nil", ok, err)
	}

	base, err := g.Base()
	if err != nil {
		t.Fatalf("Base: %v", err)
	}
	if len(base) != 0 {
		t.Errorf("trivial group base = %v, want empty", base)
	}
}

func TestIsTrivial_IdentityGenerators(t *testing.T) {
	g := mustGroup(t, []perm.Permutation{perm.Identity(4), perm.Identity(4)})
	if !g.IsTrivial() {
		t.Error("identity-only generators should be trivial")
	}

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if order.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("order = %s, want 1", order)
	}
}

func TestAddGenerator_InvalidatesChain(t *testing.T) {
	g := mustGroup(t, []perm.Permutation{mustParse(t, "(0 1)", 3)})

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if order.Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("order = %s, want 2", order)
	}

	if err := g.AddGenerator(mustParse(t, "(1 2)", 3)); err != nil {
		t.Fatalf("AddGenerator: %v", err)
	}
	order, err = g.Order()
	if err != nil {
		t.Fatalf("Order after AddGenerator: %v", err)
	}
	if order.Cmp(big.NewInt(6)) != 0 {
		t.Errorf("order after AddGenerator = %s, want 6", order)
	}

	err = g.AddGenerator(mustParse(t, "(0 1)", 4))
	if !errors.Is(err, errors.ErrCodeIncompatibleDegree) {
		t.Errorf("mismatched generator: got %v, want INCOMPATIBLE_DEGREE", err)
	}
}

func TestBase_FirstPointIsSmallestMoved(t *testing.T) {
	g := mustGroup(t, []perm.Permutation{mustParse(t, "(2 3 4)", 6), mustParse(t, "(3 5)", 6)})

	base, err := g.Base()
	if err != nil {
		t.Fatalf("Base: %v", err)
	}
	if len(base) == 0 || base[0] != 2 {
		t.Errorf("base = %v, want first point 2", base)
	}
	seen := map[int]bool{}
	for _, b := range base {
		if seen[b] {
			t.Fatalf("base %v repeats point %d", base, b)
		}
		seen[b] = true
	}

	// The first base point is the smallest point moved by any generator,
	// not just by the first one.
	g = mustGroup(t, []perm.Permutation{mustParse(t, "(2 3)", 4), mustParse(t, "(0 1)", 4)})
	base, err = g.Base()
	if err != nil {
		t.Fatalf("Base: %v", err)
	}
	if len(base) == 0 || base[0] != 0 {
		t.Errorf("base = %v, want first point 0", base)
	}
}

func TestLevels_OrbitSizesMultiplyToOrder(t *testing.T) {
	g := mustGroup(t, []perm.Permutation{
		mustParse(t, "(0 1)", 5),
		mustParse(t, "(0 1 2 3 4)", 5),
	})

	levels, err := g.Levels()
	if err != nil {
		t.Fatalf("Levels: %v", err)
	}
	product := big.NewInt(1)
	for _, lv := range levels {
		product.Mul(product, big.NewInt(int64(len(lv.Orbit))))
	}
	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if product.Cmp(order) != 0 {
		t.Errorf("orbit size product = %s, order = %s", product, order)
	}
}

func TestLevels_GeneratingSetsAreNested(t *testing.T) {
	// (1 2) fixes the first base point 0 and lands at level 1 when sifted,
	// but it still belongs to the whole group: level 0's generating set must
	// include it too, or the first orbit stays {0, 1} and both the order and
	// membership come out wrong.
	g := mustGroup(t, []perm.Permutation{
		mustParse(t, "(0 1)", 3),
		mustParse(t, "(1 2)", 3),
	})

	levels, err := g.Levels()
	if err != nil {
		t.Fatalf("Levels: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(levels))
	}
	if len(levels[0].Orbit) != 3 {
		t.Errorf("level 0 orbit = %v, want all of {0, 1, 2}", levels[0].Orbit)
	}
	if len(levels[0].Generators) < len(levels[1].Generators) {
		t.Errorf("level 0 has %d generators, level 1 has %d; level sets must be nested",
			len(levels[0].Generators), len(levels[1].Generators))
	}

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if order.Cmp(big.NewInt(6)) != 0 {
		t.Errorf("order = %s, want 6", order)
	}
	in, err := g.Contains(mustParse(t, "(0 2)", 3))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !in {
		t.Error("(0 2) should be an element of the group")
	}
}

func TestRandomStrategy_MatchesDeterministicOrder(t *testing.T) {
	gens := []perm.Permutation{
		mustParse(t, "(0 1)", 6),
		mustParse(t, "(0 1 2 3 4 5)", 6),
	}

	det := mustGroup(t, gens)
	rnd := mustGroup(t, gens, WithStrategy(StrategyRandom), WithRandomRetries(100000))

	wantOrder, err := det.Order()
	if err != nil {
		t.Fatalf("deterministic Order: %v", err)
	}

	gotOrder, err := rnd.Order()
	if err != nil {
		t.Fatalf("randomized Order: %v", err)
	}
	if gotOrder.Cmp(wantOrder) != 0 {
		t.Errorf("randomized order = %s, deterministic = %s", gotOrder, wantOrder)
	}
	if rnd.Verified() {
		t.Error("Monte-Carlo chains must not claim verification")
	}
}

func TestRandomStrategy_RetryExhaustion(t *testing.T) {
	gens := []perm.Permutation{
		mustParse(t, "(0 1)", 6),
		mustParse(t, "(0 1 2 3 4 5)", 6),
	}
	g := mustGroup(t, gens, WithStrategy(StrategyRandom), WithRandomRetries(1))

	// One sifted word cannot reach the confidence threshold, so the build
	// reports UNVERIFIED_GROUP while still returning a usable chain.
	order, err := g.Order()
	if !errors.Is(err, errors.ErrCodeUnverifiedGroup) {
		t.Fatalf("got %v, want UNVERIFIED_GROUP", err)
	}
	if order == nil || order.Sign() <= 0 {
		t.Errorf("unverified build should still expose a positive order, got %v", order)
	}
}

func TestRandomElement_AllElementsReachable(t *testing.T) {
	gens := []perm.Permutation{
		mustParse(t, "(0 1)", 3),
		mustParse(t, "(1 2)", 3),
	}
	g := mustGroup(t, gens)
	elements := closure(t, gens)

	rng := rand.New(rand.NewSource(7))
	seen := map[string]bool{}
	for i := 0; i < 600; i++ {
		e, err := g.RandomElement(rng)
		if err != nil {
			t.Fatalf("RandomElement: %v", err)
		}
		if _, member := elements[e.Key()]; !member {
			t.Fatalf("sampled %v outside the group", e)
		}
		seen[e.Key()] = true
	}
	if len(seen) != len(elements) {
		t.Errorf("sampled %d distinct elements of %d", len(seen), len(elements))
	}
}

func TestRandomElement_Uniform(t *testing.T) {
	// Chi-square goodness of fit over S3. With 6000 draws the expected count
	// per element is 1000; the statistic has 5 degrees of freedom, so values
	// above 30 are vanishingly unlikely under uniform sampling.
	gens := []perm.Permutation{
		mustParse(t, "(0 1)", 3),
		mustParse(t, "(1 2)", 3),
	}
	g := mustGroup(t, gens)

	const draws = 6000
	rng := rand.New(rand.NewSource(1))
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		e, err := g.RandomElement(rng)
		if err != nil {
			t.Fatalf("RandomElement: %v", err)
		}
		counts[e.Key()]++
	}

	expected := float64(draws) / 6
	chi2 := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	// Missing elements contribute their full expected mass.
	chi2 += float64(6-len(counts)) * expected

	if chi2 > 30 {
		t.Errorf("chi-square = %.2f over counts %v, sampling looks non-uniform", chi2, counts)
	}
}

func TestRandomElement_NilSourceIsReproducible(t *testing.T) {
	gens := []perm.Permutation{
		mustParse(t, "(0 1)", 4),
		mustParse(t, "(0 1 2 3)", 4),
	}
	a := mustGroup(t, gens)
	b := mustGroup(t, gens)

	ea, err := a.RandomElement(nil)
	if err != nil {
		t.Fatalf("RandomElement: %v", err)
	}
	eb, err := b.RandomElement(nil)
	if err != nil {
		t.Fatalf("RandomElement: %v", err)
	}
	if !ea.Equal(eb) {
		t.Errorf("nil-source draws differ: %v vs %v", ea, eb)
	}
}

func TestEnsureChain_ConcurrentQueries(t *testing.T) {
	gens := []perm.Permutation{
		mustParse(t, "(0 1)", 7),
		mustParse(t, "(0 1 2 3 4 5 6)", 7),
	}
	g := mustGroup(t, gens)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order, err := g.Order()
			if err != nil {
				t.Errorf("Order: %v", err)
				return
			}
			if order.Cmp(big.NewInt(5040)) != 0 {
				t.Errorf("order = %s, want 5040", order)
			}
			ok, err := g.Contains(mustParse(t, "(0 1 2)", 7))
			if err != nil || !ok {
				t.Errorf("Contains = %t, %v; want true, nil", ok, err)
			}
			if _, err := g.RandomElement(rand.New(rand.NewSource(int64(i)))); err != nil {
				t.Errorf("RandomElement: %v", err)
			}
		}(i)
	}
	wg.Wait()
}
