package group

import (
	"slices"
	"testing"

	"github.com/matzehuels/schreier/pkg/perm"
)

func mustParse(t *testing.T, notation string, degree int) perm.Permutation {
	t.Helper()
	p, err := perm.ParseCycles(notation, degree)
	if err != nil {
		t.Fatalf("ParseCycles(%q, %d): %v", notation, degree, err)
	}
	return p
}

func TestOrbit_DoubleTransposition(t *testing.T) {
	// Single generator (0 1)(2 3): the domain splits into orbits {0,1} and {2,3}.
	gens := []perm.Permutation{mustParse(t, "(0 1)(2 3)", 4)}

	sv, err := Orbit(4, 0, gens)
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}
	points := sv.Points()
	slices.Sort(points)
	if !slices.Equal(points, []int{0, 1}) {
		t.Errorf("orbit of 0 = %v, want [0 1]", points)
	}

	sv, err = Orbit(4, 2, gens)
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}
	points = sv.Points()
	slices.Sort(points)
	if !slices.Equal(points, []int{2, 3}) {
		t.Errorf("orbit of 2 = %v, want [2 3]", points)
	}
}

func TestOrbit_SetIndependentOfGeneratorOrder(t *testing.T) {
	a := mustParse(t, "(0 1)", 5)
	b := mustParse(t, "(1 2)", 5)
	c := mustParse(t, "(3 4)", 5)

	first, err := Orbit(5, 0, []perm.Permutation{a, b, c})
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}
	second, err := Orbit(5, 0, []perm.Permutation{c, b, a})
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}

	fp, sp := first.Points(), second.Points()
	slices.Sort(fp)
	slices.Sort(sp)
	if !slices.Equal(fp, sp) {
		t.Errorf("orbit content depends on generator order: %v vs %v", fp, sp)
	}
	if !slices.Equal(fp, []int{0, 1, 2}) {
		t.Errorf("orbit of 0 = %v, want [0 1 2]", fp)
	}
}

func TestOrbit_EmptyGenerators(t *testing.T) {
	sv, err := Orbit(3, 1, nil)
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}
	if sv.Len() != 1 || !sv.Contains(1) {
		t.Errorf("orbit under no generators should be the singleton {1}, got %v", sv.Points())
	}
}

func TestOrbit_Validation(t *testing.T) {
	gens := []perm.Permutation{mustParse(t, "(0 1)", 3)}

	if _, err := Orbit(3, 5, gens); err == nil {
		t.Error("root beyond degree should fail")
	}
	if _, err := Orbit(4, 0, gens); err == nil {
		t.Error("generator degree mismatch should fail")
	}
}

func TestTransversal_MapsRootToPoint(t *testing.T) {
	gens := []perm.Permutation{
		mustParse(t, "(0 1 2 3 4)", 5),
		mustParse(t, "(0 1)", 5),
	}
	sv, err := Orbit(5, 0, gens)
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}
	if sv.Len() != 5 {
		t.Fatalf("orbit size = %d, want 5", sv.Len())
	}

	for _, point := range sv.Points() {
		tr, err := sv.Transversal(point)
		if err != nil {
			t.Fatalf("Transversal(%d): %v", point, err)
		}
		if got := tr.Image(sv.Root()); got != point {
			t.Errorf("transversal for %d maps root to %d", point, got)
		}
	}
}

func TestTransversal_PointNotInOrbit(t *testing.T) {
	gens := []perm.Permutation{mustParse(t, "(0 1)", 4)}
	sv, err := Orbit(4, 0, gens)
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}

	if _, err := sv.Transversal(3); err == nil {
		t.Fatal("transversal for a point outside the orbit should fail")
	}
}
