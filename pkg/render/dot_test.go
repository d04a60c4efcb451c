package render

import (
	"strings"
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

func TestCycleDOT(t *testing.T) {
	p := mustParse(t, "(0 1 2)", 4)
	dot := CycleDOT(p, Options{})

	for _, want := range []string{"digraph permutation", "0 -> 1", "1 -> 2", "2 -> 0"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	// Fixed point 3 hidden by default
	if strings.Contains(dot, "3") {
		t.Errorf("fixed point should be hidden:\n%s", dot)
	}

	detailed := CycleDOT(p, Options{ShowFixedPoints: true})
	if !strings.Contains(detailed, "3 [fillcolor=lightgrey]") {
		t.Errorf("fixed point missing with ShowFixedPoints:\n%s", detailed)
	}
}

func TestCycleDOT_Identity(t *testing.T) {
	dot := CycleDOT(perm.Identity(3), Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("identity should produce no edges:\n%s", dot)
	}
}

func TestOrbitDOT(t *testing.T) {
	gens := []perm.Permutation{mustParse(t, "(0 1)(2 3)", 4)}

	dot, err := OrbitDOT(4, 0, gens)
	if err != nil {
		t.Fatalf("OrbitDOT: %v", err)
	}
	for _, want := range []string{"digraph orbit", `0 [fillcolor=lightblue]`, `0 -> 1 [label="g0"]`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	// Points 2 and 3 are outside the orbit of 0
	if strings.Contains(dot, "2 ->") || strings.Contains(dot, "3 ->") {
		t.Errorf("edges outside the orbit:\n%s", dot)
	}
}

func TestOrbitDOT_Validation(t *testing.T) {
	gens := []perm.Permutation{mustParse(t, "(0 1)", 4)}
	if _, err := OrbitDOT(4, 9, gens); err == nil {
		t.Error("point outside the domain should fail")
	}
	if _, err := OrbitDOT(5, 0, gens); err == nil {
		t.Error("generator degree mismatch should fail")
	}
}
