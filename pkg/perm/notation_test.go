package perm

import "testing"

func TestParseCycles(t *testing.T) {
	cases := []struct {
		notation string
		degree   int
		images   []int
	}{
		{"(0 1)", 3, []int{1, 0, 2}},
		{"(0 1)(2 3)", 4, []int{1, 0, 3, 2}},
		{"(0 1 2)", 3, []int{1, 2, 0}},
		{"(0,1,2)", 3, []int{1, 2, 0}}, // comma separators
		{"()", 3, []int{0, 1, 2}},
		{"", 3, []int{0, 1, 2}},
		{"(2 4)", 5, []int{0, 1, 4, 3, 2}},
	}
	for _, tc := range cases {
		p, err := ParseCycles(tc.notation, tc.degree)
		if err != nil {
			t.Errorf("ParseCycles(%q, %d): %v", tc.notation, tc.degree, err)
			continue
		}
		want := mustNew(t, tc.images)
		if !p.Equal(want) {
			t.Errorf("ParseCycles(%q, %d) = %v, want %v", tc.notation, tc.degree, p, want)
		}
	}
}

func TestParseCycles_InferredDegree(t *testing.T) {
	p, err := ParseCycles("(1 3)", -1)
	if err != nil {
		t.Fatalf("ParseCycles: %v", err)
	}
	if p.Degree() != 4 {
		t.Errorf("inferred degree = %d, want 4", p.Degree())
	}
}

func TestParseCycles_Errors(t *testing.T) {
	cases := []string{
		"(0 1",      // unclosed
		"0 1)",      // point outside parentheses
		"((0 1))",   // nested
		"(0 1)(1 2)", // repeated point
		"(0 x)",     // bad token
		"(0 9)",     // beyond explicit degree, see below
	}
	for _, notation := range cases {
		if _, err := ParseCycles(notation, 4); err == nil {
			t.Errorf("ParseCycles(%q, 4) should fail", notation)
		}
	}
}

func TestNotation_RoundTrip(t *testing.T) {
	for _, p := range Generate(5, 0) {
		q, err := ParseCycles(FormatCycles(p), 5)
		if err != nil {
			t.Fatalf("reparse %q: %v", FormatCycles(p), err)
		}
		if !q.Equal(p) {
			t.Fatalf("notation round trip changed %v into %v", p, q)
		}
	}
}

func TestFormatCycles(t *testing.T) {
	if got := FormatCycles(Identity(4)); got != "()" {
		t.Errorf("identity renders as %q, want ()", got)
	}
	p := mustNew(t, []int{1, 0, 3, 4, 2})
	if got := FormatCycles(p); got != "(0 1)(2 3 4)" {
		t.Errorf("FormatCycles = %q, want (0 1)(2 3 4)", got)
	}
}
