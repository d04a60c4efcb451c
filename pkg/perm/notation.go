package perm

import (
	"strconv"
	"strings"

	"github.com/matzehuels/schreier/pkg/errors"
)

// FormatCycles renders a permutation in textual cycle notation: nontrivial
// cycles in parentheses with space-separated points, e.g. "(0 1 2)(3 4)".
// The identity renders as "()". [ParseCycles] accepts the output, so
// notation round-trips for any permutation of known degree.
func FormatCycles(p Permutation) string {
	cycles := p.NontrivialCycles()
	if len(cycles) == 0 {
		return "()"
	}
	var b strings.Builder
	for _, cycle := range cycles {
		b.WriteByte('(')
		for i, point := range cycle {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(point))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// ParseCycles parses textual cycle notation like "(0 1 2)(3 4)" into a
// permutation of the given degree. Points may be separated by spaces or
// commas; "()" and "" denote the identity. Points must lie in [0, degree);
// a point appearing twice fails with NOT_A_BIJECTION.
//
// Pass a negative degree to infer it as one past the largest point
// mentioned. Inference cannot represent trailing fixed points, so callers
// that know the domain size should pass it explicitly.
func ParseCycles(s string, degree int) (Permutation, error) {
	cycles, maxPoint, err := scanCycles(s)
	if err != nil {
		return Permutation{}, err
	}
	if degree < 0 {
		degree = maxPoint + 1
	}
	p, err := FromCycles(degree, cycles)
	if err != nil {
		return Permutation{}, err
	}
	return p, nil
}

// scanCycles tokenizes cycle notation into point lists, returning the cycles
// and the largest point seen (-1 when there is none).
func scanCycles(s string) ([][]int, int, error) {
	maxPoint := -1
	var cycles [][]int
	var current []int
	var digits strings.Builder
	depth := 0

	flushPoint := func() error {
		if digits.Len() == 0 {
			return nil
		}
		point, err := strconv.Atoi(digits.String())
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidNotation, err, "bad point %q", digits.String())
		}
		digits.Reset()
		current = append(current, point)
		if point > maxPoint {
			maxPoint = point
		}
		return nil
	}

	for _, r := range s {
		switch {
		case r == '(':
			if depth != 0 {
				return nil, 0, errors.New(errors.ErrCodeInvalidNotation, "nested parenthesis")
			}
			depth = 1
			current = nil
		case r == ')':
			if depth != 1 {
				return nil, 0, errors.New(errors.ErrCodeInvalidNotation, "unmatched closing parenthesis")
			}
			if err := flushPoint(); err != nil {
				return nil, 0, err
			}
			depth = 0
			if len(current) > 0 {
				cycles = append(cycles, current)
			}
			current = nil
		case r == ' ' || r == ',' || r == '\t':
			if err := flushPoint(); err != nil {
				return nil, 0, err
			}
		case r >= '0' && r <= '9':
			if depth == 0 {
				return nil, 0, errors.New(errors.ErrCodeInvalidNotation, "point outside parentheses")
			}
			digits.WriteRune(r)
		default:
			return nil, 0, errors.New(errors.ErrCodeInvalidNotation, "unexpected character %q", r)
		}
	}
	if depth != 0 {
		return nil, 0, errors.New(errors.ErrCodeInvalidNotation, "unclosed parenthesis")
	}
	return cycles, maxPoint, nil
}
