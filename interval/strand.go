package interval

import "github.com/pkg/errors"

// Strand is the orientation of an interval on its sequence.  It is a closed
// tri-state: an unstranded interval is compatible with everything, while Plus
// and Minus are compatible only with themselves.  Do not model this as a
// nullable boolean; every strand-aware comparison must go through
// Compatible().
type Strand uint8

const (
	// Unstranded is the zero value, so intervals constructed without an
	// explicit orientation match both strands.
	Unstranded Strand = iota
	Plus
	Minus
)

func (s Strand) String() string {
	switch s {
	case Plus:
		return "+"
	case Minus:
		return "-"
	default:
		return "*"
	}
}

// ParseStrand converts the usual single-character representation ("+", "-",
// "*" or "." for unstranded) to a Strand.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Plus, nil
	case "-":
		return Minus, nil
	case "*", ".", "":
		return Unstranded, nil
	}
	return Unstranded, errors.Errorf("interval.ParseStrand: unrecognized strand %q", s)
}

// Compatible returns whether two strands can match under a strand-respecting
// comparison.  Unstranded matches everything.
func Compatible(a, b Strand) bool {
	return a == Unstranded || b == Unstranded || a == b
}
