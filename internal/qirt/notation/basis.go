package notation

import (
	"fmt"
	"strings"
)

// Basis identifies a single-qubit measurement basis
type Basis int

const (
	// Z is the computational basis: |0⟩, |1⟩
	Z Basis = iota
	// X is the Hadamard basis: |+⟩, |−⟩
	X
	// Y is the circular basis: |i⟩, |j⟩
	Y
	// Auto asks the engine to pick the basis with minimum entropy
	Auto
)

// Bases lists the three concrete bases in search order
var Bases = [3]Basis{Z, X, Y}

func (b Basis) String() string {
	switch b {
	case Z:
		return "z"
	case X:
		return "x"
	case Y:
		return "y"
	case Auto:
		return "*"
	default:
		return "?"
	}
}

// Concrete reports whether b is one of Z, X or Y
func (b Basis) Concrete() bool {
	return b == Z || b == X || b == Y
}

// ParseBasis converts a single basis character (z, x, y, * or -) to a Basis
func ParseBasis(r rune) (Basis, error) {
	switch r {
	case 'z', 'Z':
		return Z, nil
	case 'x', 'X':
		return X, nil
	case 'y', 'Y':
		return Y, nil
	case '*', '-':
		return Auto, nil
	default:
		return 0, fmt.Errorf("invalid basis %q: expected one of z, x, y, *", r)
	}
}

// ParseBases parses a basis assignment string such as "zx*y"
func ParseBases(s string) ([]Basis, error) {
	s = strings.TrimSpace(s)
	bases := make([]Basis, 0, len(s))
	for _, r := range s {
		b, err := ParseBasis(r)
		if err != nil {
			return nil, err
		}
		bases = append(bases, b)
	}
	return bases, nil
}

// FormatBases is the inverse of ParseBases
func FormatBases(bases []Basis) string {
	var sb strings.Builder
	for _, b := range bases {
		sb.WriteString(b.String())
	}
	return sb.String()
}
