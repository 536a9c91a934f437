package quantum

import (
	"fmt"
	"strings"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// Epsilon is the tolerance used for normalization and zero-probability checks
const Epsilon = 1e-9

// HardMaxQubits bounds every register regardless of configuration, so that
// 1<<n always fits an int slice length.
const HardMaxQubits = 30

// Bit represents a classical bit (0 or 1)
type Bit int

const (
	Zero Bit = 0
	One  Bit = 1
)

// bitAt extracts qubit k's bit from amplitude index i
func bitAt(i, k int) Bit {
	return Bit((i >> k) & 1)
}

// FormatBits renders bits as a "0"/"1" string, first bit first
func FormatBits(bits []Bit) string {
	var sb strings.Builder
	for _, b := range bits {
		if b == One {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseBits parses a "0"/"1" string
func ParseBits(s string) ([]Bit, error) {
	bits := make([]Bit, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits[i] = Zero
		case '1':
			bits[i] = One
		default:
			return nil, fmt.Errorf("%w: invalid bit %q at position %d", ErrInvalidBits, s[i], i)
		}
	}
	return bits, nil
}

// Assignment is a per-qubit basis choice, index-aligned with qubit index
type Assignment []notation.Basis

// AllZ returns the computational-basis assignment for n qubits
func AllZ(n int) Assignment {
	return Uniform(n, notation.Z)
}

// Uniform returns an assignment with every qubit in basis b
func Uniform(n int, b notation.Basis) Assignment {
	a := make(Assignment, n)
	for i := range a {
		a[i] = b
	}
	return a
}

// ParseAssignment parses a string such as "zxy" or "z*x"
func ParseAssignment(s string) (Assignment, error) {
	bases, err := notation.ParseBases(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasis, err)
	}
	return Assignment(bases), nil
}

func (a Assignment) String() string {
	return notation.FormatBases(a)
}

// Concrete reports whether no entry is Auto
func (a Assignment) Concrete() bool {
	for _, b := range a {
		if !b.Concrete() {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

func (a Assignment) check(n int) error {
	if len(a) != n {
		return fmt.Errorf("%w: basis assignment has %d entries for %d qubits", ErrDimensionMismatch, len(a), n)
	}
	for k, b := range a {
		if !b.Concrete() {
			return fmt.Errorf("%w: qubit %d has basis %s", ErrInvalidBasis, k, b)
		}
	}
	return nil
}

func qubitCount(length int) (int, error) {
	if length < 1 || length&(length-1) != 0 {
		return 0, fmt.Errorf("%w: vector length %d is not a power of 2", ErrInvalidDimension, length)
	}
	n := 0
	for 1<<n < length {
		n++
	}
	return n, nil
}
