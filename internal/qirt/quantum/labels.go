package quantum

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// Label is one term of a ket expression: a coefficient and a symbol string with one
// character per qubit (character k is qubit k)
type Label struct {
	Coefficient complex128
	Symbols     string
}

// L returns a label with coefficient 1
func L(symbols string) Label {
	return Label{Coefficient: 1, Symbols: symbols}
}

// C returns a label with the given coefficient
func C(coefficient complex128, symbols string) Label {
	return Label{Coefficient: coefficient, Symbols: symbols}
}

// eigenvector returns the unnormalized eigenvector of b for bit and its scale factor
func eigenvector(b notation.Basis, bit int) ([2]complex128, float64) {
	switch b {
	case notation.X:
		if bit == 0 {
			return [2]complex128{1, 1}, 1 / math.Sqrt2
		}
		return [2]complex128{1, -1}, 1 / math.Sqrt2
	case notation.Y:
		if bit == 0 {
			return [2]complex128{1, 1i}, 1 / math.Sqrt2
		}
		return [2]complex128{1, -1i}, 1 / math.Sqrt2
	default:
		if bit == 0 {
			return [2]complex128{1, 0}, 1
		}
		return [2]complex128{0, 1}, 1
	}
}

// LabelParser turns ket labels into amplitude vectors
type LabelParser struct {
	Table *notation.Table
	// MaxQubits caps the label length; zero means HardMaxQubits
	MaxQubits int
}

func (p LabelParser) limit() int {
	if p.MaxQubits <= 0 || p.MaxQubits > HardMaxQubits {
		return HardMaxQubits
	}
	return p.MaxQubits
}

// Parse sums the tensor-product vectors of every label and normalizes the result
func (p LabelParser) Parse(labels ...Label) ([]complex128, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no labels given", ErrDimensionMismatch)
	}
	table := p.Table
	if table == nil {
		table = notation.Current()
	}

	n := utf8.RuneCountInString(labels[0].Symbols)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty label", ErrDimensionMismatch)
	}
	if n > p.limit() {
		return nil, fmt.Errorf("%w: label %q has %d qubits, limit is %d", ErrCapacityExceeded, labels[0].Symbols, n, p.limit())
	}

	sum := make([]complex128, 1<<n)
	for li, label := range labels {
		if got := utf8.RuneCountInString(label.Symbols); got != n {
			return nil, fmt.Errorf("%w: label %d %q has %d qubits, expected %d", ErrDimensionMismatch, li, label.Symbols, got, n)
		}

		// Build the tensor product, qubit k contributing bit k of the index
		term := make([]complex128, 1, 1<<n)
		term[0] = label.Coefficient
		for _, r := range label.Symbols {
			basis, bit, err := table.Lookup(r)
			if err != nil {
				return nil, fmt.Errorf("label %q: %w", label.Symbols, err)
			}
			vec, scale := eigenvector(basis, bit)
			size := len(term)
			term = term[:2*size]
			for i := 0; i < size; i++ {
				t := term[i] * complex(scale, 0)
				term[i] = t * vec[0]
				term[i+size] = t * vec[1]
			}
		}

		for i, a := range term {
			sum[i] += a
		}
	}

	if err := normalize(sum); err != nil {
		return nil, fmt.Errorf("labels cancel out: %w", err)
	}
	return sum, nil
}

// ParseLabels parses labels with table and no capacity limit beyond HardMaxQubits
func ParseLabels(table *notation.Table, labels ...Label) ([]complex128, error) {
	return LabelParser{Table: table}.Parse(labels...)
}

// FromLabels parses labels with the process-wide notation and wraps the result
func FromLabels(labels ...Label) (*State, error) {
	return LabelParser{}.FromLabels(labels...)
}

// FromLabels parses labels and wraps the normalized vector in a State
func (p LabelParser) FromLabels(labels ...Label) (*State, error) {
	v, err := p.Parse(labels...)
	if err != nil {
		return nil, err
	}
	n, _ := qubitCount(len(v))
	return wrap(v, n), nil
}
