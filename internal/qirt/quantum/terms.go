package quantum

import (
	"sort"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// probabilityTieTolerance treats probabilities closer than this as equal when sorting
const probabilityTieTolerance = 1e-12

// Term is one non-zero ket of a state expressed in some basis assignment
type Term struct {
	// Index is the position of the ket in the rotated vector
	Index int
	// Coefficient is the amplitude of the ket
	Coefficient complex128
	// Symbols is the ket label, character k being qubit k
	Symbols string
	// Probability is |Coefficient|²
	Probability float64
}

// Terms expresses st in assignment a and lists its non-zero kets sorted by descending
// probability, ties broken by ascending index. This is the only view a renderer needs.
func Terms(st *State, a Assignment, t *notation.Table) ([]Term, error) {
	v, err := ToBasis(st.amps, a)
	if err != nil {
		return nil, err
	}

	n := st.NumQubits()
	bits := make([]int, n)
	terms := make([]Term, 0)
	for i, c := range v {
		p := real(c)*real(c) + imag(c)*imag(c)
		if p <= Epsilon*Epsilon {
			continue
		}
		for k := 0; k < n; k++ {
			bits[k] = int(bitAt(i, k))
		}
		terms = append(terms, Term{
			Index:       i,
			Coefficient: c,
			Symbols:     t.Ket(a, bits),
			Probability: p,
		})
	}

	sort.SliceStable(terms, func(i, j int) bool {
		if d := terms[i].Probability - terms[j].Probability; d > probabilityTieTolerance || d < -probabilityTieTolerance {
			return d > 0
		}
		return terms[i].Index < terms[j].Index
	})
	return terms, nil
}
