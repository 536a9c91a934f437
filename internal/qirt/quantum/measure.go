package quantum

import (
	"fmt"
	"math"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// Outcome is one possible result of measuring a subset of qubits
type Outcome struct {
	// Index is the integer formed by the measured bits, first measured qubit most significant
	Index int
	// Bits holds the measured bit of each qubit, in measurement order
	Bits []Bit
	// Probability of observing this outcome
	Probability float64
	// State is the post-measurement state of the remaining qubits in the computational
	// basis, or nil when the outcome cannot occur
	State *State
	// Coefficients is the same post-measurement state expressed in the remaining
	// qubits' display bases, or nil when the outcome cannot occur
	Coefficients *State
}

// Possible reports whether the outcome has non-negligible probability
func (o Outcome) Possible() bool {
	return o.State != nil
}

// OutcomeSet is the full result of Measure
type OutcomeSet struct {
	// Measured lists the measured qubits in the order given to Measure
	Measured []int
	// Remaining lists the unmeasured qubits in ascending order; remaining qubit
	// Remaining[r] is qubit r of every post-measurement state
	Remaining []int
	// Basis is the assignment the state was measured and displayed in
	Basis Assignment
	// Outcomes has 2^len(Measured) entries indexed by Outcome.Index
	Outcomes []Outcome
}

// MeasuredBases returns the bases of the measured qubits, in measurement order
func (s *OutcomeSet) MeasuredBases() []notation.Basis {
	out := make([]notation.Basis, len(s.Measured))
	for p, q := range s.Measured {
		out[p] = s.Basis[q]
	}
	return out
}

// RemainingBases returns the display bases of the remaining qubits
func (s *OutcomeSet) RemainingBases() Assignment {
	out := make(Assignment, len(s.Remaining))
	for r, q := range s.Remaining {
		out[r] = s.Basis[q]
	}
	return out
}

// Ket renders outcome j with the measurement bases' symbols
func (s *OutcomeSet) Ket(t *notation.Table, j int) string {
	o := s.Outcomes[j]
	bits := make([]int, len(o.Bits))
	for i, b := range o.Bits {
		bits[i] = int(b)
	}
	return t.Ket(s.MeasuredBases(), bits)
}

// TotalProbability sums every outcome probability
func (s *OutcomeSet) TotalProbability() float64 {
	total := 0.0
	for _, o := range s.Outcomes {
		total += o.Probability
	}
	return total
}

// ValidateQubits checks that measured holds distinct indices in [0, n)
func ValidateQubits(measured []int, n int) error {
	seen := make(map[int]bool, len(measured))
	for _, q := range measured {
		if q < 0 || q >= n {
			return fmt.Errorf("%w: qubit %d out of range [0,%d)", ErrInvalidQubitIndex, q, n)
		}
		if seen[q] {
			return fmt.Errorf("%w: qubit %d listed twice", ErrInvalidQubitIndex, q)
		}
		seen[q] = true
	}
	return nil
}

// Measure computes every outcome of measuring the qubits in measured, each in its
// basis from target. Unmeasured qubits are expressed in their target basis too, which
// is how the display basis of the post-measurement states is chosen.
func Measure(st *State, measured []int, target Assignment) (*OutcomeSet, error) {
	n := st.NumQubits()
	if err := target.check(n); err != nil {
		return nil, err
	}
	if err := ValidateQubits(measured, n); err != nil {
		return nil, err
	}

	// Step 1: rotate into the target basis
	rotated, err := ToBasis(st.amps, target)
	if err != nil {
		return nil, err
	}

	isMeasured := make([]bool, n)
	for _, q := range measured {
		isMeasured[q] = true
	}
	remaining := make([]int, 0, n-len(measured))
	for q := 0; q < n; q++ {
		if !isMeasured[q] {
			remaining = append(remaining, q)
		}
	}

	m := len(measured)
	groups := 1 << m
	subLen := 1 << len(remaining)

	// Step 2: group amplitudes by their measured bit pattern
	probs := make([]float64, groups)
	subs := make([][]complex128, groups)
	for j := range subs {
		subs[j] = make([]complex128, subLen)
	}
	for i, a := range rotated {
		j := 0
		for _, q := range measured {
			j = j<<1 | (i>>q)&1
		}
		r := 0
		for t, q := range remaining {
			r |= ((i >> q) & 1) << t
		}
		probs[j] += real(a)*real(a) + imag(a)*imag(a)
		subs[j][r] = a
	}

	set := &OutcomeSet{
		Measured:  append([]int(nil), measured...),
		Remaining: remaining,
		Basis:     target.Clone(),
		Outcomes:  make([]Outcome, groups),
	}
	remainingBases := set.RemainingBases()

	// Step 3: renormalize each possible branch
	for j := 0; j < groups; j++ {
		o := Outcome{Index: j, Bits: make([]Bit, m), Probability: probs[j]}
		for p := range measured {
			o.Bits[p] = Bit((j >> (m - 1 - p)) & 1)
		}

		if probs[j] > Epsilon {
			scale := complex(1/math.Sqrt(probs[j]), 0)
			sub := subs[j]
			for r := range sub {
				sub[r] *= scale
			}
			o.Coefficients = wrap(sub, len(remaining))

			computational, err := FromBasis(sub, remainingBases)
			if err != nil {
				return nil, err
			}
			o.State = wrap(computational, len(remaining))
		}
		set.Outcomes[j] = o
	}

	return set, nil
}
