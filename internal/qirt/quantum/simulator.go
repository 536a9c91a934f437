package quantum

import (
	"fmt"
	"math/rand/v2"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// DefaultMaxQubits is the register ceiling used when none is configured
const DefaultMaxQubits = 20

// Simulator binds the state engine to a notation table and a qubit ceiling. It is the
// entry point used by the CLI and the HTTP API.
type Simulator struct {
	name      string
	table     *notation.Table
	maxQubits int
}

// NewSimulator creates a simulator. A nil table follows the process-wide table, so
// hot-reloaded notation applies to subsequent calls. maxQubits <= 0 selects
// DefaultMaxQubits.
func NewSimulator(table *notation.Table, maxQubits int) *Simulator {
	if maxQubits <= 0 {
		maxQubits = DefaultMaxQubits
	}
	if maxQubits > HardMaxQubits {
		maxQubits = HardMaxQubits
	}
	return &Simulator{
		name:      "StateVectorSimulator",
		table:     table,
		maxQubits: maxQubits,
	}
}

// Name returns the name of the simulator
func (s *Simulator) Name() string {
	return s.name
}

// MaxQubits returns the configured register ceiling
func (s *Simulator) MaxQubits() int {
	return s.maxQubits
}

// Table returns the notation table in effect for the next call
func (s *Simulator) Table() *notation.Table {
	if s.table != nil {
		return s.table
	}
	return notation.Current()
}

func (s *Simulator) checkCapacity(n int) error {
	if n > s.maxQubits {
		return fmt.Errorf("%w: %d qubits requested, limit is %d", ErrCapacityExceeded, n, s.maxQubits)
	}
	return nil
}

// NewState wraps a raw vector, enforcing the qubit ceiling before normalizing
func (s *Simulator) NewState(amps []complex128) (*State, error) {
	n, err := qubitCount(len(amps))
	if err != nil {
		return nil, err
	}
	if err := s.checkCapacity(n); err != nil {
		return nil, err
	}
	return NewState(amps)
}

// FromLabels builds a state from ket labels using the simulator's table
func (s *Simulator) FromLabels(labels ...Label) (*State, error) {
	return LabelParser{Table: s.Table(), MaxQubits: s.maxQubits}.FromLabels(labels...)
}

// Assignment parses a basis string for an n-qubit state. An empty string means all-Z.
func (s *Simulator) Assignment(basis string, n int) (Assignment, error) {
	if basis == "" {
		return AllZ(n), nil
	}
	a, err := ParseAssignment(basis)
	if err != nil {
		return nil, err
	}
	if len(a) != n {
		return nil, fmt.Errorf("%w: basis %q has %d entries for %d qubits", ErrDimensionMismatch, basis, len(a), n)
	}
	return a, nil
}

// Resolve replaces Auto entries with minimum-entropy bases, choosing the strategy by
// the number of auto qubits
func (s *Simulator) Resolve(st *State, a Assignment) (Assignment, error) {
	if a.Concrete() {
		if err := a.check(st.NumQubits()); err != nil {
			return nil, err
		}
		return a, nil
	}
	auto := 0
	for _, b := range a {
		if b == notation.Auto {
			auto++
		}
	}
	return ResolveAuto(st, a, StrategyFor(auto))
}

// Convert re-expresses st in a (after resolving Auto entries) and returns the
// assignment actually used
func (s *Simulator) Convert(st *State, a Assignment) (*State, Assignment, error) {
	resolved, err := s.Resolve(st, a)
	if err != nil {
		return nil, nil, err
	}
	converted, err := st.InBasis(resolved)
	if err != nil {
		return nil, nil, err
	}
	return converted, resolved, nil
}

// Terms lists the kets of st in a, resolving Auto entries first
func (s *Simulator) Terms(st *State, a Assignment) ([]Term, Assignment, error) {
	resolved, err := s.Resolve(st, a)
	if err != nil {
		return nil, nil, err
	}
	terms, err := Terms(st, resolved, s.Table())
	if err != nil {
		return nil, nil, err
	}
	return terms, resolved, nil
}

// Measure measures the listed qubits, resolving Auto entries of target first
func (s *Simulator) Measure(st *State, measured []int, target Assignment) (*OutcomeSet, error) {
	if err := ValidateQubits(measured, st.NumQubits()); err != nil {
		return nil, err
	}
	resolved, err := s.Resolve(st, target)
	if err != nil {
		return nil, err
	}
	return Measure(st, measured, resolved)
}

// Sample draws shots outcomes; see Sample
func (s *Simulator) Sample(st *State, measured []int, target Assignment, shots int, src rand.Source) (Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}
	set, err := s.Measure(st, measured, target)
	if err != nil {
		return nil, err
	}
	return SampleOutcomes(set, shots, src)
}

// IsSimulator returns true since every result is computed exactly
func (s *Simulator) IsSimulator() bool {
	return true
}
