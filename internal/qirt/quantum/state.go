package quantum

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"math/cmplx"

	"golang.org/x/crypto/sha3"
)

// State is an immutable, normalized pure state of n qubits.
//
// Amplitude index i holds qubit k's bit at (i >> k) & 1. A State never changes after
// construction; every conversion returns a new State.
type State struct {
	amps []complex128
	n    int
}

// NewState validates, copies and normalizes a raw amplitude vector
func NewState(amps []complex128) (*State, error) {
	n, err := qubitCount(len(amps))
	if err != nil {
		return nil, err
	}
	if n > HardMaxQubits {
		return nil, fmt.Errorf("%w: %d qubits exceeds the limit of %d", ErrCapacityExceeded, n, HardMaxQubits)
	}

	owned := make([]complex128, len(amps))
	copy(owned, amps)
	if err := normalize(owned); err != nil {
		return nil, err
	}

	return &State{amps: owned, n: n}, nil
}

// MustState is NewState for vectors known to be valid; it panics otherwise
func MustState(amps ...complex128) *State {
	st, err := NewState(amps)
	if err != nil {
		panic(err)
	}
	return st
}

// BasisState returns the computational basis state |index⟩ on n qubits
func BasisState(n, index int) (*State, error) {
	if n < 0 || n > HardMaxQubits {
		return nil, fmt.Errorf("%w: %d qubits", ErrCapacityExceeded, n)
	}
	if index < 0 || index >= 1<<n {
		return nil, fmt.Errorf("%w: basis index %d out of range for %d qubits", ErrInvalidDimension, index, n)
	}
	amps := make([]complex128, 1<<n)
	amps[index] = 1
	return &State{amps: amps, n: n}, nil
}

// wrap takes ownership of an already-normalized vector
func wrap(amps []complex128, n int) *State {
	return &State{amps: amps, n: n}
}

func norm(v []complex128) float64 {
	sum := 0.0
	for _, a := range v {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

func normalize(v []complex128) error {
	nrm := norm(v)
	if nrm <= Epsilon || math.IsNaN(nrm) {
		return fmt.Errorf("%w: vector norm is %g", ErrZeroState, nrm)
	}
	scale := complex(1/nrm, 0)
	for i := range v {
		v[i] *= scale
	}
	return nil
}

// NumQubits returns the number of qubits n
func (s *State) NumQubits() int {
	return s.n
}

// Len returns the vector length 2^n
func (s *State) Len() int {
	return len(s.amps)
}

// Amplitudes returns a copy of the amplitude vector
func (s *State) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amps))
	copy(out, s.amps)
	return out
}

// Amplitude returns the amplitude at index i
func (s *State) Amplitude(i int) complex128 {
	return s.amps[i]
}

// Probabilities returns |a|² for every amplitude
func (s *State) Probabilities() []float64 {
	return probabilities(s.amps)
}

func probabilities(v []complex128) []float64 {
	probs := make([]float64, len(v))
	for i, a := range v {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// ProbabilityOf returns the probability of observing bitstring when measuring every
// qubit in the Z basis. Character k of bitstring is qubit k.
func (s *State) ProbabilityOf(bitstring string) (float64, error) {
	if len(bitstring) != s.n {
		return 0, fmt.Errorf("%w: bitstring %q has %d bits for %d qubits", ErrDimensionMismatch, bitstring, len(bitstring), s.n)
	}
	bits, err := ParseBits(bitstring)
	if err != nil {
		return 0, err
	}
	idx := 0
	for k, b := range bits {
		idx |= int(b) << k
	}
	a := s.amps[idx]
	return real(a)*real(a) + imag(a)*imag(a), nil
}

// Inner returns ⟨s|other⟩
func (s *State) Inner(other *State) (complex128, error) {
	if s.n != other.n {
		return 0, fmt.Errorf("%w: %d and %d qubits", ErrDimensionMismatch, s.n, other.n)
	}
	var sum complex128
	for i, a := range s.amps {
		sum += cmplx.Conj(a) * other.amps[i]
	}
	return sum, nil
}

// Fidelity returns |⟨s|other⟩|², or 0 when the qubit counts differ
func (s *State) Fidelity(other *State) float64 {
	ip, err := s.Inner(other)
	if err != nil {
		return 0
	}
	m := cmplx.Abs(ip)
	return m * m
}

// Equal reports whether both states describe the same physical state, ignoring
// global phase
func (s *State) Equal(other *State) bool {
	if s == nil || other == nil {
		return s == other
	}
	return math.Abs(1-s.Fidelity(other)) <= 1e-8
}

// EqualExact compares amplitudes element-wise within tol, phase included
func (s *State) EqualExact(other *State, tol float64) bool {
	if s.n != other.n {
		return false
	}
	for i, a := range s.amps {
		if cmplx.Abs(a-other.amps[i]) > tol {
			return false
		}
	}
	return true
}

// InBasis re-expresses the state in the eigenbasis given by a. The returned State's
// amplitudes are the coefficients of the basis kets of a.
func (s *State) InBasis(a Assignment) (*State, error) {
	v, err := ToBasis(s.amps, a)
	if err != nil {
		return nil, err
	}
	return wrap(v, s.n), nil
}

// FromBasis interprets the amplitudes as coefficients in basis a and returns the
// equivalent computational-basis state
func (s *State) FromBasis(a Assignment) (*State, error) {
	v, err := FromBasis(s.amps, a)
	if err != nil {
		return nil, err
	}
	return wrap(v, s.n), nil
}

// Apply multiplies the state by a 2^n × 2^n matrix, typically a unitary produced by
// an external circuit engine. The result is renormalized.
func (s *State) Apply(unitary [][]complex128) (*State, error) {
	size := len(s.amps)
	if len(unitary) != size {
		return nil, fmt.Errorf("%w: matrix has %d rows for a %d-dimensional state", ErrDimensionMismatch, len(unitary), size)
	}

	out := make([]complex128, size)
	for r, row := range unitary {
		if len(row) != size {
			return nil, fmt.Errorf("%w: matrix row %d has %d columns", ErrDimensionMismatch, r, len(row))
		}
		var sum complex128
		for c, u := range row {
			sum += u * s.amps[c]
		}
		out[r] = sum
	}

	if err := normalize(out); err != nil {
		return nil, err
	}
	return wrap(out, s.n), nil
}

// Entropy returns the Shannon entropy, in bits, of the Z-basis outcome distribution
func (s *State) Entropy() float64 {
	return entropy(probabilities(s.amps))
}

func entropy(probs []float64) float64 {
	h := 0.0
	for _, p := range probs {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	if h < 0 {
		return 0
	}
	return h
}

// Fingerprint returns a hex SHA3-256 digest identifying the state up to global phase
// and rounding at 1e-9
func (s *State) Fingerprint() string {
	// Rotate so the first non-negligible amplitude is real and positive
	phase := complex(1, 0)
	for _, a := range s.amps {
		if m := cmplx.Abs(a); m > Epsilon {
			phase = cmplx.Conj(a) / complex(m, 0)
			break
		}
	}

	h := sha3.New256()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s.n))
	h.Write(buf[:])
	for _, a := range s.amps {
		c := a * phase
		for _, part := range [2]float64{real(c), imag(c)} {
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(math.Round(part*1e9))))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// String renders the raw amplitude vector
func (s *State) String() string {
	return fmt.Sprintf("State(%d qubits, %v)", s.n, s.amps)
}
