package quantum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// Matrix2 is a single-qubit operator, row-major
type Matrix2 [2][2]complex128

var invSqrt2 = complex(1/math.Sqrt2, 0)

// SingleQubitMatrix returns the unitary whose columns are the eigenvectors of basis b:
//
//	Z: identity
//	X: {{1, 1}, {1, -1}} / √2
//	Y: {{1, 1}, {i, -i}} / √2
//
// The Y matrix is not self-adjoint; its inverse is the conjugate transpose
// {{1, -i}, {1, i}} / √2, which is what ToBasis applies.
func SingleQubitMatrix(b notation.Basis) Matrix2 {
	switch b {
	case notation.X:
		return Matrix2{
			{invSqrt2, invSqrt2},
			{invSqrt2, -invSqrt2},
		}
	case notation.Y:
		return Matrix2{
			{invSqrt2, invSqrt2},
			{1i * invSqrt2, -1i * invSqrt2},
		}
	default:
		return Matrix2{{1, 0}, {0, 1}}
	}
}

// Adjoint returns the conjugate transpose
func (m Matrix2) Adjoint() Matrix2 {
	return Matrix2{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// Mul returns m·o
func (m Matrix2) Mul(o Matrix2) Matrix2 {
	var out Matrix2
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = m[r][0]*o[0][c] + m[r][1]*o[1][c]
		}
	}
	return out
}

// applyQubit applies m to qubit k of v in place
func applyQubit(v []complex128, k int, m Matrix2) {
	bit := 1 << k
	for i := range v {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := v[i], v[j]
		v[i] = m[0][0]*a0 + m[0][1]*a1
		v[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

func checkVector(v []complex128, a Assignment) error {
	if len(a) > HardMaxQubits || len(v) != 1<<len(a) {
		return fmt.Errorf("%w: vector of length %d for %d qubits", ErrDimensionMismatch, len(v), len(a))
	}
	return a.check(len(a))
}

// MaxDenseQubits is the largest register FullTransform materializes (16 MiB at 10 qubits)
const MaxDenseQubits = 10

// FullTransform returns the 2^n × 2^n unitary ⊗_k U_k, qubit 0 innermost:
// U[r][c] = Π_k U_k[(r>>k)&1][(c>>k)&1].
func FullTransform(a Assignment) ([][]complex128, error) {
	if err := a.check(len(a)); err != nil {
		return nil, err
	}
	if len(a) > MaxDenseQubits {
		return nil, fmt.Errorf("%w: dense transform for %d qubits exceeds the limit of %d", ErrCapacityExceeded, len(a), MaxDenseQubits)
	}

	mats := make([]Matrix2, len(a))
	for k, b := range a {
		mats[k] = SingleQubitMatrix(b)
	}

	size := 1 << len(a)
	u := make([][]complex128, size)
	for r := range u {
		u[r] = make([]complex128, size)
		for c := range u[r] {
			p := complex(1, 0)
			for k, m := range mats {
				p *= m[(r>>k)&1][(c>>k)&1]
				if p == 0 {
					break
				}
			}
			u[r][c] = p
		}
	}
	return u, nil
}

// FromBasis maps coefficients expressed in basis a to computational amplitudes (applies U)
func FromBasis(v []complex128, a Assignment) ([]complex128, error) {
	if err := checkVector(v, a); err != nil {
		return nil, err
	}
	out := make([]complex128, len(v))
	copy(out, v)
	for k, b := range a {
		if b == notation.Z {
			continue
		}
		applyQubit(out, k, SingleQubitMatrix(b))
	}
	return out, nil
}

// ToBasis expresses computational amplitudes in the eigenbasis of a (applies U†)
func ToBasis(v []complex128, a Assignment) ([]complex128, error) {
	if err := checkVector(v, a); err != nil {
		return nil, err
	}
	out := make([]complex128, len(v))
	copy(out, v)
	for k, b := range a {
		if b == notation.Z {
			continue
		}
		applyQubit(out, k, SingleQubitMatrix(b).Adjoint())
	}
	return out, nil
}
