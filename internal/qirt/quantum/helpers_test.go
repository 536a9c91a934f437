package quantum

import (
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

const tol = 1e-12

func requireVectorsClose(t *testing.T, expected, actual []complex128) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		require.InDeltaf(t, 0, cmplx.Abs(expected[i]-actual[i]), 1e-9,
			"index %d: expected %v, got %v", i, expected[i], actual[i])
	}
}

func randomVector(rng *rand.Rand, n int) []complex128 {
	v := make([]complex128, 1<<n)
	for i := range v {
		v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return v
}

func randomState(t *testing.T, rng *rand.Rand, n int) *State {
	t.Helper()
	st, err := NewState(randomVector(rng, n))
	require.NoError(t, err)
	return st
}

// allAssignments enumerates the 3^n concrete assignments of n qubits
func allAssignments(n int) []Assignment {
	out := []Assignment{{}}
	for k := 0; k < n; k++ {
		next := make([]Assignment, 0, len(out)*3)
		for _, a := range out {
			for _, b := range notation.Bases {
				c := append(a.Clone(), b)
				next = append(next, c)
			}
		}
		out = next
	}
	return out
}

func mustAssignment(t *testing.T, s string) Assignment {
	t.Helper()
	a, err := ParseAssignment(s)
	require.NoError(t, err)
	return a
}

func mustLabels(t *testing.T, labels ...Label) *State {
	t.Helper()
	st, err := LabelParser{Table: notation.Default()}.FromLabels(labels...)
	require.NoError(t, err)
	return st
}
