package quantum

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

var gateMatrices = map[string]Matrix2{
	"h":   {{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)}, {complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)}},
	"s":   {{1, 0}, {0, 1i}},
	"sdg": {{1, 0}, {0, -1i}},
}

// TestQASMBuilder tests basic QASM circuit building
func TestQASMBuilder(t *testing.T) {
	builder := NewQASMBuilder(2, 2)
	builder.AddGate("h", 0)
	builder.AddGate("sdg", 1)
	builder.AddMeasurement(0, 0)
	builder.AddMeasurement(1, 1)

	circuit := builder.Build()

	for _, line := range []string{
		"OPENQASM 2.0;",
		"include \"qelib1.inc\";",
		"qreg q[2];",
		"creg c[2];",
		"h q[0];",
		"sdg q[1];",
		"measure q[0] -> c[0];",
		"measure q[1] -> c[1];",
	} {
		assert.Contains(t, circuit, line)
	}
}

// TestQASMBuilderNoClassical tests that no classical register is declared without measurements
func TestQASMBuilderNoClassical(t *testing.T) {
	circuit := NewQASMBuilder(1, 0).Build()
	assert.Contains(t, circuit, "qreg q[1];")
	assert.NotContains(t, circuit, "creg")
}

// TestBasisChangeGates checks that every gate sequence implements U_to† · U_from
func TestBasisChangeGates(t *testing.T) {
	for _, from := range notation.Bases {
		for _, to := range notation.Bases {
			t.Run(from.String()+"→"+to.String(), func(t *testing.T) {
				product := Matrix2{{1, 0}, {0, 1}}
				for _, gate := range BasisChangeGates(from, to) {
					m, ok := gateMatrices[gate]
					require.True(t, ok, "unknown gate %s", gate)
					product = m.Mul(product)
				}

				expected := SingleQubitMatrix(to).Adjoint().Mul(SingleQubitMatrix(from))
				requireMatrixClose(t, expected, product)
			})
		}
	}
}

// TestBuildBasisChangeCircuit tests whole-register circuits
func TestBuildBasisChangeCircuit(t *testing.T) {
	circuit, err := BuildBasisChangeCircuit(mustAssignment(t, "zzy"), mustAssignment(t, "xzz"), []int{2, 0})
	require.NoError(t, err)

	assert.Contains(t, circuit, "qreg q[3];")
	assert.Contains(t, circuit, "creg c[2];")
	assert.Contains(t, circuit, "h q[0];\nh q[2];\ns q[2];")
	assert.NotContains(t, circuit, "q[1];\n")
	assert.Contains(t, circuit, "measure q[2] -> c[0];\nmeasure q[0] -> c[1];")

	identity, err := BuildBasisChangeCircuit(AllZ(2), AllZ(2), nil)
	require.NoError(t, err)
	assert.False(t, strings.Contains(identity, "h q"))

	_, err = BuildBasisChangeCircuit(AllZ(2), AllZ(3), nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = BuildBasisChangeCircuit(AllZ(2), mustAssignment(t, "z*"), nil)
	assert.ErrorIs(t, err, ErrInvalidBasis)
	_, err = BuildBasisChangeCircuit(AllZ(2), AllZ(2), []int{5})
	assert.ErrorIs(t, err, ErrInvalidQubitIndex)
}
