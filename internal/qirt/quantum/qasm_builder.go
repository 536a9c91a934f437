package quantum

import (
	"fmt"
	"strings"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// QASMBuilder builds OpenQASM 2.0 circuits for basis changes
type QASMBuilder struct {
	version      string
	includeStmt  string
	registers    []string
	gates        []string
	measurements []string
}

// NewQASMBuilder creates a new OpenQASM circuit builder
func NewQASMBuilder(numQubits int, numClassical int) *QASMBuilder {
	builder := &QASMBuilder{
		version:      "OPENQASM 2.0;",
		includeStmt:  "include \"qelib1.inc\";",
		registers:    make([]string, 0),
		gates:        make([]string, 0),
		measurements: make([]string, 0),
	}

	builder.registers = append(builder.registers, fmt.Sprintf("qreg q[%d];", numQubits))
	if numClassical > 0 {
		builder.registers = append(builder.registers, fmt.Sprintf("creg c[%d];", numClassical))
	}

	return builder
}

// AddGate adds a single-qubit gate such as "h" on qubit
func (b *QASMBuilder) AddGate(gate string, qubit int) {
	b.gates = append(b.gates, fmt.Sprintf("%s q[%d];", gate, qubit))
}

// AddMeasurement adds a measurement operation
func (b *QASMBuilder) AddMeasurement(qubit int, classical int) {
	b.measurements = append(b.measurements,
		fmt.Sprintf("measure q[%d] -> c[%d];", qubit, classical))
}

// Build generates the complete QASM circuit string
func (b *QASMBuilder) Build() string {
	var circuit strings.Builder

	circuit.WriteString(b.version + "\n")
	circuit.WriteString(b.includeStmt + "\n")
	circuit.WriteString("\n")

	for _, reg := range b.registers {
		circuit.WriteString(reg + "\n")
	}

	if len(b.gates) > 0 {
		circuit.WriteString("\n")
		for _, gate := range b.gates {
			circuit.WriteString(gate + "\n")
		}
	}

	if len(b.measurements) > 0 {
		circuit.WriteString("\n")
		for _, meas := range b.measurements {
			circuit.WriteString(meas + "\n")
		}
	}

	return circuit.String()
}

// BasisChangeGates returns the gates, in application order, that take a qubit whose
// state is expressed in basis from to the same state expressed in basis to. The
// product of the gates equals U_to† · U_from.
func BasisChangeGates(from, to notation.Basis) []string {
	switch {
	case from == to:
		return nil
	case from == notation.Z && to == notation.X, from == notation.X && to == notation.Z:
		return []string{"h"}
	case from == notation.Z && to == notation.Y:
		return []string{"sdg", "h"}
	case from == notation.Y && to == notation.Z:
		return []string{"h", "s"}
	case from == notation.X && to == notation.Y:
		return []string{"h", "sdg", "h"}
	case from == notation.Y && to == notation.X:
		return []string{"h", "s", "h"}
	default:
		return nil
	}
}

// BuildBasisChangeCircuit emits a circuit rotating every qubit from one assignment to
// another, optionally measuring the listed qubits afterwards (classical bit p
// receives measured[p]).
func BuildBasisChangeCircuit(from, to Assignment, measured []int) (string, error) {
	n := len(to)
	if err := from.check(n); err != nil {
		return "", err
	}
	if err := to.check(n); err != nil {
		return "", err
	}
	if err := ValidateQubits(measured, n); err != nil {
		return "", err
	}

	builder := NewQASMBuilder(n, len(measured))
	for k := 0; k < n; k++ {
		for _, gate := range BasisChangeGates(from[k], to[k]) {
			builder.AddGate(gate, k)
		}
	}
	for p, q := range measured {
		builder.AddMeasurement(q, p)
	}

	return builder.Build(), nil
}
