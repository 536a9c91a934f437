package quantum

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// TestNewSimulator tests simulator creation
func TestNewSimulator(t *testing.T) {
	sim := NewSimulator(nil, 0)

	assert.Equal(t, "StateVectorSimulator", sim.Name())
	assert.Equal(t, DefaultMaxQubits, sim.MaxQubits())
	assert.True(t, sim.IsSimulator())

	assert.Equal(t, HardMaxQubits, NewSimulator(nil, 100).MaxQubits())
}

// TestSimulatorCapacity tests the configured qubit ceiling
func TestSimulatorCapacity(t *testing.T) {
	sim := NewSimulator(notation.Default(), 3)

	_, err := sim.FromLabels(L("0000"))
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	_, err = sim.NewState(make([]complex128, 16))
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	st, err := sim.FromLabels(L("000"))
	require.NoError(t, err)
	assert.Equal(t, 3, st.NumQubits())
}

// TestSimulatorAssignment tests basis string parsing against a qubit count
func TestSimulatorAssignment(t *testing.T) {
	sim := NewSimulator(notation.Default(), 0)

	a, err := sim.Assignment("", 3)
	require.NoError(t, err)
	assert.Equal(t, "zzz", a.String())

	a, err = sim.Assignment("XyZ", 3)
	require.NoError(t, err)
	assert.Equal(t, "xyz", a.String())

	_, err = sim.Assignment("xy", 3)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = sim.Assignment("xq", 2)
	assert.ErrorIs(t, err, ErrInvalidBasis)
}

// TestSimulatorConvert tests conversion with auto entries
func TestSimulatorConvert(t *testing.T) {
	sim := NewSimulator(notation.Default(), 0)
	st, err := sim.FromLabels(L("+i"))
	require.NoError(t, err)

	converted, used, err := sim.Convert(st, mustAssignment(t, "**"))
	require.NoError(t, err)
	assert.Equal(t, "xy", used.String())
	assert.InDelta(t, 0.0, converted.Entropy(), 1e-9)

	terms, used, err := sim.Terms(st, mustAssignment(t, "x*"))
	require.NoError(t, err)
	assert.Equal(t, "xy", used.String())
	assert.Equal(t, []string{"+i"}, termSymbols(terms))
}

// TestSimulatorMeasureAuto tests that auto bases of unmeasured qubits pick the display basis
func TestSimulatorMeasureAuto(t *testing.T) {
	sim := NewSimulator(notation.Default(), 0)
	st, err := sim.FromLabels(L("000"), L("1--"))
	require.NoError(t, err)

	set, err := sim.Measure(st, []int{0}, mustAssignment(t, "z**"))
	require.NoError(t, err)
	assert.Equal(t, "zzz", set.Basis.String())

	one := set.Outcomes[1]
	require.True(t, one.Possible())
	assert.True(t, one.State.Equal(mustLabels(t, L("--"))))

	_, err = sim.Measure(st, []int{3}, AllZ(3))
	assert.ErrorIs(t, err, ErrInvalidQubitIndex)
}

// TestSimulatorSample tests sampling through the simulator
func TestSimulatorSample(t *testing.T) {
	sim := NewSimulator(notation.Default(), 0)
	st, err := sim.FromLabels(L("+0"))
	require.NoError(t, err)

	counts, err := sim.Sample(st, []int{0, 1}, mustAssignment(t, "xz"), 50, rand.NewPCG(3, 3))
	require.NoError(t, err)
	assert.Equal(t, Counts{"00": 50}, counts)

	_, err = sim.Sample(st, []int{0}, AllZ(2), -1, nil)
	assert.ErrorIs(t, err, ErrInvalidShots)
}

// TestSimulatorFollowsCurrentTable tests that a nil table tracks notation.Replace
func TestSimulatorFollowsCurrentTable(t *testing.T) {
	previous := notation.Current()
	t.Cleanup(func() { notation.Replace(previous) })

	custom, err := notation.New(notation.Symbols{Z0: "a", Z1: "b", X0: "p", X1: "m", Y0: "r", Y1: "l"})
	require.NoError(t, err)
	notation.Replace(custom)

	sim := NewSimulator(nil, 0)
	st, err := sim.FromLabels(L("bp"))
	require.NoError(t, err)

	terms, _, err := sim.Terms(st, mustAssignment(t, "zx"))
	require.NoError(t, err)
	assert.Equal(t, []string{"bp"}, termSymbols(terms))

	_, err = sim.FromLabels(L("1+"))
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}
