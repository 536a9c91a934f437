package quantum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveAuto tests minimum-entropy basis selection with both strategies
func TestResolveAuto(t *testing.T) {
	tests := []struct {
		name     string
		labels   []Label
		basis    string
		expected string
		entropy  float64
	}{
		{"product state", []Label{L("+0i")}, "***", "xzy", 0},
		{"concrete entries kept", []Label{L("000")}, "*x*", "zxz", 1},
		{"dash is auto", []Label{L("-j")}, "--", "xy", 0},
		{"nothing to resolve", []Label{L("+")}, "z", "z", 1},
		{"Bell state prefers Z", []Label{L("00"), L("11")}, "**", "zz", 1},
	}

	for _, tt := range tests {
		for _, strategy := range []Strategy{StrategyGlobal, StrategyLocal} {
			t.Run(tt.name+"/"+strategy.String(), func(t *testing.T) {
				st := mustLabels(t, tt.labels...)
				resolved, err := ResolveAuto(st, mustAssignment(t, tt.basis), strategy)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, resolved.String())
				assert.True(t, resolved.Concrete())

				h, err := entropyIn(st, resolved)
				require.NoError(t, err)
				assert.InDelta(t, tt.entropy, h, 1e-9)
			})
		}
	}
}

// TestResolveAutoTies tests that equal-entropy candidates resolve in product order,
// the last auto qubit varying fastest
func TestResolveAutoTies(t *testing.T) {
	tests := []struct {
		name   string
		labels []Label
	}{
		{"0+ and +0", []Label{L("0+"), L("+0")}},
		{"0+ and i0", []Label{L("0+"), L("i0")}},
		{"0+ and 1i", []Label{L("0+"), L("1i")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := mustLabels(t, tt.labels...)
			resolved, err := ResolveAuto(st, mustAssignment(t, "**"), StrategyGlobal)
			require.NoError(t, err)
			assert.Equal(t, "zx", resolved.String())
		})
	}
}

// TestResolveAutoDoesNotMutate tests that the input assignment is left alone
func TestResolveAutoDoesNotMutate(t *testing.T) {
	st := mustLabels(t, L("+"))
	a := mustAssignment(t, "*")

	_, err := ResolveAuto(st, a, StrategyGlobal)
	require.NoError(t, err)
	assert.Equal(t, "*", a.String())
}

// TestResolveAutoErrors tests argument validation
func TestResolveAutoErrors(t *testing.T) {
	st := mustLabels(t, L("00"))

	_, err := ResolveAuto(st, mustAssignment(t, "*"), StrategyGlobal)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = ResolveAuto(st, mustAssignment(t, "**"), Strategy(9))
	assert.Error(t, err)
}

// TestStrategy tests strategy parsing and selection
func TestStrategy(t *testing.T) {
	s, err := ParseStrategy("local")
	require.NoError(t, err)
	assert.Equal(t, StrategyLocal, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyGlobal, s)

	_, err = ParseStrategy("random")
	assert.Error(t, err)

	assert.Equal(t, StrategyGlobal, StrategyFor(GlobalSearchLimit))
	assert.Equal(t, StrategyLocal, StrategyFor(GlobalSearchLimit+1))
}
