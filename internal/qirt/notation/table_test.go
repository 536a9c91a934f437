package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultTable tests the built-in alphabet
func TestDefaultTable(t *testing.T) {
	table := Default()

	tests := []struct {
		symbol rune
		basis  Basis
		bit    int
	}{
		{'0', Z, 0},
		{'1', Z, 1},
		{'+', X, 0},
		{'-', X, 1},
		{'i', Y, 0},
		{'j', Y, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.symbol), func(t *testing.T) {
			basis, bit, err := table.Lookup(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.basis, basis)
			assert.Equal(t, tt.bit, bit)
			assert.Equal(t, tt.symbol, table.Symbol(tt.basis, tt.bit))
		})
	}

	_, _, err := table.Lookup('a')
	assert.ErrorIs(t, err, ErrUnknownSymbol)
	assert.Equal(t, '?', table.Symbol(Auto, 0))
	assert.Equal(t, DefaultSymbols, table.Symbols())
}

// TestNewValidation tests symbol set validation
func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Symbols)
		wantErr bool
	}{
		{"valid", func(s *Symbols) {}, false},
		{"unicode", func(s *Symbols) { s.X0, s.X1 = "→", "←" }, false},
		{"missing key", func(s *Symbols) { s.Y1 = "" }, true},
		{"two characters", func(s *Symbols) { s.Z0 = "00" }, true},
		{"duplicate", func(s *Symbols) { s.Y0 = "+" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSymbols
			tt.modify(&s)
			table, err := New(s)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNotation)
				assert.Nil(t, table)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, s, table.Symbols())
		})
	}
}

// TestValidAndKet tests label validation and rendering
func TestValidAndKet(t *testing.T) {
	table := Default()

	assert.True(t, table.Valid("0+i1-j"))
	assert.False(t, table.Valid("0x"))
	assert.False(t, table.Valid(""))

	assert.Equal(t, "0-j", table.Ket([]Basis{Z, X, Y}, []int{0, 1, 1}))
	assert.Equal(t, "", table.Ket(nil, nil))
}

// TestReplace tests the process-wide table
func TestReplace(t *testing.T) {
	previous := Current()
	t.Cleanup(func() { Replace(previous) })

	assert.Equal(t, DefaultSymbols, Current().Symbols())

	custom, err := New(Symbols{Z0: "a", Z1: "b", X0: "p", X1: "m", Y0: "r", Y1: "l"})
	require.NoError(t, err)
	Replace(custom)
	assert.Same(t, custom, Current())

	Replace(nil)
	assert.Same(t, custom, Current())
}
