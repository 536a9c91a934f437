package quantum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseBits tests bitstring parsing and formatting
func TestParseBits(t *testing.T) {
	bits, err := ParseBits("0110")
	require.NoError(t, err)
	assert.Equal(t, []Bit{Zero, One, One, Zero}, bits)
	assert.Equal(t, "0110", FormatBits(bits))

	bits, err = ParseBits("")
	require.NoError(t, err)
	assert.Empty(t, bits)

	for _, bad := range []string{"0a", "2", "01 "} {
		_, err := ParseBits(bad)
		assert.ErrorIs(t, err, ErrInvalidBits, bad)
	}
}
