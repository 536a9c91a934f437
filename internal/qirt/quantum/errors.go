package quantum

import (
	"errors"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

var (
	// ErrDimensionMismatch is returned when a label, basis assignment or matrix
	// does not match the qubit count it is used with
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidDimension is returned when a raw vector length is not a power of two
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrZeroState is returned when normalizing a vector with zero norm
	ErrZeroState = errors.New("zero state")
	// ErrInvalidQubitIndex is returned for out-of-range or duplicate qubit indices
	ErrInvalidQubitIndex = errors.New("invalid qubit index")
	// ErrCapacityExceeded is returned when a register would exceed the qubit ceiling
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrInvalidShots is returned when a sample is requested with fewer than one shot
	ErrInvalidShots = errors.New("invalid shot count")
	// ErrInvalidBits is returned when a bitstring holds a character other than 0 or 1
	ErrInvalidBits = errors.New("invalid bitstring")
	// ErrInvalidBasis is returned when an operation needs a concrete basis and got another
	ErrInvalidBasis = errors.New("invalid basis")

	// ErrUnknownSymbol is returned when a label character is not in the notation table
	ErrUnknownSymbol = notation.ErrUnknownSymbol
)
