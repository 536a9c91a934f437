// Package notation holds the ket symbol alphabet used to read and write labels.
//
// A Table maps each (basis, bit) pair to a single display character and back. The
// six characters must be distinct so that a label character identifies its basis
// unambiguously.
package notation

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unicode/utf8"
)

var (
	// ErrInvalidNotation is returned when a symbol set is malformed
	ErrInvalidNotation = errors.New("invalid notation")
	// ErrUnknownSymbol is returned when a character is not registered for any basis
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Symbols is the raw six-key notation, as it appears in the [ket] section
type Symbols struct {
	Z0 string `ini:"z0" json:"z0"`
	Z1 string `ini:"z1" json:"z1"`
	X0 string `ini:"x0" json:"x0"`
	X1 string `ini:"x1" json:"x1"`
	Y0 string `ini:"y0" json:"y0"`
	Y1 string `ini:"y1" json:"y1"`
}

// DefaultSymbols is the notation used when no file is configured
var DefaultSymbols = Symbols{Z0: "0", Z1: "1", X0: "+", X1: "-", Y0: "i", Y1: "j"}

type entry struct {
	basis Basis
	bit   int
}

// Table is an immutable basis/bit ↔ symbol mapping
type Table struct {
	symbols [3][2]rune
	inverse map[rune]entry
}

// New validates a symbol set and builds a Table from it
func New(s Symbols) (*Table, error) {
	raw := [3][2]struct {
		key, value string
	}{
		{{"z0", s.Z0}, {"z1", s.Z1}},
		{{"x0", s.X0}, {"x1", s.X1}},
		{{"y0", s.Y0}, {"y1", s.Y1}},
	}

	t := &Table{inverse: make(map[rune]entry, 6)}
	for bi, pair := range raw {
		for bit, kv := range pair {
			if kv.value == "" {
				return nil, fmt.Errorf("%w: missing key %s", ErrInvalidNotation, kv.key)
			}
			if utf8.RuneCountInString(kv.value) != 1 {
				return nil, fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidNotation, kv.key, kv.value)
			}
			r, _ := utf8.DecodeRuneInString(kv.value)
			if prev, dup := t.inverse[r]; dup {
				return nil, fmt.Errorf("%w: symbol %q used by both %s%d and %s", ErrInvalidNotation,
					r, prev.basis, prev.bit, kv.key)
			}
			t.symbols[bi][bit] = r
			t.inverse[r] = entry{basis: Basis(bi), bit: bit}
		}
	}

	return t, nil
}

// Default returns a Table built from DefaultSymbols
func Default() *Table {
	t, err := New(DefaultSymbols)
	if err != nil {
		panic(err)
	}
	return t
}

// Symbol returns the display character for bit in basis b
func (t *Table) Symbol(b Basis, bit int) rune {
	if !b.Concrete() || bit < 0 || bit > 1 {
		return '?'
	}
	return t.symbols[b][bit]
}

// Lookup resolves a display character to its basis and bit value
func (t *Table) Lookup(symbol rune) (Basis, int, error) {
	e, ok := t.inverse[symbol]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	return e.basis, e.bit, nil
}

// Valid reports whether every character of label is registered
func (t *Table) Valid(label string) bool {
	if label == "" {
		return false
	}
	for _, r := range label {
		if _, ok := t.inverse[r]; !ok {
			return false
		}
	}
	return true
}

// Symbols returns the symbol set the table was built from
func (t *Table) Symbols() Symbols {
	return Symbols{
		Z0: string(t.symbols[Z][0]), Z1: string(t.symbols[Z][1]),
		X0: string(t.symbols[X][0]), X1: string(t.symbols[X][1]),
		Y0: string(t.symbols[Y][0]), Y1: string(t.symbols[Y][1]),
	}
}

// Ket renders a bit pattern in the given bases, one character per entry
func (t *Table) Ket(bases []Basis, bits []int) string {
	out := make([]rune, len(bits))
	for i, bit := range bits {
		out[i] = t.Symbol(bases[i], bit)
	}
	return string(out)
}

var current atomic.Pointer[Table]

// Current returns the process-wide table, initialised to Default
func Current() *Table {
	if t := current.Load(); t != nil {
		return t
	}
	current.CompareAndSwap(nil, Default())
	return current.Load()
}

// Replace atomically swaps the process-wide table. States already built are unaffected.
func Replace(t *Table) {
	if t == nil {
		return
	}
	current.Store(t)
}
