package notation

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// SectionName is the INI section that carries the six symbols
const SectionName = "ket"

// Parse reads a notation document from INI source (a file path or raw []byte)
func Parse(source interface{}) (*Table, error) {
	f, err := ini.Load(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotation, err)
	}

	sec, err := f.GetSection(SectionName)
	if err != nil {
		return nil, fmt.Errorf("%w: missing [%s] section", ErrInvalidNotation, SectionName)
	}

	for _, key := range []string{"z0", "z1", "x0", "x1", "y0", "y1"} {
		if !sec.HasKey(key) {
			return nil, fmt.Errorf("%w: missing key %s", ErrInvalidNotation, key)
		}
	}

	var s Symbols
	if err := sec.MapTo(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotation, err)
	}

	return New(s)
}

// Load reads the notation file at path
func Load(path string) (*Table, error) {
	t, err := Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load notation from %s: %w", path, err)
	}
	return t, nil
}

// LoadOrDefault loads path, falling back to the default table on any error.
// An empty path yields the default table and no error.
func LoadOrDefault(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	t, err := Load(path)
	if err != nil {
		return Default(), err
	}
	return t, nil
}

// Encode renders a table back into INI form
func Encode(t *Table) []byte {
	s := t.Symbols()
	return []byte(fmt.Sprintf("[%s]\nz0 = %s\nz1 = %s\nx0 = %s\nx1 = %s\ny0 = %s\ny1 = %s\n",
		SectionName, s.Z0, s.Z1, s.X0, s.X1, s.Y0, s.Y1))
}
