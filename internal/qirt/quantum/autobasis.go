package quantum

import (
	"fmt"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// Strategy selects how Auto entries of an assignment are resolved
type Strategy int

const (
	// StrategyGlobal tries every Z/X/Y combination of the auto qubits
	StrategyGlobal Strategy = iota
	// StrategyLocal tries uniform choices, then refines one qubit at a time
	StrategyLocal
)

// GlobalSearchLimit is the number of auto qubits above which StrategyFor picks the
// local search (3^8 = 6561 candidates)
const GlobalSearchLimit = 8

func (s Strategy) String() string {
	switch s {
	case StrategyGlobal:
		return "global"
	case StrategyLocal:
		return "local"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "global" or "local"
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "global":
		return StrategyGlobal, nil
	case "local":
		return StrategyLocal, nil
	default:
		return 0, fmt.Errorf("unknown basis search strategy %q", s)
	}
}

// StrategyFor returns the default strategy for k auto qubits
func StrategyFor(k int) Strategy {
	if k > GlobalSearchLimit {
		return StrategyLocal
	}
	return StrategyGlobal
}

// entropyIn returns the entropy of st expressed in a concrete assignment
func entropyIn(st *State, a Assignment) (float64, error) {
	v, err := ToBasis(st.amps, a)
	if err != nil {
		return 0, err
	}
	return entropy(probabilities(v)), nil
}

// ResolveAuto replaces every Auto entry of a with the basis that minimizes the entropy
// of st expressed in the resulting assignment. Concrete entries are kept.
func ResolveAuto(st *State, a Assignment, strategy Strategy) (Assignment, error) {
	if len(a) != st.NumQubits() {
		return nil, fmt.Errorf("%w: basis assignment has %d entries for %d qubits", ErrDimensionMismatch, len(a), st.NumQubits())
	}

	var auto []int
	base := a.Clone()
	for k, b := range base {
		switch {
		case b == notation.Auto:
			auto = append(auto, k)
			base[k] = notation.Z
		case !b.Concrete():
			return nil, fmt.Errorf("%w: qubit %d has basis %s", ErrInvalidBasis, k, b)
		}
	}
	if len(auto) == 0 {
		return base, nil
	}

	switch strategy {
	case StrategyGlobal:
		return globalMinEntropy(st, base, auto)
	case StrategyLocal:
		return localMinEntropy(st, base, auto)
	default:
		return nil, fmt.Errorf("unknown basis search strategy %d", strategy)
	}
}

const entropyTolerance = 1e-12

func globalMinEntropy(st *State, base Assignment, auto []int) (Assignment, error) {
	best := base.Clone()
	bestEntropy, err := entropyIn(st, best)
	if err != nil {
		return nil, err
	}

	try := base.Clone()
	combos := 1
	for range auto {
		combos *= 3
	}
	// combo 0 is all-Z, already evaluated. The last auto qubit changes fastest, so
	// among equal entropies the earliest Z, X, Y product wins.
	for c := 1; c < combos; c++ {
		rest := c
		for i := len(auto) - 1; i >= 0; i-- {
			try[auto[i]] = notation.Bases[rest%3]
			rest /= 3
		}
		h, err := entropyIn(st, try)
		if err != nil {
			return nil, err
		}
		if h < bestEntropy-entropyTolerance {
			bestEntropy = h
			copy(best, try)
		}
	}
	return best, nil
}

func localMinEntropy(st *State, base Assignment, auto []int) (Assignment, error) {
	best := base.Clone()
	bestEntropy := 0.0
	first := true

	// Uniform candidates: every auto qubit in the same basis
	for _, b := range notation.Bases {
		try := base.Clone()
		for _, k := range auto {
			try[k] = b
		}
		h, err := entropyIn(st, try)
		if err != nil {
			return nil, err
		}
		if first || h < bestEntropy-entropyTolerance {
			first = false
			bestEntropy = h
			best = try
		}
	}

	// Greedy refinement, one auto qubit at a time
	for _, k := range auto {
		for _, b := range [3]notation.Basis{notation.Y, notation.X, notation.Z} {
			try := best.Clone()
			try[k] = b
			h, err := entropyIn(st, try)
			if err != nil {
				return nil, err
			}
			if h < bestEntropy-entropyTolerance {
				bestEntropy = h
				best = try
			}
		}
	}
	return best, nil
}
