package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaskrrish/qirt-go/internal/qirt/quantum"
)

// parseLabelArgs reads labels written as SYMBOLS or COEFFICIENT*SYMBOLS, for example
// "00", "-1*11" or "0.5i*+-". The coefficient accepts anything strconv.ParseComplex does.
func parseLabelArgs(args []string) ([]quantum.Label, error) {
	labels := make([]quantum.Label, 0, len(args))
	for _, arg := range args {
		coefficient, symbols, found := strings.Cut(arg, "*")
		if !found {
			labels = append(labels, quantum.L(arg))
			continue
		}
		c, err := strconv.ParseComplex(coefficient, 128)
		if err != nil {
			return nil, fmt.Errorf("invalid coefficient %q in label %q: %w", coefficient, arg, err)
		}
		labels = append(labels, quantum.C(c, symbols))
	}
	return labels, nil
}

// parseAmplitudes reads a raw vector given as complex literals
func parseAmplitudes(values []string) ([]complex128, error) {
	amps := make([]complex128, len(values))
	for i, v := range values {
		c, err := strconv.ParseComplex(strings.TrimSpace(v), 128)
		if err != nil {
			return nil, fmt.Errorf("invalid amplitude %q: %w", v, err)
		}
		amps[i] = c
	}
	return amps, nil
}

// labelHelp is appended to the help of every command that takes labels
const labelHelp = `
Labels starting with "-" look like flags: put them after "--" or pass them with
--label, e.g. "qirt show -- -+ +-" or "qirt show -l -+ -l +-".`

// addStateFlags registers the flags that describe the input state
func addStateFlags(cmd *cobra.Command, labels, amplitudes *[]string) {
	cmd.Flags().StringArrayVarP(labels, "label", "l", nil, "Ket label, repeatable; use for labels starting with -")
	cmd.Flags().StringSliceVar(amplitudes, "amplitudes", nil, "Raw amplitude vector, e.g. 1,0,0,1i")
}

// buildState creates the state described by either labels or amplitudes. Labels given
// with --label come before positional ones.
func buildState(sim *quantum.Simulator, labels, args []string, amplitudes []string) (*quantum.State, error) {
	args = append(append([]string(nil), labels...), args...)
	switch {
	case len(args) > 0 && len(amplitudes) > 0:
		return nil, fmt.Errorf("give either labels or --amplitudes, not both")
	case len(amplitudes) > 0:
		amps, err := parseAmplitudes(amplitudes)
		if err != nil {
			return nil, err
		}
		return sim.NewState(amps)
	case len(args) > 0:
		labels, err := parseLabelArgs(args)
		if err != nil {
			return nil, err
		}
		return sim.FromLabels(labels...)
	default:
		return nil, fmt.Errorf("no state given: pass one or more labels or --amplitudes")
	}
}

const displayTolerance = 5e-5

// formatCoefficient renders a complex number compactly, dropping negligible parts
func formatCoefficient(c complex128) string {
	re, im := real(c), imag(c)
	if math.Abs(re) < displayTolerance {
		re = 0
	}
	if math.Abs(im) < displayTolerance {
		im = 0
	}
	switch {
	case im == 0:
		return strconv.FormatFloat(re, 'f', 4, 64)
	case re == 0:
		return strconv.FormatFloat(im, 'f', 4, 64) + "i"
	default:
		return fmt.Sprintf("(%.4f%+.4fi)", re, im)
	}
}

// formatTerms renders terms as a ket sum such as 0.7071|00⟩ + 0.7071|11⟩
func formatTerms(terms []quantum.Term) string {
	if len(terms) == 0 {
		return "0"
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("%s|%s⟩", formatCoefficient(t.Coefficient), t.Symbols)
	}
	return strings.Join(parts, " + ")
}
