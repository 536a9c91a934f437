package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var (
		basis      string
		labels     []string
		amplitudes []string
	)

	cmd := &cobra.Command{
		Use:   "show [labels...]",
		Short: "Show a state expressed in a basis",
		Long: `Build a state from ket labels (or --amplitudes) and list its kets in the given
basis assignment. Labels may carry a coefficient: "-1*11", "0.5i*+-".
Use * in the basis to let QIRT pick the basis with the lowest entropy.` + labelHelp,
		Example: `  qirt show 00 11
  qirt show 00 11 --basis xx
  qirt show +0i --basis '***'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			sim := app.Simulator

			st, err := buildState(sim, labels, args, amplitudes)
			if err != nil {
				return err
			}
			a, err := sim.Assignment(basis, st.NumQubits())
			if err != nil {
				return err
			}
			converted, used, err := sim.Convert(st, a)
			if err != nil {
				return err
			}
			terms, _, err := sim.Terms(st, used)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "qubits: %d  basis: %s  entropy: %.4f\n", st.NumQubits(), used, converted.Entropy())
			renderTerms(out, terms)
			return nil
		},
	}

	cmd.Flags().StringVarP(&basis, "basis", "b", "", "Basis per qubit, e.g. zx*y (default all z)")
	addStateFlags(cmd, &labels, &amplitudes)
	return cmd
}
