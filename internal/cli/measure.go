package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMeasureCommand creates the measure command.
func NewMeasureCommand() *cobra.Command {
	var (
		basis      string
		qubits     []int
		labels     []string
		amplitudes []string
	)

	cmd := &cobra.Command{
		Use:   "measure [labels...]",
		Short: "List every outcome of measuring some qubits",
		Long: `Measure the --qubits of a state, each in its entry of --basis, and print the
probability of every outcome together with the post-measurement state of the
remaining qubits, expressed in their own --basis entries.

The first listed qubit is the most significant bit of the outcome.` + labelHelp,
		Example: `  qirt measure 00 11 --qubits 0
  qirt measure 00 11 --qubits 0 --basis xx`,
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
			set, err := sim.Measure(st, qubits, a)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "measured: %v  remaining: %v  basis: %s\n", set.Measured, set.Remaining, set.Basis)
			return renderOutcomes(out, set, sim.Table())
		},
	}

	cmd.Flags().StringVarP(&basis, "basis", "b", "", "Basis per qubit, e.g. zx*y (default all z)")
	cmd.Flags().IntSliceVarP(&qubits, "qubits", "q", nil, "Qubits to measure, in outcome order")
	addStateFlags(cmd, &labels, &amplitudes)
	return cmd
}
