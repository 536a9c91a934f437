package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
)

// NewSampleCommand creates the sample command.
func NewSampleCommand() *cobra.Command {
	var (
		basis      string
		qubits     []int
		shots      int
		labels     []string
		amplitudes []string
	)

	cmd := &cobra.Command{
		Use:   "sample [labels...]",
		Short: "Sample repeated measurements",
		Long: `Draw --shots independent outcomes of measuring --qubits in --basis and print
the observed counts. A non-zero --seed (or seed in the config) makes runs
reproducible.` + labelHelp,
		Example: `  qirt sample 00 11 --qubits 0,1 --shots 1000
  qirt sample + --qubits 0 --basis x --seed 7`,
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

			var src rand.Source
			if seed := app.Config.Seed; seed != 0 {
				src = rand.NewPCG(seed, 0)
			}
			counts, err := sim.Sample(st, qubits, a, shots, src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "shots: %d  measured: %v\n", shots, qubits)
			renderCounts(out, counts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&basis, "basis", "b", "", "Basis per qubit, e.g. zx*y (default all z)")
	cmd.Flags().IntSliceVarP(&qubits, "qubits", "q", nil, "Qubits to measure, in outcome order")
	cmd.Flags().IntVarP(&shots, "shots", "n", 1024, "Number of samples")
	cmd.Flags().Uint64("seed", 0, "Random seed (0 draws a fresh seed)")
	addStateFlags(cmd, &labels, &amplitudes)
	return cmd
}
