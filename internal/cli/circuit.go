package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaskrrish/qirt-go/internal/qirt/quantum"
)

// NewCircuitCommand creates the circuit command.
func NewCircuitCommand() *cobra.Command {
	var (
		from    string
		to      string
		measure []int
	)

	cmd := &cobra.Command{
		Use:   "circuit",
		Short: "Emit the OpenQASM circuit for a basis change",
		Long: `Print an OpenQASM 2.0 circuit rotating every qubit from the --from assignment to
the --to assignment, optionally followed by measurements, so that a circuit engine
can reproduce a measurement in a non-computational basis.`,
		Example: `  qirt circuit --to xy --measure 0,1
  qirt circuit --from xz --to zy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if to == "" {
				return fmt.Errorf("--to is required")
			}
			target, err := quantum.ParseAssignment(to)
			if err != nil {
				return err
			}
			source := quantum.AllZ(len(target))
			if from != "" {
				if source, err = quantum.ParseAssignment(from); err != nil {
					return err
				}
			}

			circuit, err := quantum.BuildBasisChangeCircuit(source, target, measure)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), circuit)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Current basis per qubit (default all z)")
	cmd.Flags().StringVar(&to, "to", "", "Target basis per qubit")
	cmd.Flags().IntSliceVar(&measure, "measure", nil, "Qubits to measure after the rotation")
	return cmd
}
