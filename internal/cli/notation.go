package cli

import (
	"github.com/spf13/cobra"

	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
)

// NewNotationCommand creates the notation command.
func NewNotationCommand() *cobra.Command {
	var asINI bool

	cmd := &cobra.Command{
		Use:   "notation",
		Short: "Show the ket symbols in use",
		Long: `Print the symbol used for each basis and bit. The table comes from the notation
file (--notation or notation_file) or the built-in 0 1 + - i j.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			tbl := app.Simulator.Table()
			if asINI {
				_, err := cmd.OutOrStdout().Write(notation.Encode(tbl))
				return err
			}
			renderNotation(cmd.OutOrStdout(), tbl)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asINI, "ini", false, "Print as a notation file")
	return cmd
}
