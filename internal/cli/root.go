// Package cli provides the command-line interface for QIRT.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jaskrrish/qirt-go/internal/config"
	"github.com/jaskrrish/qirt-go/internal/qirt/notation"
	"github.com/jaskrrish/qirt-go/internal/qirt/quantum"
)

// Version information (set at build time).
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
)

// App holds what every command needs once configuration is loaded
type App struct {
	Config    *config.Config
	Logger    *log.Logger
	Simulator *quantum.Simulator
}

// appKey is used to store the App in the command context
type appKey struct{}

var errNoApp = errors.New("command context has no configuration")

// appFrom returns the App stored by the root command's pre-run hook
func appFrom(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appKey{}).(*App)
	if !ok {
		return nil, errNoApp
	}
	return app, nil
}

// NewLogger builds the process logger
func NewLogger(cmd *cobra.Command, level log.Level) *log.Logger {
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix:          "qirt",
		Level:           level,
		ReportTimestamp: true,
	})
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "qirt",
		Short: "QIRT - Quantum Information Representation Toolkit",
		Long: `QIRT builds multi-qubit pure states from bra-ket labels written in the Z, X and Y
bases, re-expresses them in any per-qubit basis and simulates measuring any subset
of qubits, exactly or by sampling.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := NewLogger(cmd, cfg.Level())
			if cfg.File != "" {
				logger.Debug("using config file", "file", cfg.File)
			}

			table, err := notation.LoadOrDefault(cfg.NotationFile)
			if err != nil {
				logger.Warn("failed to load notation, using defaults", "file", cfg.NotationFile, "err", err)
			}
			notation.Replace(table)

			app := &App{
				Config:    cfg,
				Logger:    logger,
				Simulator: quantum.NewSimulator(nil, cfg.MaxQubits),
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey{}, app))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./qirt.yaml)")
	rootCmd.PersistentFlags().Int("max-qubits", 0, "Largest register accepted")
	rootCmd.PersistentFlags().String("notation", "", "Path to the ket notation INI file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewMeasureCommand())
	rootCmd.AddCommand(NewSampleCommand())
	rootCmd.AddCommand(NewCircuitCommand())
	rootCmd.AddCommand(NewNotationCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
