// Command euler runs Euler deconvolution on gridded potential-field data.
//
// Usage:
//
//	euler run --config survey.yaml
//	euler synth --rows 120 --cols 140 --area 0,24000,0,28000 \
//	    --source point-mass,12000,14000,1000,5e9 --out grid.dat
//	euler info --grid grid.dat --rows 120 --cols 140 --area 0,24000,0,28000
//	euler version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// app holds the state shared by all subcommands.
type app struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "euler",
		Short: "Euler deconvolution of gridded potential-field data",
		Long: `euler estimates the position, depth and base level of anomaly sources
from a gridded magnetic or gravity survey using moving-window Euler
deconvolution with spectrally computed derivatives.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}

			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			a.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.newRunCmd(),
		a.newSynthCmd(),
		a.newInfoCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "euler", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
