package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-euler/internal/survey"
)

func (a *app) newRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a survey described by a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := survey.Load(configPath)
			if err != nil {
				return err
			}

			r, err := survey.NewRunner(cfg, a.logger)
			if err != nil {
				return err
			}

			sum, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SI\tsolved\tunsolved\tclassic\trun")

			for _, ir := range sum.Indices {
				run := ir.RunID
				if run == "" {
					run = "-"
				}

				fmt.Fprintf(w, "%g\t%d\t%d\t%d\t%s\n", ir.StructuralIndex,
					ir.Result.Solved(), ir.Result.Unsolved, len(ir.Result.Classic), run)
			}

			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d files written to %s\n", len(sum.Files), cfg.Output.Dir)

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "survey.yaml", "Survey configuration file")

	return cmd
}
