// Command poolcalc runs a pool flow calculation from a YAML parameter file.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "poolcalc",
		Short:        "Pool water circulation flow rate calculator",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func calculateCmd() *cobra.Command {
	var opts calculateOptions

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate zone volumes and required flow rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalculate(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML parameter file")
	cmd.Flags().StringVar(&opts.format, "format", formatTable, "output format: table, csv, xlsx or json")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the export to this path instead of stdout")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the poolcalc version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("poolcalc %s\n", version)
		},
	}
}
