// Package cmd is the cityreport command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for cityreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cityreport",
		Short: "Backend for the CityReport issue reporting app",
		Long: `cityreport serves the HTTP API behind the CityReport mobile client:
phone login with a one-time code, the four-step report wizard and the
list of submitted reports.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewReportsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
