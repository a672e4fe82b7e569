package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/cityreport/api-go/logging"
	"github.com/cityreport/api-go/models"
	"github.com/cityreport/api-go/reports"
	"github.com/spf13/cobra"
)

func NewReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Print the reports the API serves",
		RunE:  runReportsCmd,
	}
	cmd.Flags().BoolP("markdown", "m", false, "Print a Markdown document")
	return cmd
}

func runReportsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	repo, err := openRepository(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	all, err := repo.List(cmd.Context())
	if err != nil {
		return err
	}

	now := time.Now()
	if asMarkdown {
		return reports.WriteMarkdown(cmd.OutOrStdout(), all, now)
	}
	printReports(cmd.OutOrStdout(), all, now)
	return nil
}

func printReports(out io.Writer, all []models.Report, now time.Time) {
	if len(all) == 0 {
		fmt.Fprintln(out, "No reports yet")
		return
	}
	for _, s := range reports.NewSummaries(all, now) {
		fmt.Fprintf(out, "#%d %s [%s] %s, %s\n", s.ID, s.Title, s.StatusLabel, s.Location, s.RelativeTime)
	}
}
