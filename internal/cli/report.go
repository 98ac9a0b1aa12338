package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kalluru498/health-claims-analyzer/internal/report"
)

var reportDirFlag string

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <claims.csv>",
	Short: "Analyze a claims CSV and render an HTML report",
	Long: `Report runs the analysis pipeline (or reuses the cached result) and
renders an HTML document with category and sentiment distributions plus a
sample of the enriched rows.

Example:
  claims-analyzer report claims.csv
  claims-analyzer report claims.csv --report-dir /tmp/reports`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportDirFlag, "report-dir", "", "directory to write the report into")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if reportDirFlag != "" {
		cfg.Output.ReportDir = reportDirFlag
	}

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.close()

	result, err := sess.analyzeFile(args[0])
	if err != nil {
		return err
	}

	path, err := report.WriteFile(cfg.Output.ReportDir, result.Rows, "")
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	fmt.Printf("✓ Wrote report: %s\n", path)

	return nil
}
