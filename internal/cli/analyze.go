package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kalluru498/health-claims-analyzer/internal/ingest"
	"github.com/kalluru498/health-claims-analyzer/internal/report"
)

var (
	outCSV       string
	reportFlag   bool
	noCache      bool
	allowDL      bool
	modelDirFlag string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <claims.csv>",
	Short: "Enrich a claims CSV with sentiment, topics, and denial categories",
	Long: `Analyze runs the full enrichment pipeline over a claims table:
- Normalize each comment (stop words removed, lemmatized)
- Classify sentiment and compute an independent polarity score
- Embed the comments and cluster them into topics
- Assign a rule-based denial category

The input CSV must contain a 'comment' column. Recognized optional columns:
claim_id, category, specialty, insurance_type, cpt_code, amount_expected,
amount_paid.

Example:
  claims-analyzer analyze claims.csv --out analyzed_claims.csv
  claims-analyzer analyze claims.csv --report`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outCSV, "out", "analyzed_claims.csv", "output CSV path")
	analyzeCmd.Flags().BoolVar(&reportFlag, "report", false, "also render an HTML report")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis cache (force fresh analysis)")
	analyzeCmd.Flags().BoolVar(&allowDL, "download", false, "allow downloading missing model assets")
	analyzeCmd.Flags().StringVar(&modelDirFlag, "models-dir", "", "directory holding ONNX model assets")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}
	if allowDL {
		cfg.NLP.AllowDownload = true
	}
	if modelDirFlag != "" {
		cfg.NLP.ModelDir = modelDirFlag
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

	out, err := os.Create(outCSV)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := ingest.WriteEnriched(out, result.Rows); err != nil {
		return fmt.Errorf("write enriched CSV: %w", err)
	}
	fmt.Printf("✓ Wrote enriched table: %s (%d rows)\n", outCSV, len(result.Rows))

	for _, topic := range result.Topics {
		fmt.Printf("  %s (%d claims)\n", topic.Label, topic.Size)
	}

	if reportFlag {
		path, err := report.WriteFile(cfg.Output.ReportDir, result.Rows, "")
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Printf("✓ Wrote report: %s\n", path)
	}

	return nil
}
