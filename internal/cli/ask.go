package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalluru498/health-claims-analyzer/internal/llm"
	"github.com/kalluru498/health-claims-analyzer/internal/report"
)

var (
	askProvider string
	askModel    string
	askTopN     int
	askTimeout  time.Duration
	askReport   bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <claims.csv> <question>",
	Short: "Ask a question about an analyzed claims table",
	Long: `Ask analyzes the claims file (or reuses the cached analysis), retrieves
the claims most similar to the question, and asks the configured LLM for a
grounded answer.

A failed question never loses the analysis: errors come back as an
❌-marked message and the enriched table stays valid.

Example:
  claims-analyzer ask claims.csv "Why were cardiology claims denied?"
  claims-analyzer ask claims.csv "Where are we losing money?" --llm-provider openai
  claims-analyzer ask claims.csv "What drives denials?" --report`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	askCmd.Flags().StringVar(&askModel, "llm-model", "", "LLM model name")
	askCmd.Flags().IntVar(&askTopN, "top-n", 0, "how many claims to retrieve as context")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 0, "completion call timeout")
	askCmd.Flags().BoolVar(&askReport, "report", false, "also render an HTML report with the answer as AI summary")
}

func runAsk(cmd *cobra.Command, args []string) error {
	file, question := args[0], args[1]

	cfg := loadConfig()
	if askProvider != "" {
		cfg.LLM.Provider = askProvider
	}
	if askModel != "" {
		cfg.LLM.Model = askModel
	}
	if askTopN > 0 {
		cfg.Retrieval.TopN = askTopN
	}
	if askTimeout > 0 {
		cfg.LLM.Timeout = askTimeout
	}
	if cfg.LLM.Provider == "" {
		return fmt.Errorf("no LLM provider configured: set llm.provider in config or pass --llm-provider")
	}
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.close()

	result, err := sess.analyzeFile(file)
	if err != nil {
		return err
	}

	agent := llm.NewAgent(sess.normalizer, sess.embedder, provider, cfg.Retrieval.TopN)

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Asking %s: %q\n", agent.ProviderName(), question)
	}

	answer := agent.Ask(context.Background(), result, question)
	fmt.Println(answer.String())

	if cfg.Output.Verbose && answer.OK() {
		fmt.Fprintf(os.Stderr, "\n✓ Answered with %s (%d tokens, %d claims as context)\n",
			answer.Model, answer.TokensUsed, len(answer.Context))
	}

	if askReport {
		summary := report.SummaryFromExchanges(agent.Transcript())
		path, err := report.WriteFile(cfg.Output.ReportDir, result.Rows, summary)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Printf("✓ Wrote report: %s\n", path)
	}

	return nil
}
