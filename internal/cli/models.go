package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kalluru498/health-claims-analyzer/internal/nlp"
)

var pullModelDir string

// modelsCmd groups model asset management commands
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage local ONNX model assets",
}

// modelsPullCmd downloads the model assets the pipeline needs. Running it
// once up front keeps the analysis path itself offline and fail-fast.
var modelsPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the embedding and sentiment models",
	Long: `Pull downloads the sentence-embedding and sentiment-classification
models into the local model directory. The analysis pipeline never
downloads mid-run: a missing asset is a hard error until this has run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if pullModelDir != "" {
			cfg.NLP.ModelDir = pullModelDir
		}

		for _, name := range []string{cfg.NLP.EmbeddingModel, cfg.NLP.SentimentModel} {
			fmt.Printf("Pulling %s...\n", name)
			path, err := nlp.PrepareModel(cfg.NLP.ModelDir, name, true)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Ready: %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsPullCmd)

	modelsPullCmd.Flags().StringVar(&pullModelDir, "models-dir", "", "directory to download model assets into")
}
