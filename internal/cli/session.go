package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/kalluru498/health-claims-analyzer/internal/cache"
	"github.com/kalluru498/health-claims-analyzer/internal/ingest"
	"github.com/kalluru498/health-claims-analyzer/internal/model"
	"github.com/kalluru498/health-claims-analyzer/internal/nlp"
	"github.com/kalluru498/health-claims-analyzer/internal/pipeline"
	"github.com/kalluru498/health-claims-analyzer/internal/topics"
)

// loadConfig builds the effective configuration: defaults overridden by
// config-file/env values via viper. Flag overrides happen per command.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("nlp.model_dir"); v != "" {
		cfg.NLP.ModelDir = v
	}
	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetString("output.report_dir"); v != "" {
		cfg.Output.ReportDir = v
	}
	if viper.GetBool("verbose") {
		cfg.Output.Verbose = true
	}

	return cfg
}

// resolveAPIKey fills cfg.LLM.APIKey from the environment for providers
// that need one.
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// session holds the loaded models and wired pipeline for one CLI
// invocation. Models load once here and are read-only afterward.
type session struct {
	cfg        model.Config
	normalizer *nlp.Normalizer
	sentiment  *nlp.SentimentScorer
	embedder   *nlp.Embedder
	analyzer   *pipeline.Analyzer
}

// newSession loads the NLP models and wires the analyzer. Model assets
// must already be present unless cfg.NLP.AllowDownload is set; a missing
// asset fails here, before any data is touched.
func newSession(cfg model.Config) (*session, error) {
	normalizer := nlp.NewNormalizer()

	sentiment, err := nlp.NewSentimentScorer(cfg.NLP.ModelDir, cfg.NLP.SentimentModel, cfg.NLP.AllowDownload)
	if err != nil {
		return nil, fmt.Errorf("load sentiment model: %w", err)
	}

	embedder, err := nlp.NewEmbedder(cfg.NLP.ModelDir, cfg.NLP.EmbeddingModel, cfg.NLP.AllowDownload)
	if err != nil {
		_ = sentiment.Close()
		return nil, fmt.Errorf("load embedding model: %w", err)
	}

	analyzer := pipeline.NewAnalyzer(
		normalizer,
		sentiment,
		embedder,
		topics.NewModeler(cfg.Topics),
		newAnalysisCache(cfg.Cache),
	)

	return &session{
		cfg:        cfg,
		normalizer: normalizer,
		sentiment:  sentiment,
		embedder:   embedder,
		analyzer:   analyzer,
	}, nil
}

// close releases the ONNX sessions.
func (s *session) close() {
	_ = s.sentiment.Close()
	_ = s.embedder.Close()
}

// analyzeFile loads a claims CSV and runs the analysis pipeline over it.
func (s *session) analyzeFile(path string) (*pipeline.AnalysisResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := ingest.LoadClaims(f)
	if err != nil {
		return nil, err
	}

	if s.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d claims from %s\n", len(records), path)
	}

	result, err := s.analyzer.Analyze(records)
	if err != nil {
		return nil, fmt.Errorf("analyze claims: %w", err)
	}

	if s.cfg.Output.Verbose {
		if result.FromCache {
			fmt.Fprintf(os.Stderr, "✓ Reused cached analysis (%s)\n", result.Hash[:12])
		} else {
			fmt.Fprintf(os.Stderr, "✓ Enriched %d rows into %d topics\n", len(result.Rows), len(result.Topics))
		}
	}

	return result, nil
}

// newAnalysisCache builds the cache per config: layered when a disk dir is
// available, memory-only otherwise, nil when disabled.
func newAnalysisCache(cfg model.CacheConfig) cache.Cache {
	if !cfg.Enabled {
		return nil
	}

	dir := cfg.Dir
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".claims-analyzer", "cache")
		}
	}
	if dir == "" {
		return cache.NewMemoryCache(cfg.TTL, 10*time.Minute)
	}
	return cache.NewLayeredCache(cfg.TTL, dir, cfg.TTL)
}
