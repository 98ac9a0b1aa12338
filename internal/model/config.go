package model

import "time"

// Config is the full application configuration.
//
// Hierarchy (highest to lowest priority):
//  1. CLI flags
//  2. Environment variables (CLAIMS_*, OPENAI_API_KEY, ANTHROPIC_API_KEY)
//  3. Config file (~/.claims-analyzer/config.yaml)
//  4. Defaults
type Config struct {
	NLP       NLPConfig       `yaml:"nlp"`
	Topics    TopicsConfig    `yaml:"topics"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	LLM       LLMConfig       `yaml:"llm"`
	Cache     CacheConfig     `yaml:"cache"`
	Output    OutputConfig    `yaml:"output"`
}

// NLPConfig configures the local transformer models.
type NLPConfig struct {
	// ModelDir is where ONNX model assets live. Models are downloaded here
	// by `claims-analyzer models pull`; the pipeline itself never downloads.
	ModelDir string `yaml:"model_dir"`

	// EmbeddingModel produces the sentence embeddings shared by topic
	// clustering and question retrieval.
	EmbeddingModel string `yaml:"embedding_model"`

	// SentimentModel classifies raw comments as POSITIVE/NEGATIVE.
	SentimentModel string `yaml:"sentiment_model"`

	// AllowDownload permits downloading missing model assets on first use.
	// When false a missing asset is a hard error.
	AllowDownload bool `yaml:"allow_download"`
}

// TopicsConfig configures the density clustering and topic labeling.
type TopicsConfig struct {
	// Epsilon is the maximum cosine distance between neighbors.
	Epsilon float64 `yaml:"epsilon"`

	// MinClusterSize is the minimum number of comments forming a dense
	// cluster; smaller groups fall into the noise topic.
	MinClusterSize int `yaml:"min_cluster_size"`

	// TopTerms is how many representative terms appear in a topic label.
	TopTerms int `yaml:"top_terms"`
}

// RetrievalConfig configures question-time claim retrieval.
type RetrievalConfig struct {
	// TopN is how many claims are handed to the LLM as grounding context.
	TopN int `yaml:"top_n"`
}

// LLMConfig configures the generative answering provider.
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", or "" (disabled).
	Provider string `yaml:"provider"`

	// Model is the provider-specific model name.
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic. Usually supplied via environment.
	APIKey string `yaml:"-"`

	// BaseURL for custom endpoints (e.g. Ollama).
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout bounds one completion call.
	Timeout time.Duration `yaml:"timeout"`

	// MaxTokens limits the response length.
	MaxTokens int `yaml:"max_tokens"`

	// Proxy settings, empty means environment proxy.
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// CacheConfig configures the analysis cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`

	// Dir is the disk cache location. Empty disables the disk layer and
	// keeps results in memory only, i.e. for the current process.
	Dir string `yaml:"dir"`

	// TTL is how long a cached analysis stays valid.
	TTL time.Duration `yaml:"ttl"`
}

// OutputConfig configures CLI output behavior.
type OutputConfig struct {
	Verbose   bool   `yaml:"verbose"`
	ReportDir string `yaml:"report_dir"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		NLP: NLPConfig{
			ModelDir:       "./models",
			EmbeddingModel: "sentence-transformers/all-MiniLM-L6-v2",
			SentimentModel: "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english",
			AllowDownload:  false,
		},
		Topics: TopicsConfig{
			Epsilon:        0.35,
			MinClusterSize: 3,
			TopTerms:       4,
		},
		Retrieval: RetrievalConfig{
			TopN: 6,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30 * time.Second,
			MaxTokens: 1000,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose:   false,
			ReportDir: "reports",
		},
	}
}
