// Package llm answers free-text questions about an analyzed claims table
// by retrieving similar claims and forwarding them as grounding context to
// a generative completion provider.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
)

// Provider defines the interface for generative completion providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Answer generates a grounded answer to a claims question
	Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AnswerRequest contains the input for one completion call.
type AnswerRequest struct {
	// Prompt is the fully rendered instruction prompt, context included.
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// AnswerResponse contains the provider's output.
type AnswerResponse struct {
	// Answer is the generated text.
	Answer string

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption.
	TokensUsed int
}

// Config holds completion provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout bounds one completion call; a hung call fails as a
	// generation timeout instead of blocking the question path forever.
	Timeout time.Duration

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30 * time.Second,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxTokens:  cfg.MaxTokens,
		HTTPProxy:  cfg.HTTPProxy,
		HTTPSProxy: cfg.HTTPSProxy,
	}
}

// systemPrompt frames every completion call.
const systemPrompt = "You are an expert medical claim analyst AI helping users understand healthcare claims."

// BuildPrompt constructs the instruction prompt embedding the retrieved
// claims context and the verbatim user question.
func BuildPrompt(question string, claimsContext string) string {
	return fmt.Sprintf(`You are an expert medical claim analyst AI. Your task is to help users understand healthcare claims based on patterns and reasons.
Analyze the following claims:

%s

User Question: %q

Respond with a clear, human-like explanation, summarizing what patterns or reasons explain this. Only refer to trends from the data above. Suggest actionable next steps if appropriate.
`, claimsContext, question)
}

// RenderContext renders the retrieved claims into the bounded context
// block: one line per claim. Optional fields are omitted when empty so a
// sparse table degrades gracefully.
func RenderContext(results []model.RetrievalResult) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		c := r.Claim
		parts := make([]string, 0, 8)
		if c.ClaimID != "" {
			parts = append(parts, "Claim ID: "+c.ClaimID)
		}
		if c.Category != "" {
			parts = append(parts, "Category: "+c.Category)
		}
		if c.Specialty != "" {
			parts = append(parts, "Specialty: "+c.Specialty)
		}
		if c.InsuranceType != "" {
			parts = append(parts, "Insurance: "+c.InsuranceType)
		}
		parts = append(parts,
			"Comment: "+c.Cleaned,
			"Sentiment: "+string(c.Sentiment),
			fmt.Sprintf("Expected: %.2f", c.AmountExpected),
			fmt.Sprintf("Paid: %.2f", c.AmountPaid),
		)
		lines = append(lines, strings.Join(parts, ", "))
	}
	return strings.Join(lines, "\n")
}
