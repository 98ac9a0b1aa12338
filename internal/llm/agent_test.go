package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
	"github.com/kalluru498/health-claims-analyzer/internal/pipeline"
)

// MockProvider implements Provider for testing.
type MockProvider struct {
	name      string
	available bool
	response  *AnswerResponse
	err       error

	lastRequest AnswerRequest
}

func (m *MockProvider) Name() string { return m.name }

func (m *MockProvider) Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool { return m.available }

type stubNormalizer struct{}

func (stubNormalizer) Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// stubEncoder embeds any text containing "deny" near axis 0 and everything
// else near axis 1, so retrieval ordering is deterministic.
type stubEncoder struct {
	err error
}

func (e stubEncoder) Encode(text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	if strings.Contains(text, "deny") || strings.Contains(text, "denied") {
		return []float32{1, 0.1, 0}, nil
	}
	return []float32{0.1, 1, 0}, nil
}

func testAnalysis(t *testing.T) *pipeline.AnalysisResult {
	t.Helper()

	rows := []model.EnrichedClaim{
		{
			ClaimRecord: model.ClaimRecord{
				ClaimID:        "C001",
				Comment:        "claim was denied for missing code",
				Category:       "Denial",
				AmountExpected: 250,
			},
			Cleaned:           "claim deny miss code",
			Sentiment:         model.SentimentNegative,
			PredictedCategory: "Coding Error",
		},
		{
			ClaimRecord: model.ClaimRecord{
				ClaimID:    "C002",
				Comment:    "payment posted on time",
				AmountPaid: 80,
			},
			Cleaned:           "payment post time",
			Sentiment:         model.SentimentPositive,
			PredictedCategory: "Other",
		},
	}
	embeddings := [][]float32{
		{1, 0.1, 0},
		{0.1, 1, 0},
	}
	return &pipeline.AnalysisResult{Rows: rows, Embeddings: embeddings}
}

func TestAgent_Ask_Success(t *testing.T) {
	provider := &MockProvider{
		name:      "mock",
		available: true,
		response:  &AnswerResponse{Answer: "Most denials trace back to coding errors.", Model: "mock-model", TokensUsed: 42},
	}
	agent := NewAgent(stubNormalizer{}, stubEncoder{}, provider, 2)

	result := agent.Ask(context.Background(), testAnalysis(t), "Why was the claim denied?")

	if !result.OK() {
		t.Fatalf("Expected success, got kind=%q err=%v", result.ErrorKind, result.Err)
	}
	if result.Answer != "Most denials trace back to coding errors." {
		t.Errorf("Answer = %q", result.Answer)
	}
	if result.Model != "mock-model" || result.TokensUsed != 42 {
		t.Errorf("Model/TokensUsed = %q/%d", result.Model, result.TokensUsed)
	}
	if result.Provider != "mock" {
		t.Errorf("Provider = %q, want mock", result.Provider)
	}
	if result.String() != result.Answer {
		t.Errorf("String() = %q, want the answer verbatim", result.String())
	}

	// The denied claim should rank first in the retrieved context.
	if len(result.Context) != 2 {
		t.Fatalf("Expected 2 context claims, got %d", len(result.Context))
	}
	if result.Context[0].Claim.ClaimID != "C001" {
		t.Errorf("Top context claim = %q, want C001", result.Context[0].Claim.ClaimID)
	}
}

func TestAgent_Ask_PromptContainsQuestionAndContext(t *testing.T) {
	provider := &MockProvider{name: "mock", response: &AnswerResponse{Answer: "ok"}}
	agent := NewAgent(stubNormalizer{}, stubEncoder{}, provider, 2)

	question := "Why was the claim denied?"
	agent.Ask(context.Background(), testAnalysis(t), question)

	prompt := provider.lastRequest.Prompt
	if !strings.Contains(prompt, question) {
		t.Errorf("Prompt missing verbatim question: %s", prompt)
	}
	for _, want := range []string{"Claim ID: C001", "claim deny miss code", "Sentiment: NEGATIVE", "Expected: 250.00"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing context fragment %q", want)
		}
	}
}

func TestAgent_Ask_GenerationFailureIsSoft(t *testing.T) {
	provider := &MockProvider{name: "mock", err: errors.New("rate limit exceeded")}
	agent := NewAgent(stubNormalizer{}, stubEncoder{}, provider, 2)

	analysis := testAnalysis(t)
	rowsBefore := len(analysis.Rows)

	result := agent.Ask(context.Background(), analysis, "What happened?")

	if result.OK() {
		t.Fatal("Expected failure")
	}
	if result.ErrorKind != ErrorKindGeneration {
		t.Errorf("ErrorKind = %q, want generation", result.ErrorKind)
	}
	var genErr *model.GenerationError
	if !errors.As(result.Err, &genErr) {
		t.Fatalf("Expected *model.GenerationError, got %T", result.Err)
	}
	if genErr.Timeout {
		t.Error("Timeout should be false for a non-deadline error")
	}

	rendered := result.String()
	if !strings.Contains(rendered, ErrorMarker) {
		t.Errorf("Rendered failure missing error marker: %s", rendered)
	}
	if !strings.Contains(rendered, "rate limit exceeded") {
		t.Errorf("Rendered failure missing cause: %s", rendered)
	}

	// The analysis result must be untouched by a failed question.
	if len(analysis.Rows) != rowsBefore {
		t.Errorf("Analysis rows changed: %d -> %d", rowsBefore, len(analysis.Rows))
	}
}

func TestAgent_Ask_TimeoutFlagged(t *testing.T) {
	provider := &MockProvider{name: "mock", err: context.DeadlineExceeded}
	agent := NewAgent(stubNormalizer{}, stubEncoder{}, provider, 2)

	result := agent.Ask(context.Background(), testAnalysis(t), "slow question")

	var genErr *model.GenerationError
	if !errors.As(result.Err, &genErr) {
		t.Fatalf("Expected *model.GenerationError, got %T", result.Err)
	}
	if !genErr.Timeout {
		t.Error("Expected Timeout=true for context.DeadlineExceeded")
	}
}

func TestAgent_Ask_NoProvider(t *testing.T) {
	agent := NewAgent(stubNormalizer{}, stubEncoder{}, nil, 2)

	result := agent.Ask(context.Background(), testAnalysis(t), "anything")

	if result.ErrorKind != ErrorKindGeneration {
		t.Fatalf("ErrorKind = %q, want generation", result.ErrorKind)
	}
	if !strings.Contains(result.String(), "no LLM provider configured") {
		t.Errorf("String() = %q", result.String())
	}
}

func TestAgent_Ask_EncodeFailureIsRetrieval(t *testing.T) {
	provider := &MockProvider{name: "mock", response: &AnswerResponse{Answer: "unused"}}
	agent := NewAgent(stubNormalizer{}, stubEncoder{err: errors.New("model not loaded")}, provider, 2)

	result := agent.Ask(context.Background(), testAnalysis(t), "anything")

	if result.ErrorKind != ErrorKindRetrieval {
		t.Fatalf("ErrorKind = %q, want retrieval", result.ErrorKind)
	}
	var retErr *model.RetrievalError
	if !errors.As(result.Err, &retErr) {
		t.Fatalf("Expected *model.RetrievalError, got %T", result.Err)
	}
}

func TestAgent_Transcript(t *testing.T) {
	provider := &MockProvider{name: "mock", response: &AnswerResponse{Answer: "first answer"}}
	agent := NewAgent(stubNormalizer{}, stubEncoder{}, provider, 2)
	analysis := testAnalysis(t)

	agent.Ask(context.Background(), analysis, "first question")
	provider.err = errors.New("boom")
	agent.Ask(context.Background(), analysis, "second question")

	transcript := agent.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("Expected 2 transcript entries, got %d", len(transcript))
	}
	if transcript[0].Question != "first question" || transcript[0].Answer != "first answer" {
		t.Errorf("First entry = %+v", transcript[0])
	}
	if !strings.Contains(transcript[1].Answer, ErrorMarker) {
		t.Errorf("Failed entry should keep the marker form: %+v", transcript[1])
	}
}

func TestRenderContext_OmitsEmptyFields(t *testing.T) {
	results := []model.RetrievalResult{
		{Claim: model.EnrichedClaim{
			ClaimRecord: model.ClaimRecord{Comment: "payment missing"},
			Cleaned:     "payment miss",
			Sentiment:   model.SentimentNegative,
		}},
	}

	out := RenderContext(results)
	if strings.Contains(out, "Claim ID:") || strings.Contains(out, "Specialty:") {
		t.Errorf("Empty optional fields should be omitted: %s", out)
	}
	if !strings.Contains(out, "Comment: payment miss") {
		t.Errorf("Missing comment line: %s", out)
	}
}

func TestNewProvider_Factory(t *testing.T) {
	cfg := DefaultConfig()

	provider, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("Expected no error for disabled provider, got %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when disabled")
	}

	cfg.Provider = "does-not-exist"
	if _, err := NewProvider(cfg); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
