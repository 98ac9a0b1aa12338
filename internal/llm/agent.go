package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
	"github.com/kalluru498/health-claims-analyzer/internal/pipeline"
	"github.com/kalluru498/health-claims-analyzer/internal/retrieval"
)

// ErrorMarker prefixes every user-facing QA failure string so callers
// scanning output can recognize an error without parsing it.
const ErrorMarker = "❌"

// ErrorKind tags which stage of the question path failed.
type ErrorKind string

const (
	ErrorKindNone       ErrorKind = ""
	ErrorKindRetrieval  ErrorKind = "retrieval"
	ErrorKindGeneration ErrorKind = "generation"
)

// QAResult is the typed outcome of one question. Callers branch on
// ErrorKind; String renders the legacy error-marker form for display.
type QAResult struct {
	Question   string
	Answer     string
	Provider   string
	Model      string
	TokensUsed int
	Context    []model.RetrievalResult

	ErrorKind ErrorKind
	Err       error
}

// OK reports whether the question produced an answer.
func (r *QAResult) OK() bool { return r.ErrorKind == ErrorKindNone }

// String renders the answer, or the marker-prefixed error text on failure.
func (r *QAResult) String() string {
	if r.OK() {
		return r.Answer
	}
	return fmt.Sprintf("%s GPT Error: %v", ErrorMarker, r.Err)
}

// Exchange converts a successful result into a session transcript entry.
func (r *QAResult) Exchange() model.QAExchange {
	return model.QAExchange{Question: r.Question, Answer: r.String()}
}

// Normalizer matches the pipeline's text normalizer; the question goes
// through the same normalization as the indexed comments so a question
// that equals a comment retrieves it at similarity ~1.
type Normalizer interface {
	Normalize(text string) string
}

// Encoder matches the pipeline's embedding encoder.
type Encoder interface {
	Encode(text string) ([]float32, error)
}

// Agent answers questions about an analyzed claims table. It never
// mutates the analysis result; retrieval is read-only, and a failed
// question leaves the table and earlier answers untouched.
type Agent struct {
	normalizer Normalizer
	encoder    Encoder
	provider   Provider
	topN       int

	transcript []model.QAExchange
}

// NewAgent wires the QA agent. The provider may be nil (QA disabled), in
// which case every question fails soft with a generation error.
func NewAgent(n Normalizer, e Encoder, p Provider, topN int) *Agent {
	if topN <= 0 {
		topN = model.DefaultConfig().Retrieval.TopN
	}
	return &Agent{
		normalizer: n,
		encoder:    e,
		provider:   p,
		topN:       topN,
	}
}

// ProviderName returns the active provider's name, "" when disabled.
func (a *Agent) ProviderName() string {
	if a.provider == nil {
		return ""
	}
	return a.provider.Name()
}

// Transcript returns the session's question/answer history.
func (a *Agent) Transcript() []model.QAExchange {
	return a.transcript
}

// Ask embeds the question, retrieves the most similar claims, and forwards
// them as grounding context to the completion provider. Failures are
// returned inside the result, never raised: a bad question must not crash
// the session.
func (a *Agent) Ask(ctx context.Context, analysis *pipeline.AnalysisResult, question string) *QAResult {
	result := &QAResult{
		Question: question,
		Provider: a.ProviderName(),
	}

	// 1-2. Encode the question; row embeddings are reused from analysis.
	queryVec, err := a.encoder.Encode(a.normalizer.Normalize(question))
	if err != nil {
		result.ErrorKind = ErrorKindRetrieval
		result.Err = &model.RetrievalError{Err: fmt.Errorf("encode question: %w", err)}
		a.record(result)
		return result
	}

	// 3-4. Rank claims by cosine similarity, keep topN.
	index, err := retrieval.NewIndex(analysis.Rows, analysis.Embeddings)
	if err != nil {
		result.ErrorKind = ErrorKindRetrieval
		result.Err = &model.RetrievalError{Err: err}
		a.record(result)
		return result
	}
	result.Context = index.Search(queryVec, a.topN)

	// 5-6. Render the context block and the instruction prompt.
	prompt := BuildPrompt(question, RenderContext(result.Context))

	// 7. Generate.
	if a.provider == nil {
		result.ErrorKind = ErrorKindGeneration
		result.Err = &model.GenerationError{Provider: "none", Err: errors.New("no LLM provider configured")}
		a.record(result)
		return result
	}

	resp, err := a.provider.Answer(ctx, AnswerRequest{Prompt: prompt})
	if err != nil {
		result.ErrorKind = ErrorKindGeneration
		result.Err = &model.GenerationError{
			Provider: a.provider.Name(),
			Timeout:  errors.Is(err, context.DeadlineExceeded),
			Err:      err,
		}
		a.record(result)
		return result
	}

	result.Answer = resp.Answer
	result.Model = resp.Model
	result.TokensUsed = resp.TokensUsed
	a.record(result)
	return result
}

func (a *Agent) record(r *QAResult) {
	a.transcript = append(a.transcript, r.Exchange())
}
