package nlp

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
)

// SentimentScore is the pair of signals derived for one comment. Label and
// polarity come from different methods and may disagree; they are reported
// as independent fields, never reconciled.
type SentimentScore struct {
	Label    model.Sentiment
	Polarity float64
	// Failed marks a row that fell back to the neutral default.
	Failed bool
}

// SentimentScorer classifies raw comments with a transformer model and
// computes an independent lexicon polarity. Construction loads the model
// once; instances are read-only afterward.
type SentimentScorer struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewSentimentScorer loads the sentiment classification model.
func NewSentimentScorer(modelDir, modelName string, allowDownload bool) (*SentimentScorer, error) {
	modelPath, err := PrepareModel(modelDir, modelName, allowDownload)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("create hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "claims-sentiment",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("create sentiment pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("create sentiment pipeline: %w", err)
	}

	return &SentimentScorer{session: session, pipeline: pipeline}, nil
}

// Score classifies a batch of raw comments in a single pass. A row that
// cannot be classified gets the neutral default instead of aborting the
// batch; the returned error is non-nil only when the whole batch failed.
func (s *SentimentScorer) Score(comments []string) ([]SentimentScore, error) {
	scores := make([]SentimentScore, len(comments))
	for i, comment := range comments {
		scores[i] = SentimentScore{
			Label:    model.SentimentNeutral,
			Polarity: Polarity(comment),
			Failed:   true,
		}
	}
	if len(comments) == 0 {
		return scores, nil
	}

	result, err := s.pipeline.RunPipeline(comments)
	if err != nil {
		// Retry row by row so one bad comment cannot sink the batch.
		anyOK := false
		for i, comment := range comments {
			single, rowErr := s.pipeline.RunPipeline([]string{comment})
			if rowErr != nil || len(single.ClassificationOutputs) == 0 || len(single.ClassificationOutputs[0]) == 0 {
				continue
			}
			scores[i].Label = toSentiment(single.ClassificationOutputs[0][0].Label)
			scores[i].Failed = false
			anyOK = true
		}
		if !anyOK {
			return scores, fmt.Errorf("sentiment scoring failed for every row: %w", err)
		}
		return scores, nil
	}

	for i, outputs := range result.ClassificationOutputs {
		if i >= len(scores) || len(outputs) == 0 {
			continue
		}
		scores[i].Label = toSentiment(outputs[0].Label)
		scores[i].Failed = false
	}
	return scores, nil
}

// Close releases the underlying ONNX session.
func (s *SentimentScorer) Close() error {
	return s.session.Destroy()
}

func toSentiment(label string) model.Sentiment {
	switch strings.ToUpper(label) {
	case "POSITIVE", "LABEL_1":
		return model.SentimentPositive
	case "NEGATIVE", "LABEL_0":
		return model.SentimentNegative
	}
	return model.SentimentNeutral
}
