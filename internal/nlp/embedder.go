package nlp

import (
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// Embedder maps normalized comment text to fixed-dimension dense vectors.
// The same encoder is used for topic clustering and question retrieval so
// cosine similarities are comparable across both.
type Embedder struct {
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
}

// NewEmbedder loads the sentence-transformer model and prepares a feature
// extraction pipeline. The model asset must already be present unless
// allowDownload is set.
func NewEmbedder(modelDir, modelName string, allowDownload bool) (*Embedder, error) {
	modelPath, err := PrepareModel(modelDir, modelName, allowDownload)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "claims-embedder",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("create embedding pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("create embedding pipeline: %w", err)
	}

	return &Embedder{session: session, pipeline: pipeline}, nil
}

// Encode returns the embedding vector for a single text.
func (e *Embedder) Encode(text string) ([]float32, error) {
	vectors, err := e.EncodeBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EncodeBatch embeds a batch of texts in one pipeline pass, preserving
// input order.
func (e *Embedder) EncodeBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	result, err := e.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("generate embeddings: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d embeddings for %d texts", len(result.Embeddings), len(texts))
	}
	return result.Embeddings, nil
}

// Close releases the underlying ONNX session.
func (e *Embedder) Close() error {
	return e.session.Destroy()
}
