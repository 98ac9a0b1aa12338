// Package retrieval ranks enriched claims by semantic similarity to a
// query embedding.
package retrieval

import (
	"fmt"
	"math"
	"sort"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
)

// Index is an in-memory vector index over one enriched claims table.
// Building it is cheap: the embeddings already exist from the analysis run
// and are reused here, never recomputed. The index is read-only after
// construction.
type Index struct {
	claims     []model.EnrichedClaim
	embeddings [][]float32
}

// NewIndex builds an index from the enriched rows and their comment
// embeddings, which must be parallel slices.
func NewIndex(claims []model.EnrichedClaim, embeddings [][]float32) (*Index, error) {
	if len(claims) != len(embeddings) {
		return nil, fmt.Errorf("claim/embedding count mismatch: %d vs %d", len(claims), len(embeddings))
	}
	return &Index{claims: claims, embeddings: embeddings}, nil
}

// Len returns the number of indexed claims.
func (idx *Index) Len() int { return len(idx.claims) }

// Search returns the topN claims by descending cosine similarity to the
// query vector. Ties are broken by original row order.
func (idx *Index) Search(query []float32, topN int) []model.RetrievalResult {
	if topN <= 0 || len(idx.claims) == 0 {
		return nil
	}

	results := make([]model.RetrievalResult, len(idx.claims))
	for i, emb := range idx.embeddings {
		results[i] = model.RetrievalResult{
			Row:        i,
			Similarity: CosineSimilarity(query, emb),
			Claim:      idx.claims[i],
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Similarity > results[b].Similarity
	})

	if topN > len(results) {
		topN = len(results)
	}
	return results[:topN]
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// in [-1, 1]. A zero vector has similarity 0 with everything.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
