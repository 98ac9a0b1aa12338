package retrieval

import (
	"math"
	"testing"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
)

func claims(n int) []model.EnrichedClaim {
	out := make([]model.EnrichedClaim, n)
	for i := range out {
		out[i] = model.EnrichedClaim{
			ClaimRecord: model.ClaimRecord{ClaimID: string(rune('A' + i))},
		}
	}
	return out
}

func TestIndex_ExactMatchRanksFirst(t *testing.T) {
	embeddings := [][]float32{
		{0, 1, 0},
		{1, 0, 0}, // Matches the query exactly
		{0.5, 0.5, 0},
	}
	idx, err := NewIndex(claims(3), embeddings)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	results := idx.Search([]float32{1, 0, 0}, 3)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	if results[0].Row != 1 {
		t.Errorf("Expected row 1 first, got row %d", results[0].Row)
	}
	if math.Abs(results[0].Similarity-1.0) > 1e-6 {
		t.Errorf("Exact match similarity = %v, want ~1.0", results[0].Similarity)
	}
	if results[0].Claim.ClaimID != "B" {
		t.Errorf("Expected claim B first, got %s", results[0].Claim.ClaimID)
	}
}

func TestIndex_TiesKeepRowOrder(t *testing.T) {
	embeddings := [][]float32{
		{1, 0},
		{2, 0}, // Same direction, same cosine
		{0, 1},
	}
	idx, err := NewIndex(claims(3), embeddings)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	results := idx.Search([]float32{1, 0}, 2)
	if results[0].Row != 0 || results[1].Row != 1 {
		t.Errorf("Tie order broken: got rows %d, %d", results[0].Row, results[1].Row)
	}
}

func TestIndex_TopNBounds(t *testing.T) {
	embeddings := [][]float32{{1, 0}, {0, 1}}
	idx, err := NewIndex(claims(2), embeddings)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := idx.Search([]float32{1, 0}, 10); len(got) != 2 {
		t.Errorf("topN beyond table size: got %d results, want 2", len(got))
	}
	if got := idx.Search([]float32{1, 0}, 0); got != nil {
		t.Errorf("topN 0 should return nil, got %d results", len(got))
	}
}

func TestNewIndex_CountMismatch(t *testing.T) {
	if _, err := NewIndex(claims(2), [][]float32{{1}}); err == nil {
		t.Error("Expected error on claim/embedding count mismatch")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}
