package topics

import (
	"strings"
	"testing"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
)

func modeler() *Modeler {
	return NewModeler(model.TopicsConfig{Epsilon: 0.35, MinClusterSize: 3, TopTerms: 4})
}

func TestModeler_TwoClusters(t *testing.T) {
	m := modeler()

	// Two tight groups in embedding space: denials and payments.
	comments := []string{
		"claim deny policy", "claim deny documentation", "deny policy coverage",
		"payment missing check", "payment delay check", "payment missing remit",
	}
	embeddings := [][]float32{
		{1, 0, 0}, {0.98, 0.1, 0}, {0.95, 0.2, 0},
		{0, 1, 0}, {0.1, 0.97, 0}, {0.05, 0.99, 0},
	}

	assignments, topics, err := m.Fit(comments, embeddings)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(topics) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(topics))
	}

	// Rows within a group share a topic; groups differ.
	if assignments[0] != assignments[1] || assignments[1] != assignments[2] {
		t.Errorf("Denial rows split across topics: %v", assignments[:3])
	}
	if assignments[3] != assignments[4] || assignments[4] != assignments[5] {
		t.Errorf("Payment rows split across topics: %v", assignments[3:])
	}
	if assignments[0] == assignments[3] {
		t.Error("Both groups landed in the same topic")
	}

	for _, topic := range topics {
		if topic.ID < 0 {
			t.Errorf("Discovered topic has negative id %d", topic.ID)
		}
		if !strings.HasPrefix(topic.Label, "Topic ") {
			t.Errorf("Unexpected label format: %q", topic.Label)
		}
		if len(topic.Terms) == 0 || len(topic.Terms) > 4 {
			t.Errorf("Expected 1-4 terms, got %d", len(topic.Terms))
		}
	}
}

func TestModeler_RepresentativeTerms(t *testing.T) {
	m := modeler()

	comments := []string{
		"deny deny policy", "deny policy", "deny coverage policy",
		"payment check", "payment remit", "payment check remit",
	}
	embeddings := [][]float32{
		{1, 0}, {1, 0.05}, {1, 0.1},
		{0, 1}, {0.05, 1}, {0.1, 1},
	}

	_, topics, err := m.Fit(comments, embeddings)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(topics))
	}

	// "deny" dominates topic 0, "payment" dominates topic 1.
	if topics[0].Terms[0].Term != "deny" {
		t.Errorf("Topic 0 top term = %q, want deny", topics[0].Terms[0].Term)
	}
	if topics[1].Terms[0].Term != "payment" {
		t.Errorf("Topic 1 top term = %q, want payment", topics[1].Terms[0].Term)
	}
	if !strings.Contains(topics[0].Label, "deny") {
		t.Errorf("Topic 0 label %q should contain its top term", topics[0].Label)
	}
}

func TestModeler_DegenerateInputs(t *testing.T) {
	m := modeler()

	tests := []struct {
		name     string
		comments []string
	}{
		{"all identical", []string{"same text", "same text", "same text", "same text"}},
		{"all empty", []string{"", "", "", ""}},
		{"too few distinct", []string{"one thing", "another thing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embeddings := make([][]float32, len(tt.comments))
			for i := range embeddings {
				embeddings[i] = []float32{1, 0}
			}

			assignments, topics, err := m.Fit(tt.comments, embeddings)
			if err != nil {
				t.Fatalf("Degenerate input must not fail: %v", err)
			}
			if len(topics) != 0 {
				t.Errorf("Expected no topics, got %d", len(topics))
			}
			for i, a := range assignments {
				if a != model.NoiseTopicID {
					t.Errorf("Row %d assigned %d, want noise", i, a)
				}
			}
		})
	}
}

func TestModeler_CountMismatch(t *testing.T) {
	m := modeler()
	if _, _, err := m.Fit([]string{"a", "b"}, [][]float32{{1}}); err == nil {
		t.Error("Expected error on comment/embedding count mismatch")
	}
}

func TestCosineDistance(t *testing.T) {
	if d := cosineDistance([]float32{1, 0}, []float32{1, 0}); d > 1e-6 {
		t.Errorf("Identical vectors should have distance ~0, got %v", d)
	}
	if d := cosineDistance([]float32{1, 0}, []float32{0, 1}); d < 0.99 || d > 1.01 {
		t.Errorf("Orthogonal vectors should have distance ~1, got %v", d)
	}
	if d := cosineDistance([]float32{0, 0}, []float32{1, 0}); d != 1 {
		t.Errorf("Zero vector distance = %v, want 1", d)
	}
}
