// Package topics clusters comment embeddings into discrete topics and
// derives a short human-readable label for each.
package topics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
)

// Modeler partitions comment embeddings into dense clusters. The number of
// topics is discovered from the density structure, never fixed a priori;
// comments outside any dense cluster land in the noise topic.
type Modeler struct {
	epsilon        float64 // Max cosine distance between neighbors
	minClusterSize int
	topTerms       int
}

// NewModeler creates a topic modeler from config. Zero values fall back to
// the defaults in model.DefaultConfig.
func NewModeler(cfg model.TopicsConfig) *Modeler {
	def := model.DefaultConfig().Topics
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = def.Epsilon
	}
	if cfg.MinClusterSize <= 0 {
		cfg.MinClusterSize = def.MinClusterSize
	}
	if cfg.TopTerms <= 0 {
		cfg.TopTerms = def.TopTerms
	}
	return &Modeler{
		epsilon:        cfg.Epsilon,
		minClusterSize: cfg.MinClusterSize,
		topTerms:       cfg.TopTerms,
	}
}

// Fit clusters the full corpus for one analysis run. It returns a topic id
// per comment (model.NoiseTopicID for noise) and the discovered topics.
// Degenerate input (fewer distinct non-empty comments than the minimum
// cluster size) yields a single noise topic for every row, not an error.
func (m *Modeler) Fit(comments []string, embeddings [][]float32) ([]int, []model.Topic, error) {
	if len(comments) != len(embeddings) {
		return nil, nil, fmt.Errorf("comment/embedding count mismatch: %d vs %d", len(comments), len(embeddings))
	}

	assignments := make([]int, len(comments))
	for i := range assignments {
		assignments[i] = model.NoiseTopicID
	}

	if !m.clusterable(comments) {
		return assignments, nil, nil
	}

	m.dbscan(embeddings, comments, assignments)
	topics := m.describe(comments, assignments)
	return assignments, topics, nil
}

// clusterable reports whether the corpus has enough distinct non-empty
// comments to form at least one dense cluster.
func (m *Modeler) clusterable(comments []string) bool {
	distinct := make(map[string]struct{})
	for _, c := range comments {
		if c != "" {
			distinct[c] = struct{}{}
		}
	}
	return len(distinct) >= m.minClusterSize
}

// dbscan runs density clustering over cosine distance. Empty comments are
// never cluster members.
func (m *Modeler) dbscan(embeddings [][]float32, comments []string, assignments []int) {
	n := len(embeddings)
	visited := make([]bool, n)
	nextTopic := 0

	neighborsOf := func(i int) []int {
		var out []int
		for j := 0; j < n; j++ {
			if j == i || comments[j] == "" {
				continue
			}
			if cosineDistance(embeddings[i], embeddings[j]) <= m.epsilon {
				out = append(out, j)
			}
		}
		return out
	}

	for i := 0; i < n; i++ {
		if visited[i] || comments[i] == "" {
			continue
		}
		visited[i] = true

		neighbors := neighborsOf(i)
		if len(neighbors)+1 < m.minClusterSize {
			continue // Stays noise unless absorbed by a later cluster
		}

		topic := nextTopic
		nextTopic++
		assignments[i] = topic

		// Expand the cluster breadth-first.
		queue := neighbors
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if assignments[j] == model.NoiseTopicID {
				assignments[j] = topic
			}
			if visited[j] {
				continue
			}
			visited[j] = true

			more := neighborsOf(j)
			if len(more)+1 >= m.minClusterSize {
				queue = append(queue, more...)
			}
		}
	}
}

// describe derives the representative terms and label for each topic using
// class-based TF-IDF: term frequency within the topic scaled by how rare
// the term is across topics.
func (m *Modeler) describe(comments []string, assignments []int) []model.Topic {
	topicDocs := make(map[int][]string)
	for i, topic := range assignments {
		if topic == model.NoiseTopicID {
			continue
		}
		topicDocs[topic] = append(topicDocs[topic], comments[i])
	}
	if len(topicDocs) == 0 {
		return nil
	}

	// Count term frequency per topic and topic frequency per term.
	termFreq := make(map[int]map[string]float64)
	topicCount := make(map[string]int)
	for topic, docs := range topicDocs {
		counts := make(map[string]float64)
		for _, doc := range docs {
			for _, term := range strings.Fields(doc) {
				counts[term]++
			}
		}
		termFreq[topic] = counts
		for term := range counts {
			topicCount[term]++
		}
	}

	numTopics := float64(len(topicDocs))
	topics := make([]model.Topic, 0, len(topicDocs))
	for topic, counts := range termFreq {
		var total float64
		for _, c := range counts {
			total += c
		}

		terms := make([]model.TopicTerm, 0, len(counts))
		for term, count := range counts {
			idf := math.Log(1 + numTopics/float64(topicCount[term]))
			terms = append(terms, model.TopicTerm{
				Term:   term,
				Weight: (count / total) * idf,
			})
		}
		sort.Slice(terms, func(a, b int) bool {
			if terms[a].Weight != terms[b].Weight {
				return terms[a].Weight > terms[b].Weight
			}
			return terms[a].Term < terms[b].Term
		})
		if len(terms) > m.topTerms {
			terms = terms[:m.topTerms]
		}

		topics = append(topics, model.Topic{
			ID:    topic,
			Size:  len(topicDocs[topic]),
			Terms: terms,
			Label: formatLabel(topic, terms),
		})
	}

	sort.Slice(topics, func(a, b int) bool { return topics[a].ID < topics[b].ID })
	return topics
}

// formatLabel builds "Topic <id>: term1, term2, ..." from the top terms.
func formatLabel(id int, terms []model.TopicTerm) string {
	words := make([]string, len(terms))
	for i, t := range terms {
		words[i] = t.Term
	}
	return fmt.Sprintf("Topic %d: %s", id, strings.Join(words, ", "))
}

// cosineDistance is 1 - cosine similarity, in [0, 2].
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
