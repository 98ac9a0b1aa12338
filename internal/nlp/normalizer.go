// Package nlp holds the text normalization, sentiment scoring, and
// embedding components of the claims analysis pipeline.
package nlp

import (
	"regexp"
	"strings"
)

var punctuationRe = regexp.MustCompile(`[^\w\s]`)

// Normalizer turns raw comment text into the canonical token-joined form
// consumed by the embedding and topic stages. It is stateless and safe for
// reuse across analysis runs.
type Normalizer struct{}

// NewNormalizer creates a normalizer with the fixed English stop-word set
// and rule-based lemmatizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize lowercases, strips punctuation, collapses whitespace, removes
// stop words, and lemmatizes the remaining tokens. A token whose lemma is
// itself a stop word is dropped too, keeping Normalize idempotent. Empty
// or all-stop-word input normalizes to "", which is valid.
func (n *Normalizer) Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = punctuationRe.ReplaceAllString(text, " ")

	var out []string
	for _, token := range strings.Fields(text) {
		if _, stop := englishStopWords[token]; stop {
			continue
		}
		lemma := Lemmatize(token)
		if _, stop := englishStopWords[lemma]; stop {
			continue
		}
		out = append(out, lemma)
	}
	return strings.Join(out, " ")
}

// NormalizeAll normalizes a batch of comments, preserving order.
func (n *Normalizer) NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalize(t)
	}
	return out
}
