package model

// ClaimRecord is one row of the input claims table. Records are immutable
// once loaded; only the comment text is analyzed, the remaining fields are
// carried through for context rendering and reporting.
type ClaimRecord struct {
	ClaimID        string  `json:"claim_id"`
	Comment        string  `json:"comment"` // Required; cleaned on load (trimmed, lowercased, whitespace collapsed)
	Category       string  `json:"category,omitempty"`
	Specialty      string  `json:"specialty,omitempty"`
	InsuranceType  string  `json:"insurance_type,omitempty"`
	CPTCode        string  `json:"cpt_code,omitempty"`
	AmountExpected float64 `json:"amount_expected"`
	AmountPaid     float64 `json:"amount_paid"`
}

// PaymentGap returns the difference between what was billed and what the
// payer actually reimbursed.
func (c ClaimRecord) PaymentGap() float64 {
	return c.AmountExpected - c.AmountPaid
}

// Sentiment is a discrete sentiment label.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	// SentimentNeutral is the fail-soft default when a row cannot be scored.
	SentimentNeutral Sentiment = "NEUTRAL"
)

// NoiseTopicID marks comments that did not fit any dense cluster.
const NoiseTopicID = -1

// NoiseTopicLabel is the label attached to unclustered comments.
const NoiseTopicLabel = "Miscellaneous"

// EnrichedClaim is a ClaimRecord plus the columns derived by the analysis
// pipeline. Derived fields are written exactly once per row and never
// mutated afterward.
type EnrichedClaim struct {
	ClaimRecord

	Cleaned           string    `json:"cleaned"`            // Normalized comment (lowercased, lemmatized, stop words removed)
	Sentiment         Sentiment `json:"sentiment"`          // Classifier label over the raw comment
	Polarity          float64   `json:"polarity"`           // Lexicon polarity in [-1, 1], independent of the label
	Topic             int       `json:"topic"`              // Cluster id, NoiseTopicID for noise
	TopicLabel        string    `json:"topic_label"`        // "Topic <id>: <terms>" or NoiseTopicLabel
	PredictedCategory string    `json:"predicted_category"` // First matching keyword rule, "Other" if none
}

// TopicTerm is one representative term of a topic with its importance weight.
type TopicTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Topic is one cluster discovered during an analysis run. Topics are
// recomputed from scratch every run; ids carry no identity across runs.
type Topic struct {
	ID    int         `json:"id"`
	Size  int         `json:"size"`
	Terms []TopicTerm `json:"terms"` // Descending by weight
	Label string      `json:"label"`
}

// RetrievalResult is one claim ranked against a query embedding.
type RetrievalResult struct {
	Row        int     `json:"row"` // Index into the enriched table
	Similarity float64 `json:"similarity"`
	Claim      EnrichedClaim
}

// QAExchange is one question/answer pair from the current session.
type QAExchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
