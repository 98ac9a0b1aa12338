package model

import "fmt"

// SchemaError reports a required input column that is missing from the
// claims table. It is fatal to the analysis call: no partial result is
// returned alongside it.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("claims table is missing required column %q", e.Column)
}

// RetrievalError reports a failure while embedding a question or ranking
// claims against it. The QA agent surfaces it fail-soft, never as a panic.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("claim retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationError reports a failure of the generative completion call:
// network, auth, quota, timeout, or a malformed response. The enriched
// table and any earlier answers remain valid.
type GenerationError struct {
	Provider string
	Timeout  bool
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s generation timed out: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
