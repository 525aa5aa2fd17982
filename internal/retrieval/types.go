// Package retrieval defines the evidence chunks handed back by a retrieval
// collaborator, their deterministic ranking and the confidence gate that
// decides whether they can be trusted as grounding.
package retrieval

import (
	"encoding/json"
	"fmt"
)

// Span is a character range in the chunk's source document.
type Span struct {
	Start int
	End   int
}

// MarshalJSON encodes the span as a [start, end] pair.
func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Start, s.End})
}

// UnmarshalJSON accepts a [start, end] pair or null.
func (s *Span) UnmarshalJSON(b []byte) error {
	var pair []int
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	switch len(pair) {
	case 0:
		*s = Span{}
	case 2:
		*s = Span{Start: pair[0], End: pair[1]}
	default:
		return fmt.Errorf("span must have 2 elements, got %d", len(pair))
	}
	return nil
}

// Chunk is one unit of retrieved evidence. Score is assigned by the
// retriever; the only meaning relied on here is "higher is more relevant".
type Chunk struct {
	DocID  string  `json:"doc_id"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
	Span   Span    `json:"span"`
	Pack   string  `json:"pack,omitempty"`
}

// DocIDs returns the doc ids of chunks in order.
func DocIDs(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.DocID
	}
	return out
}
