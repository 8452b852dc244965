package compare

import "ctxreduce/internal/domain"

// Harness binds the two strategies to one document so callers can run
// repeated comparisons with different queries.
type Harness struct {
	embedding    domain.Reducer
	segmentation domain.Reducer
	content      string
}

// NewHarness creates a comparison harness over the given document content.
func NewHarness(embedding, segmentation domain.Reducer, content string) *Harness {
	return &Harness{embedding: embedding, segmentation: segmentation, content: content}
}

// Compare runs both strategies against the harness document.
func (h *Harness) Compare(query string) (Comparison, error) {
	return Run(h.embedding, h.segmentation, h.content, query)
}
