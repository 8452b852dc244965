package domain

import "time"

// Timing records the wall-clock cost of a single reduction call, broken down
// by strategy-specific phases. Phases that do not apply to a strategy stay
// zero (a segmentation run has no encoding phase and vice versa).
type Timing struct {
	Total        time.Duration
	Encoding     time.Duration
	Similarity   time.Duration
	Segmentation time.Duration
	// LineCount is the number of eligible lines scored (embedding strategy).
	LineCount int
	// SegmentCount is the number of segments produced (segmentation
	// strategy); zero when the fallback path was taken.
	SegmentCount int
	QueryLength  int
}

// Result is the output of one reduction call. Timing is returned here rather
// than stored on the reducer, so a single reducer value is reusable across
// concurrent calls.
type Result struct {
	Text   string
	Timing Timing
	// Fallback is true when the segmentation strategy recovered from a
	// provider failure via its fixed midpoint-window policy.
	Fallback bool
}

// Reducer maps (document, query) to a smaller, more query-relevant excerpt.
type Reducer interface {
	Name() string
	Reduce(content, query string) (Result, error)
}

// Embedder converts batches of free text into numeric vector representations.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	EmbedBatch(texts []string) ([][]float64, error)
}

// Segmenter splits a document into an ordered sequence of topically coherent
// segments. A returned error is distinct from an empty segment list: the
// former means segmentation failed, the latter that it succeeded trivially.
type Segmenter interface {
	Name() string
	Segment(text string) ([]string, error)
}
