package reducer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ctxreduce/internal/domain"
	"ctxreduce/internal/embedding"
)

// minEligibleLineLen is the trimmed-length cutoff below which a line is not
// worth scoring. Short lines still appear in the output when pulled in as
// context around a selected neighbor.
const minEligibleLineLen = 10

// Embedding reduces a document by scoring each eligible line against the
// query with the similarity provider, expanding the top-K hits into context
// windows, and reassembling the union of those windows in original order.
type Embedding struct {
	embedder      domain.Embedder
	topK          int
	contextBefore int
	contextAfter  int
}

// NewEmbedding creates an embedding-based reducer. topK must be at least 1;
// negative context sizes are treated as 0.
func NewEmbedding(embedder domain.Embedder, topK, contextBefore, contextAfter int) (*Embedding, error) {
	if topK < 1 {
		return nil, fmt.Errorf("top-k must be at least 1, got %d", topK)
	}
	if contextBefore < 0 {
		contextBefore = 0
	}
	if contextAfter < 0 {
		contextAfter = 0
	}
	return &Embedding{
		embedder:      embedder,
		topK:          topK,
		contextBefore: contextBefore,
		contextAfter:  contextAfter,
	}, nil
}

// Name returns the strategy identifier.
func (r *Embedding) Name() string { return "embedding" }

// Reduce runs the embedding strategy. A document with no eligible lines is
// returned unchanged with zero timing. A provider failure is fatal: no
// retry, no partial result.
func (r *Embedding) Reduce(content, query string) (domain.Result, error) {
	start := time.Now()

	lines := strings.Split(content, "\n")
	var lineIndices []int
	var lineTexts []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) <= minEligibleLineLen {
			continue
		}
		lineIndices = append(lineIndices, i)
		lineTexts = append(lineTexts, line)
	}
	if len(lineTexts) == 0 {
		return domain.Result{Text: content}, nil
	}

	encodingStart := time.Now()
	if err := r.embedder.Prepare(lineTexts); err != nil {
		return domain.Result{}, fmt.Errorf("prepare embedder: %w", err)
	}
	queryVecs, err := r.embedder.EmbedBatch([]string{query})
	if err != nil {
		return domain.Result{}, fmt.Errorf("embed query: %w", err)
	}
	lineVecs, err := r.embedder.EmbedBatch(lineTexts)
	if err != nil {
		return domain.Result{}, fmt.Errorf("embed lines: %w", err)
	}
	if len(queryVecs) != 1 || len(lineVecs) != len(lineTexts) {
		return domain.Result{}, fmt.Errorf("embedder %s returned a short batch", r.embedder.Name())
	}
	encodingTime := time.Since(encodingStart)

	similarityStart := time.Now()
	scores := embedding.CosineMatrix(queryVecs, lineVecs)[0]

	// Rank by score descending. The stable sort makes ties resolve to the
	// earlier-scored line, so selection is deterministic.
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
	k := r.topK
	if k > len(order) {
		k = len(order)
	}
	similarityTime := time.Since(similarityStart)

	// Expand each selected line to its context window and union the indices.
	selected := make(map[int]struct{})
	for _, scoreIdx := range order[:k] {
		lineIdx := lineIndices[scoreIdx]
		for i := lineIdx - r.contextBefore; i <= lineIdx+r.contextAfter; i++ {
			if i >= 0 && i < len(lines) {
				selected[i] = struct{}{}
			}
		}
	}
	resultIndices := make([]int, 0, len(selected))
	for i := range selected {
		resultIndices = append(resultIndices, i)
	}
	sort.Ints(resultIndices)
	resultLines := make([]string, len(resultIndices))
	for i, idx := range resultIndices {
		resultLines[i] = lines[idx]
	}

	return domain.Result{
		Text: strings.Join(resultLines, "\n"),
		Timing: domain.Timing{
			Total:       time.Since(start),
			Encoding:    encodingTime,
			Similarity:  similarityTime,
			LineCount:   len(lineTexts),
			QueryLength: len(query),
		},
	}, nil
}
