package reducer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ctxreduce/internal/domain"
)

// Tuning values for the composite segment score. These are domain-specific
// weights, kept as named constants so the scoring structure stays fixed
// while the weights can be adjusted.
const (
	keywordWeight = 0.3
	densityWeight = 0.1
	// fallbackRadius is the number of lines kept on each side of the
	// midpoint when segmentation fails.
	fallbackRadius = 10
)

// relevanceKeywords boost segments that talk about the protocol concepts
// queries in this domain tend to target.
var relevanceKeywords = []string{"status", "code", "response", "request", "http"}

// Segment reduces a document by topical segmentation: every segment gets a
// composite score of lexical query overlap, keyword hits and content
// density, and the best maxSegments are reassembled in document order.
type Segment struct {
	segmenter   domain.Segmenter
	maxSegments int
}

// NewSegment creates a segmentation-based reducer. maxSegments must be at
// least 1.
func NewSegment(segmenter domain.Segmenter, maxSegments int) (*Segment, error) {
	if maxSegments < 1 {
		return nil, fmt.Errorf("max segments must be at least 1, got %d", maxSegments)
	}
	return &Segment{segmenter: segmenter, maxSegments: maxSegments}, nil
}

// Name returns the strategy identifier.
func (r *Segment) Name() string { return "segmentation" }

// Reduce runs the segmentation strategy. Segmentation failure is recovered
// locally: the result is the fixed window around the document midpoint,
// flagged via Result.Fallback, and no error is surfaced. Zero segments from
// a successful segmentation return the document unchanged with zero timing.
func (r *Segment) Reduce(content, query string) (domain.Result, error) {
	start := time.Now()

	segmentationStart := time.Now()
	segments, err := r.segmenter.Segment(content)
	segmentationTime := time.Since(segmentationStart)
	if err != nil {
		return domain.Result{
			Text: midpointWindow(content),
			Timing: domain.Timing{
				Total:       time.Since(start),
				QueryLength: len(query),
			},
			Fallback: true,
		}, nil
	}
	if len(segments) == 0 {
		return domain.Result{Text: content}, nil
	}

	type scoredSegment struct {
		index int
		score float64
	}
	queryWords := wordSet(query)
	scored := make([]scoredSegment, len(segments))
	for i, segment := range segments {
		scored[i] = scoredSegment{index: i, score: r.score(segment, queryWords)}
	}
	// Stable sort keeps earlier segments ahead on score ties.
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].score > scored[b].score })
	n := r.maxSegments
	if n > len(scored) {
		n = len(scored)
	}

	// Selection is by score; output order is by original position.
	top := scored[:n]
	sort.Slice(top, func(a, b int) bool { return top[a].index < top[b].index })
	parts := make([]string, n)
	for i, s := range top {
		parts[i] = segments[s.index]
	}

	return domain.Result{
		Text: strings.Join(parts, "\n\n"),
		Timing: domain.Timing{
			Total:        time.Since(start),
			Segmentation: segmentationTime,
			SegmentCount: len(segments),
			QueryLength:  len(query),
		},
	}, nil
}

// score computes lexicalOverlap + 0.3*keywordHits + 0.1*density for one
// segment.
func (r *Segment) score(segment string, queryWords map[string]struct{}) float64 {
	lower := strings.ToLower(segment)

	overlap := 0.0
	if len(queryWords) > 0 {
		segmentWords := wordSet(segment)
		matched := 0
		for w := range queryWords {
			if _, ok := segmentWords[w]; ok {
				matched++
			}
		}
		overlap = float64(matched) / float64(len(queryWords))
	}

	keywordHits := 0
	for _, kw := range relevanceKeywords {
		if strings.Contains(lower, kw) {
			keywordHits++
		}
	}

	nonBlank := 0
	for _, line := range strings.Split(segment, "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	newlines := strings.Count(segment, "\n")
	if newlines < 1 {
		newlines = 1
	}
	density := float64(nonBlank) / float64(newlines)

	return overlap + keywordWeight*float64(keywordHits) + densityWeight*density
}

// midpointWindow is the degenerate fallback: the ±fallbackRadius lines
// around the document's midpoint line.
func midpointWindow(content string) string {
	lines := strings.Split(content, "\n")
	mid := len(lines) / 2
	lo := mid - fallbackRadius
	if lo < 0 {
		lo = 0
	}
	hi := mid + fallbackRadius
	if hi > len(lines) {
		hi = len(lines)
	}
	return strings.Join(lines[lo:hi], "\n")
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	m := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		m[f] = struct{}{}
	}
	return m
}
