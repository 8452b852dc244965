package segmenter

import (
	"errors"
	"math"
	"regexp"
	"strings"
)

// TextTiling segments a document by lexical cohesion. Tokens are grouped
// into pseudo-sentences of w tokens; the similarity of the k-pseudo-sentence
// blocks on either side of each gap gives a cohesion curve, and deep valleys
// in that curve become segment boundaries, snapped to the nearest paragraph
// break. Segmentation fails (returns an error) on documents without
// paragraph breaks or with too few tokens to tile.
type TextTiling struct {
	w            int
	k            int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewTextTiling creates a TextTiling segmenter. w is the pseudo-sentence
// size in tokens, k the block size in pseudo-sentences.
func NewTextTiling(w, k int) *TextTiling {
	if w <= 0 {
		w = 20
	}
	if k <= 0 {
		k = 10
	}
	return &TextTiling{
		w:            w,
		k:            k,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultSegmenterStopwords(),
	}
}

// Name returns the identifier of this segmenter implementation.
func (t *TextTiling) Name() string { return "texttiling" }

var paragraphBreakRe = regexp.MustCompile(`\n[ \t]*\n`)

// Segment splits text into topically coherent segments.
func (t *TextTiling) Segment(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	breaks := paragraphBreakRe.FindAllStringIndex(text, -1)
	if len(breaks) == 0 {
		return nil, errors.New("texttiling: no paragraph breaks found")
	}

	tokens, offsets := t.tokenize(text)
	// Need at least two full blocks on either side of one gap.
	if len(tokens) < 2*t.w*t.k {
		return nil, errors.New("texttiling: document too short to tile")
	}

	gapScores := t.gapScores(tokens)
	depths := depthScores(smooth(gapScores))
	cutGaps := boundaries(depths)
	if len(cutGaps) == 0 {
		return []string{text}, nil
	}

	// Snap each boundary gap to the paragraph break nearest the offset of
	// the first token after the gap.
	cutOffsets := make([]int, 0, len(cutGaps))
	for _, gap := range cutGaps {
		tokIdx := (gap + 1) * t.w
		if tokIdx >= len(offsets) {
			continue
		}
		off := nearestBreak(breaks, offsets[tokIdx])
		if len(cutOffsets) == 0 || off > cutOffsets[len(cutOffsets)-1] {
			cutOffsets = append(cutOffsets, off)
		}
	}

	var segments []string
	prev := 0
	for _, off := range cutOffsets {
		if off <= prev || off >= len(text) {
			continue
		}
		segments = append(segments, text[prev:off])
		prev = off
	}
	segments = append(segments, text[prev:])
	return segments, nil
}

// tokenize returns lowercased non-stopword tokens with their byte offsets.
func (t *TextTiling) tokenize(text string) ([]string, []int) {
	lower := strings.ToLower(text)
	locs := t.tokenPattern.FindAllStringIndex(lower, -1)
	tokens := make([]string, 0, len(locs))
	offsets := make([]int, 0, len(locs))
	for _, loc := range locs {
		tok := lower[loc[0]:loc[1]]
		if _, isStop := t.stopwords[tok]; isStop {
			continue
		}
		tokens = append(tokens, tok)
		offsets = append(offsets, loc[0])
	}
	return tokens, offsets
}

// gapScores computes block-comparison cohesion at each pseudo-sentence gap.
func (t *TextTiling) gapScores(tokens []string) []float64 {
	numPseudo := len(tokens) / t.w
	scores := make([]float64, numPseudo-1)
	for gap := 0; gap < numPseudo-1; gap++ {
		loBlock := gap + 1 - t.k
		if loBlock < 0 {
			loBlock = 0
		}
		hiBlock := gap + 1 + t.k
		if hiBlock > numPseudo {
			hiBlock = numPseudo
		}
		left := termFreq(tokens, loBlock*t.w, (gap+1)*t.w)
		right := termFreq(tokens, (gap+1)*t.w, hiBlock*t.w)
		scores[gap] = freqCosine(left, right)
	}
	return scores
}

func termFreq(tokens []string, lo, hi int) map[string]int {
	freq := make(map[string]int, hi-lo)
	for _, tok := range tokens[lo:hi] {
		freq[tok]++
	}
	return freq
}

func freqCosine(a, b map[string]int) float64 {
	var dot, normA, normB float64
	for tok, ca := range a {
		normA += float64(ca * ca)
		if cb, ok := b[tok]; ok {
			dot += float64(ca * cb)
		}
	}
	for _, cb := range b {
		normB += float64(cb * cb)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// smooth applies a width-3 moving average over the cohesion curve.
func smooth(scores []float64) []float64 {
	if len(scores) < 3 {
		return scores
	}
	out := make([]float64, len(scores))
	out[0] = scores[0]
	out[len(scores)-1] = scores[len(scores)-1]
	for i := 1; i < len(scores)-1; i++ {
		out[i] = (scores[i-1] + scores[i] + scores[i+1]) / 3
	}
	return out
}

// depthScores measures how deep each gap sits below its surrounding peaks.
func depthScores(scores []float64) []float64 {
	depths := make([]float64, len(scores))
	for i := range scores {
		lpeak := scores[i]
		for j := i - 1; j >= 0 && scores[j] >= lpeak; j-- {
			lpeak = scores[j]
		}
		rpeak := scores[i]
		for j := i + 1; j < len(scores) && scores[j] >= rpeak; j++ {
			rpeak = scores[j]
		}
		depths[i] = (lpeak - scores[i]) + (rpeak - scores[i])
	}
	return depths
}

// boundaries selects gaps whose depth exceeds mean - stddev/2.
func boundaries(depths []float64) []int {
	if len(depths) == 0 {
		return nil
	}
	var mean float64
	for _, d := range depths {
		mean += d
	}
	mean /= float64(len(depths))
	var variance float64
	for _, d := range depths {
		variance += (d - mean) * (d - mean)
	}
	stddev := math.Sqrt(variance / float64(len(depths)))
	cutoff := mean - stddev/2

	var cuts []int
	for i, d := range depths {
		if d > cutoff && d > 0 {
			// Avoid adjacent boundaries from one wide valley.
			if len(cuts) > 0 && i-cuts[len(cuts)-1] < 2 {
				if depths[cuts[len(cuts)-1]] < d {
					cuts[len(cuts)-1] = i
				}
				continue
			}
			cuts = append(cuts, i)
		}
	}
	return cuts
}

// nearestBreak returns the end offset of the paragraph break closest to off.
func nearestBreak(breaks [][]int, off int) int {
	best := breaks[0][1]
	bestDist := abs(off - breaks[0][0])
	for _, br := range breaks[1:] {
		if d := abs(off - br[0]); d < bestDist {
			bestDist = d
			best = br[1]
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func defaultSegmenterStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
