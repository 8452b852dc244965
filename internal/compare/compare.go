package compare

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"ctxreduce/internal/domain"
)

// tripleDigitRe counts three-digit numbers, a cheap relevance proxy for
// protocol documents (HTTP status codes, RFC section numbers).
var tripleDigitRe = regexp.MustCompile(`\b\d{3}\b`)

// markerWords flag whether a reduced text still talks about the topic the
// reference query targets.
var markerWords = []string{"status", "code"}

// Entry holds one strategy's reduction plus the derived relevance counts.
type Entry struct {
	Strategy string
	Result   domain.Result
	// Matches is the number of three-digit numbers in the reduced text.
	Matches int
	// HasMarkers reports whether any marker word occurs in the text.
	HasMarkers bool
	Chars      int
	// Density is matches per output character; zero for empty output.
	Density float64
}

// Comparison is the outcome of running both strategies on the same inputs.
// It is observational: it reports rankings but picks no winner.
type Comparison struct {
	Query   string
	Entries []Entry
}

// Run executes both reducers sequentially on identical inputs and derives
// the comparative metrics. A failure of the embedding strategy aborts the
// whole comparison; the segmentation strategy recovers internally and never
// prevents a full report.
func Run(embedding, segmentation domain.Reducer, content, query string) (Comparison, error) {
	reducers := []domain.Reducer{embedding, segmentation}
	entries := make([]Entry, 0, len(reducers))
	for _, r := range reducers {
		res, err := r.Reduce(content, query)
		if err != nil {
			return Comparison{}, fmt.Errorf("%s reducer: %w", r.Name(), err)
		}
		entries = append(entries, newEntry(r.Name(), res))
	}
	return Comparison{Query: query, Entries: entries}, nil
}

func newEntry(strategy string, res domain.Result) Entry {
	matches := len(tripleDigitRe.FindAllString(res.Text, -1))
	lower := strings.ToLower(res.Text)
	hasMarkers := false
	for _, w := range markerWords {
		if strings.Contains(lower, w) {
			hasMarkers = true
			break
		}
	}
	density := 0.0
	if len(res.Text) > 0 {
		density = float64(matches) / float64(len(res.Text))
	}
	return Entry{
		Strategy:   strategy,
		Result:     res,
		Matches:    matches,
		HasMarkers: hasMarkers,
		Chars:      len(res.Text),
		Density:    density,
	}
}

// BySpeed returns the entries ranked by total elapsed time, fastest first.
func (c Comparison) BySpeed() []Entry {
	out := append([]Entry(nil), c.Entries...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Result.Timing.Total < out[b].Result.Timing.Total
	})
	return out
}

// ByEfficiency returns the entries ranked by matches per output character,
// densest first.
func (c Comparison) ByEfficiency() []Entry {
	out := append([]Entry(nil), c.Entries...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Density > out[b].Density
	})
	return out
}
