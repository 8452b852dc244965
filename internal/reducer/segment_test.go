package reducer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ctxreduce/internal/domain"
)

// fakeSegmenter returns a fixed segment list, or a fixed error.
type fakeSegmenter struct {
	segments []string
	err      error
}

func (f *fakeSegmenter) Name() string { return "fake" }
func (f *fakeSegmenter) Segment(text string) ([]string, error) {
	return f.segments, f.err
}

func TestNewSegment_RejectsBadMaxSegments(t *testing.T) {
	if _, err := NewSegment(&fakeSegmenter{}, 0); err == nil {
		t.Error("expected error for maxSegments=0")
	}
	if _, err := NewSegment(&fakeSegmenter{}, -1); err == nil {
		t.Error("expected error for negative maxSegments")
	}
}

func TestSegment_SelectionKeepsDocumentOrder(t *testing.T) {
	segments := []string{
		"nothing of interest here at all",
		"the request and response cycle uses http status code values",
		"still nothing of interest here",
		"more talk of status code and response and request and http",
	}
	r, err := NewSegment(&fakeSegmenter{segments: segments}, 2)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	res, err := r.Reduce("ignored by fake", "status codes")
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	// Segments 1 and 3 outscore 0 and 2; output must keep original order.
	want := segments[1] + "\n\n" + segments[3]
	if res.Text != want {
		t.Errorf("selection order wrong:\ngot:\n%s\nwant:\n%s", res.Text, want)
	}
	if res.Fallback {
		t.Error("successful segmentation must not be flagged as fallback")
	}
	if res.Timing.SegmentCount != 4 {
		t.Errorf("expected segment count 4, got %d", res.Timing.SegmentCount)
	}
}

func TestSegment_KeywordBoost(t *testing.T) {
	// Identical lexical overlap (none) and density; only the keyword
	// differs, so the "status code" segment must win.
	plain := "alpha beta gamma delta epsilon"
	boosted := "alpha beta gamma status code"
	r, err := NewSegment(&fakeSegmenter{segments: []string{plain, boosted}}, 1)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	res, err := r.Reduce("ignored", "zeta eta")
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if res.Text != boosted {
		t.Errorf("keyword-bearing segment should outscore its twin: got %q", res.Text)
	}
}

func TestSegment_ClampsMaxSegments(t *testing.T) {
	segments := []string{"first segment text", "second segment text", "third segment text"}
	r, err := NewSegment(&fakeSegmenter{segments: segments}, 50)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	res, err := r.Reduce("ignored", "query")
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if res.Text != strings.Join(segments, "\n\n") {
		t.Errorf("maxSegments above segment count should select all segments in order")
	}
}

func TestSegment_ZeroSegmentsPassesThrough(t *testing.T) {
	content := "the original document text"
	r, err := NewSegment(&fakeSegmenter{segments: nil}, 3)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	res, err := r.Reduce(content, "query")
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if res.Text != content {
		t.Errorf("zero segments must return the document unchanged")
	}
	if res.Timing != (domain.Timing{}) {
		t.Errorf("zero-segment case must report zero timing, got %+v", res.Timing)
	}
	if res.Fallback {
		t.Error("zero segments is not the fallback path")
	}
}

func TestSegment_FallbackIsMidpointWindow(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = fmt.Sprintf("document line %d", i)
	}
	content := strings.Join(lines, "\n")

	r, err := NewSegment(&fakeSegmenter{err: errors.New("tokenizer blew up")}, 3)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	res, err := r.Reduce(content, "query")
	if err != nil {
		t.Fatalf("fallback must not surface an error, got %v", err)
	}
	want := strings.Join(lines[10:30], "\n")
	if res.Text != want {
		t.Errorf("fallback window mismatch:\ngot:\n%s\nwant:\n%s", res.Text, want)
	}
	if !res.Fallback {
		t.Error("fallback result must be flagged")
	}
	if res.Timing.SegmentCount != 0 {
		t.Errorf("fallback must report zero segments, got %d", res.Timing.SegmentCount)
	}

	// Same document, same failure, same window.
	again, err := r.Reduce(content, "query")
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if again.Text != res.Text {
		t.Error("fallback output must be deterministic")
	}
}

func TestSegment_FallbackOnShortDocument(t *testing.T) {
	content := "one\ntwo\nthree"
	r, err := NewSegment(&fakeSegmenter{err: errors.New("no paragraph breaks")}, 3)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	res, err := r.Reduce(content, "query")
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	// Window clips to the whole document when it is shorter than the radius.
	if res.Text != content {
		t.Errorf("clipped fallback should cover the whole short document, got %q", res.Text)
	}
}

func TestSegment_LexicalOverlapScales(t *testing.T) {
	// Two-word query; one segment matches both words, the other one.
	full := "retry budget and backoff policy"
	half := "retry semantics for idempotent calls"
	r, err := NewSegment(&fakeSegmenter{segments: []string{half, full}}, 1)
	if err != nil {
		t.Fatalf("NewSegment: %v", err)
	}
	res, err := r.Reduce("ignored", "backoff retry")
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if res.Text != full {
		t.Errorf("segment matching more query words should win: got %q", res.Text)
	}
}
