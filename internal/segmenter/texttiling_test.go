package segmenter

import (
	"strings"
	"testing"
)

const (
	fruitWords = "apple banana cherry damson elderberry fig grape melon peach plum"
	motorWords = "engine piston crankshaft gearbox clutch turbine axle chassis brake throttle"
)

// twoTopicDoc builds a document whose first half talks about fruit and whose
// second half talks about engines, with paragraph breaks throughout.
func twoTopicDoc(paragraphsPerTopic int) string {
	var parts []string
	for i := 0; i < paragraphsPerTopic; i++ {
		parts = append(parts, fruitWords)
	}
	for i := 0; i < paragraphsPerTopic; i++ {
		parts = append(parts, motorWords)
	}
	return strings.Join(parts, "\n\n")
}

func TestTextTiling_FindsTopicShift(t *testing.T) {
	doc := twoTopicDoc(4)
	tt := NewTextTiling(5, 2)
	segments, err := tt.Segment(doc)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) < 2 {
		t.Fatalf("expected the fruit/engine shift to produce a boundary, got %d segment(s)", len(segments))
	}
	// Segments must span the document exactly.
	if strings.Join(segments, "") != doc {
		t.Error("concatenated segments must reproduce the document")
	}
	// The first segment should be fruit-dominated, the last engine-dominated.
	if !strings.Contains(segments[0], "apple") || strings.Contains(segments[0], "throttle") {
		t.Errorf("first segment should be the fruit topic: %q", segments[0])
	}
	if !strings.Contains(segments[len(segments)-1], "throttle") {
		t.Errorf("last segment should be the engine topic: %q", segments[len(segments)-1])
	}
}

func TestTextTiling_NoParagraphBreaksFails(t *testing.T) {
	doc := strings.Repeat(fruitWords+" ", 30)
	tt := NewTextTiling(5, 2)
	if _, err := tt.Segment(doc); err == nil {
		t.Error("a document without paragraph breaks must fail segmentation")
	}
}

func TestTextTiling_TooShortFails(t *testing.T) {
	doc := "apple banana\n\ncherry damson"
	tt := NewTextTiling(20, 10)
	if _, err := tt.Segment(doc); err == nil {
		t.Error("a document with too few tokens must fail segmentation")
	}
}

func TestTextTiling_BlankDocumentYieldsZeroSegments(t *testing.T) {
	tt := NewTextTiling(20, 10)
	segments, err := tt.Segment("   \n\t\n ")
	if err != nil {
		t.Fatalf("blank document is trivially segmented, not an error: %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("expected zero segments, got %d", len(segments))
	}
}

func TestTextTiling_Defaults(t *testing.T) {
	tt := NewTextTiling(0, -1)
	if tt.w != 20 || tt.k != 10 {
		t.Errorf("expected defaults w=20 k=10, got w=%d k=%d", tt.w, tt.k)
	}
}
