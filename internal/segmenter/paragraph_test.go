package segmenter

import (
	"strings"
	"testing"
)

func TestParagraph_GroupsInOrder(t *testing.T) {
	doc := "para one text\n\npara two text\n\npara three text\n\npara four text\n\npara five text"
	p := NewParagraph(2)
	segments, err := p.Segment(doc)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments of up to 2 paragraphs, got %d", len(segments))
	}
	if segments[0] != "para one text\n\npara two text" {
		t.Errorf("unexpected first segment: %q", segments[0])
	}
	if segments[2] != "para five text" {
		t.Errorf("trailing partial group should stand alone: %q", segments[2])
	}
	joined := strings.Join(segments, "\n\n")
	if joined != doc {
		t.Errorf("segments should cover the document:\ngot %q\nwant %q", joined, doc)
	}
}

func TestParagraph_BlankDocumentYieldsZeroSegments(t *testing.T) {
	p := NewParagraph(3)
	segments, err := p.Segment(" \n \n\t")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("expected zero segments, got %d", len(segments))
	}
}

func TestParagraph_SkipsEmptyBlocks(t *testing.T) {
	doc := "first paragraph\n\n\n\n\nsecond paragraph"
	p := NewParagraph(1)
	segments, err := p.Segment(doc)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 2 {
		t.Errorf("runs of blank lines should not create empty segments, got %d", len(segments))
	}
}
