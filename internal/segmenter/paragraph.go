package segmenter

import (
	"regexp"
	"strings"
)

// Paragraph is a cheap baseline segmenter: blank-line-separated blocks are
// grouped N per segment in document order.
type Paragraph struct {
	perSegment int
	splitter   *regexp.Regexp
}

// NewParagraph creates a paragraph segmenter grouping perSegment paragraphs
// into each segment.
func NewParagraph(perSegment int) *Paragraph {
	if perSegment <= 0 {
		perSegment = 4
	}
	return &Paragraph{
		perSegment: perSegment,
		splitter:   regexp.MustCompile(`\n[ \t]*\n+`),
	}
}

// Name returns the identifier of this segmenter implementation.
func (p *Paragraph) Name() string { return "paragraph" }

// Segment splits text into groups of consecutive paragraphs. A blank
// document yields zero segments; paragraph segmentation itself never fails.
func (p *Paragraph) Segment(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	blocks := p.splitter.Split(text, -1)
	paragraphs := blocks[:0]
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			paragraphs = append(paragraphs, b)
		}
	}
	var segments []string
	for i := 0; i < len(paragraphs); i += p.perSegment {
		end := i + p.perSegment
		if end > len(paragraphs) {
			end = len(paragraphs)
		}
		segments = append(segments, strings.Join(paragraphs[i:end], "\n\n"))
	}
	return segments, nil
}
