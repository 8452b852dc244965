package embedding

import (
	"math"
	"testing"
)

func TestTFIDF_PrepareRequired(t *testing.T) {
	e := NewTFIDF()
	if _, err := e.EmbedBatch([]string{"anything at all"}); err == nil {
		t.Error("embedding before Prepare must fail")
	}
}

func TestTFIDF_EmptyCorpus(t *testing.T) {
	e := NewTFIDF()
	if err := e.Prepare(nil); err == nil {
		t.Error("empty corpus must fail")
	}
}

func TestTFIDF_VectorsAreNormalizedAndComparable(t *testing.T) {
	corpus := []string{
		"the gateway returned an http status code",
		"cats are wonderful fluffy companions",
		"the server response carried a status header",
	}
	e := NewTFIDF()
	if err := e.Prepare(corpus); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if e.Dimension() == 0 {
		t.Fatal("dimension must be set after Prepare")
	}
	vecs, err := e.EmbedBatch([]string{
		"http status code",
		"fluffy companions",
		"http status code",
	})
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vecs))
	}
	for i, v := range vecs {
		if len(v) != e.Dimension() {
			t.Errorf("vector %d has dimension %d, want %d", i, len(v), e.Dimension())
		}
	}
	if got := Cosine(vecs[0], vecs[2]); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical texts should have cosine 1, got %f", got)
	}
	if same, diff := Cosine(vecs[0], vecs[0]), Cosine(vecs[0], vecs[1]); diff >= same {
		t.Errorf("unrelated text should score lower: same=%f diff=%f", same, diff)
	}
}

func TestTFIDF_UnknownTokensYieldZeroVector(t *testing.T) {
	e := NewTFIDF()
	if err := e.Prepare([]string{"alpha beta gamma"}); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	vecs, err := e.EmbedBatch([]string{"zzz qqq"})
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	for _, v := range vecs[0] {
		if v != 0 {
			t.Fatal("out-of-vocabulary text should embed as the zero vector")
		}
	}
}
