package embedding

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Cosine(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Cosine(%v, %v) = %f, want %f", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCosineMatrix_Shape(t *testing.T) {
	a := [][]float64{{1, 0}}
	b := [][]float64{{1, 0}, {0, 1}, {1, 1}}
	m := CosineMatrix(a, b)
	if len(m) != 1 || len(m[0]) != 3 {
		t.Fatalf("expected 1x3 matrix, got %dx%d", len(m), len(m[0]))
	}
	if math.Abs(m[0][0]-1) > 1e-9 {
		t.Errorf("m[0][0] = %f, want 1", m[0][0])
	}
	if math.Abs(m[0][1]) > 1e-9 {
		t.Errorf("m[0][1] = %f, want 0", m[0][1])
	}
	if math.Abs(m[0][2]-1/math.Sqrt2) > 1e-9 {
		t.Errorf("m[0][2] = %f, want %f", m[0][2], 1/math.Sqrt2)
	}
}
