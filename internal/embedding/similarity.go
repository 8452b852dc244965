package embedding

import "math"

// CosineMatrix computes the pairwise cosine similarity of two vector sets.
// The result has len(a) rows and len(b) columns. Scores are in [-1, 1];
// higher means more similar. Mismatched or zero vectors score 0.
func CosineMatrix(a, b [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		row := make([]float64, len(b))
		for j := range b {
			row[j] = Cosine(a[i], b[j])
		}
		out[i] = row
	}
	return out
}

// Cosine computes the cosine similarity between two vectors.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
