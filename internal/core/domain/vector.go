package domain

import "math"

// CosineSimilarity returns the cosine of the angle between two embedding
// vectors. It is total: nil inputs, mismatched dimensionalities, and
// zero-norm vectors all yield 0.0 rather than an error, so ranking code can
// score heterogeneous stores without case analysis.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0.0
	}
	return dot / denom
}
