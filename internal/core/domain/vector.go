package domain

import "math"

// Matrix is a dense row-major feature matrix.
type Matrix [][]float64

// Standardize returns a copy of m where each column has had its mean
// subtracted and been divided by its population standard deviation.
// Columns with zero variance become all zeros.
func (m Matrix) Standardize() Matrix {
	if len(m) == 0 {
		return Matrix{}
	}
	cols := len(m[0])
	means := make([]float64, cols)
	stds := make([]float64, cols)
	constant := make([]bool, cols)
	rows := float64(len(m))

	for j := range constant {
		constant[j] = true
	}
	for _, row := range m {
		for j, v := range row {
			means[j] += v
			if v != m[0][j] {
				constant[j] = false
			}
		}
	}
	for j := range means {
		means[j] /= rows
	}
	for _, row := range m {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / rows)
	}

	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, cols)
		for j, v := range row {
			// rounding in the mean can leave a tiny non-zero std for identical values
			if constant[j] || stds[j] == 0 {
				continue
			}
			out[i][j] = (v - means[j]) / stds[j]
		}
	}
	return out
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 if
// either vector has zero length.
func CosineSimilarity(a, b []float64) float64 {
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

// RankedTrack is a candidate with its similarity to the seed.
type RankedTrack struct {
	Track
	Similarity float64
}

// Percent returns the similarity as a display percentage clamped to [0, 100].
func (r RankedTrack) Percent() float64 {
	return math.Max(0, math.Min(100, r.Similarity*100))
}
