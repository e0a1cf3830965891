package main

import "math"

// fingerprintDims matches the vector column width in the extraction store.
const fingerprintDims = 384

// Fingerprint computes a deterministic local vector for a block of text.
// It is a cheap rolling-hash sketch, not a semantic embedding: good enough
// to rank past extractions of similar text without a remote embedding call.
func Fingerprint(text string) []float32 {
	vec := make([]float32, fingerprintDims)

	hash := 0
	for i, char := range text {
		hash = (hash*31 + int(char)) % 1000000
		vec[i%fingerprintDims] += float32(hash%100) / 100.0
	}

	// Normalize to unit length
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}

	return vec
}
