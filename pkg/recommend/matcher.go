package recommend

import (
	"math"
	"sort"
)

// TopK ranks catalog vectors by cosine similarity to the query vector and
// returns the indices of the k best matches, highest first. Ties keep the
// original catalog order (stable sort). A zero-norm query or row scores 0
// against everything; an empty catalog yields an empty result.
func TopK(query []float32, catalog [][]float32, k int) []int {
	if k <= 0 || len(catalog) == 0 {
		return []int{}
	}

	type scored struct {
		index int
		score float64
	}

	scores := make([]scored, len(catalog))
	for i, row := range catalog {
		scores[i] = scored{index: i, score: cosineSimilarity(query, row)}
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].score > scores[b].score
	})

	if k > len(scores) {
		k = len(scores)
	}
	result := make([]int, k)
	for i := 0; i < k; i++ {
		result[i] = scores[i].index
	}
	return result
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
