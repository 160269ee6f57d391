package index

import "math"

// selectMMR re-ranks candidates with maximal marginal relevance: each pick
// rewards similarity to the query (already folded into Score) and
// penalizes similarity to what was picked before. Trades a little top-1
// relevance for diversity across the k results.
func selectMMR(candidates []Chunk, limit int, relevance float64) []Chunk {
	if len(candidates) <= limit {
		return candidates
	}

	if relevance < 0 {
		relevance = 0
	} else if relevance > 1 {
		relevance = 1
	}

	selected := make([]Chunk, 0, limit)
	remaining := append([]Chunk(nil), candidates...)

	for len(selected) < limit && len(remaining) > 0 {
		bestIdx := -1
		best := math.Inf(-1)

		for i, cand := range remaining {
			score := float64(cand.Score)
			maxSim := 0.0

			for _, sel := range selected {
				if sim := CosineSimilarity(cand.Embedding, sel.Embedding); sim > maxSim {
					maxSim = sim
				}
			}

			current := (relevance * score) - ((1 - relevance) * maxSim)

			if relevance == 0 && len(selected) > 0 {
				current = -maxSim
			}

			if current > best {
				best = current
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			break
		}

		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}

// CosineSimilarity returns 0 for mismatched or empty vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
