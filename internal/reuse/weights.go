package reuse

import "math"

// Weights are clamped to [0.5, 3.0] for stability.
const (
	minLemmaWeight = 0.5
	maxLemmaWeight = 3.0
)

// WeightTable holds per-document inverse-frequency weights per lemma,
// indexed by lemma id. It is built once per document and shared read-only
// across alignment workers.
type WeightTable struct {
	weights []float64
}

// BuildWeightTable computes document-internal IDF weights for a lemma
// stream: weight(lemma) = ln(total / df(lemma)), clamped to [0.5, 3.0].
// maxLemmaID sizes the table; ids beyond it fall back to the default.
func BuildWeightTable(lemmas []uint32, maxLemmaID uint32) *WeightTable {
	counts := make([]uint32, maxLemmaID+1)
	for _, id := range lemmas {
		if int(id) < len(counts) {
			counts[id]++
		}
	}

	total := float64(len(lemmas))
	weights := make([]float64, maxLemmaID+1)
	for id, df := range counts {
		if df == 0 {
			continue
		}
		w := math.Log(total / float64(df))
		if w < minLemmaWeight {
			w = minLemmaWeight
		} else if w > maxLemmaWeight {
			w = maxLemmaWeight
		}
		weights[id] = w
	}

	return &WeightTable{weights: weights}
}

// Weight returns the weight for a lemma id, defaulting to 1.0 for lemmas
// the table has never seen.
func (t *WeightTable) Weight(lemmaID uint32) float64 {
	if t == nil {
		return 1.0
	}
	if idx := int(lemmaID); idx < len(t.weights) && t.weights[idx] > 0 {
		return t.weights[idx]
	}
	return 1.0
}

// MaxLemmaID returns the largest lemma id in the given streams, for
// sizing a shared weight table.
func MaxLemmaID(streams ...[]uint32) uint32 {
	var max uint32
	for _, lemmas := range streams {
		for _, id := range lemmas {
			if id > max {
				max = id
			}
		}
	}
	return max
}
