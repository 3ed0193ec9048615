package reuse

import (
	"math"
	"testing"
)

func TestBuildWeightTableIDF(t *testing.T) {
	// 8 tokens: lemma 1 appears 4 times, lemma 2 twice, lemmas 3 and 4
	// once each.
	lemmas := []uint32{1, 1, 1, 1, 2, 2, 3, 4}
	table := BuildWeightTable(lemmas, MaxLemmaID(lemmas))

	cases := []struct {
		lemma uint32
		want  float64
	}{
		{1, math.Log(8.0 / 4.0)},
		{2, math.Log(8.0 / 2.0)},
		{3, math.Log(8.0 / 1.0)},
		{4, math.Log(8.0 / 1.0)},
	}
	for _, c := range cases {
		if got := table.Weight(c.lemma); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("weight(%d) = %v, want %v", c.lemma, got, c.want)
		}
	}
}

func TestBuildWeightTableClampLow(t *testing.T) {
	// A lemma filling the whole stream has ln(1) = 0, clamped up.
	lemmas := []uint32{7, 7, 7, 7}
	table := BuildWeightTable(lemmas, MaxLemmaID(lemmas))
	if got := table.Weight(7); got != 0.5 {
		t.Errorf("weight(7) = %v, want 0.5", got)
	}
}

func TestBuildWeightTableClampHigh(t *testing.T) {
	// One occurrence in a 100-token stream: ln(100) ≈ 4.6, clamped down.
	lemmas := make([]uint32, 100)
	for i := range lemmas {
		lemmas[i] = 1
	}
	lemmas[50] = 2
	table := BuildWeightTable(lemmas, MaxLemmaID(lemmas))
	if got := table.Weight(2); got != 3.0 {
		t.Errorf("weight(2) = %v, want 3.0", got)
	}
}

func TestWeightTableDefaults(t *testing.T) {
	lemmas := []uint32{1, 2, 3}
	table := BuildWeightTable(lemmas, 10)

	if got := table.Weight(9); got != 1.0 {
		t.Errorf("unseen in-range lemma: weight = %v, want 1.0", got)
	}
	if got := table.Weight(99); got != 1.0 {
		t.Errorf("out-of-range lemma: weight = %v, want 1.0", got)
	}

	var nilTable *WeightTable
	if got := nilTable.Weight(1); got != 1.0 {
		t.Errorf("nil table: weight = %v, want 1.0", got)
	}
}

func TestMaxLemmaID(t *testing.T) {
	if got := MaxLemmaID([]uint32{1, 5, 3}, []uint32{2, 9, 4}); got != 9 {
		t.Errorf("MaxLemmaID = %d, want 9", got)
	}
	if got := MaxLemmaID(nil, nil); got != 0 {
		t.Errorf("MaxLemmaID of empty streams = %d, want 0", got)
	}
}
