package reuse

import "testing"

func candidateParams() *Params {
	p := DefaultParams()
	p.WindowSize = 10
	p.Stride = 10
	p.NgramSize = 3
	p.MinSharedShingles = 3
	return &p
}

func TestFindCandidatePairsSharedContent(t *testing.T) {
	p := candidateParams()
	shared := seq(100, 10)
	docA := newMemDoc(1, shared)
	docB := newMemDoc(2, shared)

	candidates := FindCandidatePairs(Windows(docA, p), Windows(docB, p), p)
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	c := candidates[0]
	if c.A != 0 || c.B != 0 {
		t.Errorf("candidate indexes (%d,%d), want (0,0)", c.A, c.B)
	}
	// A 10-token window holds 8 trigram shingles.
	if c.SharedShingles != 8 {
		t.Errorf("shared shingles = %d, want 8", c.SharedShingles)
	}
}

func TestFindCandidatePairsDisjointContent(t *testing.T) {
	p := candidateParams()
	docA := newMemDoc(1, seq(0, 30))
	docB := newMemDoc(2, seq(1000, 30))

	if candidates := FindCandidatePairs(Windows(docA, p), Windows(docB, p), p); len(candidates) != 0 {
		t.Fatalf("got %d candidates for disjoint vocabularies", len(candidates))
	}
}

func TestFindCandidatePairsBelowThreshold(t *testing.T) {
	p := candidateParams()
	p.MinSharedShingles = 5
	// Streams share exactly one trigram run of 5 tokens: 3 shingles.
	lemmasA := append(seq(0, 5), seq(100, 5)...)
	lemmasB := append(seq(1000, 5), seq(100, 5)...)
	docA := newMemDoc(1, lemmasA)
	docB := newMemDoc(2, lemmasB)

	if candidates := FindCandidatePairs(Windows(docA, p), Windows(docB, p), p); len(candidates) != 0 {
		t.Fatalf("got %d candidates below the shingle threshold", len(candidates))
	}
}

func TestFindCandidatePairsBruteForce(t *testing.T) {
	p := candidateParams()
	p.BruteForce = true
	docA := newMemDoc(1, seq(0, 30))
	docB := newMemDoc(2, seq(1000, 30))

	windowsA := Windows(docA, p)
	windowsB := Windows(docB, p)
	candidates := FindCandidatePairs(windowsA, windowsB, p)
	if len(candidates) != len(windowsA)*len(windowsB) {
		t.Fatalf("brute force: got %d candidates, want %d", len(candidates), len(windowsA)*len(windowsB))
	}
}

func TestFindCandidatePairsDeterministicOrder(t *testing.T) {
	p := candidateParams()
	p.MinSharedShingles = 1
	shared := seq(100, 10)
	lemmasA := append(append([]uint32{}, shared...), shared...)
	docA := newMemDoc(1, lemmasA)
	docB := newMemDoc(2, lemmasA)

	windowsA := Windows(docA, p)
	windowsB := Windows(docB, p)

	first := FindCandidatePairs(windowsA, windowsB, p)
	for run := 0; run < 5; run++ {
		again := FindCandidatePairs(windowsA, windowsB, p)
		if len(again) != len(first) {
			t.Fatalf("run %d: candidate count changed", run)
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("run %d: candidate %d differs: %+v vs %+v", run, i, first[i], again[i])
			}
		}
	}
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if cur.A < prev.A || (cur.A == prev.A && cur.B <= prev.B) {
			t.Fatalf("candidates not ordered by (A,B): %+v before %+v", prev, cur)
		}
	}
}

func TestWindowShinglesShorterThanNgram(t *testing.T) {
	if s := windowShingles(seq(0, 2), 3); s != nil {
		t.Fatalf("got %d shingles from a 2-token window", len(s))
	}
}
