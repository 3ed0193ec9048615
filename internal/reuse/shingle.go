package reuse

import (
	"encoding/binary"
	"sort"
)

// CandidatePair references two windows worth a full alignment, by index
// into the source and target window slices.
type CandidatePair struct {
	A, B           int
	SharedShingles int
}

// shingleKey packs n consecutive lemma ids into a map key.
func shingleKey(lemmas []uint32, buf []byte) string {
	for i, id := range lemmas {
		binary.LittleEndian.PutUint32(buf[i*4:], id)
	}
	return string(buf[:len(lemmas)*4])
}

// windowShingles returns the set of unique n-gram shingles in a window.
func windowShingles(lemmas []uint32, n int) map[string]struct{} {
	if len(lemmas) < n {
		return nil
	}
	buf := make([]byte, n*4)
	set := make(map[string]struct{}, len(lemmas)-n+1)
	for i := 0; i+n <= len(lemmas); i++ {
		set[shingleKey(lemmas[i:i+n], buf)] = struct{}{}
	}
	return set
}

// shingleIndex maps each shingle to the target windows containing it.
type shingleIndex map[string][]int

func buildShingleIndex(windows []Window, n int) shingleIndex {
	index := make(shingleIndex)
	for i, w := range windows {
		for s := range windowShingles(w.Lemmas, n) {
			index[s] = append(index[s], i)
		}
	}
	return index
}

// FindCandidatePairs enumerates window pairs likely to share reused
// content: pairs sharing at least MinSharedShingles n-gram shingles,
// found via an inverted index over the target windows. In brute-force
// mode every pair is emitted. The result is ordered by (A, B) so later
// stages never depend on map iteration order.
func FindCandidatePairs(windowsA, windowsB []Window, p *Params) []CandidatePair {
	if p.BruteForce {
		return allPairs(len(windowsA), len(windowsB))
	}

	index := buildShingleIndex(windowsB, p.NgramSize)

	var candidates []CandidatePair
	for idxA, wa := range windowsA {
		shared := make(map[int]int)
		for s := range windowShingles(wa.Lemmas, p.NgramSize) {
			for _, idxB := range index[s] {
				shared[idxB]++
			}
		}

		matched := make([]int, 0, len(shared))
		for idxB, count := range shared {
			if count >= p.MinSharedShingles {
				matched = append(matched, idxB)
			}
		}
		sort.Ints(matched)
		for _, idxB := range matched {
			candidates = append(candidates, CandidatePair{
				A:              idxA,
				B:              idxB,
				SharedShingles: shared[idxB],
			})
		}
	}
	return candidates
}

func allPairs(lenA, lenB int) []CandidatePair {
	pairs := make([]CandidatePair, 0, lenA*lenB)
	for i := 0; i < lenA; i++ {
		for j := 0; j < lenB; j++ {
			pairs = append(pairs, CandidatePair{A: i, B: j})
		}
	}
	return pairs
}
