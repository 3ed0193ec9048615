package reuse

// EventKind classifies one traceback step of a local alignment.
type EventKind uint8

const (
	// EventLemmaMatch is a diagonal step whose lemma ids are equal.
	EventLemmaMatch EventKind = iota
	// EventRootOnlyMatch is a diagonal step whose lemmas differ but
	// whose non-zero root ids are equal.
	EventRootOnlyMatch
	// EventSubstitution is a diagonal step where neither lemma nor root
	// matched.
	EventSubstitution
	// EventGap is a vertical or horizontal step consuming a token on
	// only one side.
	EventGap
)

// Event is one aligned cell from traceback. Positions are global token
// positions; a gap carries -1 on the side it skips. Weight is the
// frequency weight credited to a lemma match, zero otherwise.
type Event struct {
	Kind      EventKind
	SourcePos int
	TargetPos int
	Lemma     uint32
	Weight    float64
}

// alignment is the raw engine result for one candidate pair, before
// metric derivation. Ranges are window-relative.
type alignment struct {
	startA, endA int
	startB, endB int
	events       []Event
	score        int
	pairs        int // diagonal steps
	lemmaMatches int
	rootOnly     int
}

// scoreFunc returns the pair score for two positions under the active
// mode and weighting.
type scoreFunc func(lemmaA, lemmaB, rootA, rootB uint32) int

// aligner runs Smith-Waterman local alignment between window pairs,
// reusing its DP table across calls. An aligner is owned by a single
// worker and must not be shared.
type aligner struct {
	params   *Params
	score    scoreFunc
	weightsA *WeightTable
	weightsB *WeightTable
	h        []int // flat (n+1)x(m+1) table
}

// newAligner builds an aligner with the scoring strategy selected once
// from the params: mode dispatch and weighting are resolved here, not
// inside the DP loop.
func newAligner(p *Params, weightsA, weightsB *WeightTable) *aligner {
	a := &aligner{params: p, weightsA: weightsA, weightsB: weightsB}
	a.score = a.newScorer()
	return a
}

func (a *aligner) newScorer() scoreFunc {
	p := a.params
	switch p.Mode {
	case ModeRoot:
		return func(_, _, rootA, rootB uint32) int {
			if rootA == rootB && rootA != 0 {
				return p.LemmaScore
			}
			return p.MismatchPenalty
		}
	case ModeCombined:
		if p.UseWeights {
			return func(lemmaA, lemmaB, rootA, rootB uint32) int {
				if lemmaA == lemmaB {
					return int(float64(p.LemmaScore) * a.pairWeight(lemmaA, lemmaB))
				}
				if rootA == rootB && rootA != 0 {
					return p.RootScore
				}
				return p.MismatchPenalty
			}
		}
		return func(lemmaA, lemmaB, rootA, rootB uint32) int {
			if lemmaA == lemmaB {
				return p.LemmaScore
			}
			if rootA == rootB && rootA != 0 {
				return p.RootScore
			}
			return p.MismatchPenalty
		}
	default: // ModeLemma
		if p.UseWeights {
			return func(lemmaA, lemmaB, _, _ uint32) int {
				if lemmaA == lemmaB {
					return int(float64(p.MatchScore) * a.pairWeight(lemmaA, lemmaB))
				}
				return p.MismatchPenalty
			}
		}
		return func(lemmaA, lemmaB, _, _ uint32) int {
			if lemmaA == lemmaB {
				return p.MatchScore
			}
			return p.MismatchPenalty
		}
	}
}

// pairWeight is the weight credited to a matched lemma: the smaller of
// the two documents' weights.
func (a *aligner) pairWeight(lemmaA, lemmaB uint32) float64 {
	wa := a.weightsA.Weight(lemmaA)
	wb := a.weightsB.Weight(lemmaB)
	if wb < wa {
		return wb
	}
	return wa
}

// table returns a zeroed DP table of the requested size, reusing the
// previous allocation when large enough.
func (a *aligner) table(cells int) []int {
	if cap(a.h) < cells {
		a.h = make([]int, cells)
	}
	a.h = a.h[:cells]
	for i := range a.h {
		a.h[i] = 0
	}
	return a.h
}

// align runs local alignment between two windows' lemma/root sequences.
// It returns false when no alignment survives the structural and
// similarity gates. With gateSimilarity false the MinSimilarity check is
// skipped; the zero-score and MinLength discards always apply.
func (a *aligner) align(wa, wb *Window, gateSimilarity bool) (*alignment, bool) {
	lemmasA, lemmasB := wa.Lemmas, wb.Lemmas
	rootsA, rootsB := wa.Roots, wb.Roots
	n, m := len(lemmasA), len(lemmasB)
	if n == 0 || m == 0 {
		return nil, false
	}

	p := a.params
	width := m + 1
	h := a.table((n + 1) * width)

	maxScore, maxI, maxJ := 0, 0, 0
	for i := 1; i <= n; i++ {
		lemmaA := lemmasA[i-1]
		rootA := rootsA[i-1]
		row := i * width
		prev := (i - 1) * width
		for j := 1; j <= m; j++ {
			diagonal := h[prev+j-1] + a.score(lemmaA, lemmasB[j-1], rootA, rootsB[j-1])
			up := h[prev+j] + p.GapPenalty
			left := h[row+j-1] + p.GapPenalty

			score := diagonal
			if up > score {
				score = up
			}
			if left > score {
				score = left
			}
			if score < 0 {
				score = 0
			}
			h[row+j] = score

			if score > maxScore {
				maxScore, maxI, maxJ = score, i, j
			}
		}
	}

	if maxScore < (p.MinLength*p.matchValue())/2 {
		return nil, false
	}

	res := &alignment{score: maxScore}
	res.events = make([]Event, 0, min(n, m))

	// Traceback from the max cell until a zero cell. Ties prefer the
	// diagonal over the vertical, and vertical over horizontal.
	i, j := maxI, maxJ
	var gaps int
	for i > 0 && j > 0 && h[i*width+j] > 0 {
		current := h[i*width+j]
		lemmaA, lemmaB := lemmasA[i-1], lemmasB[j-1]
		rootA, rootB := rootsA[i-1], rootsB[j-1]

		switch {
		case current == h[(i-1)*width+j-1]+a.score(lemmaA, lemmaB, rootA, rootB):
			ev := Event{SourcePos: wa.Start + i - 1, TargetPos: wb.Start + j - 1}
			switch {
			case lemmaA == lemmaB:
				ev.Kind = EventLemmaMatch
				ev.Lemma = lemmaA
				ev.Weight = a.pairWeight(lemmaA, lemmaB)
				res.lemmaMatches++
			case rootA == rootB && rootA != 0:
				ev.Kind = EventRootOnlyMatch
				res.rootOnly++
			default:
				ev.Kind = EventSubstitution
			}
			res.events = append(res.events, ev)
			res.pairs++
			i--
			j--
		case current == h[(i-1)*width+j]+p.GapPenalty:
			res.events = append(res.events, Event{Kind: EventGap, SourcePos: wa.Start + i - 1, TargetPos: -1})
			gaps++
			i--
		default:
			res.events = append(res.events, Event{Kind: EventGap, SourcePos: -1, TargetPos: wb.Start + j - 1})
			gaps++
			j--
		}
	}

	// Traceback runs backwards; restore stream order.
	for l, r := 0, len(res.events)-1; l < r; l, r = l+1, r-1 {
		res.events[l], res.events[r] = res.events[r], res.events[l]
	}

	if res.pairs < p.MinLength {
		return nil, false
	}

	if gateSimilarity && a.similarity(res) < p.MinSimilarity {
		return nil, false
	}

	res.startA, res.endA = i, maxI
	res.startB, res.endB = j, maxJ
	return res, true
}

// similarity is the legacy per-mode gate applied before merging.
func (a *aligner) similarity(res *alignment) float64 {
	pairs := float64(res.pairs)
	switch a.params.Mode {
	case ModeRoot:
		// Lemma matches count as root matches here: identical lemmas
		// share a root grouping.
		return float64(res.lemmaMatches+res.rootOnly) / pairs
	case ModeCombined:
		return (float64(res.lemmaMatches) + 0.5*float64(res.rootOnly)) / pairs
	default:
		return float64(res.lemmaMatches) / pairs
	}
}
