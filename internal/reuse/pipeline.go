package reuse

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Summary aggregates a finished comparison.
type Summary struct {
	EdgeCount          int   `json:"edge_count"`
	TotalAlignedTokens int   `json:"total_aligned_tokens"`
	SourceCoverage     Ratio `json:"source_coverage"`
	TargetCoverage     Ratio `json:"target_coverage"`
	AvgSimilarity      Ratio `json:"avg_similarity"`
	AvgWeightedSim     Ratio `json:"avg_weighted_similarity"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	Params       Params
	Summary      Summary
	Edges        []*Edge
	SkippedPairs int
}

// Compare runs the full detection pipeline between two documents:
// windows, shingle-filtered candidate pairs, parallel alignment, edge
// merging, threshold filtering, and summary computation. The inputs are
// shared read-only across workers; the final edge ordering and ids
// depend only on document positions, never on worker scheduling.
func Compare(source, target Document, p *Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sourceLemmas := source.Lemmas()
	targetLemmas := target.Lemmas()

	maxID := MaxLemmaID(sourceLemmas, targetLemmas)
	weightsA := BuildWeightTable(sourceLemmas, maxID)
	weightsB := BuildWeightTable(targetLemmas, maxID)

	windowsA := Windows(source, p)
	windowsB := Windows(target, p)
	log.Info().
		Int("source_windows", len(windowsA)).
		Int("target_windows", len(windowsB)).
		Int("source_tokens", source.TokenCount()).
		Int("target_tokens", target.TokenCount()).
		Str("mode", string(p.Mode)).
		Msg("Generated windows")

	candidates := FindCandidatePairs(windowsA, windowsB, p)
	totalPairs := len(windowsA) * len(windowsB)
	filterRate := 0.0
	if totalPairs > 0 {
		filterRate = 100.0 * (1.0 - float64(len(candidates))/float64(totalPairs))
	}
	log.Info().
		Int("candidates", len(candidates)).
		Int("total_pairs", totalPairs).
		Float64("filter_rate_pct", filterRate).
		Bool("brute_force", p.BruteForce).
		Msg("Selected candidate pairs")

	provisional, skipped := alignCandidates(windowsA, windowsB, candidates, weightsA, weightsB, p)
	log.Info().
		Int("raw_edges", len(provisional)).
		Int("skipped_pairs", skipped).
		Msg("Aligned candidate pairs")

	merged := MergeEdges(provisional, p.MergeOverlap)
	filtered := FilterEdges(merged, p)
	log.Info().
		Int("merged_edges", len(merged)).
		Int("filtered_edges", len(filtered)).
		Msg("Merged and filtered edges")

	finalizeEdges(filtered, source, target)

	result := &Result{
		Params:       *p,
		Summary:      summarize(filtered, source, target),
		Edges:        filtered,
		SkippedPairs: skipped,
	}
	return result, nil
}

// alignCandidates drains the candidate queue with a worker pool. Each
// worker owns one aligner (and with it one reused DP table); results
// land in per-candidate slots so the collected order is the candidate
// order regardless of which worker finished first.
func alignCandidates(windowsA, windowsB []Window, candidates []CandidatePair, weightsA, weightsB *WeightTable, p *Params) ([]*Edge, int) {
	results := make([]*Edge, len(candidates))
	var skipped atomic.Int64

	workers := runtime.NumCPU()
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			al := newAligner(p, weightsA, weightsB)
			for idx := range jobs {
				c := candidates[idx]
				wa, wb := &windowsA[c.A], &windowsB[c.B]
				if wa.Len() == 0 || wb.Len() == 0 {
					skipped.Add(1)
					continue
				}
				if res, ok := al.align(wa, wb, !p.NoFilters); ok {
					results[idx] = newEdge(wa, wb, res)
				}
			}
		}()
	}
	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	edges := make([]*Edge, 0, len(results))
	for _, e := range results {
		if e != nil {
			edges = append(edges, e)
		}
	}
	return edges, int(skipped.Load())
}

// finalizeEdges assigns emission-order ids and location labels, freezing
// the edges.
func finalizeEdges(edges []*Edge, source, target Document) {
	for i, edge := range edges {
		edge.ID = uint64(i + 1)
		edge.SourceLocation = source.Location(edge.SourceStart, edge.SourceEnd)
		edge.TargetLocation = target.Location(edge.TargetStart, edge.TargetEnd)
		edge.events = nil
	}
}

func summarize(edges []*Edge, source, target Document) Summary {
	s := Summary{EdgeCount: len(edges)}
	var simSum, weightedSum float64
	for _, edge := range edges {
		s.TotalAlignedTokens += int(edge.Info.Length)
		simSum += float64(edge.Info.Similarity)
		weightedSum += float64(edge.Info.WeightedSimilarity)
	}
	if len(edges) > 0 {
		s.AvgSimilarity = Ratio(simSum / float64(len(edges)))
		s.AvgWeightedSim = Ratio(weightedSum / float64(len(edges)))
	}
	s.SourceCoverage = coverage(edges, source.TokenCount(), func(e *Edge) (int, int) { return e.SourceStart, e.SourceEnd })
	s.TargetCoverage = coverage(edges, target.TokenCount(), func(e *Edge) (int, int) { return e.TargetStart, e.TargetEnd })
	return s
}

// coverage is the fraction of a document covered by the union of edge
// ranges on that side.
func coverage(edges []*Edge, totalTokens int, side func(*Edge) (int, int)) Ratio {
	if totalTokens == 0 || len(edges) == 0 {
		return 0
	}

	ranges := make([][2]int, 0, len(edges))
	for _, edge := range edges {
		start, end := side(edge)
		ranges = append(ranges, [2]int{start, end})
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })

	covered := 0
	current := ranges[0]
	for _, r := range ranges[1:] {
		if r[0] <= current[1] {
			if r[1] > current[1] {
				current[1] = r[1]
			}
			continue
		}
		covered += current[1] - current[0]
		current = r
	}
	covered += current[1] - current[0]

	return Ratio(float64(covered) / float64(totalTokens))
}
