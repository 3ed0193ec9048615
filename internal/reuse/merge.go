package reuse

import "sort"

// MergeEdges consolidates provisional edges from overlapping windows into
// maximal non-redundant spans. Edges whose source and target ranges both
// overlap by at least minOverlap tokens are grouped; the merged span is
// the union of ranges and its counts are re-derived from the
// deduplicated union of the underlying alignment events, never by
// averaging metrics. Merging an already-merged list is a no-op.
func MergeEdges(edges []*Edge, minOverlap int) []*Edge {
	if len(edges) <= 1 {
		return edges
	}

	sortEdges(edges)

	merged := make([]*Edge, 0, len(edges))
	for _, edge := range edges {
		if len(merged) > 0 {
			last := merged[len(merged)-1]
			if overlap(last.SourceStart, last.SourceEnd, edge.SourceStart, edge.SourceEnd) >= minOverlap &&
				overlap(last.TargetStart, last.TargetEnd, edge.TargetStart, edge.TargetEnd) >= minOverlap {
				merged[len(merged)-1] = mergeTwo(last, edge)
				continue
			}
		}
		merged = append(merged, edge)
	}
	return merged
}

// sortEdges orders edges by document position so grouping and final id
// assignment depend only on edge content.
func sortEdges(edges []*Edge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.SourceStart != b.SourceStart {
			return a.SourceStart < b.SourceStart
		}
		if a.TargetStart != b.TargetStart {
			return a.TargetStart < b.TargetStart
		}
		if a.SourceEnd != b.SourceEnd {
			return a.SourceEnd < b.SourceEnd
		}
		return a.TargetEnd < b.TargetEnd
	})
}

func mergeTwo(a, b *Edge) *Edge {
	events := unionEvents(a.events, b.events)
	return &Edge{
		SourceDoc:   a.SourceDoc,
		SourceStart: min(a.SourceStart, b.SourceStart),
		SourceEnd:   max(a.SourceEnd, b.SourceEnd),
		TargetDoc:   a.TargetDoc,
		TargetStart: min(a.TargetStart, b.TargetStart),
		TargetEnd:   max(a.TargetEnd, b.TargetEnd),
		Info:        computeInfo(events),
		events:      events,
	}
}

type eventKey struct {
	kind      EventKind
	sourcePos int
	targetPos int
}

// unionEvents deduplicates the combined event streams by kind and
// position. Overlapping windows re-discover the same aligned cells at
// the same global positions, so the union collapses the duplication.
func unionEvents(a, b []Event) []Event {
	seen := make(map[eventKey]struct{}, len(a)+len(b))
	union := make([]Event, 0, len(a)+len(b))
	for _, events := range [2][]Event{a, b} {
		for _, ev := range events {
			key := eventKey{kind: ev.Kind, sourcePos: ev.SourcePos, targetPos: ev.TargetPos}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			union = append(union, ev)
		}
	}
	sort.Slice(union, func(i, j int) bool {
		if union[i].SourcePos != union[j].SourcePos {
			return union[i].SourcePos < union[j].SourcePos
		}
		return union[i].TargetPos < union[j].TargetPos
	})
	return union
}
