package reuse

// Edge is one detected reuse instance between the two documents. Ids are
// assigned sequentially after the final sort, so they match emission
// order rather than discovery order.
type Edge struct {
	ID uint64

	SourceDoc   uint32
	SourceStart int
	SourceEnd   int

	TargetDoc   uint32
	TargetStart int
	TargetEnd   int

	SourceLocation string
	TargetLocation string

	Info AlignmentInfo

	// events backs the merger's count re-derivation. Positions are
	// global; retained until the edge is frozen.
	events []Event
}

// newEdge converts a raw alignment between two windows into a
// provisional edge with global ranges.
func newEdge(wa, wb *Window, res *alignment) *Edge {
	return &Edge{
		SourceDoc:   wa.DocID,
		SourceStart: wa.Start + res.startA,
		SourceEnd:   wa.Start + res.endA,
		TargetDoc:   wb.DocID,
		TargetStart: wb.Start + res.startB,
		TargetEnd:   wb.Start + res.endB,
		Info:        computeInfo(res.events),
		events:      res.events,
	}
}

// overlap returns the token overlap of two half-open ranges, zero when
// they are disjoint.
func overlap(startA, endA, startB, endB int) int {
	start := max(startA, startB)
	end := min(endA, endB)
	if start < end {
		return end - start
	}
	return 0
}
