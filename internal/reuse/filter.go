package reuse

// FilterEdges applies the configured quality thresholds to merged edges.
// With NoFilters set, every edge passes.
func FilterEdges(edges []*Edge, p *Params) []*Edge {
	if p.NoFilters {
		return edges
	}

	kept := make([]*Edge, 0, len(edges))
	for _, edge := range edges {
		if passes(&edge.Info, p) {
			kept = append(kept, edge)
		}
	}
	return kept
}

func passes(info *AlignmentInfo, p *Params) bool {
	if int(info.Length) < p.MinLength {
		return false
	}
	// The legacy similarity gate respects the matching mode: lemma mode
	// reads the plain similarity, root and combined modes the
	// root-crediting variant.
	legacy := info.Similarity
	if p.Mode != ModeLemma {
		legacy = info.CombinedSimilarity
	}
	if float64(legacy) < p.MinSimilarity {
		return false
	}
	if float64(info.CoreSimilarity) < p.MinCoreSimilarity {
		return false
	}
	if float64(info.SpanCoverage) < p.MinSpanCoverage {
		return false
	}
	if float64(info.ContentWeight) < p.MinContentWeight {
		return false
	}
	if float64(info.LexicalDiversity) < p.MinLexicalDiversity {
		return false
	}
	return true
}
