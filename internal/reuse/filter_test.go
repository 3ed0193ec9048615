package reuse

import "testing"

// passingInfo returns metrics comfortably above the default thresholds.
func passingInfo() AlignmentInfo {
	return AlignmentInfo{
		Length:             50,
		LemmaMatches:       48,
		Substitutions:      2,
		CoreSimilarity:     Ratio(48.0 / 50.0),
		SpanCoverage:       1.0,
		ContentWeight:      1.5,
		LexicalDiversity:   0.9,
		Similarity:         Ratio(48.0 / 50.0),
		CombinedSimilarity: Ratio(48.0 / 50.0),
	}
}

func TestPassesDefaults(t *testing.T) {
	p := DefaultParams()
	info := passingInfo()
	if !passes(&info, &p) {
		t.Fatalf("healthy edge rejected: %+v", info)
	}
}

func TestPassesThresholds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*AlignmentInfo)
	}{
		{"short", func(i *AlignmentInfo) { i.Length = 5 }},
		{"low similarity", func(i *AlignmentInfo) { i.Similarity = 0.2 }},
		{"low core similarity", func(i *AlignmentInfo) { i.CoreSimilarity = 0.5 }},
		{"low span coverage", func(i *AlignmentInfo) { i.SpanCoverage = 0.1 }},
		{"low content weight", func(i *AlignmentInfo) { i.ContentWeight = 0.6 }},
		{"low lexical diversity", func(i *AlignmentInfo) { i.LexicalDiversity = 0.2 }},
	}
	p := DefaultParams()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			info := passingInfo()
			c.mutate(&info)
			if passes(&info, &p) {
				t.Errorf("edge passed despite %s: %+v", c.name, info)
			}
		})
	}
}

func TestPassesModeAwareSimilarityGate(t *testing.T) {
	// A root-heavy edge has low plain similarity but a healthy combined
	// score; only lemma mode should reject it.
	info := passingInfo()
	info.Similarity = 0.2
	info.CombinedSimilarity = 0.6

	lemma := DefaultParams()
	if passes(&info, &lemma) {
		t.Error("lemma mode ignored the plain similarity gate")
	}

	combined := DefaultParams()
	combined.Mode = ModeCombined
	if !passes(&info, &combined) {
		t.Error("combined mode read the lemma-only similarity gate")
	}
}

func TestFilterEdgesNoFilters(t *testing.T) {
	p := DefaultParams()
	p.NoFilters = true
	edges := []*Edge{{Info: AlignmentInfo{Length: 1}}}
	if kept := FilterEdges(edges, &p); len(kept) != 1 {
		t.Fatal("no_filters dropped an edge")
	}
}

func TestFilterEdgesKeepsOrder(t *testing.T) {
	p := DefaultParams()
	good := passingInfo()
	bad := passingInfo()
	bad.CoreSimilarity = 0

	e1 := &Edge{SourceStart: 0, Info: good}
	e2 := &Edge{SourceStart: 10, Info: bad}
	e3 := &Edge{SourceStart: 20, Info: good}

	kept := FilterEdges([]*Edge{e1, e2, e3}, &p)
	if len(kept) != 2 || kept[0] != e1 || kept[1] != e3 {
		t.Fatalf("kept %d edges in wrong order", len(kept))
	}
}
