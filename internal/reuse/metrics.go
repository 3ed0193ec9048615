package reuse

import "strconv"

// Ratio is a metric value serialized with exactly four decimal places so
// output is reproducible across implementations.
type Ratio float64

// MarshalJSON implements json.Marshaler.
func (r Ratio) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(r), 'f', 4, 64)), nil
}

// Format renders the ratio the same way it is serialized.
func (r Ratio) Format() string {
	return strconv.FormatFloat(float64(r), 'f', 4, 64)
}

// AlignmentInfo aggregates one alignment's event stream into raw counts
// and quality metrics.
//
// Counts satisfy LemmaMatches + Substitutions + Gaps == Length. A
// diagonal step whose lemmas differ is a substitution whether or not the
// roots matched; RootOnlyMatches tracks the root-matching subset
// separately.
type AlignmentInfo struct {
	Length          uint32 `json:"length"`
	LemmaMatches    uint32 `json:"lemma_matches"`
	Substitutions   uint32 `json:"substitutions"`
	RootOnlyMatches uint32 `json:"root_only_matches"`
	Gaps            uint32 `json:"gaps"`

	// CoreSimilarity is quotation exactness: matches over diagonal
	// content, ignoring gaps.
	CoreSimilarity Ratio `json:"core_similarity"`
	// SpanCoverage is the content fraction of the aligned span versus
	// gap padding.
	SpanCoverage Ratio `json:"span_coverage"`
	// ContentWeight is the average rarity of the matched vocabulary.
	ContentWeight Ratio `json:"content_weight"`
	// LexicalDiversity is the distinct fraction of matched lemmas;
	// low values flag formulaic repetition.
	LexicalDiversity Ratio `json:"lexical_diversity"`

	// Legacy metrics, kept for backward compatibility.
	Similarity         Ratio `json:"similarity"`
	CombinedSimilarity Ratio `json:"combined_similarity"`
	WeightedSimilarity Ratio `json:"weighted_similarity"`
	AvgMatchWeight     Ratio `json:"avg_match_weight"`
}

// computeInfo derives AlignmentInfo from an event stream. The event
// stream is the authoritative source for all counts; merged edges pass
// their event union through the same derivation.
func computeInfo(events []Event) AlignmentInfo {
	var info AlignmentInfo
	var weightSum float64
	uniqueLemmas := make(map[uint32]struct{})

	for _, ev := range events {
		switch ev.Kind {
		case EventLemmaMatch:
			info.LemmaMatches++
			weightSum += ev.Weight
			uniqueLemmas[ev.Lemma] = struct{}{}
		case EventRootOnlyMatch:
			info.RootOnlyMatches++
			info.Substitutions++
		case EventSubstitution:
			info.Substitutions++
		case EventGap:
			info.Gaps++
		}
	}
	info.Length = info.LemmaMatches + info.Substitutions + info.Gaps

	matches := float64(info.LemmaMatches)
	content := float64(info.LemmaMatches + info.Substitutions)
	length := float64(info.Length)

	if content > 0 {
		info.CoreSimilarity = Ratio(matches / content)
	}
	if length > 0 {
		info.SpanCoverage = Ratio(content / length)
		info.Similarity = Ratio(matches / length)
		info.CombinedSimilarity = Ratio((matches + 0.5*float64(info.RootOnlyMatches)) / length)
		info.WeightedSimilarity = Ratio(weightSum / length)
	}
	if matches > 0 {
		info.ContentWeight = Ratio(weightSum / matches)
		info.LexicalDiversity = Ratio(float64(len(uniqueLemmas)) / matches)
	}
	info.AvgMatchWeight = info.ContentWeight

	return info
}
