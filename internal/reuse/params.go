// Package reuse implements the text reuse detection pipeline: windowing,
// shingle-based candidate filtering, Smith-Waterman local alignment,
// metric computation, edge merging, and threshold filtering.
package reuse

import "fmt"

// Mode selects how a pair of aligned positions is scored.
type Mode string

const (
	// ModeLemma counts only lemma-id equality as a match.
	ModeLemma Mode = "lemma"
	// ModeRoot counts only root-id equality as a match.
	ModeRoot Mode = "root"
	// ModeCombined scores lemma equality at LemmaScore and root-only
	// equality at RootScore.
	ModeCombined Mode = "combined"
)

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLemma, ModeRoot, ModeCombined:
		return Mode(s), nil
	default:
		return "", Errorf(KindConfiguration, "invalid mode %q (expected lemma, root, or combined)", s)
	}
}

// Params holds all comparison parameters.
type Params struct {
	WindowSize        int     `json:"window_size" yaml:"window_size"`
	Stride            int     `json:"stride" yaml:"stride"`
	NgramSize         int     `json:"ngram_size" yaml:"ngram_size"`
	MinSharedShingles int     `json:"min_shared_shingles" yaml:"min_shared_shingles"`
	MinLength         int     `json:"min_length" yaml:"min_length"`
	MinSimilarity     float64 `json:"min_similarity" yaml:"min_similarity"`

	MatchScore      int `json:"match_score" yaml:"match_score"`
	MismatchPenalty int `json:"mismatch_penalty" yaml:"mismatch_penalty"`
	GapPenalty      int `json:"gap_penalty" yaml:"gap_penalty"`

	Mode       Mode `json:"mode" yaml:"mode"`
	LemmaScore int  `json:"lemma_score" yaml:"lemma_score"`
	RootScore  int  `json:"root_score" yaml:"root_score"`

	UseWeights bool `json:"use_weights" yaml:"use_weights"`

	MinCoreSimilarity   float64 `json:"min_core_similarity" yaml:"min_core_similarity"`
	MinSpanCoverage     float64 `json:"min_span_coverage" yaml:"min_span_coverage"`
	MinContentWeight    float64 `json:"min_content_weight" yaml:"min_content_weight"`
	MinLexicalDiversity float64 `json:"min_lexical_diversity" yaml:"min_lexical_diversity"`

	// MergeOverlap is the minimum token overlap, on both documents, for
	// two provisional edges to be consolidated into one span.
	MergeOverlap int `json:"merge_overlap" yaml:"merge_overlap"`

	NoFilters  bool `json:"no_filters" yaml:"no_filters"`
	BruteForce bool `json:"brute_force" yaml:"brute_force"`
}

// DefaultParams returns the default comparison parameters.
func DefaultParams() Params {
	return Params{
		WindowSize:          275,
		Stride:              60,
		NgramSize:           5,
		MinSharedShingles:   3,
		MinLength:           10,
		MinSimilarity:       0.4,
		MatchScore:          2,
		MismatchPenalty:     -1,
		GapPenalty:          -1,
		Mode:                ModeLemma,
		LemmaScore:          2,
		RootScore:           1,
		UseWeights:          true,
		MinCoreSimilarity:   0.85,
		MinSpanCoverage:     0.30,
		MinContentWeight:    1.10,
		MinLexicalDiversity: 0.55,
		MergeOverlap:        1,
		NoFilters:           false,
		BruteForce:          false,
	}
}

// Validate checks the parameters before any stream processing begins.
// All violations are configuration-kind errors.
func (p *Params) Validate() error {
	if p.WindowSize <= 0 {
		return Errorf(KindConfiguration, "window_size must be positive, got %d", p.WindowSize)
	}
	if p.Stride <= 0 {
		return Errorf(KindConfiguration, "stride must be positive, got %d", p.Stride)
	}
	if p.NgramSize <= 0 {
		return Errorf(KindConfiguration, "ngram_size must be positive, got %d", p.NgramSize)
	}
	if p.MinSharedShingles <= 0 {
		return Errorf(KindConfiguration, "min_shared_shingles must be positive, got %d", p.MinSharedShingles)
	}
	if p.MinLength <= 0 {
		return Errorf(KindConfiguration, "min_length must be positive, got %d", p.MinLength)
	}
	if p.MergeOverlap <= 0 {
		return Errorf(KindConfiguration, "merge_overlap must be positive, got %d", p.MergeOverlap)
	}
	if _, err := ParseMode(string(p.Mode)); err != nil {
		return err
	}
	for _, r := range []struct {
		name  string
		value float64
	}{
		{"min_similarity", p.MinSimilarity},
		{"min_core_similarity", p.MinCoreSimilarity},
		{"min_span_coverage", p.MinSpanCoverage},
		{"min_lexical_diversity", p.MinLexicalDiversity},
	} {
		if r.value < 0 || r.value > 1 {
			return Errorf(KindConfiguration, "%s must be in [0,1], got %v", r.name, r.value)
		}
	}
	if p.MinContentWeight < 0 {
		return Errorf(KindConfiguration, "min_content_weight must be non-negative, got %v", p.MinContentWeight)
	}
	return nil
}

// matchValue returns the full-match score for the active mode.
func (p *Params) matchValue() int {
	if p.Mode == ModeLemma {
		return p.MatchScore
	}
	return p.LemmaScore
}

func (p *Params) String() string {
	return fmt.Sprintf("window=%d stride=%d ngram=%d mode=%s weights=%v",
		p.WindowSize, p.Stride, p.NgramSize, p.Mode, p.UseWeights)
}
