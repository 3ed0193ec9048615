package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/textreuse/iqtibas/internal/config"
	"github.com/textreuse/iqtibas/internal/corpus"
	"github.com/textreuse/iqtibas/internal/output"
	"github.com/textreuse/iqtibas/internal/reuse"
)

func init() {
	rootCmd.AddCommand(compareCmd)

	f := compareCmd.Flags()
	f.StringVar(&compareOpts.corpusDB, "corpus-db", "", "Path to the corpus SQLite database")
	f.StringVar(&compareOpts.configPath, "config", "", "Path to a YAML config file")
	f.Uint32Var(&compareOpts.docA, "doc-a", 0, "Source document id")
	f.Uint32Var(&compareOpts.docB, "doc-b", 0, "Target document id")
	f.StringVarP(&compareOpts.outputPath, "output", "o", "", "Write results to a file instead of stdout")
	f.StringVar(&compareOpts.format, "format", "json", "Output format: json or csv")
	f.BoolVar(&compareOpts.includeText, "include-text", false, "Attach reconstructed passage text to each edge")
	f.IntVar(&compareOpts.contextTokens, "context-tokens", 30, "Context width around each passage when including text")
	f.BoolVar(&compareOpts.showEdges, "show-edges", false, "Print a one-line summary of each edge to stderr")
	compareCmd.MarkFlagRequired("doc-a")
	compareCmd.MarkFlagRequired("doc-b")

	// Comparison parameter overrides. Unset flags keep the config file
	// or default value.
	f.Int("window-size", 0, "Window size in tokens")
	f.Int("stride", 0, "Window stride in tokens")
	f.Int("ngram-size", 0, "Shingle n-gram size")
	f.Int("min-shared-shingles", 0, "Minimum shared shingles per candidate pair")
	f.Int("min-length", 0, "Minimum alignment length")
	f.Float64("min-similarity", -1, "Minimum similarity gate")
	f.Int("match-score", 0, "Lemma-mode match score")
	f.Int("mismatch-penalty", 0, "Mismatch penalty (negative)")
	f.Int("gap-penalty", 0, "Gap penalty (negative)")
	f.String("mode", "", "Scoring mode: lemma, root, or combined")
	f.Int("lemma-score", 0, "Combined-mode lemma match score")
	f.Int("root-score", 0, "Combined-mode root-only match score")
	f.Bool("use-weights", false, "Weight match scores by lemma rarity")
	f.Bool("no-weights", false, "Disable lemma rarity weighting")
	f.Float64("min-core-similarity", -1, "Minimum core similarity")
	f.Float64("min-span-coverage", -1, "Minimum span coverage")
	f.Float64("min-content-weight", -1, "Minimum content weight")
	f.Float64("min-lexical-diversity", -1, "Minimum lexical diversity")
	f.Int("merge-overlap", 0, "Minimum two-sided overlap for merging edges")
	f.Bool("no-filters", false, "Disable all quality filters")
	f.Bool("brute-force", false, "Align every window pair, skipping the shingle filter")
}

var compareOpts struct {
	corpusDB      string
	configPath    string
	docA          uint32
	docB          uint32
	outputPath    string
	format        string
	includeText   bool
	contextTokens int
	showEdges     bool
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two documents and report reuse edges",
	Long: `Compare two corpus documents and report detected reuse as scored
edges.

Example:
  iqtibas compare --corpus-db corpus.db --doc-a 101 --doc-b 230 -o edges.json`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(compareOpts.configPath)
	if err != nil {
		exitWithError(err)
	}
	if compareOpts.corpusDB != "" {
		cfg.CorpusDB = compareOpts.corpusDB
	}
	if cfg.CorpusDB == "" {
		exitWithError(reuse.Errorf(reuse.KindConfiguration,
			"no corpus database given (use --corpus-db, a config file, or %s)", config.EnvCorpusDB))
	}

	params := cfg.Comparison
	if err := applyParamFlags(cmd, &params); err != nil {
		exitWithError(err)
	}

	format := strings.ToLower(compareOpts.format)
	if format != "json" && format != "csv" {
		exitWithError(reuse.Errorf(reuse.KindConfiguration, "invalid format %q (expected json or csv)", compareOpts.format))
	}

	db, err := corpus.Open(cfg.CorpusDB)
	if err != nil {
		exitWithError(err)
	}
	defer db.Close()

	mappings, err := db.LoadMappings()
	if err != nil {
		exitWithError(err)
	}
	src, err := db.LoadStream(compareOpts.docA, mappings)
	if err != nil {
		exitWithError(err)
	}
	tgt, err := db.LoadStream(compareOpts.docB, mappings)
	if err != nil {
		exitWithError(err)
	}

	res, err := reuse.Compare(src, tgt, &params)
	if err != nil {
		exitWithError(err)
	}

	record := output.Build(res,
		documentInfo(db, src), documentInfo(db, tgt),
		src, tgt, mappings,
		output.BuildOptions{
			IncludeText:   compareOpts.includeText,
			ContextTokens: compareOpts.contextTokens,
		})

	if compareOpts.showEdges {
		printEdges(record)
	}

	if err := writeRecord(record, format, compareOpts.outputPath); err != nil {
		exitWithError(err)
	}
	return nil
}

// loadConfig resolves the effective config: an explicit --config path,
// otherwise the default location, with environment overrides on top.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// applyParamFlags copies explicitly set parameter flags onto params.
func applyParamFlags(cmd *cobra.Command, p *reuse.Params) error {
	f := cmd.Flags()
	if f.Changed("window-size") {
		p.WindowSize, _ = f.GetInt("window-size")
	}
	if f.Changed("stride") {
		p.Stride, _ = f.GetInt("stride")
	}
	if f.Changed("ngram-size") {
		p.NgramSize, _ = f.GetInt("ngram-size")
	}
	if f.Changed("min-shared-shingles") {
		p.MinSharedShingles, _ = f.GetInt("min-shared-shingles")
	}
	if f.Changed("min-length") {
		p.MinLength, _ = f.GetInt("min-length")
	}
	if f.Changed("min-similarity") {
		p.MinSimilarity, _ = f.GetFloat64("min-similarity")
	}
	if f.Changed("match-score") {
		p.MatchScore, _ = f.GetInt("match-score")
	}
	if f.Changed("mismatch-penalty") {
		p.MismatchPenalty, _ = f.GetInt("mismatch-penalty")
	}
	if f.Changed("gap-penalty") {
		p.GapPenalty, _ = f.GetInt("gap-penalty")
	}
	if f.Changed("mode") {
		s, _ := f.GetString("mode")
		mode, err := reuse.ParseMode(s)
		if err != nil {
			return err
		}
		p.Mode = mode
	}
	if f.Changed("lemma-score") {
		p.LemmaScore, _ = f.GetInt("lemma-score")
	}
	if f.Changed("root-score") {
		p.RootScore, _ = f.GetInt("root-score")
	}
	if f.Changed("use-weights") {
		p.UseWeights, _ = f.GetBool("use-weights")
	}
	if f.Changed("no-weights") {
		p.UseWeights = false
	}
	if f.Changed("min-core-similarity") {
		p.MinCoreSimilarity, _ = f.GetFloat64("min-core-similarity")
	}
	if f.Changed("min-span-coverage") {
		p.MinSpanCoverage, _ = f.GetFloat64("min-span-coverage")
	}
	if f.Changed("min-content-weight") {
		p.MinContentWeight, _ = f.GetFloat64("min-content-weight")
	}
	if f.Changed("min-lexical-diversity") {
		p.MinLexicalDiversity, _ = f.GetFloat64("min-lexical-diversity")
	}
	if f.Changed("merge-overlap") {
		p.MergeOverlap, _ = f.GetInt("merge-overlap")
	}
	if f.Changed("no-filters") {
		p.NoFilters, _ = f.GetBool("no-filters")
	}
	if f.Changed("brute-force") {
		p.BruteForce, _ = f.GetBool("brute-force")
	}
	return nil
}

// documentInfo merges stream counts with whatever metadata the corpus
// carries for the document.
func documentInfo(db *corpus.DB, s *corpus.Stream) output.DocumentInfo {
	info := output.DocumentInfo{
		ID:         s.ID(),
		TokenCount: s.TokenCount(),
		PageCount:  s.PageCount(),
	}
	if meta, err := db.Document(s.ID()); err == nil {
		info.Title = meta.Title
		info.Author = meta.Author
	}
	return info
}

func printEdges(record *output.Result) {
	for _, e := range record.Edges {
		fmt.Fprintf(os.Stderr, "edge %d: %s ↔ %s len=%d core=%s\n",
			e.ID, e.Source.Location, e.Target.Location,
			e.Info.Length, e.Info.CoreSimilarity.Format())
	}
}

func writeRecord(record *output.Result, format, path string) error {
	switch {
	case path == "" && format == "json":
		return output.WriteJSON(os.Stdout, record)
	case path == "" && format == "csv":
		return output.WriteCSV(os.Stdout, record)
	case format == "json":
		return output.WriteJSONFile(path, record)
	default:
		return output.WriteCSVFile(path, record)
	}
}
