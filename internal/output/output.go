// Package output renders comparison results as JSON or CSV records.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/textreuse/iqtibas/internal/corpus"
	"github.com/textreuse/iqtibas/internal/reuse"
)

// Version identifies the result record format.
const Version = "1.0"

// DocumentInfo describes one compared document in the result header.
type DocumentInfo struct {
	ID         uint32 `json:"id"`
	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
	TokenCount int    `json:"token_count"`
	PageCount  int    `json:"page_count"`
}

// PassageRef locates one side of an edge within its document.
type PassageRef struct {
	DocumentID uint32              `json:"document_id"`
	Location   string              `json:"location"`
	Start      int                 `json:"start"`
	End        int                 `json:"end"`
	Text       *corpus.PassageText `json:"text,omitempty"`
}

// EdgeRecord is the serialized form of one detected reuse instance.
type EdgeRecord struct {
	ID     uint64              `json:"id"`
	Source PassageRef          `json:"source"`
	Target PassageRef          `json:"target"`
	Info   reuse.AlignmentInfo `json:"info"`
}

// Result is the complete comparison record.
type Result struct {
	Version      string        `json:"version"`
	GeneratedAt  string        `json:"generated_at"`
	Params       reuse.Params  `json:"params"`
	Source       DocumentInfo  `json:"source"`
	Target       DocumentInfo  `json:"target"`
	Summary      reuse.Summary `json:"summary"`
	SkippedPairs int           `json:"skipped_pairs"`
	Edges        []EdgeRecord  `json:"edges"`
}

// BuildOptions controls optional parts of the result record.
type BuildOptions struct {
	// IncludeText attaches reconstructed passage text to every edge.
	IncludeText bool
	// ContextTokens is the context width around each passage.
	ContextTokens int
	// GeneratedAt overrides the record timestamp; zero means now.
	GeneratedAt time.Time
}

// Build assembles the result record from a pipeline run. Streams and
// mappings are needed only when opts.IncludeText is set; passing nil
// otherwise is fine.
func Build(res *reuse.Result, source, target DocumentInfo,
	src, tgt *corpus.Stream, m *corpus.Mappings, opts BuildOptions) *Result {

	at := opts.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}

	out := &Result{
		Version:      Version,
		GeneratedAt:  at.UTC().Format(time.RFC3339),
		Params:       res.Params,
		Source:       source,
		Target:       target,
		Summary:      res.Summary,
		SkippedPairs: res.SkippedPairs,
		Edges:        make([]EdgeRecord, 0, len(res.Edges)),
	}

	for _, e := range res.Edges {
		rec := EdgeRecord{
			ID: e.ID,
			Source: PassageRef{
				DocumentID: e.SourceDoc,
				Location:   e.SourceLocation,
				Start:      e.SourceStart,
				End:        e.SourceEnd,
			},
			Target: PassageRef{
				DocumentID: e.TargetDoc,
				Location:   e.TargetLocation,
				Start:      e.TargetStart,
				End:        e.TargetEnd,
			},
			Info: e.Info,
		}
		if opts.IncludeText && src != nil && tgt != nil && m != nil {
			st := src.ContextText(e.SourceStart, e.SourceEnd, opts.ContextTokens, m.Surface)
			tt := tgt.ContextText(e.TargetStart, e.TargetEnd, opts.ContextTokens, m.Surface)
			rec.Source.Text = &st
			rec.Target.Text = &tt
		}
		out.Edges = append(out.Edges, rec)
	}
	return out
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return reuse.WrapError(reuse.KindOutput, fmt.Errorf("encoding result: %w", err))
	}
	return nil
}

// WriteJSONFile writes the result to path atomically, via a temp file in
// the same directory.
func WriteJSONFile(path string, res *Result) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(w, res) })
}

// csvHeader is the fixed column order of the CSV export.
var csvHeader = []string{
	"edge_id",
	"source_doc", "source_location", "source_start", "source_end",
	"target_doc", "target_location", "target_start", "target_end",
	"length", "lemma_matches", "substitutions", "root_only_matches", "gaps",
	"core_similarity", "span_coverage", "content_weight", "lexical_diversity",
	"similarity", "combined_similarity", "weighted_similarity",
}

// WriteCSV writes one row per edge with the header above. Metric columns
// carry four decimal places, matching the JSON form.
func WriteCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return reuse.WrapError(reuse.KindOutput, fmt.Errorf("writing CSV header: %w", err))
	}
	for _, e := range res.Edges {
		row := []string{
			strconv.FormatUint(e.ID, 10),
			strconv.FormatUint(uint64(e.Source.DocumentID), 10),
			e.Source.Location,
			strconv.Itoa(e.Source.Start),
			strconv.Itoa(e.Source.End),
			strconv.FormatUint(uint64(e.Target.DocumentID), 10),
			e.Target.Location,
			strconv.Itoa(e.Target.Start),
			strconv.Itoa(e.Target.End),
			strconv.FormatUint(uint64(e.Info.Length), 10),
			strconv.FormatUint(uint64(e.Info.LemmaMatches), 10),
			strconv.FormatUint(uint64(e.Info.Substitutions), 10),
			strconv.FormatUint(uint64(e.Info.RootOnlyMatches), 10),
			strconv.FormatUint(uint64(e.Info.Gaps), 10),
			e.Info.CoreSimilarity.Format(),
			e.Info.SpanCoverage.Format(),
			e.Info.ContentWeight.Format(),
			e.Info.LexicalDiversity.Format(),
			e.Info.Similarity.Format(),
			e.Info.CombinedSimilarity.Format(),
			e.Info.WeightedSimilarity.Format(),
		}
		if err := cw.Write(row); err != nil {
			return reuse.WrapError(reuse.KindOutput, fmt.Errorf("writing CSV row: %w", err))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return reuse.WrapError(reuse.KindOutput, fmt.Errorf("flushing CSV: %w", err))
	}
	return nil
}

// WriteCSVFile writes the CSV export to path atomically.
func WriteCSVFile(path string, res *Result) error {
	return writeFile(path, func(w io.Writer) error { return WriteCSV(w, res) })
}

func writeFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return reuse.WrapError(reuse.KindOutput, fmt.Errorf("creating output file: %w", err))
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return reuse.WrapError(reuse.KindOutput, fmt.Errorf("closing output file: %w", err))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return reuse.WrapError(reuse.KindOutput, fmt.Errorf("writing %s: %w", path, err))
	}
	return nil
}
