package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/textreuse/iqtibas/internal/reuse"
)

func testResult() *reuse.Result {
	return &reuse.Result{
		Params: reuse.DefaultParams(),
		Summary: reuse.Summary{
			EdgeCount:          1,
			TotalAlignedTokens: 91,
			SourceCoverage:     reuse.Ratio(0.25),
			AvgSimilarity:      reuse.Ratio(78.0 / 91.0),
		},
		Edges: []*reuse.Edge{
			{
				ID:             1,
				SourceDoc:      1,
				SourceStart:    120,
				SourceEnd:      211,
				TargetDoc:      2,
				TargetStart:    40,
				TargetEnd:      131,
				SourceLocation: "0:3.20 → 0:4.11",
				TargetLocation: "1:1.40 → 1:2.31",
				Info: reuse.AlignmentInfo{
					Length:         91,
					LemmaMatches:   78,
					Substitutions:  3,
					Gaps:           10,
					CoreSimilarity: reuse.Ratio(78.0 / 81.0),
					SpanCoverage:   reuse.Ratio(81.0 / 91.0),
				},
			},
		},
	}
}

func buildTestRecord() *Result {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return Build(testResult(),
		DocumentInfo{ID: 1, Title: "Source", TokenCount: 800, PageCount: 5},
		DocumentInfo{ID: 2, TokenCount: 600, PageCount: 4},
		nil, nil, nil,
		BuildOptions{GeneratedAt: ts})
}

func TestBuildRecord(t *testing.T) {
	record := buildTestRecord()

	if record.Version != Version {
		t.Errorf("version %q", record.Version)
	}
	if record.GeneratedAt != "2026-08-01T12:00:00Z" {
		t.Errorf("timestamp %q", record.GeneratedAt)
	}
	if len(record.Edges) != 1 {
		t.Fatalf("got %d edges", len(record.Edges))
	}
	e := record.Edges[0]
	if e.Source.DocumentID != 1 || e.Source.Start != 120 || e.Source.End != 211 {
		t.Errorf("source ref %+v", e.Source)
	}
	if e.Source.Text != nil {
		t.Error("text attached without IncludeText")
	}
}

func TestWriteJSONFormatting(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, buildTestRecord()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	// Metrics serialize with exactly four decimal places.
	if !strings.Contains(out, `"core_similarity": 0.9630`) {
		t.Errorf("core similarity not formatted:\n%s", out)
	}
	if !strings.Contains(out, `"span_coverage": 0.8901`) {
		t.Errorf("span coverage not formatted:\n%s", out)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["version"] != Version {
		t.Errorf("decoded version %v", decoded["version"])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, buildTestRecord()); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one edge", len(rows))
	}
	if rows[0][0] != "edge_id" || len(rows[0]) != len(csvHeader) {
		t.Errorf("header row %v", rows[0])
	}
	row := rows[1]
	if row[0] != "1" || row[2] != "0:3.20 → 0:4.11" {
		t.Errorf("edge row %v", row)
	}
	core := row[14]
	if core != "0.9630" {
		t.Errorf("core similarity column %q, want 0.9630", core)
	}
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := WriteJSONFile(path, buildTestRecord()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Summary.EdgeCount != 1 {
		t.Errorf("round-tripped summary %+v", decoded.Summary)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestWriteFileBadDirectory(t *testing.T) {
	err := WriteJSONFile(filepath.Join(t.TempDir(), "missing", "result.json"), buildTestRecord())
	if err == nil {
		t.Fatal("wrote into a missing directory")
	}
	if reuse.KindOf(err) != reuse.KindOutput {
		t.Errorf("error kind %v, want output", reuse.KindOf(err))
	}
}
