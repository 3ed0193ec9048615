package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoOpts.corpusDB, "corpus-db", "", "Path to the corpus SQLite database")
	infoCmd.Flags().StringVar(&infoOpts.configPath, "config", "", "Path to a YAML config file")
	infoCmd.Flags().Uint32Var(&infoOpts.docID, "doc-id", 0, "Document id")
	infoCmd.Flags().BoolVar(&infoOpts.showPages, "show-pages", false, "Include per-page token counts")
	infoCmd.MarkFlagRequired("doc-id")
}

var infoOpts struct {
	corpusDB   string
	configPath string
	docID      uint32
	showPages  bool
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe one document in the corpus",
	Long: `Describe one document: metadata, page count, token count, and
vocabulary size, optionally with per-page token counts.

Example:
  iqtibas info --corpus-db corpus.db --doc-id 101 --show-pages`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

type pageInfo struct {
	PartIndex  uint32 `json:"part_index"`
	PageID     uint32 `json:"page_id"`
	TokenCount int    `json:"token_count"`
}

type infoResponse struct {
	ID           uint32     `json:"id"`
	Title        string     `json:"title,omitempty"`
	Author       string     `json:"author,omitempty"`
	PageCount    int        `json:"page_count"`
	TokenCount   int        `json:"token_count"`
	UniqueLemmas int        `json:"unique_lemmas"`
	Pages        []pageInfo `json:"pages,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	db := openCorpus(infoOpts.corpusDB, infoOpts.configPath)
	defer db.Close()

	mappings, err := db.LoadMappings()
	if err != nil {
		exitWithError(err)
	}
	stream, err := db.LoadStream(infoOpts.docID, mappings)
	if err != nil {
		exitWithError(err)
	}
	meta, err := db.Document(infoOpts.docID)
	if err != nil {
		exitWithError(err)
	}

	resp := infoResponse{
		ID:           stream.ID(),
		Title:        meta.Title,
		Author:       meta.Author,
		PageCount:    stream.PageCount(),
		TokenCount:   stream.TokenCount(),
		UniqueLemmas: uniqueCount(stream.Lemmas()),
	}
	if infoOpts.showPages {
		for _, p := range stream.Pages() {
			resp.Pages = append(resp.Pages, pageInfo{
				PartIndex:  p.PartIndex,
				PageID:     p.PageID,
				TokenCount: len(p.TokenIDs),
			})
		}
	}
	return outputJSON(resp)
}

func uniqueCount(ids []uint32) int {
	seen := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
