package main

import (
	"github.com/spf13/cobra"

	"github.com/textreuse/iqtibas/internal/config"
	"github.com/textreuse/iqtibas/internal/corpus"
	"github.com/textreuse/iqtibas/internal/reuse"
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsOpts.corpusDB, "corpus-db", "", "Path to the corpus SQLite database")
	statsCmd.Flags().StringVar(&statsOpts.configPath, "config", "", "Path to a YAML config file")
	statsCmd.Flags().BoolVar(&statsOpts.listDocs, "list-docs", false, "Include the list of document ids")
}

var statsOpts struct {
	corpusDB   string
	configPath string
	listDocs   bool
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report corpus-wide counts",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

type statsResponse struct {
	corpus.Stats
	DocumentIDs []uint32 `json:"document_ids,omitempty"`
}

func runStats(cmd *cobra.Command, args []string) error {
	db := openCorpus(statsOpts.corpusDB, statsOpts.configPath)
	defer db.Close()

	stats, err := db.CorpusStats()
	if err != nil {
		exitWithError(err)
	}
	resp := statsResponse{Stats: stats}
	if statsOpts.listDocs {
		ids, err := db.DocumentIDs()
		if err != nil {
			exitWithError(err)
		}
		resp.DocumentIDs = ids
	}
	return outputJSON(resp)
}

// openCorpus resolves the corpus path from flag, config, and environment
// and opens it, exiting on failure.
func openCorpus(flagPath, configPath string) *corpus.DB {
	cfg, err := loadConfig(configPath)
	if err != nil {
		exitWithError(err)
	}
	if flagPath != "" {
		cfg.CorpusDB = flagPath
	}
	if cfg.CorpusDB == "" {
		exitWithError(reuse.Errorf(reuse.KindConfiguration,
			"no corpus database given (use --corpus-db, a config file, or %s)", config.EnvCorpusDB))
	}
	db, err := corpus.Open(cfg.CorpusDB)
	if err != nil {
		exitWithError(err)
	}
	return db
}
