package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/equity-scout/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [urls...]",
	Short: "Fetch documents and snapshot them to disk",
	Long: `Fetch loads the given URLs, extracts their visible text, and writes the
resulting documents to a YAML snapshot. The snapshot can later be scored with
the validate subcommand without any network access.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("snapshot", "data/documents.yaml", "path for the document snapshot")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	urls := fetch.ValidURLs(args)
	if len(urls) == 0 {
		return fmt.Errorf("provide one or more URLs to fetch")
	}

	sink, flush := eventSink()
	defer flush()

	cfg := pipelineConfig()
	docs, result := fetch.NewLoader(cfg.Fetch, sink).Load(cmd.Context(), urls)

	snapshot, _ := cmd.Flags().GetString("snapshot")
	if err := fetch.WriteSnapshot(docs, snapshot); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Saved %d document(s) to %s (%d skipped)\n",
		result.Loaded, snapshot, result.Skipped)
	if result.Loaded == 0 {
		return fmt.Errorf("no documents could be loaded from %d URL(s)", result.Total())
	}
	return nil
}
