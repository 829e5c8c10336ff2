package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/fatih/color"
	"github.com/opengs/tesswrap/storage"
	"github.com/spf13/cobra"
)

func newSearchCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search text recognized by earlier runs",
		Long:  "Searches the store filled by `recognize --store` for files containing every word of the query.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	flags := cmd.Flags()
	flags.String("store", "", "PostgreSQL URL of the recognition store")
	flags.StringSlice("folder", nil, "Only search files recognized from these folders")
	flags.Uint32("limit", 20, "Maximum number of results")
	flags.Bool("json", false, "Print JSON")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("store") {
		config.Store, _ = cmd.Flags().GetString("store")
	}
	if config.Store == "" {
		return errors.New("store is not configured, use --store or TESSWRAP_STORE")
	}

	store, err := config.OpenStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	folders, _ := cmd.Flags().GetStringSlice("folder")
	sources := make([]storage.SourceUUID, 0, len(folders))
	for _, folder := range folders {
		sources = append(sources, storage.SourceUUID(sourceUUID(folder)))
	}
	limit, _ := cmd.Flags().GetUint32("limit")

	records, err := store.SearchText(cmd.Context(), strings.Join(args, " "), sources, limit)
	if err != nil {
		return err
	}
	return printRecords(cmd, records)
}

func printRecords(cmd *cobra.Command, records []storage.Record) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(records)
	}
	header := color.New(color.FgHiCyan, color.Bold)
	for _, r := range records {
		header.Fprintf(cmd.OutOrStdout(), "==> %s (%d%%, %s)\n", path.Join(string(r.Source), r.Path), r.Confidence, r.RecognizedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintln(cmd.OutOrStdout(), r.Text)
	}
	return nil
}
