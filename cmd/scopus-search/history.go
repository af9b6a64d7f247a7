// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scopus-search/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches",
	Long: `History lists searches recorded in the SQLite file named by
server.history_path, newest first. Only the query, page, result count,
failure kind, and remaining quota are kept.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", history.DefaultLimit, "maximum number of entries")
	historyCmd.Flags().String("format", formatTable, "output format: table, json, or yaml")
	historyCmd.Flags().String("history", "", "SQLite history file (overrides server.history_path)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	cfg, err := appConfig()
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("history"); p != "" {
		cfg.Server.HistoryPath = p
	}
	if cfg.Server.HistoryPath == "" {
		return fmt.Errorf("search history is disabled: set server.history_path or --history")
	}

	store, err := history.NewStore(cfg.Server.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	switch format {
	case "yaml":
		return store.Export(ctx, os.Stdout, limit)
	case formatJSON:
		entries, err := store.Recent(ctx, limit)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case formatTable:
		entries, err := store.Recent(ctx, limit)
		if err != nil {
			return err
		}
		printHistory(entries)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table, json, or yaml)", format)
	}
}

func printHistory(entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Println("No searches recorded.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-40s  %-4s  %-8s  %-10s  %s\n",
		"When", "Query", "Page", "Results", "Remaining", "Error")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, e := range entries {
		q := e.Query
		if r := []rune(q); len(r) > 40 {
			q = string(r[:37]) + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-40s  %-4d  %-8d  %-10s  %s\n",
			e.SearchedAt.Local().Format("2006-01-02 15:04:05"), q, e.Page, e.TotalResults, e.QuotaRemaining, e.ErrorKind)
	}
}
