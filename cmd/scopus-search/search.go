// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scopus-search/internal/history"
	"github.com/pdiddy/scopus-search/internal/httputil"
	"github.com/pdiddy/scopus-search/internal/scopus"
	"github.com/pdiddy/scopus-search/internal/search"
	"github.com/pdiddy/scopus-search/pkg/types"
)

// Output formats for the search command.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSL   = "csl"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search Scopus for articles matching a phrase",
	Long: `Search sends the phrase to the Scopus Search API as a TITLE-ABS-KEY
exact-phrase query and prints one page of results with the API quota.

Use --save to write the result to a YAML query file and --from to print a
saved file again without calling the API.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("page", 1, "result page (1-based)")
	searchCmd.Flags().String("format", formatTable, "output format: table, json, or csl")
	searchCmd.Flags().String("save", "", "write the result to this YAML query file")
	searchCmd.Flags().String("from", "", "render a saved query file instead of searching")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetString("save")
	from, _ := cmd.Flags().GetString("from")

	if from != "" {
		qf, err := search.ReadQueryFile(from)
		if err != nil {
			return err
		}
		return writeResult(qf.Result(), format, os.Stdout)
	}

	cfg, err := appConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := scopus.NewClient(httputil.NewClient(cfg.Scopus.HTTPConfig, logger.Named("http")), cfg.Scopus)
	h := search.NewHandler(client, logger.Named("search").Sugar())

	in := search.Input{
		Method: http.MethodGet,
		Params: url.Values{
			search.ParamQuery: {strings.Join(args, " ")},
			search.ParamPage:  {strconv.Itoa(page)},
		},
	}
	result := h.Handle(cmd.Context(), in)

	if cfg.Server.HistoryPath != "" && result.Query != "" {
		recordHistory(cmd, cfg.Server.HistoryPath, result)
	}
	if save != "" {
		if err := search.WriteQueryFile(save, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %s\n", save)
	}

	if err := writeResult(result, format, os.Stdout); err != nil {
		return err
	}
	if result.Failed() {
		return fmt.Errorf("search failed: %s", result.ErrorKind)
	}
	return nil
}

func writeResult(r types.SearchResult, format string, w io.Writer) error {
	switch format {
	case formatTable:
		search.FormatTable(r, w)
		return nil
	case formatJSON:
		return search.FormatJSON(r, w)
	case formatCSL:
		return search.FormatCSL(r, w)
	default:
		return fmt.Errorf("unknown format %q (want %s, %s, or %s)", format, formatTable, formatJSON, formatCSL)
	}
}

func recordHistory(cmd *cobra.Command, path string, r types.SearchResult) {
	store, err := history.NewStore(path)
	if err != nil {
		logger.Warn("opening search history", zap.Error(err))
		return
	}
	defer store.Close()
	if _, err := store.Record(cmd.Context(), history.FromResult(r, time.Now())); err != nil {
		logger.Warn("recording search history", zap.Error(err))
	}
}
