// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/scopus-search/pkg/types"
)

// FormatTable writes a result as a human-readable table to w.
func FormatTable(r types.SearchResult, w io.Writer) {
	if r.Message != "" {
		fmt.Fprintf(w, "error: %s\n", r.Message)
	}
	fmt.Fprintf(w, "Quota: limit %s, remaining %s, resets %s\n\n",
		r.Quota.Limit, r.Quota.Remaining, r.Quota.ResetTime)

	if len(r.Articles) == 0 {
		if r.Message == "" {
			fmt.Fprintln(w, "No results found.")
		}
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %s\n",
		"#", "Title", "First author", "Date", "DOI")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	offset := r.Offset()
	for i, a := range r.Articles {
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %s\n",
			offset+i+1, truncate(a.Title, 60), truncate(a.FirstAuthor, 20), a.CoverDate, a.DOI)
	}

	fmt.Fprintf(w, "\npage %d of %d (%d results)\n", r.Page, r.TotalPages, r.TotalResults)
}

// FormatJSON writes a result as indented JSON to w.
func FormatJSON(r types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
