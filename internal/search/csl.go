// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scopus-search/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-YAML schema so that output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the result's articles as a CSL-YAML list to w.
func FormatCSL(r types.SearchResult, w io.Writer) error {
	items := make([]CSLItem, len(r.Articles))
	for i, a := range r.Articles {
		items[i] = toCSLItem(a, r.Offset()+i+1)
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding CSL: %w", err)
	}
	return enc.Close()
}

// toCSLItem converts an Article to a CSLItem. Placeholder values are not
// carried over. n numbers items that have no DOI.
func toCSLItem(a types.Article, n int) CSLItem {
	item := CSLItem{
		ID:    a.DOI,
		Type:  "article-journal",
		Title: a.Title,
		DOI:   a.DOI,
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("scopus-%d", n)
	}
	if a.Title == types.NoTitle {
		item.Title = ""
	}
	if a.PublicationName != types.NoPublicationName {
		item.ContainerTitle = a.PublicationName
	}
	if a.URL != types.NoURL {
		item.URL = a.URL
	}
	if a.FirstAuthor != "" {
		item.Author = []CSLName{parseAuthorName(a.FirstAuthor)}
	}
	if parts := parseCoverDate(a.CoverDate); parts != nil {
		item.Issued = &CSLDate{DateParts: [][]int{parts}}
	}
	return item
}

// parseAuthorName splits a Scopus creator string ("Geim A.K.") into CSL
// family/given parts. Scopus puts the family name first and initials last.
// Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Family: name[:idx],
		Given:  name[idx+1:],
	}
}

// parseCoverDate converts "YYYY-MM-DD" (or a prefix of it) into date-parts.
func parseCoverDate(s string) []int {
	var parts []int
	for _, f := range strings.SplitN(s, "-", 3) {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			break
		}
		parts = append(parts, n)
	}
	return parts
}
