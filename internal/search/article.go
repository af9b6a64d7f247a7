// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/scopus-search/internal/scopus"
	"github.com/pdiddy/scopus-search/pkg/types"
)

// doiResolver is the base of canonical DOI links.
const doiResolver = "https://doi.org/"

// ToArticle maps a Scopus entry to display form, substituting placeholders
// for missing fields.
func ToArticle(e scopus.Entry) types.Article {
	doi := strings.TrimSpace(e.DOI)
	creator := strings.TrimSpace(e.Creator)

	a := types.Article{
		Title:           orDefault(e.Title, types.NoTitle),
		DOI:             doi,
		PublicationName: orDefault(e.PublicationName, types.NoPublicationName),
		CoverDate:       orDefault(e.CoverDate, types.NoCoverDate),
		Authors:         types.NoAuthors,
		FirstAuthor:     creator,
		URL:             DOIURL(doi),
	}
	if creator != "" {
		a.Authors = "One of the authors: " + creator
	}
	return a
}

// DOIURL returns the resolver link for doi, or "#" when doi is empty.
func DOIURL(doi string) string {
	if doi == "" {
		return types.NoURL
	}
	return doiResolver + doi
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
