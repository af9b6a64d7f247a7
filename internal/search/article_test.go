// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scopus-search/internal/scopus"
	"github.com/pdiddy/scopus-search/pkg/types"
)

func TestToArticle(t *testing.T) {
	tests := []struct {
		name  string
		entry scopus.Entry
		want  types.Article
	}{
		{
			name: "complete entry",
			entry: scopus.Entry{
				Title:           "Graphene electronics",
				DOI:             " 10.1038/nmat1849 ",
				PublicationName: "Nature Materials",
				CoverDate:       "2007-03-01",
				Creator:         " Geim A.K. ",
			},
			want: types.Article{
				Title:           "Graphene electronics",
				DOI:             "10.1038/nmat1849",
				PublicationName: "Nature Materials",
				CoverDate:       "2007-03-01",
				Authors:         "One of the authors: Geim A.K.",
				FirstAuthor:     "Geim A.K.",
				URL:             "https://doi.org/10.1038/nmat1849",
			},
		},
		{
			name:  "empty entry gets placeholders",
			entry: scopus.Entry{},
			want: types.Article{
				Title:           types.NoTitle,
				PublicationName: types.NoPublicationName,
				CoverDate:       types.NoCoverDate,
				Authors:         types.NoAuthors,
				URL:             "#",
			},
		},
		{
			name:  "whitespace creator and doi",
			entry: scopus.Entry{Title: "T", DOI: "  ", Creator: "\t"},
			want: types.Article{
				Title:           "T",
				PublicationName: types.NoPublicationName,
				CoverDate:       types.NoCoverDate,
				Authors:         types.NoAuthors,
				URL:             "#",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToArticle(tt.entry))
		})
	}
}

func TestDOIURL(t *testing.T) {
	assert.Equal(t, "https://doi.org/10.1/x", DOIURL("10.1/x"))
	assert.Equal(t, "#", DOIURL(""))
}
