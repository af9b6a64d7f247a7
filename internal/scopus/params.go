// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scopus talks to the Elsevier Scopus Search API: it builds request
// parameters, performs the call, decodes the result page, reads the quota
// headers, and classifies failures into a small set of kinds.
package scopus

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Fields is the comma-joined field list requested from the API.
const Fields = "dc:title,prism:doi,prism:publicationName,prism:coverDate,prism:url,dc:creator"

// SortRelevancy orders results by relevance.
const SortRelevancy = "relevancy"

// Params holds the query parameters of one search request.
type Params struct {
	Query  string
	Count  int
	Start  int
	Sort   string
	APIKey string
	Fields string
}

// NewParams derives request parameters from the user text and a 1-based page.
func NewParams(text string, page, pageSize int, apiKey string) Params {
	return Params{
		Query:  FormatQuery(text),
		Count:  pageSize,
		Start:  Start(page, pageSize),
		Sort:   SortRelevancy,
		APIKey: apiKey,
		Fields: Fields,
	}
}

// Values encodes the parameters as URL query values.
func (p Params) Values() url.Values {
	return url.Values{
		"query":  {p.Query},
		"count":  {strconv.Itoa(p.Count)},
		"start":  {strconv.Itoa(p.Start)},
		"sort":   {p.Sort},
		"apiKey": {p.APIKey},
		"field":  {p.Fields},
	}
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// FormatQuery wraps text in a TITLE-ABS-KEY phrase search. Backslashes and
// double quotes are escaped so the text cannot close the phrase early.
func FormatQuery(text string) string {
	return `TITLE-ABS-KEY("` + quoteEscaper.Replace(text) + `")`
}

// Start returns the zero-based offset of the first entry on page. Offsets
// that would overflow int saturate at math.MaxInt.
func Start(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	if pageSize > 0 && page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// TotalPages returns ceil(total/pageSize).
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
