// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the Scopus client, the
// search handler, and the presentation layers (web, CLI, exports).
package types

// Unknown is the sentinel shown for quota values the API did not report.
const Unknown = "unknown"

// Placeholders used when a search entry omits a field.
const (
	NoTitle           = "No title"
	NoPublicationName = "No journal title"
	NoCoverDate       = "No date"
	NoAuthors         = "Authors: unknown"
	NoURL             = "#"
)

// Article is one bibliographic record prepared for display.
type Article struct {
	// Title is the document title (dc:title).
	Title string `json:"title" yaml:"title"`

	// DOI is the bare Digital Object Identifier, empty when the record has none.
	DOI string `json:"doi" yaml:"doi"`

	// PublicationName is the journal or proceedings title (prism:publicationName).
	PublicationName string `json:"publication_name" yaml:"publication_name"`

	// CoverDate is the issue cover date as reported (prism:coverDate, YYYY-MM-DD).
	CoverDate string `json:"cover_date" yaml:"cover_date"`

	// Authors is the display line for authorship. Scopus search results only
	// carry the first author.
	Authors string `json:"authors" yaml:"authors"`

	// FirstAuthor is the raw dc:creator value, empty when absent.
	FirstAuthor string `json:"first_author,omitempty" yaml:"first_author,omitempty"`

	// URL is the DOI resolver link, or "#" when there is no DOI.
	URL string `json:"url" yaml:"url"`
}

// QuotaInfo is the API quota snapshot read from rate-limit response headers.
type QuotaInfo struct {
	Limit     string `json:"limit" yaml:"limit"`
	Remaining string `json:"remaining" yaml:"remaining"`
	// ResetTime is formatted as YYYY-MM-DD HH:MM:SS.
	ResetTime string `json:"reset_time" yaml:"reset_time"`
}

// UnknownQuota returns a snapshot with every field set to Unknown.
func UnknownQuota() QuotaInfo {
	return QuotaInfo{Limit: Unknown, Remaining: Unknown, ResetTime: Unknown}
}

// SearchResult is the outcome of one search request.
type SearchResult struct {
	Articles     []Article `json:"articles" yaml:"articles"`
	Query        string    `json:"query" yaml:"query"`
	Quota        QuotaInfo `json:"quota" yaml:"quota"`
	Page         int       `json:"page" yaml:"page"`
	TotalPages   int       `json:"total_pages" yaml:"total_pages"`
	TotalResults int       `json:"total_results" yaml:"total_results"`

	// PageSize is the number of entries requested per page. Zero means
	// DefaultPageSize.
	PageSize int `json:"page_size,omitempty" yaml:"page_size,omitempty"`

	// Message is the user-facing explanation when the search did not succeed.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// ErrorKind names the failure class (e.g. "rate_limited"); empty on success.
	ErrorKind string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
}

// Failed reports whether the result carries an error.
func (r SearchResult) Failed() bool {
	return r.ErrorKind != ""
}

// HasPrev reports whether a previous page exists.
func (r SearchResult) HasPrev() bool {
	return r.Page > 1
}

// Offset returns the number of entries on the pages before Page.
func (r SearchResult) Offset() int {
	size := r.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if r.Page <= 1 {
		return 0
	}
	return (r.Page - 1) * size
}

// HasNext reports whether a following page exists.
func (r SearchResult) HasNext() bool {
	return r.Page < r.TotalPages
}
