// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scopus-search/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results. A
// saved search can be reloaded and printed again without calling the API.
type QueryFile struct {
	Query    QueryParams     `yaml:"query"`
	Summary  QuerySummary    `yaml:"summary"`
	Articles []types.Article `yaml:"articles"`
}

// QueryParams stores the request in a serializable form.
type QueryParams struct {
	Text     string `yaml:"text"`
	Page     int    `yaml:"page"`
	PageSize int    `yaml:"page_size,omitempty"`
}

// QuerySummary stores result statistics, the quota snapshot, and a timestamp.
type QuerySummary struct {
	TotalResults int             `yaml:"total_results"`
	TotalPages   int             `yaml:"total_pages"`
	Quota        types.QuotaInfo `yaml:"quota"`
	Message      string          `yaml:"message,omitempty"`
	ErrorKind    string          `yaml:"error_kind,omitempty"`
	Timestamp    time.Time       `yaml:"timestamp"`
}

// WriteQueryFile saves a search result to a YAML file.
func WriteQueryFile(path string, r types.SearchResult) error {
	qf := QueryFile{
		Query: QueryParams{Text: r.Query, Page: r.Page, PageSize: r.PageSize},
		Summary: QuerySummary{
			TotalResults: r.TotalResults,
			TotalPages:   r.TotalPages,
			Quota:        r.Quota,
			Message:      r.Message,
			ErrorKind:    r.ErrorKind,
			Timestamp:    time.Now().UTC(),
		},
		Articles: r.Articles,
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Result rebuilds the SearchResult stored in the file.
func (qf *QueryFile) Result() types.SearchResult {
	articles := qf.Articles
	if articles == nil {
		articles = []types.Article{}
	}
	page := qf.Query.Page
	if page < 1 {
		page = 1
	}
	return types.SearchResult{
		Articles:     articles,
		Query:        qf.Query.Text,
		Quota:        qf.Summary.Quota,
		Page:         page,
		PageSize:     qf.Query.PageSize,
		TotalPages:   qf.Summary.TotalPages,
		TotalResults: qf.Summary.TotalResults,
		Message:      qf.Summary.Message,
		ErrorKind:    qf.Summary.ErrorKind,
	}
}
