// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/scopus-search/internal/httputil"
	"github.com/pdiddy/scopus-search/pkg/types"
)

// Client performs Scopus searches. The zero value is not usable; build one
// with NewClient.
type Client struct {
	http      *http.Client
	endpoint  string
	apiKey    string
	pageSize  int
	userAgent string
	loc       *time.Location
}

// NewClient returns a client for cfg. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, cfg types.ScopusConfig) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = types.DefaultEndpoint
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	return &Client{
		http:      httpClient,
		endpoint:  endpoint,
		apiKey:    cfg.APIKey,
		pageSize:  pageSize,
		userAgent: cfg.UserAgent,
		loc:       time.Local,
	}
}

// WithLocation sets the zone used to format the quota reset time.
func (c *Client) WithLocation(loc *time.Location) *Client {
	c.loc = loc
	return c
}

// PageSize returns the number of entries requested per page.
func (c *Client) PageSize() int { return c.pageSize }

// Response is one decoded result page.
type Response struct {
	TotalResults int
	Entries      []Entry
	Quota        types.QuotaInfo
}

// Search requests one page of results for text. It makes exactly one HTTP
// call and never retries.
//
// A non-2xx answer returns a *StatusError together with a Response whose
// Quota is filled from the headers. Transport and decoding failures return
// a nil Response.
func (c *Client) Search(ctx context.Context, text string, page int) (*Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	params := NewParams(text, page, c.pageSize, c.apiKey)
	reqURL := c.endpoint + "?" + params.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scopus API request: %w", redactError(err, req.URL))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &Response{Quota: ParseQuota(resp.Header, c.loc)}, &StatusError{
			Code:      resp.StatusCode,
			Status:    resp.Status,
			ELSStatus: resp.Header.Get(HeaderELSStatus),
		}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing scopus response: %w", err)
	}

	out := &Response{
		TotalResults: int(sr.Results.TotalResults),
		Quota:        ParseQuota(resp.Header, c.loc),
	}
	for _, e := range sr.Results.Entries {
		// An empty result set comes back as one entry holding only an error.
		if e.Error != "" {
			continue
		}
		out.Entries = append(out.Entries, e)
	}
	return out, nil
}

// redactError strips credentials from the request URL that net/http
// embeds in transport errors.
func redactError(err error, u *url.URL) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = httputil.RedactURL(u, httputil.SecretParams...)
	}
	return err
}

// Entry is one record of search-results.entry.
type Entry struct {
	Title           string `json:"dc:title"`
	DOI             string `json:"prism:doi"`
	PublicationName string `json:"prism:publicationName"`
	CoverDate       string `json:"prism:coverDate"`
	URL             string `json:"prism:url"`
	Creator         string `json:"dc:creator"`
	Error           string `json:"error"`
}

// Scopus Search API JSON structures.
type searchResponse struct {
	Results searchResults `json:"search-results"`
}

type searchResults struct {
	TotalResults flexInt `json:"opensearch:totalResults"`
	Entries      []Entry `json:"entry"`
}

// flexInt decodes an integer sent either as a JSON number or as a numeric
// string. Anything else decodes to 0.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}
