// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search turns a user search request into a SearchResult: it
// validates the phrase, resolves the page, calls the Scopus API once, and maps
// entries, quota headers, and failures into display form.
package search

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/scopus-search/internal/scopus"
	"github.com/pdiddy/scopus-search/pkg/types"
)

// Logger accepts leveled, structured log messages. *zap.SugaredLogger
// satisfies it.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// Searcher fetches one page of Scopus results. *scopus.Client implements it.
type Searcher interface {
	Search(ctx context.Context, text string, page int) (*scopus.Response, error)
	PageSize() int
}

// Form and query parameter names.
const (
	ParamQuery = "query"
	ParamPage  = "page"
)

// MaxPage is the highest page a request may ask for. Larger values are
// clamped so the request offset stays well inside int range.
const MaxPage = 100000

// Input is an incoming search request.
type Input struct {
	Method string
	// Form holds POST form values.
	Form url.Values
	// Params holds URL query parameters.
	Params url.Values
}

// NewInput extracts an Input from r. Form parse errors leave Form empty.
func NewInput(r *http.Request) Input {
	in := Input{Method: r.Method, Params: r.URL.Query()}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			in.Form = r.PostForm
		}
	}
	return in
}

// text returns the trimmed search phrase and whether a query field was
// submitted at all. POST form values take precedence over URL parameters.
func (in Input) text() (string, bool) {
	if in.Method == http.MethodPost {
		if vs, ok := in.Form[ParamQuery]; ok {
			return strings.TrimSpace(first(vs)), true
		}
	}
	if vs, ok := in.Params[ParamQuery]; ok {
		return strings.TrimSpace(first(vs)), true
	}
	return "", false
}

// page returns the requested page, or 1 when absent, non-numeric, or below 1.
// Pages above MaxPage resolve to MaxPage.
func (in Input) page() int {
	raw := in.Params.Get(ParamPage)
	if raw == "" {
		raw = in.Form.Get(ParamPage)
	}
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(raw), "-"):
		return MaxPage
	case err != nil || p < 1:
		return 1
	case p > MaxPage:
		return MaxPage
	}
	return p
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Handler serves search requests. It is safe for concurrent use.
type Handler struct {
	searcher Searcher
	log      Logger
}

// NewHandler returns a Handler backed by s. A nil log discards messages.
func NewHandler(s Searcher, log Logger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{searcher: s, log: log}
}

// Handle runs one search. It never returns an error: every failure is
// reported through the result's Message and ErrorKind, with an empty article
// list. At most one upstream call is made, and none when the phrase is blank.
//
// A GET without any query parameter is a landing request and returns an
// empty result with no message.
func (h *Handler) Handle(ctx context.Context, in Input) types.SearchResult {
	text, submitted := in.text()
	page := in.page()

	result := types.SearchResult{
		Articles: []types.Article{},
		Query:    text,
		Quota:    types.UnknownQuota(),
		Page:     page,
		PageSize: h.searcher.PageSize(),
	}

	if !submitted && in.Method != http.MethodPost {
		return result
	}
	if text == "" {
		h.fail(&result, scopus.ErrEmptyQuery)
		h.log.Infow("rejected empty search query", "method", in.Method)
		return result
	}

	h.log.Infow("searching scopus", "query", text, "page", page)

	resp, err := h.searcher.Search(ctx, text, page)
	if resp != nil {
		result.Quota = resp.Quota
	}
	if err != nil {
		kind := h.fail(&result, err)
		h.log.Errorw("scopus search failed",
			"query", text,
			"page", page,
			"kind", kind.String(),
			"quota_remaining", result.Quota.Remaining,
			"error", err,
		)
		return result
	}

	result.TotalResults = resp.TotalResults
	result.TotalPages = scopus.TotalPages(resp.TotalResults, result.PageSize)
	for _, e := range resp.Entries {
		a := ToArticle(e)
		h.log.Debugw("mapped entry", "title", a.Title, "doi", a.DOI, "first_author", a.FirstAuthor)
		result.Articles = append(result.Articles, a)
	}

	if result.Quota.ResetTime == types.Unknown {
		h.log.Warnw("quota headers missing from response", "query", text)
	}
	h.log.Infow("scopus search completed",
		"query", text,
		"page", page,
		"total_results", result.TotalResults,
		"returned", len(result.Articles),
		"quota_remaining", result.Quota.Remaining,
	)
	return result
}

func (h *Handler) fail(result *types.SearchResult, err error) scopus.Kind {
	kind := scopus.Classify(err)
	result.ErrorKind = kind.String()
	result.Message = scopus.Message(kind, err)
	return kind
}
