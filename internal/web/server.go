// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the search form, the JSON search API, and search
// history over HTTP.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/scopus-search/internal/history"
	"github.com/pdiddy/scopus-search/internal/scopus"
	"github.com/pdiddy/scopus-search/internal/search"
	"github.com/pdiddy/scopus-search/internal/session"
	"github.com/pdiddy/scopus-search/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const indexTemplate = "index.html"

// HistoryStore records and lists searches. *history.Store implements it.
type HistoryStore interface {
	Record(ctx context.Context, e history.Entry) (int64, error)
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// apiStatus maps a failure kind to the HTTP status of /api/search.
func apiStatus(kind string) int {
	switch kind {
	case scopus.KindNone.String():
		return http.StatusOK
	case scopus.KindValidation.String():
		return http.StatusBadRequest
	case scopus.KindRateLimited.String(), scopus.KindQuotaExceeded.String():
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// Server wires the search handler to gin routes.
type Server struct {
	engine  *gin.Engine
	handler *search.Handler
	flash   *session.FlashStore
	history HistoryStore
	log     *zap.Logger
	now     func() time.Time
}

// NewServer builds the router. hist may be nil to disable history.
func NewServer(h *search.Handler, flash *session.FlashStore, hist HistoryStore, log *zap.Logger) (*Server, error) {
	if flash == nil {
		return nil, errors.New("web: flash store is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		handler: h,
		flash:   flash,
		history: hist,
		log:     log,
		now:     time.Now,
	}

	engine := gin.New()
	engine.Use(requestLogger(log), recovery(log))
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", s.index)
	engine.POST("/", s.index)
	engine.GET("/api/search", s.apiSearch)
	engine.GET("/history", s.recent)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	s.engine = engine
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

type pageView struct {
	Result   types.SearchResult
	Flashes  []string
	Searched bool
	PrevURL  string
	NextURL  string
}

func (s *Server) index(c *gin.Context) {
	result := s.handler.Handle(c.Request.Context(), search.NewInput(c.Request))

	if result.ErrorKind == scopus.KindValidation.String() && c.Request.Method == http.MethodPost {
		if err := s.flash.Add(c.Writer, c.Request, result.Message); err != nil {
			s.log.Error("storing flash message", zap.Error(err))
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	s.record(c.Request.Context(), result)

	view := pageView{
		Result:   result,
		Flashes:  s.flash.Pop(c.Writer, c.Request),
		Searched: result.Query != "",
	}
	if result.Message != "" {
		view.Flashes = append(view.Flashes, result.Message)
	}
	if result.HasPrev() {
		view.PrevURL = pageURL(result.Query, result.Page-1)
	}
	if result.HasNext() {
		view.NextURL = pageURL(result.Query, result.Page+1)
	}
	c.HTML(http.StatusOK, indexTemplate, view)
}

func (s *Server) apiSearch(c *gin.Context) {
	in := search.NewInput(c.Request)
	if _, ok := in.Params[search.ParamQuery]; !ok {
		// An API call always counts as a submission.
		in.Params.Set(search.ParamQuery, "")
	}
	result := s.handler.Handle(c.Request.Context(), in)
	s.record(c.Request.Context(), result)

	c.JSON(apiStatus(result.ErrorKind), result)
}

func (s *Server) recent(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "search history is disabled"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(history.DefaultLimit)))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	entries, err := s.history.Recent(c.Request.Context(), limit)
	if err != nil {
		s.log.Error("listing history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read search history"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// record stores searches that reached the API. Landing requests and
// validation failures carry no query and are skipped.
func (s *Server) record(ctx context.Context, r types.SearchResult) {
	if s.history == nil || r.Query == "" {
		return
	}
	if _, err := s.history.Record(ctx, history.FromResult(r, s.now())); err != nil {
		s.log.Warn("recording search history", zap.String("query", r.Query), zap.Error(err))
	}
}

func pageURL(query string, page int) string {
	v := url.Values{}
	v.Set(search.ParamQuery, query)
	v.Set(search.ParamPage, strconv.Itoa(page))
	return "/?" + v.Encode()
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err any) {
		log.Error("panic serving request",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", err),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
