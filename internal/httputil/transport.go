// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the outbound HTTP plumbing shared by the CLI and
// the web front-end: a logging round-tripper and client construction.
package httputil

import (
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/scopus-search/pkg/types"
)

// Redacted replaces secret query values in logged URLs.
const Redacted = "REDACTED"

// SecretParams lists query parameters that never appear in logs.
var SecretParams = []string{"apiKey", "insttoken"}

// Transport logs each outbound request and sets a default User-Agent. It
// makes exactly one attempt per request.
type Transport struct {
	Base      http.RoundTripper
	Log       *zap.Logger
	UserAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	log := t.Log
	if log == nil {
		log = zap.NewNop()
	}

	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.UserAgent)
	}

	target := RedactURL(req.URL, SecretParams...)
	log.Info("outbound request", zap.String("method", req.Method), zap.String("url", target))

	start := time.Now()
	resp, err := base.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		log.Error("outbound request failed",
			zap.String("url", target),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, err
	}

	log.Debug("outbound response",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.String("content_type", resp.Header.Get("Content-Type")),
		zap.Duration("elapsed", elapsed))
	return resp, nil
}

// RedactURL returns u as a string with the values of keys replaced.
func RedactURL(u *url.URL, keys ...string) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	changed := false
	for _, k := range keys {
		if _, ok := q[k]; ok {
			q.Set(k, Redacted)
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}

// NewClient returns an HTTP client for cfg that logs through log. A zero
// cfg.Timeout leaves the client without a deadline.
func NewClient(cfg types.HTTPConfig, log *zap.Logger) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &Transport{
			Base:      http.DefaultTransport,
			Log:       log,
			UserAgent: cfg.UserAgent,
		},
	}
}
