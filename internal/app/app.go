// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package app assembles the web front-end with fx: configuration and logger
// are supplied by the caller, everything else is constructed here and
// started or stopped through the fx lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/pdiddy/scopus-search/internal/history"
	"github.com/pdiddy/scopus-search/internal/httputil"
	"github.com/pdiddy/scopus-search/internal/scopus"
	"github.com/pdiddy/scopus-search/internal/search"
	"github.com/pdiddy/scopus-search/internal/session"
	"github.com/pdiddy/scopus-search/internal/web"
	"github.com/pdiddy/scopus-search/pkg/types"
)

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 10 * time.Second

// SearchModule provides the Scopus client and the search handler.
var SearchModule = fx.Module("search",
	fx.Provide(
		NewHTTPClient,
		NewScopusClient,
		NewSearchHandler,
	),
)

// WebModule provides the flash store, history, and HTTP server.
var WebModule = fx.Module("web",
	fx.Provide(
		NewFlashStore,
		NewHistoryStore,
		web.NewServer,
	),
	fx.Invoke(StartServer),
)

// Options returns the full option set for cfg and log.
func Options(cfg types.AppConfig, log *zap.Logger) fx.Option {
	return fx.Options(
		fx.Supply(cfg, log),
		SearchModule,
		WebModule,
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
	)
}

// New returns the application. Run it with app.Run or Start/Stop.
func New(cfg types.AppConfig, log *zap.Logger, extra ...fx.Option) *fx.App {
	return fx.New(append([]fx.Option{Options(cfg, log)}, extra...)...)
}

// NewHTTPClient builds the outbound client for the Scopus API.
func NewHTTPClient(cfg types.AppConfig, log *zap.Logger) *http.Client {
	return httputil.NewClient(cfg.Scopus.HTTPConfig, log.Named("http"))
}

// NewScopusClient builds the Scopus API client.
func NewScopusClient(hc *http.Client, cfg types.AppConfig) *scopus.Client {
	return scopus.NewClient(hc, cfg.Scopus)
}

// NewSearchHandler builds the search handler over the Scopus client.
func NewSearchHandler(c *scopus.Client, log *zap.Logger) *search.Handler {
	return search.NewHandler(c, log.Named("search").Sugar())
}

// NewFlashStore builds the signed flash-message store.
func NewFlashStore(cfg types.AppConfig) (*session.FlashStore, error) {
	fs, err := session.NewFlashStore(cfg.Server.SessionSecret)
	if err != nil {
		return nil, err
	}
	return fs.WithSecureCookies(cfg.Server.SecureCookies), nil
}

// NewHistoryStore opens the history database, or returns nil when
// server.history_path is empty.
func NewHistoryStore(lc fx.Lifecycle, cfg types.AppConfig, log *zap.Logger) (web.HistoryStore, error) {
	if cfg.Server.HistoryPath == "" {
		log.Info("search history disabled")
		return nil, nil
	}
	store, err := history.NewStore(cfg.Server.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("opening search history: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	log.Info("search history enabled", zap.String("path", cfg.Server.HistoryPath))
	return store, nil
}

// StartServer binds the listen address on start and shuts the server down
// gracefully on stop.
func StartServer(lc fx.Lifecycle, srv *web.Server, cfg types.AppConfig, log *zap.Logger) {
	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			lis, err := net.Listen("tcp", httpSrv.Addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", httpSrv.Addr, err)
			}
			log.Info("http server listening", zap.String("addr", lis.Addr().String()))
			go func() {
				if err := httpSrv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down http server")
			ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
			defer cancel()
			return httpSrv.Shutdown(ctx)
		},
	})
}
