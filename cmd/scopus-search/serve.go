// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scopus-search/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front-end",
	Long: `Serve starts the HTTP server with the search form at /, the JSON API at
/api/search, and, when server.history_path is set, recent searches at /history.
It stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().String("history", "", "SQLite file for search history (empty disables)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.history_path", serveCmd.Flags().Lookup("history"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := appConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	fxApp := app.New(cfg, logger)
	if err := fxApp.Err(); err != nil {
		return err
	}
	if err := fxApp.Start(cmd.Context()); err != nil {
		return err
	}
	<-fxApp.Done()

	ctx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
	defer cancel()
	return fxApp.Stop(ctx)
}
