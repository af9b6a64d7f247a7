// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an append-only log of searches in SQLite. It never
// stores article contents or API keys.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scopus-search/pkg/types"
)

// DefaultLimit is used when Recent is called with a non-positive limit.
const DefaultLimit = 20

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one recorded search.
type Entry struct {
	ID             int64     `json:"id" yaml:"id"`
	Query          string    `json:"query" yaml:"query"`
	Page           int       `json:"page" yaml:"page"`
	TotalResults   int       `json:"total_results" yaml:"total_results"`
	ErrorKind      string    `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	QuotaRemaining string    `json:"quota_remaining" yaml:"quota_remaining"`
	SearchedAt     time.Time `json:"searched_at" yaml:"searched_at"`
}

// FromResult summarises r as an entry stamped at.
func FromResult(r types.SearchResult, at time.Time) Entry {
	return Entry{
		Query:          r.Query,
		Page:           r.Page,
		TotalResults:   r.TotalResults,
		ErrorKind:      r.ErrorKind,
		QuotaRemaining: r.Quota.Remaining,
		SearchedAt:     at.UTC(),
	}
}

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at path, creating parent
// directories and the schema as needed.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			page INTEGER NOT NULL,
			total_results INTEGER NOT NULL,
			error_kind TEXT NOT NULL DEFAULT '',
			quota_remaining TEXT NOT NULL,
			searched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_searched_at ON searches(searched_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends e and returns its row id.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	at := e.SearchedAt
	if at.IsZero() {
		at = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (query, page, total_results, error_kind, quota_remaining, searched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Query, e.Page, e.TotalResults, e.ErrorKind, e.QuotaRemaining,
		at.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("recording search: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading row id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, page, total_results, error_kind, quota_remaining, searched_at
		 FROM searches ORDER BY searched_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.ID, &e.Query, &e.Page, &e.TotalResults, &e.ErrorKind, &e.QuotaRemaining, &ts); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.SearchedAt, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing searched_at %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Export writes up to limit recent entries to w as YAML.
func (s *Store) Export(ctx context.Context, w io.Writer, limit int) error {
	entries, err := s.Recent(ctx, limit)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return enc.Close()
}
