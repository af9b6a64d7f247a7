// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scopus-search/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewStoreReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), Entry{Query: "graphene", Page: 1, QuotaRemaining: "9"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecordAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	for i, q := range []string{"graphene", "perovskite", "topological insulator"} {
		id, err := s.Record(ctx, Entry{
			Query:          q,
			Page:           1,
			TotalResults:   100 * (i + 1),
			QuotaRemaining: "19999",
			SearchedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "topological insulator", got[0].Query)
	assert.Equal(t, "perovskite", got[1].Query)
	assert.Equal(t, 300, got[0].TotalResults)
	assert.True(t, base.Add(2*time.Minute).Equal(got[0].SearchedAt))
}

func TestRecentDefaultLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for i := 0; i < DefaultLimit+5; i++ {
		_, err := s.Record(ctx, Entry{Query: "q", Page: 1, QuotaRemaining: types.Unknown})
		require.NoError(t, err)
	}
	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLimit)
}

func TestRecentEmpty(t *testing.T) {
	got, err := testStore(t).Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecordStampsMissingTime(t *testing.T) {
	s := testStore(t)
	before := time.Now().Add(-time.Second)
	_, err := s.Record(context.Background(), Entry{Query: "q", Page: 1, QuotaRemaining: "1"})
	require.NoError(t, err)

	got, err := s.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].SearchedAt.After(before))
}

func TestFromResult(t *testing.T) {
	at := time.Date(2026, 3, 14, 16, 0, 0, 0, time.FixedZone("CET", 3600))
	e := FromResult(types.SearchResult{
		Query:        "graphene",
		Page:         2,
		TotalResults: 25,
		ErrorKind:    "rate_limited",
		Quota:        types.QuotaInfo{Limit: "20000", Remaining: "0", ResetTime: "x"},
	}, at)

	assert.Equal(t, Entry{
		Query:          "graphene",
		Page:           2,
		TotalResults:   25,
		ErrorKind:      "rate_limited",
		QuotaRemaining: "0",
		SearchedAt:     at.UTC(),
	}, e)
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Record(ctx, Entry{Query: "graphene", Page: 1, TotalResults: 7, QuotaRemaining: "42"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Export(ctx, &buf, 10))

	var got []Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "graphene", got[0].Query)
	assert.Equal(t, "42", got[0].QuotaRemaining)
	assert.NotContains(t, buf.String(), "error_kind")
}
