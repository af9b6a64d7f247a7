// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() AppConfig {
	return AppConfig{
		Scopus: ScopusConfig{Endpoint: DefaultEndpoint, APIKey: "k", PageSize: DefaultPageSize},
		Server: ServerConfig{Addr: ":8080", SessionSecret: "s"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		is     error
		errMsg string
	}{
		{name: "valid", mutate: func(*AppConfig) {}},
		{name: "missing api key", mutate: func(c *AppConfig) { c.Scopus.APIKey = "" }, is: ErrMissingAPIKey},
		{name: "empty endpoint", mutate: func(c *AppConfig) { c.Scopus.Endpoint = "" }, errMsg: "endpoint is empty"},
		{name: "zero page size", mutate: func(c *AppConfig) { c.Scopus.PageSize = 0 }, errMsg: "page size"},
		{name: "session secret not needed", mutate: func(c *AppConfig) { c.Server.SessionSecret = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			switch {
			case tt.is != nil:
				assert.ErrorIs(t, err, tt.is)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := AppConfig{}
	err := cfg.ValidateServer()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.ErrorIs(t, err, ErrMissingSessionSecret)
	assert.Contains(t, err.Error(), "page size")
}

func TestValidateServer(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.ValidateServer())

	cfg.Server.SessionSecret = ""
	assert.ErrorIs(t, cfg.ValidateServer(), ErrMissingSessionSecret)
}

func TestSearchResultPaging(t *testing.T) {
	tests := []struct {
		page, total    int
		hasPrev, hasNx bool
	}{
		{1, 0, false, false},
		{1, 1, false, false},
		{1, 3, false, true},
		{2, 3, true, true},
		{3, 3, true, false},
	}
	for _, tt := range tests {
		r := SearchResult{Page: tt.page, TotalPages: tt.total}
		assert.Equal(t, tt.hasPrev, r.HasPrev(), "page %d of %d", tt.page, tt.total)
		assert.Equal(t, tt.hasNx, r.HasNext(), "page %d of %d", tt.page, tt.total)
	}
}

func TestSearchResultOffset(t *testing.T) {
	assert.Equal(t, 0, SearchResult{Page: 1, PageSize: 25}.Offset())
	assert.Equal(t, 0, SearchResult{}.Offset())
	assert.Equal(t, 20, SearchResult{Page: 3}.Offset(), "zero page size uses the default")
	assert.Equal(t, 50, SearchResult{Page: 3, PageSize: 25}.Offset())
}

func TestFailedAndUnknownQuota(t *testing.T) {
	assert.False(t, SearchResult{}.Failed())
	assert.True(t, SearchResult{ErrorKind: "transport"}.Failed())
	assert.Equal(t, QuotaInfo{Limit: Unknown, Remaining: Unknown, ResetTime: Unknown}, UnknownQuota())
}
