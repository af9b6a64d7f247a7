// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/scopus-search/pkg/types"
)

// Response headers carrying quota information.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset"
	HeaderELSStatus     = "X-ELS-Status"
)

// ResetLayout formats the quota reset time.
const ResetLayout = "2006-01-02 15:04:05"

// ParseQuota reads the rate-limit headers. Absent or non-numeric values
// become types.Unknown. The reset timestamp (unix seconds) is rendered in loc;
// a nil loc means time.Local.
func ParseQuota(h http.Header, loc *time.Location) types.QuotaInfo {
	q := types.QuotaInfo{
		Limit:     headerInt(h, HeaderRateLimit),
		Remaining: headerInt(h, HeaderRateRemaining),
		ResetTime: types.Unknown,
	}
	if v := headerInt(h, HeaderRateReset); v != types.Unknown {
		secs, _ := strconv.ParseInt(v, 10, 64)
		if loc == nil {
			loc = time.Local
		}
		q.ResetTime = time.Unix(secs, 0).In(loc).Format(ResetLayout)
	}
	return q
}

func headerInt(h http.Header, key string) string {
	v := strings.TrimSpace(h.Get(key))
	if v == "" {
		return types.Unknown
	}
	if _, err := strconv.ParseInt(v, 10, 64); err != nil {
		return types.Unknown
	}
	return v
}
