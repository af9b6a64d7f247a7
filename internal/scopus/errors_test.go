// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusErrorKind(t *testing.T) {
	tests := []struct {
		code      int
		elsStatus string
		want      Kind
	}{
		{http.StatusTooManyRequests, "", KindRateLimited},
		{http.StatusTooManyRequests, "QUOTA_EXCEEDED - Quota Exceeded", KindQuotaExceeded},
		{http.StatusTooManyRequests, "quota_exceeded", KindQuotaExceeded},
		{http.StatusTooManyRequests, "THROTTLED", KindRateLimited},
		{http.StatusBadRequest, "", KindBadRequest},
		{http.StatusUnauthorized, "", KindAuthentication},
		{http.StatusForbidden, "", KindAuthorization},
		{http.StatusForbidden, "QUOTA_EXCEEDED", KindAuthorization},
		{http.StatusInternalServerError, "", KindUnexpectedStatus},
		{http.StatusServiceUnavailable, "", KindUnexpectedStatus},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d %s", tt.code, tt.elsStatus), func(t *testing.T) {
			e := &StatusError{Code: tt.code, ELSStatus: tt.elsStatus}
			assert.Equal(t, tt.want, e.Kind())
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindNone, Classify(nil))
	assert.Equal(t, KindValidation, Classify(ErrEmptyQuery))
	assert.Equal(t, KindAuthentication, Classify(fmt.Errorf("wrapped: %w", &StatusError{Code: 401})))
	assert.Equal(t, KindTransport, Classify(errors.New("connection reset by peer")))
}

func TestMessage(t *testing.T) {
	quota := Message(KindQuotaExceeded, nil)
	throttle := Message(KindRateLimited, nil)
	assert.Contains(t, quota, "quota")
	assert.NotContains(t, throttle, "quota")
	assert.NotEqual(t, quota, throttle)

	assert.Contains(t, Message(KindAuthentication, nil), "Authentication failed")
	assert.Contains(t, Message(KindAuthorization, nil), "Authorization failed")
	assert.Contains(t, Message(KindBadRequest, nil), "Invalid request")
	assert.Contains(t, Message(KindValidation, nil), "enter a search query")

	err := &StatusError{Code: 502, Status: "502 Bad Gateway"}
	assert.Contains(t, Message(KindUnexpectedStatus, err), "502 Bad Gateway")
	assert.Contains(t, Message(KindTransport, errors.New("dial tcp: refused")), "dial tcp: refused")
	assert.Equal(t, "", Message(KindNone, nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "", KindNone.String())
	assert.Equal(t, "quota_exceeded", KindQuotaExceeded.String())
	assert.Equal(t, "transport", KindTransport.String())
}
