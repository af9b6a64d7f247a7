// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry copies cookies set on rec onto a fresh request.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestNewFlashStore(t *testing.T) {
	_, err := NewFlashStore("")
	assert.ErrorIs(t, err, ErrNoSecret)

	s, err := NewFlashStore("k")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestAddThenPop(t *testing.T) {
	s, err := NewFlashStore("secret")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, s.Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), "Please enter a search query."))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	popRec := httptest.NewRecorder()
	got := s.Pop(popRec, carry(rec))
	assert.Equal(t, []string{"Please enter a search query."}, got)

	cleared := popRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestAddAccumulates(t *testing.T) {
	s, err := NewFlashStore("secret")
	require.NoError(t, err)

	first := httptest.NewRecorder()
	require.NoError(t, s.Add(first, httptest.NewRequest(http.MethodGet, "/", nil), "one"))

	second := httptest.NewRecorder()
	require.NoError(t, s.Add(second, carry(first), "two"))

	assert.Equal(t, []string{"one", "two"}, s.Pop(httptest.NewRecorder(), carry(second)))
}

func TestPopWithoutCookie(t *testing.T) {
	s, err := NewFlashStore("secret")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.Nil(t, s.Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())
}

func TestPopRejectsForeignSignature(t *testing.T) {
	issuer, err := NewFlashStore("secret-a")
	require.NoError(t, err)
	reader, err := NewFlashStore("secret-b")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, issuer.Add(rec, httptest.NewRequest(http.MethodGet, "/", nil), "hello"))

	assert.Nil(t, reader.Pop(httptest.NewRecorder(), carry(rec)))
}

func TestPopRejectsTamperedValue(t *testing.T) {
	s, err := NewFlashStore("secret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not.a.jwt"})
	assert.Nil(t, s.Pop(httptest.NewRecorder(), req))
}

func TestPopRejectsExpired(t *testing.T) {
	s, err := NewFlashStore("secret")
	require.NoError(t, err)

	issued := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	rec := httptest.NewRecorder()
	require.NoError(t, s.Add(rec, httptest.NewRequest(http.MethodGet, "/", nil), "stale"))

	s.now = func() time.Time { return issued.Add(FlashTTL + time.Minute) }
	assert.Nil(t, s.Pop(httptest.NewRecorder(), carry(rec)))
}

func TestSecureCookies(t *testing.T) {
	s, err := NewFlashStore("secret")
	require.NoError(t, err)
	s.WithSecureCookies(true)

	rec := httptest.NewRecorder()
	require.NoError(t, s.Add(rec, httptest.NewRequest(http.MethodGet, "/", nil), "x"))
	assert.True(t, rec.Result().Cookies()[0].Secure)
}
