// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session carries one-shot flash messages across a redirect in a
// signed cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the cookie holding pending flash messages.
	CookieName = "scopus_flash"

	// FlashTTL bounds how long an unread flash survives.
	FlashTTL = 5 * time.Minute

	issuer = "scopus-search"
)

// ErrNoSecret is returned when a store is built without a signing secret.
var ErrNoSecret = errors.New("session secret is empty")

type flashClaims struct {
	Messages []string `json:"msgs"`
	jwt.RegisteredClaims
}

// FlashStore signs flash messages with HS256 and stores them in a cookie.
type FlashStore struct {
	secret []byte
	now    func() time.Time
	secure bool
}

// NewFlashStore returns a store signing with secret.
func NewFlashStore(secret string) (*FlashStore, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &FlashStore{secret: []byte(secret), now: time.Now}, nil
}

// WithSecureCookies marks issued cookies Secure.
func (s *FlashStore) WithSecureCookies(secure bool) *FlashStore {
	s.secure = secure
	return s
}

// Add appends msg to the pending messages and rewrites the cookie.
func (s *FlashStore) Add(w http.ResponseWriter, r *http.Request, msg string) error {
	msgs := append(s.read(r), msg)

	now := s.now()
	claims := flashClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(FlashTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("signing flash cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(FlashTTL / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns pending messages and clears the cookie. A missing, tampered,
// or expired cookie yields no messages.
func (s *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []string {
	if _, err := r.Cookie(CookieName); err != nil {
		return nil
	}
	msgs := s.read(r)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return msgs
}

func (s *FlashStore) read(r *http.Request) []string {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	var claims flashClaims
	_, err = jwt.ParseWithClaims(c.Value, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil
	}
	return claims.Messages
}
