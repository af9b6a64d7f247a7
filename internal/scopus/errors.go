// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies why a search did not produce results.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindRateLimited
	KindQuotaExceeded
	KindBadRequest
	KindAuthentication
	KindAuthorization
	KindUnexpectedStatus
	KindTransport
)

var kindNames = map[Kind]string{
	KindNone:             "",
	KindValidation:       "validation",
	KindRateLimited:      "rate_limited",
	KindQuotaExceeded:    "quota_exceeded",
	KindBadRequest:       "bad_request",
	KindAuthentication:   "authentication",
	KindAuthorization:    "authorization",
	KindUnexpectedStatus: "unexpected_status",
	KindTransport:        "transport",
}

// String returns the snake_case kind name; KindNone is "".
func (k Kind) String() string {
	return kindNames[k]
}

// statusKinds maps upstream HTTP status codes to kinds. Codes not listed
// are KindUnexpectedStatus.
var statusKinds = map[int]Kind{
	http.StatusTooManyRequests: KindRateLimited,
	http.StatusBadRequest:      KindBadRequest,
	http.StatusUnauthorized:    KindAuthentication,
	http.StatusForbidden:       KindAuthorization,
}

// quotaExceededStatus is the X-ELS-Status value Elsevier sends once the
// weekly quota is spent, as opposed to per-second throttling.
const quotaExceededStatus = "QUOTA_EXCEEDED"

// StatusError is returned for a non-2xx response from the API.
type StatusError struct {
	Code int
	// Status is the status line text, e.g. "429 Too Many Requests".
	Status string
	// ELSStatus is the X-ELS-Status header value, if any.
	ELSStatus string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return "scopus API returned HTTP " + e.Status
	}
	return fmt.Sprintf("scopus API returned HTTP %d", e.Code)
}

// Kind classifies the status code through statusKinds.
func (e *StatusError) Kind() Kind {
	k, ok := statusKinds[e.Code]
	if !ok {
		return KindUnexpectedStatus
	}
	if k == KindRateLimited && strings.Contains(strings.ToUpper(e.ELSStatus), quotaExceededStatus) {
		return KindQuotaExceeded
	}
	return k
}

// ErrEmptyQuery is returned when the search text is blank.
var ErrEmptyQuery = errors.New("search query is empty")

// Classify maps an error from Client.Search (or ErrEmptyQuery) to a Kind.
// Anything that is not a StatusError is a transport failure.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrEmptyQuery) {
		return KindValidation
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Kind()
	}
	return KindTransport
}

// Message returns the user-facing text for a failed search.
func Message(kind Kind, err error) string {
	switch kind {
	case KindNone:
		return ""
	case KindValidation:
		return "Please enter a search query."
	case KindQuotaExceeded:
		return "The API quota has been exhausted. Please try again after the quota resets."
	case KindRateLimited:
		return "Request rate limit exceeded. Please try again later."
	case KindBadRequest:
		return "Invalid request. Please check your search query."
	case KindAuthentication:
		return "Authentication failed. Please check your API key."
	case KindAuthorization:
		return "Authorization failed. You do not have access to this resource."
	case KindUnexpectedStatus:
		return fmt.Sprintf("The search service returned an error: %v", err)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}
