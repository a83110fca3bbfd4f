package playoh

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrAuthExpired is returned for any 401 response. Callers above the request
// layer decide what to do about it (clear the session, go to login).
var ErrAuthExpired = errors.New("playoh: authorization expired")

// Problem is the backend's problem-details payload.
type Problem struct {
	Type     string              `json:"type,omitempty"`
	Title    string              `json:"title,omitempty"`
	Status   int                 `json:"status,omitempty"`
	Detail   string              `json:"detail,omitempty"`
	Instance string              `json:"instance,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
	Message  string              `json:"message,omitempty"`
}

// APIError is a non-2xx response other than 401.
type APIError struct {
	StatusCode int
	Problem    Problem
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	// a body that is not problem JSON still yields a usable error
	_ = json.Unmarshal(body, &e.Problem)
	return e
}

func (e *APIError) Error() string {
	msg := e.Problem.Detail
	if msg == "" {
		msg = e.Problem.Title
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("playoh api: %d %s", e.StatusCode, msg)
}

// FieldErrors flattens the validation errors, ordered by field name.
func (p Problem) FieldErrors() []string {
	fields := make([]string, 0, len(p.Errors))
	for f := range p.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []string
	for _, f := range fields {
		out = append(out, p.Errors[f]...)
	}
	return out
}

// Message picks the text to show the user for err: the problem detail, else
// its title, else the joined field errors, else its message, else fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	p := apiErr.Problem
	switch {
	case p.Detail != "":
		return p.Detail
	case p.Title != "":
		return p.Title
	case len(p.FieldErrors()) > 0:
		return strings.Join(p.FieldErrors(), ", ")
	case p.Message != "":
		return p.Message
	}
	return fallback
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	if errors.Is(err, ErrAuthExpired) {
		return http.StatusUnauthorized
	}
	return 0
}
