package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed client call. Every error returned by this
// package is an *Error carrying exactly one kind, so callers have a single
// place to branch instead of per-call-site string matching.
type Kind int

const (
	// KindTransport covers network failures and unparseable responses.
	KindTransport Kind = iota
	// KindRejected covers non-2xx responses other than authorization
	// failures: validation errors, business-rule rejections such as the
	// debt ceiling, missing resources.
	KindRejected
	// KindUnauthorized covers 401/403 responses. The session layer demotes
	// itself when it sees one.
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Error is the uniform failure type for all client calls.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for transport failures
	Message string // backend message when one was supplied
	Err     error  // underlying cause, if any
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	case e.Status != 0:
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return "request failed"
}

func (e *Error) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a client error caused by a
// rejected or missing credential.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

// IsRejected reports whether err is a non-auth backend rejection.
func IsRejected(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindRejected
}

func transportErr(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

// statusErr maps a non-2xx response to an *Error, pulling the message the
// backend put in its JSON body when there is one.
func statusErr(status int, body []byte) *Error {
	kind := KindRejected
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		kind = KindUnauthorized
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			msg = payload.Message
		} else if payload.Error != "" {
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
	}
	return &Error{Kind: kind, Status: status, Message: msg}
}
