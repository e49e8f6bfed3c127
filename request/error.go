// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
)

// A Kind classifies the reason a Descriptor could not be materialized
// into an HTTP request.
type Kind int

const (
	// InvalidURL indicates the rendered route path, after any proxy
	// rewrite, is not a valid absolute URL.
	InvalidURL Kind = iota + 1
	// InvalidHeader indicates a header name or value, such as the
	// authentication token, cannot be encoded as an HTTP header.
	InvalidHeader
	// TransportFailed indicates the Transport refused to start the
	// request.
	TransportFailed
)

func (k Kind) String() string {
	switch k {
	case InvalidURL:
		return "invalid URL"
	case InvalidHeader:
		return "invalid header"
	case TransportFailed:
		return "transport"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrNotAbsolute is wrapped by an InvalidURL Error when the path
	// parses as a URL but lacks a scheme or host.
	ErrNotAbsolute = errors.New("cordhttp/request: URL is not absolute")

	// ErrHeaderName is wrapped by an InvalidHeader Error when a header
	// name is not a valid HTTP token.
	ErrHeaderName = errors.New("cordhttp/request: invalid header name")

	// ErrHeaderValue is wrapped by an InvalidHeader Error when a header
	// value contains bytes not allowed in an HTTP field value.
	ErrHeaderValue = errors.New("cordhttp/request: invalid header value")
)

// An Error is returned when a Descriptor cannot be materialized.
//
// Materialization errors indicate a malformed route, token, header, or
// proxy rather than a transient condition, so they are never retried.
type Error struct {
	// Kind is the failure class.
	Kind Kind

	// Header names the offending header for InvalidHeader errors. It is
	// empty for other kinds.
	Header string

	// Err is the underlying cause. It is never nil.
	Err error
}

func (e *Error) Error() string {
	if e.Header != "" {
		return fmt.Sprintf("cordhttp/request: %s %q: %v", e.Kind, e.Header, e.Err)
	}
	return fmt.Sprintf("cordhttp/request: %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsInvalidURL reports whether err, or any error it wraps, is an
// InvalidURL Error.
func IsInvalidURL(err error) bool {
	return isKind(err, InvalidURL)
}

// IsInvalidHeader reports whether err, or any error it wraps, is an
// InvalidHeader Error.
func IsInvalidHeader(err error) bool {
	return isKind(err, InvalidHeader)
}

func isKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func invalidHeader(name string, err error) *Error {
	return &Error{Kind: InvalidHeader, Header: name, Err: err}
}
