// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"net/url"
)

var template, _ = http.NewRequest("GET", "", nil)

// A Transport starts outbound HTTP requests.
//
// NewRequest returns a new request for the given method and URL. The
// request may already carry headers the transport manages itself; the
// materialization logic only ever adds headers the transport left
// unset, and never overwrites one it set.
//
// NewRequest must return a distinct request, with its own non-nil
// Header, on every call. Implementations must be safe for concurrent
// use by multiple goroutines.
type Transport interface {
	NewRequest(ctx context.Context, method string, u *url.URL) (*http.Request, error)
}

// The TransportFunc type is an adapter to allow the use of ordinary
// functions as a Transport.
type TransportFunc func(ctx context.Context, method string, u *url.URL) (*http.Request, error)

// NewRequest calls f(ctx, method, u).
func (f TransportFunc) NewRequest(ctx context.Context, method string, u *url.URL) (*http.Request, error) {
	return f(ctx, method, u)
}

// DefaultTransport starts plain net/http requests which carry no
// headers of their own.
var DefaultTransport Transport = TransportFunc(newRequest)

func newRequest(ctx context.Context, method string, u *url.URL) (*http.Request, error) {
	r := template.WithContext(ctx)
	r.Method = method
	r.URL = u
	r.Host = u.Host
	r.Header = make(http.Header)
	return r, nil
}
