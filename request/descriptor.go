// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gogama/cordhttp/route"
)

const nilCtxMsg = "cordhttp/request: nil context"

// A Descriptor is the frozen description of a Discord API request: a
// route, an optional body, and an optional explicit header set.
//
// A Descriptor is obtained from Builder.Build. It may be materialized
// into a concrete http.Request any number of times, for example once
// per retry attempt, each time with a possibly different token or
// proxy. Materialization never modifies the Descriptor, so a single
// Descriptor may be materialized concurrently by multiple goroutines.
//
// The Descriptor owns copies of its body and header set. Its parts can
// only be replaced wholesale, using SetBody, ClearBody, SetHeader, and
// SetRoute; the accessors hand out copies. The setters must not be
// called concurrently with any other method.
type Descriptor struct {
	body    []byte
	hasBody bool
	header  http.Header
	route   route.Info
}

// Body returns a copy of the request body, and whether a body is
// present at all. A present body may have zero length.
func (d *Descriptor) Body() ([]byte, bool) {
	b, _ := copyBody(d.body)
	return b, d.hasBody
}

// Header returns a copy of the explicit header set, or nil if the
// Descriptor has none.
func (d *Descriptor) Header() http.Header {
	return d.header.Clone()
}

// Route returns the route.
func (d *Descriptor) Route() route.Info {
	return d.route
}

// SetBody replaces the body with a copy of b. A nil b clears it.
func (d *Descriptor) SetBody(b []byte) {
	d.body, d.hasBody = copyBody(b)
}

// ClearBody removes the body.
func (d *Descriptor) ClearBody() {
	d.body, d.hasBody = nil, false
}

// SetHeader replaces the explicit header set with a copy of h. A nil h
// removes it, so that the default header set is used.
func (d *Descriptor) SetHeader(h http.Header) {
	d.header = h.Clone()
}

// SetRoute replaces the route.
func (d *Descriptor) SetRoute(r route.Info) {
	d.route = r
}

// Materialize wraps MaterializeContext using the background context.
func (d *Descriptor) Materialize(t Transport, token string, proxy *url.URL) (*http.Request, error) {
	return d.MaterializeContext(context.Background(), t, token, proxy)
}

// MaterializeContext returns a new http.Request built from the
// Descriptor, an authentication token, and an optional forwarding
// proxy. A nil Transport means DefaultTransport; a nil proxy means the
// request goes straight to Discord.
//
// The request is built as follows:
//
// • The route's rendered path is taken. If proxy is non-nil, every
// occurrence of route.BaseURL in the path is replaced by the proxy URL
// (with a trailing slash), so that the request is addressed to the
// proxy while keeping its API path and query.
//
// • The path is parsed as an absolute URL. Failure results in an
// InvalidURL Error.
//
// • The Transport starts a request with the route method and the URL,
// and the body, if present, is attached verbatim.
//
// • A working header set is computed. It starts from the explicit
// header set if there is one, or else from a User-Agent of UserAgent.
// Authorization is then set to token, replacing any explicit value.
// Content-Type is set to DefaultContentType only if a body is present
// and the set names no content type. Content-Length is set to the body
// length, or 0 without a body, replacing any explicit value. A name or
// value which is not valid in an HTTP header results in an
// InvalidHeader Error.
//
// • The working set is merged into the request's own header so that
// only names the Transport left unset are filled in. Headers managed by
// the Transport always win.
//
// Either a complete request or an error is returned, never both.
func (d *Descriptor) MaterializeContext(ctx context.Context, t Transport, token string, proxy *url.URL) (*http.Request, error) {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	if t == nil {
		t = DefaultTransport
	}

	m, _, path := d.route.Deconstruct()
	if proxy != nil {
		path = rewrite(path, proxy)
	}

	u, err := parseAbs(path)
	if err != nil {
		return nil, err
	}

	r, err := t.NewRequest(ctx, m.String(), u)
	if err != nil {
		return nil, &Error{Kind: TransportFailed, Err: err}
	}
	if d.hasBody {
		attachBody(r, d.body)
	}

	h, err := d.workingHeader(token)
	if err != nil {
		return nil, err
	}

	if r.Header == nil {
		r.Header = make(http.Header, len(h))
	}
	fill(r.Header, h)

	return r, nil
}

func (d *Descriptor) workingHeader(token string) (http.Header, error) {
	var h http.Header
	if d.header != nil {
		var err error
		if h, err = canonicalClone(d.header, 3); err != nil {
			return nil, err
		}
	} else {
		h = make(http.Header, 4)
		h[headerUserAgent] = []string{UserAgent}
	}

	if err := set(h, headerAuthorization, token); err != nil {
		return nil, err
	}

	// Discord rejects a request that declares a content type but sends
	// no body.
	if _, ok := h[headerContentType]; d.hasBody && !ok {
		h[headerContentType] = []string{DefaultContentType}
	}

	if err := set(h, headerContentLength, strconv.Itoa(len(d.body))); err != nil {
		return nil, err
	}

	return h, nil
}

func rewrite(path string, proxy *url.URL) string {
	base := proxy.String()
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return strings.ReplaceAll(path, route.BaseURL, base)
}

func parseAbs(path string) (*url.URL, error) {
	u, err := url.Parse(path)
	if err != nil {
		return nil, &Error{Kind: InvalidURL, Err: err}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &Error{Kind: InvalidURL, Err: ErrNotAbsolute}
	}
	u.Host = removeEmptyPort(u.Host)
	return u, nil
}

func attachBody(r *http.Request, body []byte) {
	r.ContentLength = int64(len(body))
	if len(body) == 0 {
		r.Body = http.NoBody
		r.GetBody = func() (io.ReadCloser, error) {
			return http.NoBody, nil
		}
		return
	}
	r.Body = ioutil.NopCloser(bytes.NewReader(body))
	r.GetBody = func() (io.ReadCloser, error) {
		return ioutil.NopCloser(bytes.NewReader(body)), nil
	}
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
