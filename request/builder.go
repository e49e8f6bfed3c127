// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"

	"github.com/gogama/cordhttp/route"
)

const builtMsg = "cordhttp/request: builder already built"

// A Builder accumulates the parts of a request Descriptor.
//
// Setters replace one whole part and return the same Builder so that
// calls may be chained. A Builder is single-use: once Build has been
// called, any further call to a setter or to Build panics.
//
// Builders do no validation. Problems with the route, body, or headers
// are reported when the resulting Descriptor is materialized.
type Builder struct {
	body    []byte
	hasBody bool
	header  http.Header
	route   route.Info
	built   bool
}

// NewBuilder returns a Builder for the given route, with no body and no
// explicit headers.
func NewBuilder(r route.Info) *Builder {
	return &Builder{route: r}
}

// Body sets the request body to a copy of b. A nil b clears the body;
// a non-nil empty b is a present, zero-length body.
func (b *Builder) Body(body []byte) *Builder {
	b.check()
	b.body, b.hasBody = copyBody(body)
	return b
}

// Headers replaces the explicit header set with a copy of h. A nil h
// clears it, so that the default header set will be used.
func (b *Builder) Headers(h http.Header) *Builder {
	b.check()
	b.header = h.Clone()
	return b
}

// Route replaces the route.
func (b *Builder) Route(r route.Info) *Builder {
	b.check()
	b.route = r
	return b
}

// Build consumes the Builder and returns a Descriptor holding exactly
// the parts last set.
func (b *Builder) Build() *Descriptor {
	b.check()
	b.built = true
	d := &Descriptor{
		body:    b.body,
		hasBody: b.hasBody,
		header:  b.header,
		route:   b.route,
	}
	b.body, b.header, b.route = nil, nil, nil
	return d
}

func (b *Builder) check() {
	if b.built {
		panic(builtMsg)
	}
}

func copyBody(body []byte) ([]byte, bool) {
	if body == nil {
		return nil, false
	}
	c := make([]byte, len(body))
	copy(c, body)
	return c, true
}
