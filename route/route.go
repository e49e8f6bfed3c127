// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package route

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// BaseURL is the fixed base URL of the production Discord service.
	// Every rendered API path starts with it, and it is the substring
	// replaced when a request is sent through a forwarding proxy.
	BaseURL = "https://discord.com/"

	// APIVersion is the Discord REST API version targeted by the routes
	// in this package.
	APIVersion = 9
)

var apiPrefix = BaseURL + "api/v" + strconv.Itoa(APIVersion)

// ErrParamCount is returned by New when the number of parameters does
// not match the number of placeholders in the path template.
var ErrParamCount = errors.New("cordhttp/route: parameter count mismatch")

// Info is the interface that wraps the Deconstruct method.
//
// Deconstruct returns the HTTP method of a logical API operation, the
// path template it was rendered from (for example
// "/channels/{channel.id}/messages"), and the rendered path. The
// rendered path is normally an absolute URL which embeds BaseURL.
//
// Implementations must be safe to call concurrently and must return the
// same values on every call.
type Info interface {
	Deconstruct() (m Method, template, path string)
}

// A Route is a rendered logical API operation. It implements Info.
//
// The zero value is a GET with an empty path, which is not a usable
// route; construct a Route with New or Raw.
type Route struct {
	// Method is the HTTP method of the operation.
	Method Method

	// Template is the path template the route was rendered from,
	// relative to the versioned API root.
	Template string

	// Path is the rendered path.
	Path string
}

// Deconstruct returns the route's method, template, and path.
func (r Route) Deconstruct() (Method, string, string) {
	return r.Method, r.Template, r.Path
}

// String returns the method and path separated by a space.
func (r Route) String() string {
	return r.Method.String() + " " + r.Path
}

// New renders a route from a path template.
//
// Each "{name}" placeholder in template is replaced, in order, by the
// next value in params after path-escaping it. New fails with
// ErrParamCount if the number of placeholders differs from len(params),
// and with a descriptive error if a placeholder is left unterminated.
//
// If template is relative (the usual case), the rendered path is
// prefixed with the versioned API root under BaseURL, so that
// New(GET, "/gateway") renders "https://discord.com/api/v9/gateway".
// Absolute templates are rendered as-is.
func New(m Method, template string, params ...interface{}) (Route, error) {
	var b strings.Builder
	rest := template
	i := 0
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return Route{}, fmt.Errorf("cordhttp/route: unterminated placeholder in %q", template)
		}
		if i >= len(params) {
			return Route{}, ErrParamCount
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(fmt.Sprint(params[i])))
		i++
		rest = rest[open+end+1:]
	}
	if i != len(params) {
		return Route{}, ErrParamCount
	}

	path := b.String()
	if !isAbs(template) {
		path = apiPrefix + path
	}

	return Route{
		Method:   m,
		Template: template,
		Path:     path,
	}, nil
}

// MustNew is like New but panics if the route cannot be rendered. It
// is intended for templates which are compile-time constants.
func MustNew(m Method, template string, params ...interface{}) Route {
	r, err := New(m, template, params...)
	if err != nil {
		panic(err)
	}
	return r
}

// Raw returns a route whose template and rendered path are both path,
// verbatim. Use Raw when the path was rendered elsewhere.
func Raw(m Method, path string) Route {
	return Route{
		Method:   m,
		Template: path,
		Path:     path,
	}
}

func isAbs(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
