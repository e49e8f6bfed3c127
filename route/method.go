// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package route

import (
	"fmt"
	"net/http"
	"strings"
)

// A Method is an HTTP method understood by the Discord REST API. Each
// Method maps to exactly one net/http method string.
type Method int

const (
	// GET is the zero value so that a zero Route is a read.
	GET Method = iota
	POST
	PUT
	PATCH
	DELETE
	HEAD
	OPTIONS
	numMethods
)

var methodNames = [numMethods]string{
	GET:     http.MethodGet,
	POST:    http.MethodPost,
	PUT:     http.MethodPut,
	PATCH:   http.MethodPatch,
	DELETE:  http.MethodDelete,
	HEAD:    http.MethodHead,
	OPTIONS: http.MethodOptions,
}

// String returns the net/http method string for m, for example "GET"
// or "PATCH". An out of range Method returns "Method(n)".
func (m Method) String() string {
	if m < 0 || m >= numMethods {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod parses an HTTP method string, case-insensitively.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(s, name) {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("cordhttp/route: unsupported method %q", s)
}
