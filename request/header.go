// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const redacted = "[redacted]"

// canonicalClone copies h into a new header keyed by canonical names,
// leaving room for extra more names. Every name and value is validated.
func canonicalClone(h http.Header, extra int) (http.Header, error) {
	c := make(http.Header, len(h)+extra)
	for k, vs := range h {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, invalidHeader(k, ErrHeaderName)
		}
		ck := http.CanonicalHeaderKey(k)
		for _, v := range vs {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, invalidHeader(ck, ErrHeaderValue)
			}
		}
		c[ck] = append(c[ck], vs...)
	}
	return c, nil
}

// set replaces the values of the canonical name k with the single
// value v, which must be a valid field value.
func set(h http.Header, k, v string) error {
	if !httpguts.ValidHeaderFieldValue(v) {
		return invalidHeader(k, ErrHeaderValue)
	}
	h[k] = []string{v}
	return nil
}

// fill copies into dst every name in src that dst has no entry for.
// Names already present in dst, under any letter case, are left
// untouched.
func fill(dst, src http.Header) {
	present := make(map[string]bool, len(dst))
	for k := range dst {
		present[strings.ToLower(k)] = true
	}
	for k, vs := range src {
		if present[strings.ToLower(k)] {
			continue
		}
		dst[k] = append([]string(nil), vs...)
	}
}

// Redact returns a copy of h in which the Authorization value, if any,
// is replaced by a placeholder. Use it before logging or printing a
// materialized request.
func Redact(h http.Header) http.Header {
	c := h.Clone()
	if _, ok := c[headerAuthorization]; ok {
		c[headerAuthorization] = []string{redacted}
	}
	return c
}
