// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
)

const badBodyTypeMsg = "cordhttp/request: invalid type (for body use nil, " +
	"string, []byte, json.RawMessage, io.Reader or io.ReadCloser)"

// BodyBytes converts a generic body parameter to a byte slice suitable
// for Builder.Body.
//
// The conversion logic is:
//
// • nil converts to a nil byte slice, meaning no body.
//
// • A []byte or json.RawMessage converts to itself.
//
// • A string converts to its bytes.
//
// • An io.Reader is read to the end, and closed if it is also an
// io.Closer. A read or close error is returned with a nil byte slice.
//
// • Any other type results in an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case json.RawMessage:
		return x, nil
	case io.ReadCloser:
		b, err := ioutil.ReadAll(x)
		if err != nil {
			return nil, err
		}
		if err = x.Close(); err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(ioutil.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}

// JSONBody encodes v as JSON for use as a request body. Discord
// expects JSON bodies unless a route says otherwise, which is why
// DefaultContentType is application/json.
func JSONBody(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cordhttp/request: encode JSON body: %w", err)
	}
	return b, nil
}
