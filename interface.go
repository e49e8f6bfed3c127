// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cordhttp

import (
	"context"

	"github.com/gogama/cordhttp/request"
	"github.com/gogama/cordhttp/route"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes a request descriptor and returns the final execution
// state (and error, if any). Client implements the Doer interface,
// and any other Doer implementation must behave substantially the same
// as Client.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(ctx context.Context, d *request.Descriptor) (*request.Execution, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Get issues a GET to the path of a route and returns the final
// execution state (and error, if any).
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(r route.Info) (*request.Execution, error)
}

// Deleter is the interface that wraps the basic Delete method.
//
// Any Doer can be used to emulate a Deleter via the Delete function.
type Deleter interface {
	Delete(r route.Info) (*request.Execution, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Post issues a POST with the given body to the path of a route and
// returns the final execution state (and error, if any). The body
// parameter may be nil for no body, or may be any of the types
// supported by request.BodyBytes.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(r route.Info, body interface{}) (*request.Execution, error)
}

// Putter is the interface that wraps the basic Put method.
//
// Any Doer can be used to emulate a Putter via the Put function.
type Putter interface {
	Put(r route.Info, body interface{}) (*request.Execution, error)
}

// Patcher is the interface that wraps the basic Patch method.
//
// Any Doer can be used to emulate a Patcher via the Patch function.
type Patcher interface {
	Patch(r route.Info, body interface{}) (*request.Execution, error)
}

// JSONPoster is the interface that wraps the basic PostJSON method.
//
// PostJSON issues a POST to the path of a route with the JSON encoding
// of a value as the body.
//
// Any Doer can be used to emulate a JSONPoster via the PostJSON
// function.
type JSONPoster interface {
	PostJSON(r route.Info, v interface{}) (*request.Execution, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups Do, all the convenience
// methods, and CloseIdleConnections.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Deleter
	Poster
	Putter
	Patcher
	JSONPoster
	IdleCloser
}

// Get uses the specified Doer to issue a GET to the path of r, using
// the same policies as d.Do.
//
// To send custom headers, use request.NewBuilder and d.Do.
func Get(d Doer, r route.Info) (*request.Execution, error) {
	return send(d, route.GET, r, nil, false)
}

// Delete uses the specified Doer to issue a DELETE to the path of r.
func Delete(d Doer, r route.Info) (*request.Execution, error) {
	return send(d, route.DELETE, r, nil, false)
}

// Post uses the specified Doer to issue a POST to the path of r.
//
// The body parameter may be nil for no body, or may be any of the types
// supported by request.BodyBytes, namely: string; []byte;
// json.RawMessage; io.Reader; and io.ReadCloser.
func Post(d Doer, r route.Info, body interface{}) (*request.Execution, error) {
	return sendBody(d, route.POST, r, body)
}

// Put uses the specified Doer to issue a PUT to the path of r. The body
// parameter is handled as for Post.
func Put(d Doer, r route.Info, body interface{}) (*request.Execution, error) {
	return sendBody(d, route.PUT, r, body)
}

// Patch uses the specified Doer to issue a PATCH to the path of r. The
// body parameter is handled as for Post.
func Patch(d Doer, r route.Info, body interface{}) (*request.Execution, error) {
	return sendBody(d, route.PATCH, r, body)
}

// PostJSON uses the specified Doer to issue a POST to the path of r with
// the JSON encoding of v as the body.
func PostJSON(d Doer, r route.Info, v interface{}) (*request.Execution, error) {
	b, err := request.JSONBody(v)
	if err != nil {
		return nil, err
	}
	return send(d, route.POST, r, b, true)
}

func sendBody(d Doer, m route.Method, r route.Info, body interface{}) (*request.Execution, error) {
	b, err := request.BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return send(d, m, r, b, body != nil)
}

func send(d Doer, m route.Method, r route.Info, body []byte, hasBody bool) (*request.Execution, error) {
	_, template, path := r.Deconstruct()
	b := request.NewBuilder(route.Route{Method: m, Template: template, Path: path})
	if hasBody {
		if body == nil {
			body = []byte{}
		}
		b.Body(body)
	}
	return d.Do(context.Background(), b.Build())
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("cordhttp: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(ctx context.Context, d *request.Descriptor) (*request.Execution, error) {
	return i.doer.Do(ctx, d)
}

func (i inflated) Get(r route.Info) (*request.Execution, error) {
	return Get(i.doer, r)
}

func (i inflated) Delete(r route.Info) (*request.Execution, error) {
	return Delete(i.doer, r)
}

func (i inflated) Post(r route.Info, body interface{}) (*request.Execution, error) {
	return Post(i.doer, r, body)
}

func (i inflated) Put(r route.Info, body interface{}) (*request.Execution, error) {
	return Put(i.doer, r, body)
}

func (i inflated) Patch(r route.Info, body interface{}) (*request.Execution, error) {
	return Patch(i.doer, r, body)
}

func (i inflated) PostJSON(r route.Info, v interface{}) (*request.Execution, error) {
	return PostJSON(i.doer, r, v)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
