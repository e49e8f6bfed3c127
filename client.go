// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cordhttp

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/cordhttp/request"
	"github.com/gogama/cordhttp/retry"
	"github.com/gogama/cordhttp/route"
	"github.com/gogama/cordhttp/timeout"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client executes Discord API request descriptors with retry support.
// Its zero value is a valid configuration, although most callers will
// at least set Token.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, request.DefaultTransport to create requests,
// timeout.DefaultPolicy as the timeout policy, retry.DefaultPolicy as
// the retry policy, no proxy, no event handlers, and a no-op logger.
//
// Client's HTTPDoer typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines.
//
// On top of the HTTP features provided by the HTTPDoer, Client adds the
// following:
//
// • Client materializes a fresh http.Request from the Descriptor for
// every attempt, so no attempt sees changes made to an earlier one;
//
// • Client reads and buffers the entire HTTP response body into a
// []byte (returned as the Execution.Body field);
//
// • Client retries failed attempts using a customizable retry policy,
// which by default honours Discord's rate limit headers;
//
// • Client sets individual attempt timeouts using a customizable
// timeout policy;
//
// • Client invokes user-provided handler functions at designated
// plug-in points within the attempt/retry loop; and
//
// • Client implements the cordhttp.Executor interface.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// Transport creates the bare request that each attempt's
	// materialized request is based on. Headers it sets are kept in
	// preference to the computed ones.
	//
	// If Transport is nil, request.DefaultTransport is used.
	Transport request.Transport
	// Token is sent as the Authorization header of every request. It is
	// sent exactly as given, so bot tokens must carry their "Bot "
	// prefix.
	Token string
	// Proxy, if non-nil, is the base URL of a forwarding proxy that
	// stands in for the Discord API. Every occurrence of route.BaseURL
	// in a route's path is replaced by Proxy.
	Proxy *url.URL
	// RetryPolicy decides when to retry failed attempts and how long
	// to sleep after a failed attempt before retrying.
	//
	// If RetryPolicy is nil, retry.DefaultPolicy is used.
	RetryPolicy retry.Policy
	// TimeoutPolicy specifies how to set timeouts on individual
	// attempts.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a descriptor.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives debug records for each attempt and a warning for
	// each retry. The token is never logged.
	//
	// If Logger is nil, nothing is logged.
	Logger *zap.Logger
}

// Do executes a request descriptor and returns the results, following
// the timeout and retry policy set on Client, and low-level policy set
// on the underlying HTTPDoer.
//
// The result returned is the result after the final attempt made
// during the execution, as determined by the retry policy.
//
// If the descriptor cannot be materialized into a request, the
// execution ends at once and the error returned is a *request.Error.
// Such an error would recur on every attempt, so it is never retried.
//
// Otherwise an error is returned if, after doing any retries mandated
// by the retry policy, the final attempt resulted in an error, and the
// error is always of type *url.Error. An attempt may end in error due to
// failure to speak HTTP, because of a timeout, or because ctx was
// cancelled. A non-2XX status code in the final attempt does not result
// in an error.
//
// The returned Execution is never nil. If an error was returned, the
// Err field of the Execution references the same error. If the returned
// error is nil, the returned Execution contains both a non-nil Response
// and a non-nil Body (although Body may have zero length).
func (c *Client) Do(ctx context.Context, d *request.Descriptor) (*request.Execution, error) {
	if ctx == nil {
		panic("cordhttp: nil context")
	}
	if d == nil {
		panic("cordhttp: nil descriptor")
	}

	e := request.Execution{
		ID:         uuid.New(),
		Descriptor: d,
	}

	doer := c.doer()

	timeoutPolicy := c.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	retryPolicy := c.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.DefaultPolicy
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	m, template, _ := d.Route().Deconstruct()
	logger := c.logger().With(
		zap.Stringer("execution", e.ID),
		zap.Stringer("method", m),
		zap.String("route", template),
	)

	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

RetryLoop:
	for {
		if !c.sendAndReceive(ctx, &e, doer, handlers, timeoutPolicy, logger) {
			break
		}
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, &e)
		}
		handlers.run(AfterAttempt, &e)
		ctxErr := ctx.Err()
		if ctxErr == context.DeadlineExceeded {
			handlers.run(AfterContextTimeout, &e)
			break
		} else if ctxErr != nil {
			e.Err = urlErrorWrap(e.Request, ctxErr)
			break
		} else if retryPolicy.Decide(&e) {
			wait := retryPolicy.Wait(&e)
			logger.Warn("retrying request",
				zap.Int("attempt", e.Attempt),
				zap.Int("status", e.StatusCode()),
				zap.Duration("wait", wait),
				zap.Error(e.Err),
			)
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
				break
			case <-ctx.Done():
				timer.Stop()
				err := ctx.Err()
				e.Err = urlErrorWrap(e.Request, err)
				if err == context.DeadlineExceeded {
					handlers.run(AfterContextTimeout, &e)
				}
				break RetryLoop
			}
			e.Response = nil
			e.Err = nil
			e.Body = nil
			e.Attempt++
		} else {
			break
		}
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	if e.Err != nil {
		logger.Debug("execution failed",
			zap.Int("attempts", e.Attempt+1),
			zap.Duration("duration", e.Duration()),
			zap.Error(e.Err),
		)
	}
	return &e, e.Err
}

// sendAndReceive makes one attempt. It reports false if the descriptor
// could not be materialized, in which case no attempt was made.
func (c *Client) sendAndReceive(ctx context.Context, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, timeoutPolicy timeout.Policy, logger *zap.Logger) bool {
	attemptCtx, cancel := context.WithTimeout(ctx, timeoutPolicy.Timeout(e))
	defer cancel()
	r, err := e.Descriptor.MaterializeContext(attemptCtx, c.Transport, c.Token, c.Proxy)
	if err != nil {
		e.Request = nil
		e.Err = err
		logger.Error("cannot materialize request", zap.Error(err))
		handlers.run(AfterMaterializeError, e)
		return false
	}
	e.Request = r
	handlers.run(BeforeAttempt, e)
	logger.Debug("sending request",
		zap.Int("attempt", e.Attempt),
		zap.String("url", e.Request.URL.String()),
	)
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(e.Request, err)
	} else {
		readBody(e, handlers)
		logger.Debug("received response",
			zap.Int("attempt", e.Attempt),
			zap.Int("status", e.StatusCode()),
			zap.Int("bytes", len(e.Body)),
		)
	}
	return true
}

func readBody(e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = urlErrorWrap(e.Request, err)
	}
}

// Get issues a GET to the path of the given route, using the same
// policies followed by Do. The route's own method is ignored.
//
// To send custom headers, use request.NewBuilder and Client.Do.
func (c *Client) Get(r route.Info) (*request.Execution, error) {
	return Get(c, r)
}

// Delete issues a DELETE to the path of the given route, using the same
// policies followed by Do. The route's own method is ignored.
func (c *Client) Delete(r route.Info) (*request.Execution, error) {
	return Delete(c, r)
}

// Post issues a POST to the path of the given route, using the same
// policies followed by Do.
//
// The body parameter may be nil for no body, or may be any of the types
// supported by request.BodyBytes, namely: string; []byte;
// json.RawMessage; io.Reader; and io.ReadCloser. A body is sent with
// Content-Type application/json.
func (c *Client) Post(r route.Info, body interface{}) (*request.Execution, error) {
	return Post(c, r, body)
}

// Put issues a PUT to the path of the given route. The body parameter
// is handled as for Post.
func (c *Client) Put(r route.Info, body interface{}) (*request.Execution, error) {
	return Put(c, r, body)
}

// Patch issues a PATCH to the path of the given route. The body
// parameter is handled as for Post.
func (c *Client) Patch(r route.Info, body interface{}) (*request.Execution, error) {
	return Patch(c, r, body)
}

// PostJSON issues a POST to the path of the given route with the JSON
// encoding of v as the body.
func (c *Client) PostJSON(r route.Info, v interface{}) (*request.Execution, error) {
	return PostJSON(c, r, v)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}

	return c.Logger
}

func urlErrorWrap(r *http.Request, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	op, u := "Get", ""
	if r != nil {
		op = urlErrorOp(r.Method)
		u = r.URL.String()
	}

	return &url.Error{
		Op:  op,
		URL: u,
		Err: err,
	}
}

// urlErrorOp matches the Op that net/http's Client puts in its own
// *url.Error values.
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
