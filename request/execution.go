// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gogama/cordhttp/transient"
	"github.com/google/uuid"
)

// An Execution is the state of one Descriptor execution by a client.
//
// The client creates an Execution when it starts executing a
// Descriptor and updates it as attempts are made. The final state is
// returned to the caller. Timeout and retry policies and event handlers
// receive the Execution while it is in flight; they may keep their own
// data on it with SetValue and Value but should otherwise treat its
// exported fields as read-only. Modifying Request in a BeforeAttempt
// handler, for example to sign it, is an accepted exception.
type Execution struct {
	// ID uniquely identifies the execution, for correlating log records
	// and metrics. It is assigned when the execution starts.
	ID uuid.UUID

	// Descriptor is the request descriptor being executed. It is never
	// nil.
	Descriptor *Descriptor

	// Start is the time the execution started. It is zero until then
	// and constant afterward.
	Start time.Time

	// End is the time the execution ended. It is zero until then.
	End time.Time

	// Attempt is the zero-based number of the current attempt. After
	// the execution ends it is the number of the last attempt made.
	Attempt int

	// AttemptTimeouts counts the attempts that ended in a timeout.
	AttemptTimeouts int

	// Request is the request materialized for the current attempt, or
	// sent in the last attempt. Each attempt materializes a fresh
	// request from Descriptor. It is nil if materialization failed.
	Request *http.Request

	// Response is the response received in the most recent attempt. It
	// is nil if that attempt ended in error or is still underway.
	Response *http.Response

	// Err is the error from the most recent attempt, if any.
	//
	// A materialization failure is reported as a *Error and ends the
	// execution immediately. Any other failure is a *url.Error. Once
	// the execution has ended, Err is the error returned to the caller.
	Err error

	// Body is the fully buffered response body from the most recent
	// attempt. If Err is non-nil, Body should be treated as invalid
	// even if it is non-nil.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the most recent response, or 0
// if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the headers of the most recent response, or a nil
// header if there is none. A nil header is safe for reading.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns how long the execution has been running, or ran
// for if it has ended. It is zero before the execution starts.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err is a timeout, either of the most
// recent attempt or of the execution's context.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// RetryAfter returns how long Discord asked the client to wait before
// retrying, and whether it asked at all.
//
// The value comes from the X-RateLimit-Reset-After header of the most
// recent response, which carries fractional seconds, or failing that
// from its Retry-After header, in whole seconds.
func (e *Execution) RetryAfter() (time.Duration, bool) {
	h := e.Header()
	if v := h.Get("X-RateLimit-Reset-After"); v != "" {
		if s, err := strconv.ParseFloat(v, 64); err == nil && s >= 0 {
			return time.Duration(s * float64(time.Second)), true
		}
	}
	if v := h.Get("Retry-After"); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s >= 0 {
			return time.Duration(s) * time.Second, true
		}
	}
	return 0, false
}

// SetValue stores arbitrary data on the execution for event handlers
// and policies. The key follows the rules of context.WithValue: it must
// be non-nil and comparable, and should be of an unexported type to
// avoid collisions.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data stored for key, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
