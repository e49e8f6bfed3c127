// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/cordhttp/request"
	"github.com/gogama/cordhttp/route"
	"github.com/gogama/cordhttp/transient"
)

// A Decider decides whether a failed attempt should be retried.
//
// The client never consults the Decider when a Descriptor cannot be
// materialized, since such failures cannot be fixed by retrying.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. DeciderFunc values compose with And and
// Or into larger decision trees.
//
// Every DeciderFunc must be safe for concurrent use by multiple
// goroutines.
type DeciderFunc func(e *request.Execution) bool

// DefaultTimes is the number of times DefaultDecider allows a retry.
const DefaultTimes = 5

// Retryable is true for any attempt worth repeating. A 429 (Too Many
// Requests) always is, since Discord did not act on a rate-limited
// request. An idempotent request also is after a 502, 503, or 504
// status, or a transient error.
var Retryable = StatusCode(429).
	Or(Idempotent.And(StatusCode(502, 503, 504).Or(TransientErr)))

// DefaultDecider allows up to DefaultTimes retries of Retryable
// attempts.
var DefaultDecider = Times(DefaultTimes).And(Retryable)

// TransientErr retries if the current error is transient according to
// transient.Categorize. It never retries an attempt that produced a
// response.
var TransientErr DeciderFunc = transientErr

// Idempotent is true when the method of the route being executed may
// safely be repeated: GET, HEAD, OPTIONS, PUT, or DELETE.
var Idempotent DeciderFunc = idempotent

// Decide returns f(e).
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And returns a decider that is true only if both f and g are. g is
// not evaluated if f is false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or returns a decider that is true if either f or g is. g is not
// evaluated if f is true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Times returns a decider allowing up to n retries: it is true while
// e.Attempt is less than n.
func Times(n int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt < n
	}
}

// Before returns a decider allowing retries until d has elapsed since
// the execution started.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// StatusCode returns a decider that is true if the most recent attempt
// got a response whose status code is in ss.
func StatusCode(ss ...int) DeciderFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(e *request.Execution) bool {
		for _, s := range ss2 {
			if e.StatusCode() == s {
				return true
			}
		}
		return false
	}
}

func transientErr(e *request.Execution) bool {
	return transient.Categorize(e.Err) != transient.Not
}

func idempotent(e *request.Execution) bool {
	if e.Descriptor == nil || e.Descriptor.Route() == nil {
		return false
	}
	m, _, _ := e.Descriptor.Route().Deconstruct()
	switch m {
	case route.GET, route.HEAD, route.OPTIONS, route.PUT, route.DELETE:
		return true
	default:
		return false
	}
}
