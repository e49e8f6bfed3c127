// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gogama/cordhttp/request"
)

// A Waiter computes how long to wait before the next retry.
//
// Implementations of Waiter must be safe for concurrent use by multiple
// goroutines.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// DefaultWaiter honours Discord rate limits and otherwise backs off
// exponentially with full jitter, from 50 milliseconds up to one
// second.
var DefaultWaiter = NewRateLimitWaiter(NewExpWaiter(50*time.Millisecond, 1*time.Second, time.Now()))

// NewFixedWaiter returns a waiter that always waits d.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter returns a waiter with exponential backoff and optional
// full jitter.
//
// Before retry n (counting from zero) the ceiling is base*2^n, capped
// at max. Without jitter the waiter waits the ceiling; with jitter it
// waits a uniformly random duration in [0, ceiling).
//
// Parameter jitter is the randomness source: nil for no jitter, or a
// time.Time, int, or int64 seed, a rand.Source, or a *rand.Rand. NewExpWaiter
// panics if base is not positive, if max is less than base, or if jitter
// has another type.
func NewExpWaiter(base, max time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("cordhttp/retry: base must be positive")
	}
	if max < base {
		panic("cordhttp/retry: max must be at least base")
	}
	return &jitterExpWaiter{
		base: base,
		max:  max,
		rand: jitterToRand(jitter),
	}
}

type jitterExpWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *jitterExpWaiter) Wait(e *request.Execution) time.Duration {
	exp := int64(1) << uint(e.Attempt)
	if exp < 1 || e.Attempt > 62 {
		exp = 1<<63 - 1
	}

	ceil := int64(w.base) * exp
	if ceil/exp != int64(w.base) || ceil < int64(w.base) || int64(w.max) < ceil {
		ceil = int64(w.max)
	}

	if w.rand == nil {
		return time.Duration(ceil)
	}

	w.lock.Lock()
	defer w.lock.Unlock()
	return time.Duration(w.rand.Int63n(ceil))
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("cordhttp/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("cordhttp/retry: invalid jitter type")
	}
	return rand.New(s)
}

// NewRateLimitWaiter returns a waiter that obeys Discord's rate limit
// responses. After a 429 carrying a reset time (see
// request.Execution.RetryAfter) it waits exactly that long; in every
// other case it defers to fallback.
func NewRateLimitWaiter(fallback Waiter) Waiter {
	if fallback == nil {
		panic("cordhttp/retry: nil fallback waiter")
	}
	return rateLimitWaiter{fallback}
}

type rateLimitWaiter struct {
	fallback Waiter
}

func (w rateLimitWaiter) Wait(e *request.Execution) time.Duration {
	if e.StatusCode() == http.StatusTooManyRequests {
		if d, ok := e.RetryAfter(); ok {
			return d
		}
	}
	return w.fallback.Wait(e)
}
