// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/cordhttp/request"
)

// A Policy decides whether to retry a failed attempt and how long to
// wait before doing so.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy is the policy a zero value client uses. It combines
// DefaultDecider with DefaultWaiter.
var DefaultPolicy = NewPolicy(DefaultDecider, DefaultWaiter)

// Never is a policy that never retries.
var Never = NewPolicy(Times(0), DefaultWaiter)

type policy struct {
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a Decider and a Waiter into a Policy. Neither may
// be nil.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil {
		panic("cordhttp/retry: nil decider")
	}
	if w == nil {
		panic("cordhttp/retry: nil waiter")
	}
	return policy{decider: d, waiter: w}
}

func (p policy) Decide(e *request.Execution) bool {
	return p.decider.Decide(e)
}

func (p policy) Wait(e *request.Execution) time.Duration {
	return p.waiter.Wait(e)
}
