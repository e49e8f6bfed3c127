// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides when a client retries a failed attempt and how
// long it waits first.
//
// A Policy is a Decider plus a Waiter, joined with NewPolicy. Both have
// constructors for the common cases:
//
//	decider := retry.Times(3).
//		And(retry.Before(30 * time.Second)).
//		And(retry.StatusCode(429).Or(retry.TransientErr))
//	waiter := retry.NewRateLimitWaiter(retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now()))
//	policy := retry.NewPolicy(decider, waiter)
//
// A 429 response carries the time Discord wants the client to wait;
// NewRateLimitWaiter honours it.
package retry
