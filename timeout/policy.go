// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/cordhttp/request"
)

// A Policy sets the timeout of each attempt within an execution.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout for the next attempt, given the
	// current execution state.
	Timeout(e *request.Execution) time.Duration
}

// DefaultTimeout is the attempt timeout of DefaultPolicy. It
// comfortably covers Discord's slower routes short of file uploads.
const DefaultTimeout = 10 * time.Second

// DefaultPolicy is the policy a zero value client uses. It gives every
// attempt DefaultTimeout.
var DefaultPolicy = Fixed(DefaultTimeout)

// Infinite never times out an attempt. The execution's own context can
// still end it.
var Infinite = Fixed(1<<63 - 1)

// Fixed returns a policy giving every attempt the same timeout d.
func Fixed(d time.Duration) Policy {
	return policy([]time.Duration{d})
}

// Adaptive returns a policy that lengthens the timeout after timeouts.
//
// While the most recent attempt did not time out, the timeout is usual.
// After the n-th attempt timeout, it is after[n-1], or the last element
// of after once the list is exhausted.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make([]time.Duration, 1, 1+len(after))
	p[0] = usual
	return policy(append(p, after...))
}

type policy []time.Duration

func (p policy) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return p[0]
	}

	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}

// ByRoute returns a policy which chooses a sub-policy by the path
// template of the route being executed, falling back to def for
// templates not in m. Use it to give slow routes, such as attachment
// uploads, longer timeouts.
//
// The map is copied, so later changes to m have no effect.
func ByRoute(def Policy, m map[string]Policy) Policy {
	c := make(map[string]Policy, len(m))
	for k, v := range m {
		c[k] = v
	}
	return &routePolicy{def: def, m: c}
}

type routePolicy struct {
	def Policy
	m   map[string]Policy
}

func (p *routePolicy) Timeout(e *request.Execution) time.Duration {
	if e.Descriptor != nil && e.Descriptor.Route() != nil {
		_, template, _ := e.Descriptor.Route().Deconstruct()
		if q, ok := p.m[template]; ok {
			return q.Timeout(e)
		}
	}
	return p.def.Timeout(e)
}
