// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cordhttp

import (
	"github.com/gogama/cordhttp/request"
)

// A HandlerGroup holds one chain of handlers per Event. Install it in a
// Client to extend the client with logging, metrics, request signing,
// and the like.
//
// A HandlerGroup must not be modified while a Client is using it.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack appends h to the chain of handlers for evt.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("cordhttp: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("cordhttp: invalid event")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	i := int(evt)
	if i < len(g.handlers) {
		for _, h := range g.handlers[i] {
			h.Handle(evt, e)
		}
	}
}

// A Handler handles an event during a Descriptor execution.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
