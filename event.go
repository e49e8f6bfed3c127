// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cordhttp

// An Event identifies a point in a Descriptor execution at which Client
// runs the handlers installed for it.
type Event int

const (
	// BeforeExecutionStart occurs before the execution starts. Only the
	// execution's ID and Descriptor are set.
	BeforeExecutionStart Event = iota
	// AfterMaterializeError occurs when the Descriptor could not be
	// materialized into a request. The execution's Err is the
	// *request.Error and Request is nil. The execution then ends
	// without an attempt being made or a retry being considered.
	AfterMaterializeError
	// BeforeAttempt occurs before each attempt, after the request for
	// the attempt has been materialized into the execution's Request.
	//
	// Handlers may modify the request, for example to add a header.
	// The request is freshly materialized for every attempt, so such
	// changes do not leak into later attempts or into the Descriptor.
	BeforeAttempt
	// BeforeReadBody occurs after an attempt produced a response, of
	// any status code, and before its body is read.
	BeforeReadBody
	// AfterAttemptTimeout occurs after an attempt timed out. The
	// execution's Err is the timeout error and AttemptTimeouts has
	// been incremented.
	AfterAttemptTimeout
	// AfterAttempt occurs after every attempt, whether it succeeded or
	// not, and before the retry policy is consulted.
	AfterAttempt
	// AfterContextTimeout occurs when the deadline of the context
	// passed to Client.Do is exceeded, either at the end of an attempt
	// or while waiting to retry. It always follows AfterAttempt.
	AfterContextTimeout
	// AfterExecutionEnd occurs after the execution ends. The execution
	// is in its final state, with End set.
	AfterExecutionEnd

	eventSentinel
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"AfterMaterializeError",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"AfterContextTimeout",
	"AfterExecutionEnd",
}

// Events returns all events, in the order in which they can occur.
func Events() []Event {
	evts := make([]Event, numEvents)
	for i := range evts {
		evts[i] = Event(i)
	}
	return evts
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
