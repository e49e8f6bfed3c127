// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"io"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means a retry is very unlikely to succeed. Every other category
// means the failure may go away on its own, so a retry has a fair
// chance.
type Category int

const (
	// Not is the category of nil errors and of every error that is not
	// transient. Errors building a request, such as an invalid token,
	// are always Not.
	Not Category = iota
	// Timeout indicates a client-side timeout, either of an attempt or
	// of the whole execution. The error, or an error it wraps, has a
	// Timeout method reporting true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (syscall.ECONNREFUSED). This is typical of a forwarding proxy that
	// is restarting.
	ConnRefused
	// ConnReset indicates the remote host reset an established
	// connection (syscall.ECONNRESET).
	ConnReset
	// ConnClosed indicates the connection was closed before a complete
	// response arrived (io.EOF or io.ErrUnexpectedEOF). Discord's edge
	// servers close idle keep-alive connections without warning, so a
	// request written onto one fails this way.
	ConnClosed
)

var categoryNames = [...]string{
	Not:         "not",
	Timeout:     "timeout",
	ConnRefused: "conn_refused",
	ConnReset:   "conn_reset",
	ConnClosed:  "conn_closed",
}

// String returns a short snake_case name for c, suitable as a metric
// label.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err. A nil error and
// any non-transient error both produce Not.
//
// Categorize looks through the whole chain of wrapped errors. Timeout
// takes precedence over the connection categories. Temporary methods
// are ignored, since their meaning was never well defined.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return ConnClosed
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
