// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request turns logical Discord API operations into concrete HTTP
requests.

The central type is Descriptor, a frozen description of a request: a
route (see package route), an optional body, and an optional explicit
header set. Descriptors are assembled with a single-use Builder:

	d := request.NewBuilder(route.CreateMessage(channelID)).
		Body(body).
		Build()

A Descriptor is materialized into a new http.Request, ready to send,
with an authentication token and an optional forwarding proxy:

	r, err := d.Materialize(request.DefaultTransport, token, nil)

Materialization applies a fixed header policy. A Descriptor without
explicit headers gets a User-Agent of UserAgent. Authorization and
Content-Length are always set by this package, and Content-Type
defaults to application/json when a body is present. Headers the
Transport sets on its own request are never overwritten.

Materialization is pure and cheap, so a caller that retries should
materialize once per attempt, possibly with a different token. The
second core type, Execution, records the state of such a multi-attempt
execution as driven by cordhttp.Client.

Materialization fails with a *Error whose Kind is InvalidURL if the
route path is not an absolute URL, or InvalidHeader if the token or a
header cannot be sent. Neither is worth retrying.
*/
package request
