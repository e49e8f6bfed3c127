// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package route describes logical Discord REST API operations.

A route pairs an HTTP method with a rendered path. Package request
consumes routes through the Info interface, which is all it needs to
know about them:

	r, err := route.New(route.GET, "/channels/{channel.id}/messages", channelID)
	...
	d := request.NewBuilder(r).Build()

Commonly used routes are available as ready-made constructors, for
example route.CurrentUser and route.CreateMessage.
*/
package route
