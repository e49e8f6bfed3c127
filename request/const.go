// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// Version is the version of this client library.
const Version = "0.9.0"

// UserAgent is the User-Agent header value sent when a Descriptor
// carries no explicit header set. It follows the form Discord asks
// API clients to identify themselves with.
const UserAgent = "DiscordBot (https://github.com/gogama/cordhttp, " + Version + ")"

// DefaultContentType is the Content-Type header value set on a request
// which has a body but whose header set names no content type.
const DefaultContentType = "application/json"

const (
	headerAuthorization = "Authorization"
	headerContentLength = "Content-Length"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"
)
