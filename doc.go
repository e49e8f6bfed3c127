// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package cordhttp provides a robust client for the Discord REST API, with
retry support and other advanced features, within a simple and familiar
interface.

Create a Client with an authentication token to begin making requests.
Requests name a route from package route rather than a URL:

	client := &cordhttp.Client{Token: "Bot " + token}
	ex, err := client.Get(route.CurrentUser())
	...
	ex, err := client.PostJSON(route.CreateMessage(channelID),
		map[string]string{"content": "hello"})

For full control over the request, build a descriptor with package
request and execute it with Do:

	d := request.NewBuilder(route.CreateMessage(channelID)).
		Body(body).
		Headers(http.Header{"X-Audit-Log-Reason": {"cleanup"}}).
		Build()
	ex, err := client.Do(ctx, d)

To send requests through a forwarding proxy that stands in for the
Discord API, set Proxy. Every occurrence of route.BaseURL in a route's
path is replaced with the proxy URL:

	proxy, _ := url.Parse("http://localhost:8080/")
	client := &cordhttp.Client{Token: token, Proxy: proxy}

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer. For example, use a GoLang standard
HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &cordhttp.Client{
		HTTPDoer: doer,
	}

For control over the client's retry decisions and timing, create a
custom retry policy using components from package retry. The default
policy retries rate limited requests after the delay Discord asks for:

	retryWaiter := retry.NewRateLimitWaiter(retry.NewExpWaiter(250*time.Millisecond, 5*time.Second, time.Now()))
	retryPolicy := retry.NewPolicy(retry.DefaultDecider, retryWaiter)
	client := &cordhttp.Client{
		RetryPolicy: retryPolicy,
	}

For control over the client's individual attempt timeouts, set a custom
timeout policy using package timeout:

	client := &cordhttp.Client{
		TimeoutPolicy: timeout.Fixed(10*time.Second),
	}

To hook into the fine-grained details of the client's request execution
logic, install a handler into the appropriate handler chain. Package
metrics uses this to export Prometheus metrics:

	handlers := &cordhttp.HandlerGroup{}
	handlers.PushBack(cordhttp.BeforeAttempt, cordhttp.HandlerFunc(
		func(_ cordhttp.Event, e *request.Execution) {
			e.Request.Header.Set("X-Trace", e.ID.String())
		}),
	)
	client := &cordhttp.Client{
		HTTPDoer: doer,
		Handlers: handlers,
	}

Package cordhttp provides basic interfaces for each method of the robust
client (Doer, Getter, Deleter, Poster, Putter, Patcher, JSONPoster, and
IdleCloser); a combined interface that composes all the basic methods
(Executor); and utility functions for working with a Doer (Inflate, Get,
Delete, Post, Put, Patch, and PostJSON).
*/
package cordhttp
