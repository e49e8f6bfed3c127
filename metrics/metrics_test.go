// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogama/cordhttp"
	"github.com/gogama/cordhttp/retry"
	"github.com/gogama/cordhttp/route"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	proxy, err := url.Parse(server.URL)
	require.NoError(t, err)

	m := NewMetrics()
	registry := prometheus.NewRegistry()
	m.Register(registry)
	handlers := &cordhttp.HandlerGroup{}
	m.Install(handlers)
	cl := &cordhttp.Client{
		HTTPDoer:    server.Client(),
		Proxy:       proxy,
		Token:       "Bot abc",
		RetryPolicy: retry.NewPolicy(retry.DefaultDecider, retry.NewFixedWaiter(time.Millisecond)),
		Handlers:    handlers,
	}

	e, err := cl.Get(route.CurrentUser())
	require.NoError(t, err)
	assert.Equal(t, 200, e.StatusCode())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.AttemptsTotal.WithLabelValues("GET", "429")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AttemptsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RetriesTotal.WithLabelValues("GET")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ExecutionDuration))

	cl.Token = "Bot bad\ntoken"
	_, err = cl.Get(route.CurrentUser())
	require.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MaterializeErrorsTotal.WithLabelValues("invalid header")))

	_, err = cl.Get(route.Raw(route.GET, "not a url"))
	require.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MaterializeErrorsTotal.WithLabelValues("invalid URL")))

	n, err := testutil.GatherAndCount(registry)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestMetrics_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	proxy, err := url.Parse(server.URL)
	require.NoError(t, err)
	server.Close()

	m := NewMetrics()
	handlers := &cordhttp.HandlerGroup{}
	m.Install(handlers)
	cl := &cordhttp.Client{
		Proxy:       proxy,
		RetryPolicy: retry.Never,
		Handlers:    handlers,
	}

	_, err = cl.Delete(route.DeleteMessage(1, 2))
	require.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AttemptsTotal.WithLabelValues("DELETE", "error")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.RetriesTotal.WithLabelValues("DELETE")))
}
