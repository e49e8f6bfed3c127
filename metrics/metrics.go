// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics about the request
// executions of a cordhttp.Client.
//
// Create the metrics, register them, and install them into the client's
// handler group:
//
//	m := metrics.NewMetrics()
//	m.Register(registry)
//	handlers := &cordhttp.HandlerGroup{}
//	m.Install(handlers)
//	client := &cordhttp.Client{Handlers: handlers}
package metrics

import (
	"errors"
	"strconv"

	"github.com/gogama/cordhttp"
	"github.com/gogama/cordhttp/request"
	"github.com/prometheus/client_golang/prometheus"
)

// statusError labels attempts that got no response.
const statusError = "error"

type Metrics struct {
	// AttemptsTotal is the total number of request attempts. Labelled by
	// method and response status code, or "error" if the attempt got no
	// response.
	AttemptsTotal *prometheus.CounterVec
	// RetriesTotal is the total number of retried attempts. Labelled by
	// method.
	RetriesTotal *prometheus.CounterVec
	// MaterializeErrorsTotal is the total number of executions that
	// ended because the request could not be built. Labelled by error
	// kind.
	MaterializeErrorsTotal *prometheus.CounterVec
	// ExecutionDuration is a histogram of the duration of whole
	// executions, including retries, in seconds. Labelled by method and
	// route template.
	ExecutionDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		AttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cordhttp",
				Subsystem: "client",
				Name:      "attempts_total",
				Help:      "Total request attempts.",
			},
			[]string{"method", "status"},
		),
		RetriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cordhttp",
				Subsystem: "client",
				Name:      "retries_total",
				Help:      "Total retried request attempts.",
			},
			[]string{"method"},
		),
		MaterializeErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cordhttp",
				Subsystem: "client",
				Name:      "materialize_errors_total",
				Help:      "Total requests that could not be built.",
			},
			[]string{"kind"},
		),
		ExecutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cordhttp",
				Subsystem: "client",
				Name:      "execution_duration_seconds",
				Help:      "Request execution duration in seconds, including retries.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) Register(registry *prometheus.Registry) {
	registry.MustRegister(
		m.AttemptsTotal,
		m.RetriesTotal,
		m.MaterializeErrorsTotal,
		m.ExecutionDuration,
	)
}

// Install adds handlers updating the metrics to g.
func (m *Metrics) Install(g *cordhttp.HandlerGroup) {
	h := cordhttp.HandlerFunc(m.handle)
	g.PushBack(cordhttp.BeforeAttempt, h)
	g.PushBack(cordhttp.AfterAttempt, h)
	g.PushBack(cordhttp.AfterMaterializeError, h)
	g.PushBack(cordhttp.AfterExecutionEnd, h)
}

func (m *Metrics) handle(evt cordhttp.Event, e *request.Execution) {
	method, template, _ := e.Descriptor.Route().Deconstruct()
	switch evt {
	case cordhttp.BeforeAttempt:
		if e.Attempt > 0 {
			m.RetriesTotal.WithLabelValues(method.String()).Inc()
		}
	case cordhttp.AfterAttempt:
		status := statusError
		if e.Response != nil {
			status = strconv.Itoa(e.StatusCode())
		}
		m.AttemptsTotal.WithLabelValues(method.String(), status).Inc()
	case cordhttp.AfterMaterializeError:
		kind := "unknown"
		var reqErr *request.Error
		if errors.As(e.Err, &reqErr) {
			kind = reqErr.Kind.String()
		}
		m.MaterializeErrorsTotal.WithLabelValues(kind).Inc()
	case cordhttp.AfterExecutionEnd:
		m.ExecutionDuration.WithLabelValues(method.String(), template).Observe(e.Duration().Seconds())
	}
}
