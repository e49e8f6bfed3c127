// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config holds the configuration of the cordhttp command, and
// turns it into a ready to use cordhttp.Client.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gogama/cordhttp"
	"github.com/gogama/cordhttp/log"
	"github.com/gogama/cordhttp/retry"
	"github.com/gogama/cordhttp/timeout"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type Config struct {
	// Token is sent as the Authorization header of every request,
	// exactly as given.
	Token string `json:"token" yaml:"token"`

	// Proxy is the base URL of a forwarding proxy that stands in for the
	// Discord API. If empty, requests go to Discord directly.
	Proxy string `json:"proxy" yaml:"proxy"`

	// Timeout is the timeout of each request attempt.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Retries is the maximum number of times a failed request is
	// retried.
	Retries int `json:"retries" yaml:"retries"`

	Log log.Config `json:"log" yaml:"log"`
}

func Default() *Config {
	return &Config{
		Timeout: timeout.DefaultTimeout,
		Retries: retry.DefaultTimes,
		Log: log.Config{
			Level: "info",
		},
	}
}

func (c *Config) Validate() error {
	if _, err := c.ProxyURL(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.Retries < 0 {
		return errors.New("retries cannot be negative")
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(
		&c.Token,
		"token",
		c.Token,
		`
Authorization token sent with every request.

Bot tokens must include the 'Bot ' prefix. Prefer setting the token in
the config file with '--config.expand-env' so it is not visible in the
process list.`,
	)
	fs.StringVar(
		&c.Proxy,
		"proxy",
		c.Proxy,
		`
Base URL of a forwarding proxy to send requests to instead of
https://discord.com/, such as 'http://localhost:8080/'.`,
	)
	fs.DurationVar(
		&c.Timeout,
		"timeout",
		c.Timeout,
		`
Timeout of each request attempt.`,
	)
	fs.IntVar(
		&c.Retries,
		"retries",
		c.Retries,
		`
Maximum number of retries of a rate limited or otherwise retryable
request.`,
	)
	c.Log.RegisterFlags(fs)
}

// ProxyURL parses Proxy. It returns a nil URL if Proxy is empty.
func (c *Config) ProxyURL() (*url.URL, error) {
	if c.Proxy == "" {
		return nil, nil
	}
	u, err := url.Parse(c.Proxy)
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("proxy: not an absolute url: %s", c.Proxy)
	}
	return u, nil
}

// Client returns a client configured by c that logs to logger. The
// config should have been validated.
func (c *Config) Client(logger *zap.Logger) (*cordhttp.Client, error) {
	proxy, err := c.ProxyURL()
	if err != nil {
		return nil, err
	}
	return &cordhttp.Client{
		Token:         c.Token,
		Proxy:         proxy,
		TimeoutPolicy: timeout.Fixed(c.Timeout),
		RetryPolicy:   retry.NewPolicy(retry.Times(c.Retries).And(retry.Retryable), retry.DefaultWaiter),
		Logger:        logger,
	}, nil
}
