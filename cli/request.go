// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gogama/cordhttp/config"
	"github.com/gogama/cordhttp/log"
	"github.com/gogama/cordhttp/request"
	"github.com/gogama/cordhttp/route"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRequestCommand(conf *config.Config) *cobra.Command {
	var (
		body    string
		headers []string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "send a request to the Discord API",
		Long: `Send a request to the Discord API and print the response status and
body.

PATH is relative to the versioned API root, such as '/users/@me', or an
absolute URL.

When any '--header' is given, the default User-Agent is not sent unless
it is given too. Authorization and Content-Length are always computed.

Examples:
  # Fetch the gateway URL.
  cordhttp request GET /gateway

  # Post a message.
  cordhttp request POST /channels/1234/messages --body '{"content":"hi"}'

  # Print the request that would be sent.
  cordhttp request DELETE /users/@me/relationships/1234 --dry-run
`,
		Args: cobra.ExactArgs(2),
	}

	cmd.Flags().StringVar(
		&body,
		"body",
		"",
		`
Request body. Bodies are sent as 'application/json' unless a
Content-Type header is given.`,
	)
	cmd.Flags().StringArrayVarP(
		&headers,
		"header",
		"H",
		nil,
		`
Request header in the form 'Name: value'. May be repeated.`,
	)
	cmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		`
Print the request instead of sending it. The authorization token is
redacted.`,
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		m, err := route.ParseMethod(args[0])
		if err != nil {
			return err
		}
		r, err := route.New(m, args[1])
		if err != nil {
			return fmt.Errorf("path: %w", err)
		}

		b := request.NewBuilder(r)
		if cmd.Flags().Changed("body") {
			b.Body([]byte(body))
		}
		if len(headers) > 0 {
			h, err := parseHeaders(headers)
			if err != nil {
				return err
			}
			b.Headers(h)
		}
		d := b.Build()

		if dryRun {
			return printRequest(cmd.OutOrStdout(), d, conf)
		}

		logger, err := log.NewLogger(conf.Log.Level)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer logger.Sync() // nolint

		cl, err := conf.Client(logger)
		if err != nil {
			return err
		}
		e, err := cl.Do(cmd.Context(), d)
		if err != nil {
			return err
		}
		logger.Debug("request complete",
			zap.Stringer("execution", e.ID),
			zap.Int("attempts", e.Attempt+1),
			zap.Duration("duration", e.Duration()),
		)

		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintln(out, e.Response.Status); err != nil {
			return err
		}
		if len(e.Body) > 0 {
			if _, err := out.Write(e.Body); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out)
			return err
		}
		return nil
	}

	return cmd
}

// parseHeaders parses 'Name: value' pairs. Validation of the names and
// values is left to materialization.
func parseHeaders(hs []string) (http.Header, error) {
	h := make(http.Header, len(hs))
	for _, s := range hs {
		k, v, ok := strings.Cut(s, ":")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("header: expected 'Name: value': %q", s)
		}
		h[k] = append(h[k], strings.TrimSpace(v))
	}
	return h, nil
}

func printRequest(w io.Writer, d *request.Descriptor, conf *config.Config) error {
	proxy, err := conf.ProxyURL()
	if err != nil {
		return err
	}
	r, err := d.Materialize(request.DefaultTransport, conf.Token, proxy)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", r.Method, r.URL)
	h := request.Redact(r.Header)
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range h[k] {
			fmt.Fprintf(&sb, "%s: %s\n", k, v)
		}
	}
	if b, ok := d.Body(); ok {
		fmt.Fprintf(&sb, "\n%s\n", b)
	}

	_, err = io.WriteString(w, sb.String())
	return err
}
