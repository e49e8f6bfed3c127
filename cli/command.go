// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/gogama/cordhttp/config"
	"github.com/gogama/cordhttp/request"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cordhttp [command] (flags)",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Long: `cordhttp sends requests to the Discord REST API.

Requests carry the configured authorization token and the cordhttp
User-Agent, and are retried when Discord rate limits them.

Fetch the current user with:

  $ cordhttp request GET /users/@me --token "Bot $TOKEN"

Inspect the request that would be sent, with the token redacted, using
'--dry-run'. Send requests to a local proxy instead of Discord with
'--proxy http://localhost:8080/'.
`,
	}

	conf := config.Default()
	var loadConf config.LoadConfig

	// Register flags and set default values.
	conf.RegisterFlags(cmd.PersistentFlags())
	loadConf.RegisterFlags(cmd.PersistentFlags())

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if err := config.Load(conf, loadConf.Path, loadConf.ExpandEnv); err != nil {
			return err
		}

		if err := conf.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return nil
	}

	cmd.AddCommand(newRequestCommand(conf))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the cordhttp version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "cordhttp %s\n", request.Version)
			return err
		},
	}
}

func init() {
	cobra.EnableCommandSorting = false
}
