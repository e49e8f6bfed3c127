// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the cordhttp command.
package cli

func Start() error {
	cmd := NewCommand()
	return cmd.Execute()
}
