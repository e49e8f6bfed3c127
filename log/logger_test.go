// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("info", zapcore.AddSync(&buf))
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Warn("retrying request", zap.Int("attempt", 1))
		require.NoError(t, logger.Sync())

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		var record map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
		assert.Equal(t, "warn", record["level"])
		assert.Equal(t, "retrying request", record["msg"])
		assert.Equal(t, "cordhttp", record["subsystem"])
		assert.Equal(t, float64(1), record["attempt"])
	})

	t.Run("unsupported level", func(t *testing.T) {
		_, err := New("trace", zapcore.AddSync(&bytes.Buffer{}))
		assert.EqualError(t, err, "unsupported level: trace")
	})
}

func TestConfig(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		for _, lvl := range []string{"debug", "info", "warn", "error"} {
			c := Config{Level: lvl}
			assert.NoError(t, c.Validate(), lvl)
		}
		assert.EqualError(t, (&Config{}).Validate(), "missing level")
		assert.Error(t, (&Config{Level: "loud"}).Validate())
	})

	t.Run("flags", func(t *testing.T) {
		c := Config{Level: "info"}
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		c.RegisterFlags(fs)
		require.NoError(t, fs.Parse([]string{"--log.level", "debug"}))
		assert.Equal(t, "debug", c.Level)
	})
}
