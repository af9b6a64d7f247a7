// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		enabled zapcore.Level
		muted   zapcore.Level
		errMsg  string
	}{
		{name: "json info", level: "info", format: "json", enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{name: "console debug", level: "debug", format: "console", enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
		{name: "default format", level: "warn", format: "", enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
		{name: "bad level", level: "loud", format: "json", errMsg: "parsing log level"},
		{name: "bad format", level: "info", format: "xml", errMsg: "unknown log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.format)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.muted))
		})
	}
}
