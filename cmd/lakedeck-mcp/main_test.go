// Copyright 2026 Lakedeck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"info", zap.InfoLevel},
		{"warn", zap.WarnLevel},
		{"error", zap.ErrorLevel},
		{"", zap.InfoLevel},        // default
		{"unknown", zap.InfoLevel}, // unrecognized falls back to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestBuildLoggerToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := buildLogger(logPath, "info")
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestBuildLoggerToStderr(t *testing.T) {
	logger, err := buildLogger("", "debug")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Debug("stderr test")
}

func TestBuildLoggerInvalidPath(t *testing.T) {
	_, err := buildLogger("/no/such/directory/test.log", "info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file")
}
