// Copyright (c) 2025 The Demeter developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandlerOutput(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(NewTerminalHandler(&out, false))

	l.Info("pool funded", "amount", 7000000, "rate", "11574074074074074")

	line := out.String()
	require.True(t, strings.HasPrefix(line, "INFO ["), "got %q", line)
	assert.Contains(t, line, "pool funded")
	assert.Contains(t, line, "amount=7,000,000")
	assert.Contains(t, line, "rate=11574074074074074")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestTerminalHandlerLevelFilter(t *testing.T) {
	var out bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(slog.LevelInfo)
	l := NewLogger(NewTerminalHandlerWithLevel(&out, &lvl, false))

	l.Debug("quiet")
	assert.Zero(t, out.Len())

	l.Warn("loud")
	assert.Contains(t, out.String(), "loud")
}

func TestWithContextLateBinding(t *testing.T) {
	// Package loggers are created before the process installs its handler.
	l := WithContext("pkg", "pool")

	var out bytes.Buffer
	prev := Root()
	SetDefault(NewLogger(NewTerminalHandler(&out, false)))
	defer SetDefault(prev)

	l.Info("stake accepted", "account", "0x00")

	line := out.String()
	assert.Contains(t, line, "pkg=pool")
	assert.Contains(t, line, "account=0x00")
}

func TestLoggerWith(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(NewTerminalHandler(&out, false)).With("instance", "main")

	l.Info("started")
	assert.Contains(t, out.String(), "instance=main")
}
