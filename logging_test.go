package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestLogHandlerKeepsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(&buf, nil))

	logger.With("request", "r1").WithGroup("graph").Info("built", "vertices", 14)
	assert.Contains(t, buf.String(), "INFO built request=r1 graph.vertices=14\n")

	buf.Reset()
	logger.WithGroup("graph").With("date", "2024-01-01").Info("built")
	assert.Contains(t, buf.String(), "INFO built graph.date=2024-01-01\n")
}

func TestLogHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown", "n", 1)
	assert.Contains(t, buf.String(), "WARN shown n=1\n")
}
