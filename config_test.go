package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/netex-routing/timetable"
)

func _WriteConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestReadConfig(t *testing.T) {
	file := _WriteConfig(t, `
source:
  netex: ./data
  invalidate-cache: true
routing:
  date: 2024-11-04
  depart-after: "07:30:00"
  workers: 2
log:
  level: debug
`)
	config, err := ReadConfig(file)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, "./data", config.Source.Netex)
	assert.True(t, config.Source.InvalidateCache)
	assert.Equal(t, 2, config.Routing.Workers)
	assert.Equal(t, "debug", config.Log.Level)

	// unset keys keep their defaults
	assert.Equal(t, "cache.bin", config.Source.Cache)
	assert.Equal(t, int32(172800), config.Routing.MaxRange)
	assert.Equal(t, 5002, config.Server.Port)

	assert.Equal(t, time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), config.RoutingDate())
	assert.Equal(t, timetable.TimeOfDay(7*3600+30*60), config.DepartAfter())
	assert.Equal(t, filepath.Join("./data", "cache.bin"), config.CachePath())
}

func TestReadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing netex", "routing:\n  workers: 2\n"},
		{"log level", "source:\n  netex: ./data\nlog:\n  level: loud\n"},
		{"workers", "source:\n  netex: ./data\nrouting:\n  workers: 0\n"},
		{"date", "source:\n  netex: ./data\nrouting:\n  date: 2024-13-01\n"},
		{"depart after", "source:\n  netex: ./data\nrouting:\n  depart-after: \"25:00:00\"\n"},
		{"port", "source:\n  netex: ./data\nserver:\n  port: 70000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ReadConfig(_WriteConfig(t, tt.content))
			require.NoError(t, err)
			assert.Error(t, config.Validate())
		})
	}
}

func TestReadConfigSyntax(t *testing.T) {
	_, err := ReadConfig(_WriteConfig(t, "source: [netex\n"))
	assert.Error(t, err)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	// no source.netex in the file, the flag provides it
	file := _WriteConfig(t, `
source:
  cache: ""
routing:
  date: 2024-01-01
log:
  level: error
`)
	var out bytes.Buffer
	app := NewApp(&out)
	err := app.Run([]string{"netex-routing", "--config", file, "--netex", "parser/testdata", "arrivals", "--from", "Beta"})
	require.NoError(t, err)
	assert.Equal(t, "08:30:00\tGamma & Delta\n08:40:00\tEpsilon\n", out.String())

	// without the flag the file alone is rejected
	app = NewApp(&out)
	err = app.Run([]string{"netex-routing", "--config", file, "arrivals", "--from", "Beta"})
	assert.Error(t, err)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestCachePath(t *testing.T) {
	config := DefaultConfig()
	config.Source.Netex = "./data"

	config.Source.Cache = ""
	assert.Equal(t, "", config.CachePath())

	abs := filepath.Join(t.TempDir(), "feed.bin")
	config.Source.Cache = abs
	assert.Equal(t, abs, config.CachePath())
}

func TestLogLevelFromString(t *testing.T) {
	_, err := LogLevelFromString("debug")
	assert.NoError(t, err)
	_, err = LogLevelFromString("trace")
	assert.Error(t, err)
}
