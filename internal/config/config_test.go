//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 64, cfg.Server.PoolSize)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, BackendMemory, cfg.Checkpoint.Backend)
	assert.Equal(t, "primary", cfg.Calendar.CalendarID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  allowed_origins:
    - https://app.example.com
llm:
  model: gpt-4o
  temperature: 0.7
checkpoint:
  backend: sqlite
  sqlite_path: /var/lib/meetingmuse/sessions.db
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, BackendSQLite, cfg.Checkpoint.Backend)
	assert.Equal(t, "/var/lib/meetingmuse/sessions.db", cfg.Checkpoint.SQLitePath)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Unset fields keep their defaults.
	assert.Equal(t, 64, cfg.Server.PoolSize)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
`)
	t.Setenv("MEETINGMUSE_ADDR", ":7070")
	t.Setenv("MEETINGMUSE_MODEL", "gpt-4.1")
	t.Setenv("MEETINGMUSE_POOL_SIZE", "16")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "gpt-4.1", cfg.LLM.Model)
	assert.Equal(t, 16, cfg.Server.PoolSize)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestTraceEndpointEnablesTelemetry(t *testing.T) {
	t.Setenv("MEETINGMUSE_TRACE_ENDPOINT", "collector:4317")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "collector:4317", cfg.Telemetry.Endpoint)
}

func TestUnknownBackendRejected(t *testing.T) {
	path := writeConfig(t, `
checkpoint:
  backend: cassandra
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown checkpoint backend")
}

func TestRedisBackendRequiresURL(t *testing.T) {
	path := writeConfig(t, `
checkpoint:
  backend: redis
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis_url")

	t.Setenv("MEETINGMUSE_REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Checkpoint.RedisURL)
}

func TestMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
