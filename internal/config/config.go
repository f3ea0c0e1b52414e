//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Package config loads the process configuration from an optional YAML
// file with environment variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Checkpoint backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ServerConfig configures the websocket server.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	PoolSize       int      `yaml:"pool_size"`
}

// LLMConfig configures the language model client.
type LLMConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	// APIKey is usually left empty here and supplied via OPENAI_API_KEY.
	APIKey      string  `yaml:"api_key"`
	Temperature float64 `yaml:"temperature"`
}

// CheckpointConfig selects and configures the conversation store.
type CheckpointConfig struct {
	Backend    string `yaml:"backend"`
	SQLitePath string `yaml:"sqlite_path"`
	RedisURL   string `yaml:"redis_url"`
}

// CalendarConfig configures the calendar provider.
type CalendarConfig struct {
	// Token is a static OAuth bearer token. Empty means booking fails
	// until the user authenticates.
	Token      string `yaml:"token"`
	CalendarID string `yaml:"calendar_id"`
	BaseURL    string `yaml:"base_url"`
}

// TelemetryConfig configures trace export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Protocol string `yaml:"protocol"`
}

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	LLM        LLMConfig        `yaml:"llm"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
	Calendar   CalendarConfig   `yaml:"calendar"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	LogLevel   string           `yaml:"log_level"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:     ":8080",
			PoolSize: 64,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
		},
		Checkpoint: CheckpointConfig{
			Backend:    BackendMemory,
			SQLitePath: "meetingmuse.db",
		},
		Calendar: CalendarConfig{
			CalendarID: "primary",
		},
		Telemetry: TelemetryConfig{
			Protocol: "grpc",
		},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path (if non-empty) over the defaults and
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers process environment overrides on top of the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("MEETINGMUSE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("MEETINGMUSE_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Server.PoolSize = n
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("MEETINGMUSE_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("MEETINGMUSE_CHECKPOINT_BACKEND"); v != "" {
		c.Checkpoint.Backend = v
	}
	if v := os.Getenv("MEETINGMUSE_SQLITE_PATH"); v != "" {
		c.Checkpoint.SQLitePath = v
	}
	if v := os.Getenv("MEETINGMUSE_REDIS_URL"); v != "" {
		c.Checkpoint.RedisURL = v
	}
	if v := os.Getenv("MEETINGMUSE_CALENDAR_TOKEN"); v != "" {
		c.Calendar.Token = v
	}
	if v := os.Getenv("MEETINGMUSE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MEETINGMUSE_TRACE_ENDPOINT"); v != "" {
		c.Telemetry.Enabled = true
		c.Telemetry.Endpoint = v
	}
}

func (c *Config) validate() error {
	switch c.Checkpoint.Backend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("config: unknown checkpoint backend %q", c.Checkpoint.Backend)
	}
	if c.Checkpoint.Backend == BackendRedis && c.Checkpoint.RedisURL == "" {
		return fmt.Errorf("config: redis backend requires redis_url")
	}
	return nil
}
