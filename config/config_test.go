package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.ReadTimeout.Duration != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 15*time.Second)
	}
	if cfg.RateLimit.Capacity != 30 {
		t.Errorf("RateLimit.Capacity = %d, want %d", cfg.RateLimit.Capacity, 30)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "memory")
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9090
read_timeout = "5s"

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "1h"

[log]
level = "debug"
format = "text"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.WriteTimeout.Duration != 15*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want 15s", cfg.Server.WriteTimeout)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("Cache = %+v, want redis at cache:6379", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != DefaultConfig().Server.Port {
		t.Errorf("Server.Port = %d, want default", cfg.Server.Port)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "[server]\nprot = 1\n", "unknown keys"},
		{"bad duration", "[server]\nread_timeout = \"soon\"\n", "decode config"},
		{"bad backend", "[cache]\nbackend = \"disk\"\n", "cache.backend"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"bad capacity", "[rate_limit]\ncapacity = 0\n", "rate_limit.capacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOANCALC_ADDR", "127.0.0.1:7070")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.Server.Addr(); got != "127.0.0.1:7070" {
		t.Errorf("Server.Addr() = %q, want %q", got, "127.0.0.1:7070")
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("Cache = %+v, want redis.internal:6379", cfg.Cache)
	}
}

func TestSetAddr_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.SetAddr("no-port"); err == nil {
		t.Error("expected error for address without port")
	}
	if err := cfg.SetAddr("localhost:http"); err == nil {
		t.Error("expected error for non-numeric port")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "field", "principal")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, `"field":"principal"`) {
		t.Errorf("expected JSON attrs in output, got %q", out)
	}
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "loancalc.example.toml"))
	if err != nil {
		t.Fatalf("example config should load: %v", err)
	}
	if cfg.Cache.MaxEntries != 10000 {
		t.Errorf("Cache.MaxEntries = %d, want 10000", cfg.Cache.MaxEntries)
	}
}
