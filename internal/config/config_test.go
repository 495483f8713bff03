package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://api.saglikhep.com/api
logLevel: debug
sessionBackend: redis
redisAddr: localhost:6379
sessionTTL: 24h
maxUploadBytes: 1048576
allowedExtensions: [jpg, png]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.saglikhep.com/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.SessionBackend != "redis" || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("session backend = %q addr = %q", cfg.SessionBackend, cfg.RedisAddr)
	}
	if got := cfg.SessionTTLDuration(); got != 24*time.Hour {
		t.Errorf("SessionTTLDuration = %v", got)
	}
	if cfg.MaxUploadBytes != 1048576 || len(cfg.AllowedExtensions) != 2 {
		t.Errorf("upload limits = %d %v", cfg.MaxUploadBytes, cfg.AllowedExtensions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SessionBackend != "file" {
		t.Errorf("default session backend = %q, want file", cfg.SessionBackend)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://file.example.com
logLevel: info
`)
	t.Setenv("SAGLIKHEP_API_URL", "  https://env.example.com ")
	t.Setenv("SAGLIKHEP_LOG_LEVEL", "debug")
	t.Setenv("SAGLIKHEP_ALLOWED_EXTENSIONS", "jpg, webp , ")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://env.example.com" {
		t.Errorf("APIBaseURL = %q, env override (trimmed) expected", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	want := []string{"jpg", "webp"}
	if len(cfg.AllowedExtensions) != len(want) {
		t.Fatalf("AllowedExtensions = %v", cfg.AllowedExtensions)
	}
	for i := range want {
		if cfg.AllowedExtensions[i] != want[i] {
			t.Errorf("AllowedExtensions[%d] = %q, want %q", i, cfg.AllowedExtensions[i], want[i])
		}
	}
}

func TestValidateRejectsBrokenWiring(t *testing.T) {
	tests := []struct {
		name string
		cfg  FileConfig
	}{
		{"missing base url", FileConfig{SessionBackend: "file"}},
		{"redis without addr", FileConfig{APIBaseURL: "https://x", SessionBackend: "redis"}},
		{"unknown backend", FileConfig{APIBaseURL: "https://x", SessionBackend: "etcd"}},
		{"bad ttl", FileConfig{APIBaseURL: "https://x", SessionBackend: "file", SessionTTL: "yarın"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Fatal("Validate accepted a broken config")
			}
		})
	}
}
