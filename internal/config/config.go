package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML with
// environment overrides layered on top.
type FileConfig struct {
	APIBaseURL        string   `yaml:"apiBaseURL"`
	LogLevel          string   `yaml:"logLevel"`
	SessionBackend    string   `yaml:"sessionBackend"`
	SessionPath       string   `yaml:"sessionPath"`
	SessionTTL        string   `yaml:"sessionTTL"`
	RedisAddr         string   `yaml:"redisAddr"`
	RedisPassword     string   `yaml:"redisPassword"`
	MaxUploadBytes    int64    `yaml:"maxUploadBytes"`
	AllowedExtensions []string `yaml:"allowedExtensions"`
}

// Load reads config from path (defaults to config.yaml). A missing
// file is not an error: the tool runs fine on env vars and defaults.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if v := os.Getenv("SAGLIKHEP_API_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("SAGLIKHEP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SAGLIKHEP_SESSION_BACKEND"); v != "" {
		cfg.SessionBackend = strings.TrimSpace(v)
	}
	if v := os.Getenv("SAGLIKHEP_SESSION_PATH"); v != "" {
		cfg.SessionPath = v
	}
	if v := os.Getenv("SAGLIKHEP_SESSION_TTL"); v != "" {
		cfg.SessionTTL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("SAGLIKHEP_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("SAGLIKHEP_ALLOWED_EXTENSIONS"); v != "" {
		cfg.AllowedExtensions = splitCSV(v)
	}
	if cfg.SessionBackend == "" {
		cfg.SessionBackend = "file"
	}
	return cfg, nil
}

// Validate checks the loaded configuration for wiring mistakes.
func (c FileConfig) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("apiBaseURL is required")
	}
	switch c.SessionBackend {
	case "file":
	case "redis":
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("redisAddr is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.SessionTTL != "" {
		if _, err := time.ParseDuration(c.SessionTTL); err != nil {
			return fmt.Errorf("parse sessionTTL: %w", err)
		}
	}
	return nil
}

// SessionTTLDuration returns the parsed TTL, zero when unset.
func (c FileConfig) SessionTTLDuration() time.Duration {
	if c.SessionTTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0
	}
	return d
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
