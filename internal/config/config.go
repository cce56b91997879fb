package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// Config holds process-wide settings for the pinboard binary.
type Config struct {
	DBPath      string
	Remote      string // base URL of a pinboard server; empty means local SQLite
	Author      string
	Addr        string
	LogFile     string // "-" logs to stderr
	LogLevel    string
	TimeoutMs   int
	TagCacheTTL time.Duration
	Zoom        float64
}

// DefaultConfig returns the configuration used when no environment
// variable overrides a value.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".pinboard")
	return Config{
		DBPath:      filepath.Join(dir, "pinboard.db"),
		Author:      defaultAuthor(),
		Addr:        ":8080",
		LogFile:     filepath.Join(dir, "pinboard.log"),
		LogLevel:    "info",
		TimeoutMs:   5000,
		TagCacheTTL: 30 * time.Second,
		Zoom:        1,
	}
}

// Load reads configuration from PINBOARD_* environment variables, falling
// back to defaults for unset or malformed values.
func Load() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PINBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PINBOARD_REMOTE"); v != "" {
		cfg.Remote = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("PINBOARD_AUTHOR")); v != "" {
		cfg.Author = v
	}
	if v := os.Getenv("PINBOARD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PINBOARD_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("PINBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("PINBOARD_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PINBOARD_TAG_CACHE_TTL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.TagCacheTTL = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("PINBOARD_ZOOM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Zoom = f
		}
	}

	return cfg
}

// Timeout returns the remote call timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// IsRemote reports whether notes live behind a pinboard server.
func (c Config) IsRemote() bool {
	return c.Remote != ""
}

func defaultAuthor() string {
	return domain.CoalesceStr(os.Getenv("USER"), os.Getenv("USERNAME"), "anonymous")
}
