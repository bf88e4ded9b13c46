package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Documents served and exported live under DocsRoot.
	DocsRoot string

	LogLevel slog.Level

	// Batch export workers
	WorkerCount         int
	MaxQueueSize        int
	MaxConcurrentExport int

	// Upload limit for .bkm bodies
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Replace existing .bkm files unless a request says otherwise.
	ExportOverwrite bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCOUTLINE_API_KEY"),

		DocsRoot: envOr("DOCS_ROOT", "."),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),

		WorkerCount:         envInt("WORKER_COUNT", 4),
		MaxQueueSize:        envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentExport: envInt("MAX_CONCURRENT_EXPORT", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 1048576), // 1MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		ExportOverwrite: envBool("EXPORT_OVERWRITE", false),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentExport <= 0 {
		cfg.MaxConcurrentExport = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 1048576
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if abs, err := filepath.Abs(cfg.DocsRoot); err == nil {
		cfg.DocsRoot = abs
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCOUTLINE_API_KEY is required")
	}
	info, err := os.Stat(c.DocsRoot)
	if err != nil {
		return fmt.Errorf("DOCS_ROOT: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("DOCS_ROOT %s is not a directory", c.DocsRoot)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(v))); err == nil {
			return l
		}
	}
	return fallback
}
