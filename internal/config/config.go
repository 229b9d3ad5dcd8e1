package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables authentication.
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// OCR fallback path
	OCRDPI         int
	OCRLanguage    string
	OCRPageTimeout time.Duration
	OCRConcurrency int

	// Image preprocessing constants. Tuned against typical syllabus
	// scans; overridable without a rebuild.
	OCRContrast  float64
	OCRThreshold int

	// Logging
	LogLevel string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8085"),

		APIKey: os.Getenv("SYLLEX_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		OCRDPI:         envInt("OCR_DPI", 400),
		OCRLanguage:    envOr("OCR_LANGUAGE", "eng"),
		OCRPageTimeout: envDuration("OCR_PAGE_TIMEOUT", 2*time.Minute),
		OCRConcurrency: envInt("OCR_CONCURRENCY", 4),

		OCRContrast:  envFloat("OCR_CONTRAST", 2.0),
		OCRThreshold: envInt("OCR_THRESHOLD", 140),

		LogLevel: envOr("LOG_LEVEL", "info"),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.OCRConcurrency <= 0 {
		cfg.OCRConcurrency = 4
	}
	if cfg.OCRPageTimeout <= 0 {
		cfg.OCRPageTimeout = 2 * time.Minute
	}

	return cfg
}

func (c Config) Validate() error {
	if c.OCRDPI <= 0 {
		return fmt.Errorf("OCR_DPI must be positive, got %d", c.OCRDPI)
	}
	if c.OCRContrast <= 0 {
		return fmt.Errorf("OCR_CONTRAST must be positive, got %v", c.OCRContrast)
	}
	if c.OCRThreshold < 1 || c.OCRThreshold > 255 {
		return fmt.Errorf("OCR_THRESHOLD must be in 1..255, got %d", c.OCRThreshold)
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
