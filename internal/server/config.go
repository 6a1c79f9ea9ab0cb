package server

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment-driven settings for the editor service.
type Config struct {
	HTTPAddr          string
	ProfilePath       string
	DefaultTimeZone   string
	PDFEnabled        bool
	PDFChromiumPath   string
	PDFTimeout        time.Duration
	PDFCacheEntries   int
	PrintRatePerMin   int
	UploadMemoryBytes int64
	UploadMaxBytes    int64
	ShutdownTimeout   time.Duration
	LogLevel          string
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		ProfilePath:       getenv("INVOICE_PROFILE", ""),
		DefaultTimeZone:   getenv("DEFAULT_TZ", "Asia/Kolkata"),
		PDFEnabled:        getBool("PDF_ENABLED", true),
		PDFChromiumPath:   getenv("PDF_CHROMIUM_PATH", ""),
		PDFTimeout:        getDuration("PDF_TIMEOUT", 15*time.Second),
		PDFCacheEntries:   getInt("PDF_CACHE_ENTRIES", 32),
		PrintRatePerMin:   getInt("PRINT_RATE_PER_MIN", 10),
		UploadMemoryBytes: int64(getInt("UPLOAD_MEMORY_BYTES", 8<<20)),
		UploadMaxBytes:    int64(getInt("UPLOAD_MAX_BYTES", 10<<20)),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:          getenv("LOG_LEVEL", "info"),
	}
}

// Level maps LOG_LEVEL onto slog; unknown values mean info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
