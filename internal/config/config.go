package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	DraftTTL      time.Duration

	ExportDir  string
	S3Bucket   string
	AWSRegion  string
	ChromePath string

	AuthSecret         string
	GoogleClientID     string
	GoogleClientSecret string
	BackendURL         string

	SiteContent string
	LogLevel    string
	LogFormat   string
}

const (
	defaultPort       = "3000"
	defaultDraftTTL   = 24 * time.Hour
	defaultExportDir  = "resume-data"
	defaultBackendURL = "http://localhost:8080"
	defaultAWSRegion  = "us-east-1"
)

// Load reads an optional .env file, then the process environment. Values
// already present in the environment win over the file.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Port:               getenv("PORT", defaultPort),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		DraftTTL:           getDuration("DRAFT_TTL", defaultDraftTTL),
		ExportDir:          getenv("EXPORT_DIR", defaultExportDir),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		AWSRegion:          getenv("AWS_REGION", defaultAWSRegion),
		ChromePath:         os.Getenv("CHROME_PATH"),
		AuthSecret:         os.Getenv("AUTH_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		BackendURL:         strings.TrimRight(getenv("BACKEND_URL", defaultBackendURL), "/"),
		SiteContent:        os.Getenv("SITE_CONTENT"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          getenv("LOG_FORMAT", "text"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
