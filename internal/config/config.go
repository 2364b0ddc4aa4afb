package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type LogFormat string

const (
	LogFormatConsole LogFormat = "console" // Human-readable output (default)
	LogFormatJSON    LogFormat = "json"    // One JSON object per line
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Log
		Sessions
		Cache
		Covers
		Tasks
		Metrics
	}

	HTTP struct {
		Port           int32
		Host           string
		RequestTimeout time.Duration
		ReadOnly       bool // Reject every write request
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn, info
	}
	UI struct {
		TemplatesPath string // Empty uses the embedded templates
		StaticPath    string // Empty uses the embedded static files
	}
	Log struct {
		Level  string
		Format LogFormat
	}
	Sessions struct {
		Lifetime      time.Duration
		SecureCookies bool   // Set to false for local dev without HTTPS
		CSRFSecret    string // 32 bytes; CSRF protection is off when empty
	}
	Cache struct {
		Enabled       bool
		TTL           time.Duration
		RedisAddr     string // Empty keeps pages in process memory
		RedisPassword string
		RedisDB       int
	}
	Covers struct {
		Dir           string
		PruneSchedule string // Cron format; "off" disables pruning
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Metrics struct {
		Enabled bool
	}
)

// pruneSchedule treats "off" as disabled; viper ignores empty env values.
func pruneSchedule(v *viper.Viper) string {
	if schedule := v.GetString("COVER_PRUNE_SCHEDULE"); schedule != "off" {
		return schedule
	}
	return ""
}

// Load reads an optional .env file into the environment and builds the config.
func Load(envFiles ...string) *Config {
	// A missing .env is normal outside development
	_ = godotenv.Load(envFiles...)
	return NewConfig()
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("http_request_timeout", "10s")
	v.SetDefault("read_only", false)
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("db_log_level", "warn")
	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", string(LogFormatConsole))

	// Session defaults
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", true)
	v.SetDefault("csrf_secret", "")

	// Rendered page cache defaults
	v.SetDefault("cache_enabled", true)
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("covers_dir", DefaultCoversDir)
	v.SetDefault("cover_prune_schedule", "0 3 * * *") // Daily at 03:00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port:           v.GetInt32("PORT"),
			Host:           v.GetString("HOST"),
			RequestTimeout: v.GetDuration("HTTP_REQUEST_TIMEOUT"),
			ReadOnly:       v.GetBool("READ_ONLY"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: LogFormat(v.GetString("LOG_FORMAT")),
		},
		Sessions: Sessions{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
			CSRFSecret:    v.GetString("CSRF_SECRET"),
		},
		Cache: Cache{
			Enabled:       v.GetBool("CACHE_ENABLED"),
			TTL:           v.GetDuration("CACHE_TTL"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
		},
		Covers: Covers{
			Dir:           v.GetString("COVERS_DIR"),
			PruneSchedule: pruneSchedule(v),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}
