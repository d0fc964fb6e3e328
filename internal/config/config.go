package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/resume-assistant/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr           string        `env:"SERVER_ADDR" envDefault:":8080"`
	ServerRequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"15m"`
	CORSAllowedOrigins   []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Optional database for transcript persistence; in-memory when empty
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	ChatConnectorCfg      ChatConnectorConfig      `envPrefix:"CHAT_"`
	EmbeddingConnectorCfg EmbeddingConnectorConfig `envPrefix:"EMBED_"`

	// Retrieval pipeline configuration
	ChunkerCfg ChunkerConfig `envPrefix:"CHUNKER_"`
	IndexCfg   IndexConfig   `envPrefix:"INDEX_"`
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ShutdownTimeout    int           `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	DownloadTimeout    time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"1m"`
}

type ChatConnectorConfig struct {
	HTTPClientConfig
	ChatEndpoint string               `env:"ENDPOINT" envDefault:"/api/chat"`
	Model        string               `env:"MODEL" envDefault:"llama2:chat"`
	Retry        pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	Provider      string               `env:"PROVIDER" envDefault:"ollama"`
	EmbedEndpoint string               `env:"ENDPOINT" envDefault:"/api/embed"`
	Model         string               `env:"MODEL" envDefault:"nomic-embed-text"`
	Dimension     int                  `env:"DIMENSION" envDefault:"256"` // hashing provider only
	Retry         pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"2m"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"2m"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"http://localhost:11434"`
}

// ChunkerConfig configures how resumes are split before embedding
type ChunkerConfig struct {
	Type      string `env:"TYPE" envDefault:"window"` // window | recursive
	MaxLength int    `env:"MAX_LENGTH" envDefault:"1024"`
	Overlap   int    `env:"OVERLAP" envDefault:"100"`
}

// IndexConfig configures the vector index storage
type IndexConfig struct {
	Dir        string `env:"DIR" envDefault:"candidate_chroma_db"` // empty keeps the index in memory
	Collection string `env:"COLLECTION" envDefault:"candidates"`
	Compress   bool   `env:"COMPRESS" envDefault:"false"`
}

// SessionConfig configures session lifetime
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"10485760"`  // 10 MiB
	MaxTotalSize  int64 `env:"MAX_TOTAL_SIZE" envDefault:"52428800"` // 50 MiB
	MaxFileCount  int   `env:"MAX_FILE_COUNT" envDefault:"16"`
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"67108864"` // 64 MiB
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate chunker configuration
	switch cfg.ChunkerCfg.Type {
	case "window", "recursive":
	default:
		errors = append(errors, fmt.Sprintf("CHUNKER_TYPE must be window or recursive, got %q", cfg.ChunkerCfg.Type))
	}

	if cfg.ChunkerCfg.MaxLength < 1 {
		errors = append(errors, fmt.Sprintf("CHUNKER_MAX_LENGTH must be positive, got %d", cfg.ChunkerCfg.MaxLength))
	}

	if cfg.ChunkerCfg.Overlap < 0 || cfg.ChunkerCfg.Overlap >= cfg.ChunkerCfg.MaxLength {
		errors = append(errors, fmt.Sprintf("CHUNKER_OVERLAP must be between 0 and CHUNKER_MAX_LENGTH(%d) exclusive, got %d", cfg.ChunkerCfg.MaxLength, cfg.ChunkerCfg.Overlap))
	}

	// Validate embedding provider
	switch cfg.EmbeddingConnectorCfg.Provider {
	case "ollama":
	case "hashing":
		if cfg.EmbeddingConnectorCfg.Dimension < 8 {
			errors = append(errors, fmt.Sprintf("EMBED_DIMENSION must be at least 8, got %d", cfg.EmbeddingConnectorCfg.Dimension))
		}
	default:
		errors = append(errors, fmt.Sprintf("EMBED_PROVIDER must be ollama or hashing, got %q", cfg.EmbeddingConnectorCfg.Provider))
	}

	if cfg.ChatConnectorCfg.Model == "" {
		errors = append(errors, "CHAT_MODEL must not be empty")
	}

	if cfg.ChatConnectorCfg.RequestTimeout <= 0 {
		errors = append(errors, "CHAT_TIMEOUT must be positive")
	}

	if cfg.ServerRequestTimeout <= 0 {
		errors = append(errors, "SERVER_REQUEST_TIMEOUT must be positive")
	} else if budget := askBudget(cfg); cfg.ServerRequestTimeout <= budget {
		errors = append(errors, fmt.Sprintf("SERVER_REQUEST_TIMEOUT(%s) must exceed the worst-case question time %s (embedding and chat retries)", cfg.ServerRequestTimeout, budget))
	}

	if cfg.TelegramCfg.DownloadTimeout <= 0 {
		errors = append(errors, "TELEGRAM_DOWNLOAD_TIMEOUT must be positive")
	}

	if cfg.IndexCfg.Collection == "" {
		errors = append(errors, "INDEX_COLLECTION must not be empty")
	}

	// Validate Database configuration
	if cfg.DatabaseURL != "" {
		if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
			errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
		}

		if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
			errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
		}
	}

	if cfg.FileUploadCfg.MaxFileCount < 1 {
		errors = append(errors, fmt.Sprintf("FILE_UPLOAD_MAX_FILE_COUNT must be positive, got %d", cfg.FileUploadCfg.MaxFileCount))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// askBudget is the longest a question can wait on remote services:
// embedding the query, then the chat call, each with all retries.
func askBudget(cfg *Config) time.Duration {
	chat := cfg.ChatConnectorCfg
	budget := chat.Retry.Budget(chat.RequestTimeout)

	embed := cfg.EmbeddingConnectorCfg
	if embed.Provider == "ollama" && !cfg.EnableMocks {
		budget += embed.Retry.Budget(embed.RequestTimeout)
	}
	return budget
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
