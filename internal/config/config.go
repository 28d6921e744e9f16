package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Summarizer backends
const (
	BackendGenAI       = "genai"
	BackendHuggingFace = "huggingface"
	BackendNone        = "none"
)

// Config holds the application configuration
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Security   SecurityConfig
	Fetch      FetchConfig
	Summarizer SummarizerConfig
	Catalog    CatalogConfig
	Diff       DiffConfig
	WhatsApp   WhatsAppConfig
	Webhooks   WebhookConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// SecurityConfig holds API authentication and throttling settings
type SecurityConfig struct {
	APIKeys        []string
	RateLimit      float64 // requests per second per client
	RateLimitBurst int
	TrustProxy     bool // take client addresses from X-Forwarded-For / X-Real-IP
}

// FetchConfig controls how scripts are downloaded
type FetchConfig struct {
	Timeout     time.Duration
	UserAgent   string
	GitHubToken string
	MaxLines    int // longest script the differ will accept
}

// SummarizerConfig selects and configures the summarization backend
type SummarizerConfig struct {
	Backend  string
	Model    string
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// CatalogConfig points at the script catalog. An empty file means the
// built-in catalog.
type CatalogConfig struct {
	File string
}

// DiffConfig holds diff rendering options
type DiffConfig struct {
	Hints      bool
	HintCutoff float64 // minimum similarity for a removed/added pair to get markers
}

// WhatsAppConfig holds the notification channel settings
type WhatsAppConfig struct {
	Enabled    bool
	DBDriver   string
	DBDSN      string
	LogLevel   string
	DeviceName string
	Recipient  string
}

// WebhookConfig holds the shared secrets for repository webhooks
type WebhookConfig struct {
	GitHubSecret string
	GiteaSecret  string
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load(".env")

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// FromEnv reads the environment without validating
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", ""),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 90*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Security: SecurityConfig{
			APIKeys:        getEnvAsSlice("API_KEYS", []string{}),
			RateLimit:      getEnvAsFloat("RATE_LIMIT", 1),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),
			TrustProxy:     getEnvAsBool("TRUST_PROXY", false),
		},
		Fetch: FetchConfig{
			Timeout:     getEnvAsDuration("FETCH_TIMEOUT", 30*time.Second),
			UserAgent:   getEnv("FETCH_USER_AGENT", "script-drift/1.0"),
			GitHubToken: getEnv("GITHUB_TOKEN", ""),
			MaxLines:    getEnvAsInt("FETCH_MAX_LINES", 5000),
		},
		Summarizer: SummarizerConfig{
			Backend:  strings.ToLower(getEnv("SUMMARIZER_BACKEND", BackendNone)),
			Model:    getEnv("SUMMARIZER_MODEL", ""),
			APIKey:   getEnv("SUMMARIZER_API_KEY", ""),
			Endpoint: getEnv("SUMMARIZER_ENDPOINT", ""),
			Timeout:  getEnvAsDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
		},
		Catalog: CatalogConfig{
			File: getEnv("CATALOG_FILE", ""),
		},
		Diff: DiffConfig{
			Hints:      getEnvAsBool("DIFF_HINTS", false),
			HintCutoff: getEnvAsFloat("DIFF_HINT_CUTOFF", 0.75),
		},
		WhatsApp: WhatsAppConfig{
			Enabled:    getEnvAsBool("WHATSAPP_ENABLED", false),
			DBDriver:   getEnv("WHATSAPP_DB_DRIVER", "sqlite3"),
			DBDSN:      getEnv("WHATSAPP_DB_DSN", "file:scriptdrift.db?_foreign_keys=on"),
			LogLevel:   getEnv("WHATSAPP_LOG_LEVEL", "INFO"),
			DeviceName: getEnv("WHATSAPP_DEVICE_NAME", "Script Drift"),
			Recipient:  getEnv("WHATSAPP_RECIPIENT", ""),
		},
		Webhooks: WebhookConfig{
			GitHubSecret: getEnv("GITHUB_WEBHOOK_SECRET", ""),
			GiteaSecret:  getEnv("GITEA_WEBHOOK_SECRET", ""),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if len(c.Security.APIKeys) == 0 {
		return fmt.Errorf("at least one API key is required")
	}
	for _, key := range c.Security.APIKeys {
		if key == "default-api-key" || key == "api-key-123" || len(key) < 8 {
			return fmt.Errorf("insecure or default API key detected: '%s'. Please set secure API keys in environment variables", key)
		}
	}
	if c.Security.RateLimit <= 0 || c.Security.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit must be positive")
	}

	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.Fetch.MaxLines < 1 {
		return fmt.Errorf("fetch max lines must be positive")
	}
	if c.Diff.HintCutoff < 0 || c.Diff.HintCutoff > 1 {
		return fmt.Errorf("diff hint cutoff must be between 0 and 1: %v", c.Diff.HintCutoff)
	}

	return c.Summarizer.Validate()
}

// Validate checks the backend choice and its credentials. The CLI calls this
// directly since it has no server section.
func (s *SummarizerConfig) Validate() error {
	switch s.Backend {
	case BackendNone, BackendHuggingFace:
	case BackendGenAI:
		if s.APIKey == "" {
			return fmt.Errorf("SUMMARIZER_API_KEY is required for the %s backend", BackendGenAI)
		}
	default:
		return fmt.Errorf("unknown summarizer backend: %q", s.Backend)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("summarizer timeout must not be negative")
	}
	return nil
}

// NotificationsEnabled reports whether reports can be sent anywhere
func (c *Config) NotificationsEnabled() bool {
	return c.WhatsApp.Enabled && c.WhatsApp.Recipient != ""
}

// Address returns the server address in the format host:port
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	values := make([]string, 0)
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
