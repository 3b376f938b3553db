package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported quote providers.
const (
	QuoteProviderAlphaVantage = "alphavantage"
	QuoteProviderYahoo        = "yahoo"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Quote    QuoteConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// QuoteConfig holds the quote provider configuration.
// Timeout bounds every lookup; there is no retry.
type QuoteConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/position_ledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Quote: QuoteConfig{
			Provider: strings.ToLower(getEnv("QUOTE_PROVIDER", QuoteProviderAlphaVantage)),
			BaseURL:  os.Getenv("QUOTE_BASE_URL"),
		},
	}

	pretty, err := strconv.ParseBool(getEnv("LOG_PRETTY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_PRETTY: %w", err)
	}
	config.Log.Pretty = pretty

	timeout, err := time.ParseDuration(getEnv("QUOTE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, errors.New("QUOTE_TIMEOUT must be positive")
	}
	config.Quote.Timeout = timeout

	apiKey, err := resolveAPIKey()
	if err != nil {
		return nil, err
	}
	config.Quote.APIKey = apiKey

	switch config.Quote.Provider {
	case QuoteProviderAlphaVantage:
		if config.Quote.APIKey == "" {
			return nil, errors.New("QUOTE_API_KEY or QUOTE_API_KEY_ENCRYPTED is required for the alphavantage provider")
		}
	case QuoteProviderYahoo:
	default:
		return nil, fmt.Errorf("unknown QUOTE_PROVIDER: %q", config.Quote.Provider)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// resolveAPIKey prefers the encrypted key when both forms are set.
func resolveAPIKey() (string, error) {
	if token := os.Getenv("QUOTE_API_KEY_ENCRYPTED"); token != "" {
		key, err := DecryptSecret(token, os.Getenv("SECRET_KEY"))
		if err != nil {
			return "", fmt.Errorf("failed to decrypt QUOTE_API_KEY_ENCRYPTED: %w", err)
		}
		return key, nil
	}
	return os.Getenv("QUOTE_API_KEY"), nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
