package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Forecast ForecastConfig
	Weather  WeatherConfig
	Ensemble EnsembleConfig
	Cache    CacheConfig
	Storage  StorageConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// ForecastConfig holds pipeline-level settings
type ForecastConfig struct {
	DefaultHorizonDays int
	RequestTimeoutSec  int
}

// WeatherConfig holds upstream weather API settings. The NWS usage policy
// requires contact identification in the User-Agent header.
type WeatherConfig struct {
	Contact            string
	HourlyTimeoutSec   int
	OptionalTimeoutSec int
	MaxRetries         int
}

// EnsembleConfig controls the probabilistic band engine
type EnsembleConfig struct {
	Enabled bool
	Members int
}

// CacheConfig holds forecast cache settings
type CacheConfig struct {
	TTLSeconds int
	RedisAddr  string // empty means process-local cache
	RedisDB    int
}

// StorageConfig holds equipment upload storage settings
type StorageConfig struct {
	UploadDir      string // local fallback
	MinioEndpoint  string // empty means local storage
	MinioBucket    string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.sunfutures")

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.ginmode", "release")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("forecast.defaultHorizonDays", 30)
	viper.SetDefault("forecast.requestTimeoutSec", 60)
	viper.SetDefault("weather.contact", "sunfutures/1.0 (ops@sunfutures.example)")
	viper.SetDefault("weather.hourlyTimeoutSec", 20)
	viper.SetDefault("weather.optionalTimeoutSec", 10)
	viper.SetDefault("weather.maxRetries", 2)
	viper.SetDefault("ensemble.enabled", true)
	viper.SetDefault("ensemble.members", 21)
	viper.SetDefault("cache.ttlSeconds", 900)
	viper.SetDefault("cache.redisAddr", "")
	viper.SetDefault("cache.redisDB", 0)
	viper.SetDefault("storage.uploadDir", "./data/uploads")

	// Read from environment variables
	viper.SetEnvPrefix("SUNFUTURES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// CacheTTL returns the forecast cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// RequestTimeout bounds total pipeline latency per request
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Forecast.RequestTimeoutSec) * time.Second
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
