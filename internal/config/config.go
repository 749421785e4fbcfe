package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Data      DataConfig
	Generator GeneratorConfig
	Filter    filter.Config
	LogLevel  string
}

// DatabaseConfig holds database connection settings. An empty URL disables persistence.
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// DataConfig holds the draw history source
type DataConfig struct {
	DrawsFile  string
	DrawsSheet string
	FilterFile string
}

// GeneratorConfig holds generation defaults
type GeneratorConfig struct {
	TargetCount int
	MaxAttempts int
	Workers     int
	Seed        int64
	SeedSet     bool
	Deduplicate bool
	PoolSize    int
	CheckEvery  int
	Timeout     time.Duration
}

// ResolveSeed returns the configured seed, or a time-derived one when unset
func (g GeneratorConfig) ResolveSeed() int64 {
	if g.SeedSet {
		return g.Seed
	}
	return time.Now().UnixNano()
}

// Load reads configuration from an optional .env file and environment variables
func Load() (*Config, error) {
	// Missing .env is fine; the process environment still applies
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from environment variables and validates it
func FromEnv() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Server:   *loadServerConfig(),
		Data:     *loadDataConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	fileCfg, err := LoadFile(config.Data.FilterFile)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to load filter file"))
	}

	config.Generator = loadGeneratorConfig(fileCfg.Generator)

	config.Filter, err = fileCfg.FilterConfig()
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "invalid filter configuration"))
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		APIPort: getEnvOrDefault("API_PORT", "8081"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		DrawsFile:  getEnvOrDefault("DRAWS_FILE", ""),
		DrawsSheet: getEnvOrDefault("DRAWS_SHEET", "Sheet1"),
		FilterFile: getEnvOrDefault("FILTER_FILE", "lotogen.toml"),
	}
}

// loadGeneratorConfig layers environment variables over the [generator] file section
func loadGeneratorConfig(file GeneratorSection) GeneratorConfig {
	g := GeneratorConfig{
		TargetCount: 10,
		MaxAttempts: 10000,
		Workers:     1,
		Deduplicate: true,
		PoolSize:    lottery.UniverseSize,
		CheckEvery:  256,
	}
	if file.Target != nil {
		g.TargetCount = *file.Target
	}
	if file.MaxAttempts != nil {
		g.MaxAttempts = *file.MaxAttempts
	}
	if file.Workers != nil {
		g.Workers = *file.Workers
	}
	if file.PoolSize != nil {
		g.PoolSize = *file.PoolSize
	}
	if file.Deduplicate != nil {
		g.Deduplicate = *file.Deduplicate
	}
	if file.Seed != nil {
		g.Seed, g.SeedSet = *file.Seed, true
	}

	g.TargetCount = getEnvIntOrDefault("TARGET_COUNT", g.TargetCount)
	g.MaxAttempts = getEnvIntOrDefault("MAX_ATTEMPTS", g.MaxAttempts)
	g.Workers = getEnvIntOrDefault("WORKERS", g.Workers)
	g.PoolSize = getEnvIntOrDefault("POOL_SIZE", g.PoolSize)
	g.CheckEvery = getEnvIntOrDefault("CHECK_EVERY", g.CheckEvery)
	g.Deduplicate = getEnvBoolOrDefault("DEDUPLICATE", g.Deduplicate)
	g.Timeout = getEnvDurationOrDefault("GENERATE_TIMEOUT", 30*time.Second)
	if value := strings.TrimSpace(os.Getenv("SEED")); value != "" {
		if seed, err := strconv.ParseInt(value, 10, 64); err == nil {
			g.Seed, g.SeedSet = seed, true
		}
	}
	return g
}

func validateConfig(config *Config) error {
	g := config.Generator
	if g.TargetCount <= 0 {
		return errors.ConfigInvalid("TARGET_COUNT must be positive")
	}
	if g.MaxAttempts <= 0 {
		return errors.ConfigInvalid("MAX_ATTEMPTS must be positive")
	}
	if g.Workers < 1 {
		return errors.ConfigInvalid("WORKERS must be at least 1")
	}
	if g.PoolSize < lottery.DrawSize || g.PoolSize > lottery.UniverseSize {
		return errors.ConfigInvalid("POOL_SIZE must be between 15 and 25")
	}
	if g.CheckEvery <= 0 {
		return errors.ConfigInvalid("CHECK_EVERY must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
