// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the server.
type Config struct {
	Port            string `validate:"required,numeric"`
	DataDir         string `validate:"required"`
	MappingDir      string
	RedisAddr       string `validate:"omitempty,hostname_port"`
	RedisPassword   string
	RedisDB         int           `validate:"min=0,max=15"`
	CacheTTL        time.Duration `validate:"min=0"`
	CacheSize       int           `validate:"min=0"`
	RateLimitPerMin int           `validate:"min=0"`
	TeamLimitPerMin int           `validate:"min=0"`
	AllowedOrigins  []string      `validate:"dive,required"`
	LogLevel        string        `validate:"oneof=debug info warn warning error"`
	GinMode         string        `validate:"oneof=debug release test"`
	RetentionDays   int           `validate:"min=0"`
	EnableProfiling bool
}

// Load reads an optional .env file then the environment. Unparseable
// numbers and durations keep their defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		DataDir:         getEnvOrDefault("DATA_DIR", "./data"),
		MappingDir:      os.Getenv("MAPPING_DIR"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getIntOrDefault("REDIS_DB", 0),
		CacheTTL:        getDurationOrDefault("CACHE_TTL", 10*time.Minute),
		CacheSize:       getIntOrDefault("CACHE_SIZE", 1024),
		RateLimitPerMin: getIntOrDefault("RATE_LIMIT_PER_MIN", 120),
		TeamLimitPerMin: getIntOrDefault("TEAM_RATE_LIMIT_PER_MIN", 30),
		AllowedOrigins:  splitList(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:        strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		RetentionDays:   getIntOrDefault("RETENTION_DAYS", 365),
		EnableProfiling: os.Getenv("ENABLE_PROFILING") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags and reports each failing field.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewConfigurationError("invalid configuration", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return errors.NewConfigurationError("invalid configuration: "+strings.Join(fields, ", "), err)
}

// Retention returns the data retention window. Zero disables purging.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
