// Package config loads and validates runtime settings once at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	// Runtime
	Env      string
	Port     int
	LogLevel slog.Level

	// Database
	DatabaseClient string
	DatabaseURL    string

	// Redis (optional read cache and event stream)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads the dotenv file for the current APP_ENV (.env.test under test,
// .env otherwise) and then validates the environment. Variables already set in
// the process take precedence over the file.
func Load() (*Config, error) {
	file := ".env"
	if os.Getenv("APP_ENV") == EnvTest {
		file = ".env.test"
	}
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from process environment variables, reporting every
// invalid or missing setting at once.
func FromEnv() (*Config, error) {
	var problems []string

	cfg := &Config{
		Env:            getEnv("APP_ENV", EnvProduction),
		DatabaseClient: os.Getenv("DATABASE_CLIENT"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
	}

	validEnvs := []string{EnvDevelopment, EnvProduction, EnvTest}
	if !slices.Contains(validEnvs, cfg.Env) {
		problems = append(problems, fmt.Sprintf("invalid APP_ENV '%s': must be one of %v", cfg.Env, validEnvs))
	}

	validClients := []string{"sqlite", "pg"}
	switch {
	case cfg.DatabaseClient == "":
		problems = append(problems, "DATABASE_CLIENT is required")
	case !slices.Contains(validClients, cfg.DatabaseClient):
		problems = append(problems, fmt.Sprintf("invalid DATABASE_CLIENT '%s': must be one of %v", cfg.DatabaseClient, validClients))
	}

	if cfg.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}

	portStr := getEnv("PORT", "3333")
	if port, err := strconv.Atoi(portStr); err != nil {
		problems = append(problems, fmt.Sprintf("invalid PORT '%s': must be a number", portStr))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %d: must be between 1 and 65535", port))
	} else {
		cfg.Port = port
	}

	dbStr := getEnv("REDIS_DB", "0")
	if db, err := strconv.Atoi(dbStr); err != nil || db < 0 {
		problems = append(problems, fmt.Sprintf("invalid REDIS_DB '%s': must be a non-negative number", dbStr))
	} else {
		cfg.RedisDB = db
	}

	levelStr := getEnv("LOG_LEVEL", "info")
	if err := cfg.LogLevel.UnmarshalText([]byte(levelStr)); err != nil {
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL '%s': must be one of debug, info, warn, error", levelStr))
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// RedisEnabled reports whether the read cache and event stream are configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
