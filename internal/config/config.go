package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultLogFilter  = "http=debug,notesvc=debug"
	DefaultMaxDBConns = 10
)

type Config struct {
	DatabaseURL   string
	Port          uint16
	RunMigrations bool
	MaxDBConns    int
	LogFilter     string
	Env           string
	CORSOrigins   string
	EnablePprof   bool
}

// Load reads the process environment, overlaid with a .env file from the
// working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogFilter:   GetEnv("LOG_FILTER", DefaultLogFilter),
		Env:         GetEnv("APP_ENV", "development"),
		CORSOrigins: GetEnv("CORS_ORIGINS", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	rawPort := os.Getenv("PORT")
	if rawPort == "" {
		return nil, errors.New("PORT is required")
	}
	port, err := strconv.ParseUint(rawPort, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("PORT must be a number between 0 and 65535: %w", err)
	}
	cfg.Port = uint16(port)

	if cfg.RunMigrations, err = getBool("RUN_MIGRATIONS", false); err != nil {
		return nil, err
	}
	if cfg.EnablePprof, err = getBool("ENABLE_PPROF", false); err != nil {
		return nil, err
	}

	cfg.MaxDBConns = DefaultMaxDBConns
	if raw := os.Getenv("DB_MAX_CONNS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("DB_MAX_CONNS must be a positive integer, got %q", raw)
		}
		cfg.MaxDBConns = n
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false, got %q", key, raw)
	}
	return v, nil
}
