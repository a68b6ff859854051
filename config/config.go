package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port            string        `validate:"required,numeric"`
	DBDriver        string        `validate:"required,oneof=sqlite postgres"`
	DBURL           string        `validate:"required"`
	CORSOrigins     []string      `validate:"required,min=1,dive,required"`
	GinMode         string        `validate:"required,oneof=debug release test"`
	LogLevel        string        `validate:"required,oneof=trace debug info warn error"`
	LogPretty       bool
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBURL:           getEnv("DB_URL", "app.sqlite"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGIN", "*")),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogPretty:       getEnv("LOG_PRETTY", "false") == "true",
		ShutdownTimeout: timeout,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
