// Package config loads service configuration from the environment.
//
// An optional .env file in the working directory is loaded first; variables
// already present in the process environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config is the root service configuration.
type Config struct {
	Service   ServiceConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Shutdown  ShutdownConfig
}

// ServiceConfig identifies the running service and its listen port.
type ServiceConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

// LoggingConfig controls the zerolog global level.
type LoggingConfig struct {
	Level string
}

// DatabaseConfig selects the store backend and how to reach it.
type DatabaseConfig struct {
	Driver         string
	MongoURI       string
	MongoDatabase  string
	PostgresURL    string
	ConnectTimeout string
}

// TracingConfig configures the OTLP trace exporter.
type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

// ProfilingConfig configures continuous profiling.
type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

// ShutdownConfig holds graceful shutdown timings as duration strings.
type ShutdownConfig struct {
	Timeout             string
	ReadinessDrainDelay string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "post-service")
	v.SetDefault("SERVICE_VERSION", "dev")
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "postdev")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	v.SetDefault("OTEL_SAMPLE_RATE", 1.0)
	v.SetDefault("PROFILING_ENABLED", false)
	v.SetDefault("PYROSCOPE_ENDPOINT", "http://localhost:4040")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("READINESS_DRAIN_DELAY", "0s")
}

// Load reads configuration from .env (if present) and the process environment.
func Load() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Service: ServiceConfig{
			Name:    v.GetString("SERVICE_NAME"),
			Version: v.GetString("SERVICE_VERSION"),
			Env:     v.GetString("ENV"),
			Port:    v.GetString("PORT"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Driver:         v.GetString("DB_DRIVER"),
			MongoURI:       v.GetString("MONGO_URI"),
			MongoDatabase:  v.GetString("MONGO_DATABASE"),
			PostgresURL:    v.GetString("DATABASE_URL"),
			ConnectTimeout: v.GetString("DB_CONNECT_TIMEOUT"),
		},
		Tracing: TracingConfig{
			Enabled:    v.GetBool("TRACING_ENABLED"),
			Endpoint:   v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			SampleRate: v.GetFloat64("OTEL_SAMPLE_RATE"),
		},
		Profiling: ProfilingConfig{
			Enabled:  v.GetBool("PROFILING_ENABLED"),
			Endpoint: v.GetString("PYROSCOPE_ENDPOINT"),
		},
		Shutdown: ShutdownConfig{
			Timeout:             v.GetString("SHUTDOWN_TIMEOUT"),
			ReadinessDrainDelay: v.GetString("READINESS_DRAIN_DELAY"),
		},
	}
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Service.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required when DB_DRIVER=mongo"))
		}
		if c.Database.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGO_DATABASE is required when DB_DRIVER=mongo"))
		}
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when DB_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMongo, DriverPostgres, c.Database.Driver))
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE must be within [0,1], got %v", c.Tracing.SampleRate))
	}

	durations := map[string]string{
		"DB_CONNECT_TIMEOUT":    c.Database.ConnectTimeout,
		"SHUTDOWN_TIMEOUT":      c.Shutdown.Timeout,
		"READINESS_DRAIN_DELAY": c.Shutdown.ReadinessDrainDelay,
	}
	for key, raw := range durations {
		if _, err := time.ParseDuration(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}

// GetConnectTimeoutDuration returns the store connect timeout, 10s if unparsable.
func (d DatabaseConfig) GetConnectTimeoutDuration() time.Duration {
	return parseDurationOr(d.ConnectTimeout, 10*time.Second)
}

// GetShutdownTimeoutDuration returns the graceful shutdown timeout, 10s if unparsable.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return parseDurationOr(c.Shutdown.Timeout, 10*time.Second)
}

// GetReadinessDrainDelayDuration returns how long /ready reports 503 before the
// HTTP server stops accepting connections.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return parseDurationOr(c.Shutdown.ReadinessDrainDelay, 0)
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
