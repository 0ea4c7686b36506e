// Package config defines the inventory service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/inventory/pkg/config"
	"github.com/abgdnv/inventory/pkg/config/configloader"
)

const ServiceName = "inventory"

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer     config.HTTPConfig           `koanf:"server"`
	Database       config.DatabaseConfig       `koanf:"database"`
	CORS           config.CORSConfig           `koanf:"cors"`
	GraphQL        GraphQLConfig               `koanf:"graphql"`
	Log            config.LogConfig            `koanf:"log"`
	PProf          config.PProfConfig          `koanf:"pprof"`
	GRPC           config.GrpcServerConfig     `koanf:"grpc"`
	NATS           config.NATSConfig           `koanf:"nats"`
	Telemetry      config.TelemetryConfig      `koanf:"telemetry"`
	CircuitBreaker config.CircuitBreakerConfig `koanf:"circuitbreaker"`
	Shutdown       config.ShutdownConfig       `koanf:"shutdown"`
}

type GraphQLConfig struct {
	MaxDepth     int   `koanf:"maxdepth" validate:"gte=0"`
	MaxBodyBytes int64 `koanf:"maxbodybytes" validate:"gt=0"`
}

// Defaults are the lowest-priority configuration values.
var Defaults = map[string]any{
	"server.port":                        4000,
	"server.maxheaderbytes":              1 << 20,
	"server.timeout.read":                "10s",
	"server.timeout.write":               "15s",
	"server.timeout.idle":                "60s",
	"server.timeout.readheader":          "5s",
	"database.name":                      "products",
	"database.timeout":                   "10s",
	"cors.allowedorigins":                []string{"*"},
	"graphql.maxdepth":                   15,
	"graphql.maxbodybytes":               1 << 20,
	"log.level":                          "info",
	"log.format":                         "json",
	"pprof.enabled":                      false,
	"pprof.addr":                         ":6060",
	"grpc.enabled":                       false,
	"grpc.port":                          "50051",
	"grpc.reflection":                    false,
	"nats.enabled":                       false,
	"nats.url":                           "nats://localhost:4222",
	"nats.timeout":                       "5s",
	"nats.stream":                        "INVENTORY",
	"telemetry.enabled":                  false,
	"telemetry.traces.otlphttp.endpoint": "localhost:4318",
	"telemetry.traces.otlphttp.insecure": true,
	"telemetry.traces.otlphttp.timeout":  "5s",
	"telemetry.metrics.enabled":          false,
	"telemetry.metrics.path":             "/metrics",
	"circuitbreaker.consecutivefailures": 5,
	"circuitbreaker.opentimeout":         "30s",
	"shutdown.timeout":                   "15s",
}

// EnvAliases are the unprefixed variables understood by hosted deployments.
var EnvAliases = map[string]string{
	"MONGODB_URI": "database.uri",
	"DB_USER":     "database.user",
	"DB_PASSWORD": "database.password",
	"DB_HOST":     "database.host",
	"PORT":        "server.port",
}

// Load reads the configuration from config.yaml, .env and INVENTORY_* variables on top of Defaults.
func Load() (*Config, error) {
	opts := configloader.DefaultOptions()
	opts.Defaults = Defaults
	opts.EnvAliases = EnvAliases
	return configloader.Load[*Config](ServiceName, opts)
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.CORS.String())
	b.WriteString("\n--- GraphQL ---\n")
	b.WriteString(fmt.Sprintf("  maxdepth: %d\n", c.GraphQL.MaxDepth))
	b.WriteString(fmt.Sprintf("  maxbodybytes: %d\n", c.GraphQL.MaxBodyBytes))
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.NATS.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.CircuitBreaker.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Database,
		&c.CORS,
		&c.Log,
		&c.PProf,
		&c.GRPC,
		&c.NATS,
		&c.Telemetry,
		&c.CircuitBreaker,
		&c.Shutdown,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
