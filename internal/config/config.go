package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Config holds runtime configuration loaded from .env and process env.
type Config struct {
	Environment string

	HTTP      HTTPConfig
	Database  DatabaseConfig
	Tracing   TracingConfig
	Bootstrap BootstrapConfig
}

type HTTPConfig struct {
	Addr           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	// Driver selects the gorm dialect: "sqlite" (default) or "mysql".
	Driver string
	DSN    string
}

type TracingConfig struct {
	Enabled          bool
	ServiceName      string
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

type BootstrapConfig struct {
	SeedDemoData bool
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// Load reads configuration from an optional .env file with process
// environment overrides.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	// A missing .env file is fine; the environment is the source of truth.
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "data/facteur.db")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "facteur")
	v.SetDefault("TRACING_EXPORTER_PROTOCOL", "grpc")
	v.SetDefault("TRACING_SAMPLING_RATIO", 1.0)
	v.SetDefault("SEED_DEMO_DATA", false)

	cfg := Config{
		Environment: v.GetString("ENVIRONMENT"),
		HTTP: HTTPConfig{
			Addr:           v.GetString("HTTP_ADDR"),
			AllowedOrigins: splitOrigins(v.GetString("HTTP_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			DSN:    v.GetString("DB_DSN"),
		},
		Tracing: TracingConfig{
			Enabled:          v.GetBool("TRACING_ENABLED"),
			ServiceName:      v.GetString("TRACING_SERVICE_NAME"),
			ExporterEndpoint: v.GetString("TRACING_EXPORTER_ENDPOINT"),
			ExporterProtocol: v.GetString("TRACING_EXPORTER_PROTOCOL"),
			SamplingRatio:    v.GetFloat64("TRACING_SAMPLING_RATIO"),
		},
		Bootstrap: BootstrapConfig{
			SeedDemoData: v.GetBool("SEED_DEMO_DATA"),
		},
	}
	return cfg, nil
}

func splitOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Module provides configuration to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
)
