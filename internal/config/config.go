// Package config loads service configuration from the environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// TelemetryConfig configures tracing export.
type TelemetryConfig struct {
	TracingEnabled   bool
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

// RenderConfig tunes the document render pipeline.
type RenderConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Config is the full service configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	HTTP           HTTPConfig
	Telemetry      TelemetryConfig
	Render         RenderConfig
}

// IsProduction reports whether the service runs in a production environment.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("invoicepro")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service.name", "invoicepro")
	v.SetDefault("service.version", "dev")
	v.SetDefault("environment", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("telemetry.tracing_enabled", false)
	v.SetDefault("telemetry.exporter_endpoint", "")
	v.SetDefault("telemetry.exporter_protocol", "grpc")
	v.SetDefault("telemetry.sampling_ratio", 0.1)
	v.SetDefault("render.cache_enabled", true)
	v.SetDefault("render.cache_ttl", "5m")

	cfg := Config{
		ServiceName:    v.GetString("service.name"),
		ServiceVersion: v.GetString("service.version"),
		Environment:    v.GetString("environment"),
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Telemetry: TelemetryConfig{
			TracingEnabled:   v.GetBool("telemetry.tracing_enabled"),
			ExporterEndpoint: v.GetString("telemetry.exporter_endpoint"),
			ExporterProtocol: v.GetString("telemetry.exporter_protocol"),
			SamplingRatio:    v.GetFloat64("telemetry.sampling_ratio"),
		},
		Render: RenderConfig{
			CacheEnabled: v.GetBool("render.cache_enabled"),
			CacheTTL:     v.GetDuration("render.cache_ttl"),
		},
	}
	return cfg, nil
}

// Module provides the configuration to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
)
